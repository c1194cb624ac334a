package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Sock5Proxy struct {
	Host   string `yaml:"Host"`
	Port   int32  `yaml:"Port"`
	Enable bool   `yaml:"Enable"`
}

type Chat struct {
	File string `yaml:"File"` // WhatsApp 导出的聊天记录文件路径
}

type LLM struct {
	BaseURL        string `yaml:"BaseURL"`        // 兼容 OpenAI API 的端点
	APIKey         string `yaml:"APIKey"`         // 本地端点（如 LM Studio）可留空
	Model          string `yaml:"Model"`          // 如 gpt-4o, deepseek-chat, gemma-3-12b-it-qat
	RequestTimeout int    `yaml:"RequestTimeout"` // 单次请求超时（秒），默认 240
}

type Summary struct {
	ChunkTargetChars      int    `yaml:"ChunkTargetChars"`      // 分块目标长度（字符）
	ChunkOverlapChars     int    `yaml:"ChunkOverlapChars"`     // 分块重叠长度（字符）
	ChunkSummaryMaxTokens int    `yaml:"ChunkSummaryMaxTokens"` // 单块总结的 token 预算
	FinalSummaryMaxTokens int    `yaml:"FinalSummaryMaxTokens"` // 最终总结的 token 预算
	OutputFile            string `yaml:"OutputFile"`            // 汇总报告输出文件
	Cron                  string `yaml:"Cron"`                  // cron 表达式，如 "0 0 * * *"，仅守护模式使用
	RetentionDays         int    `yaml:"RetentionDays"`         // 消息保留天数，0=不清理
	RetryTimes            int    `yaml:"RetryTimes"`            // 总结失败重试次数，默认 3
	RetryInterval         int    `yaml:"RetryInterval"`         // 重试间隔（秒），默认 60
}

type Config struct {
	Sock5Proxy Sock5Proxy `yaml:"Sock5Proxy"`
	Chat       Chat       `yaml:"Chat"`
	LLM        LLM        `yaml:"LLM"`
	Summary    Summary    `yaml:"Summary"`
}

func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var c Config
	err = yaml.Unmarshal([]byte(data), &c)
	if err != nil {
		return nil, err
	}

	c.applyDefaults()

	// 验证配置
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyDefaults 填充未配置项的默认值
func (c *Config) applyDefaults() {
	if c.LLM.RequestTimeout == 0 {
		c.LLM.RequestTimeout = 240
	}
	if c.Summary.ChunkTargetChars == 0 {
		c.Summary.ChunkTargetChars = 10000
	}
	if c.Summary.ChunkOverlapChars == 0 {
		c.Summary.ChunkOverlapChars = 500
	}
	if c.Summary.ChunkSummaryMaxTokens == 0 {
		c.Summary.ChunkSummaryMaxTokens = 250
	}
	if c.Summary.FinalSummaryMaxTokens == 0 {
		c.Summary.FinalSummaryMaxTokens = 400
	}
	if c.Summary.OutputFile == "" {
		c.Summary.OutputFile = "chat_summaries.txt"
	}
	if c.Summary.Cron == "" {
		c.Summary.Cron = "0 0 * * *"
	}
	if c.Summary.RetryTimes == 0 {
		c.Summary.RetryTimes = 3
	}
	if c.Summary.RetryInterval == 0 {
		c.Summary.RetryInterval = 60
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	// 验证 LLM
	if c.LLM.BaseURL == "" {
		return fmt.Errorf("LLM.BaseURL 不能为空")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("LLM.Model 不能为空")
	}
	if c.LLM.RequestTimeout <= 0 {
		return fmt.Errorf("LLM.RequestTimeout 必须大于 0")
	}

	// 验证 Summary
	if c.Summary.ChunkOverlapChars <= 0 {
		return fmt.Errorf("Summary.ChunkOverlapChars 必须大于 0")
	}
	if c.Summary.ChunkTargetChars <= c.Summary.ChunkOverlapChars {
		return fmt.Errorf("Summary.ChunkTargetChars 必须大于 Summary.ChunkOverlapChars")
	}
	if c.Summary.ChunkSummaryMaxTokens <= 0 {
		return fmt.Errorf("Summary.ChunkSummaryMaxTokens 必须大于 0")
	}
	if c.Summary.FinalSummaryMaxTokens <= 0 {
		return fmt.Errorf("Summary.FinalSummaryMaxTokens 必须大于 0")
	}
	if c.Summary.RetentionDays < 0 {
		return fmt.Errorf("Summary.RetentionDays 必须 >= 0")
	}
	if c.Summary.RetryTimes < 0 {
		return fmt.Errorf("Summary.RetryTimes 必须 >= 0")
	}
	if c.Summary.RetryInterval < 0 {
		return fmt.Errorf("Summary.RetryInterval 必须 >= 0")
	}

	return nil
}

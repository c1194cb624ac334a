package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeTempConfig(t, `
LLM:
  BaseURL: http://localhost:1234/v1
  Model: gemma-3-12b-it-qat
`)
	c, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, 240, c.LLM.RequestTimeout)
	assert.Equal(t, 10000, c.Summary.ChunkTargetChars)
	assert.Equal(t, 500, c.Summary.ChunkOverlapChars)
	assert.Equal(t, 250, c.Summary.ChunkSummaryMaxTokens)
	assert.Equal(t, 400, c.Summary.FinalSummaryMaxTokens)
	assert.Equal(t, "chat_summaries.txt", c.Summary.OutputFile)
	assert.Equal(t, "0 0 * * *", c.Summary.Cron)
	assert.Equal(t, 3, c.Summary.RetryTimes)
	assert.Equal(t, 60, c.Summary.RetryInterval)
	assert.Empty(t, c.LLM.APIKey, "本地端点可以不配置 APIKey")
}

func TestLoadFromFile_FullConfig(t *testing.T) {
	path := writeTempConfig(t, `
Sock5Proxy:
  Host: 127.0.0.1
  Port: 1080
  Enable: true
Chat:
  File: data/chat.txt
LLM:
  BaseURL: https://api.deepseek.com/v1
  APIKey: sk-test
  Model: deepseek-chat
  RequestTimeout: 120
Summary:
  ChunkTargetChars: 8000
  ChunkOverlapChars: 400
  OutputFile: out.txt
  RetentionDays: 30
`)
	c, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.True(t, c.Sock5Proxy.Enable)
	assert.Equal(t, int32(1080), c.Sock5Proxy.Port)
	assert.Equal(t, "data/chat.txt", c.Chat.File)
	assert.Equal(t, "deepseek-chat", c.LLM.Model)
	assert.Equal(t, 120, c.LLM.RequestTimeout)
	assert.Equal(t, 8000, c.Summary.ChunkTargetChars)
	assert.Equal(t, 400, c.Summary.ChunkOverlapChars)
	assert.Equal(t, "out.txt", c.Summary.OutputFile)
	assert.Equal(t, 30, c.Summary.RetentionDays)
}

func TestLoadFromFile_NotExist(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.LLM.BaseURL = "http://localhost:1234/v1"
		c.LLM.Model = "gpt-4o"
		c.applyDefaults()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		errText string
	}{
		{"合法配置", func(c *Config) {}, ""},
		{"缺少BaseURL", func(c *Config) { c.LLM.BaseURL = "" }, "LLM.BaseURL"},
		{"缺少Model", func(c *Config) { c.LLM.Model = "" }, "LLM.Model"},
		{"超时非法", func(c *Config) { c.LLM.RequestTimeout = -1 }, "LLM.RequestTimeout"},
		{"重叠长度非法", func(c *Config) { c.Summary.ChunkOverlapChars = -1 }, "ChunkOverlapChars"},
		{"目标不大于重叠", func(c *Config) {
			c.Summary.ChunkTargetChars = 500
			c.Summary.ChunkOverlapChars = 500
		}, "ChunkTargetChars"},
		{"保留天数非法", func(c *Config) { c.Summary.RetentionDays = -1 }, "RetentionDays"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.errText == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}

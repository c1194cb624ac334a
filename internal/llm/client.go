package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fachebot/chat-recap-bot/internal/config"
	"github.com/fachebot/chat-recap-bot/internal/logger"
	"github.com/sashabaranov/go-openai"
)

// completionTemperature 固定低温度，保证总结输出稳定
const completionTemperature = 0.15

// openAIClientInterface 定义 OpenAI 客户端接口，便于测试
type openAIClientInterface interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Client struct {
	config       *config.LLM
	openaiClient openAIClientInterface
}

// NewClient 创建 LLM 客户端，httpClient 可为 nil（使用默认传输，可注入代理传输）
func NewClient(cfg *config.LLM, httpClient *http.Client) *Client {
	openaiConfig := openai.DefaultConfig(cfg.APIKey)
	openaiConfig.BaseURL = cfg.BaseURL
	if httpClient != nil {
		openaiConfig.HTTPClient = httpClient
	}

	return &Client{
		config:       cfg,
		openaiClient: openai.NewClientWithConfig(openaiConfig),
	}
}

// Complete 执行一次对话补全请求，返回助手回复文本（已去除首尾空白）
// 超时、网络错误、非 2xx 状态与响应缺字段在此统一收敛为一个错误，
// 调用方只需判断有无结果，不区分失败种类；具体失败原因只记录日志
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	timeout := time.Duration(c.config.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 240 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: completionTemperature,
	}

	resp, err := c.openaiClient.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logRequestError(err)
		return "", fmt.Errorf("调用 LLM API 失败: %w", err)
	}

	if len(resp.Choices) == 0 {
		logger.Errorf("[LLM] 响应结构异常: 没有任何 choices")
		return "", fmt.Errorf("LLM API 返回空结果")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		logger.Errorf("[LLM] 响应结构异常: choices[0].message.content 为空")
		return "", fmt.Errorf("LLM API 返回空内容")
	}
	return content, nil
}

// logRequestError 按失败种类记录诊断日志
func (c *Client) logRequestError(err error) {
	var apiErr *openai.APIError
	var reqErr *openai.RequestError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		logger.Errorf("[LLM] 请求超时 (%ds): %v", c.config.RequestTimeout, err)
	case errors.As(err, &apiErr):
		logger.Errorf("[LLM] 请求失败, HTTP状态=%d, 响应=%s", apiErr.HTTPStatusCode, apiErr.Message)
	case errors.As(err, &reqErr):
		logger.Errorf("[LLM] 请求失败, HTTP状态=%d: %v", reqErr.HTTPStatusCode, reqErr.Err)
	default:
		logger.Errorf("[LLM] 网络请求失败: %v", err)
	}
}

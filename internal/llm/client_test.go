package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/fachebot/chat-recap-bot/internal/config"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockOpenAIClient 模拟 OpenAI 客户端
type mockOpenAIClient struct {
	mock.Mock
}

func (m *mockOpenAIClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(openai.ChatCompletionResponse), args.Error(1)
}

func newTestClient(cfg *config.LLM, mockClient openAIClientInterface) *Client {
	return &Client{
		config:       cfg,
		openaiClient: mockClient,
	}
}

func testConfig() *config.LLM {
	return &config.LLM{
		BaseURL:        "https://api.example.com/v1",
		Model:          "gpt-4o-mini",
		RequestTimeout: 240,
	}
}

func responseWithContent(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
}

func TestComplete_Success(t *testing.T) {
	mockClient := new(mockOpenAIClient)
	mockClient.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(responseWithContent("  A concise summary.  \n"), nil)

	client := newTestClient(testConfig(), mockClient)
	content, err := client.Complete(context.Background(), "system", "user", 400)

	assert.NoError(t, err)
	assert.Equal(t, "A concise summary.", content, "返回内容应去除首尾空白")
	mockClient.AssertExpectations(t)
}

func TestComplete_RequestFields(t *testing.T) {
	mockClient := new(mockOpenAIClient)
	mockClient.On("CreateChatCompletion", mock.Anything, mock.MatchedBy(func(req openai.ChatCompletionRequest) bool {
		if req.Model != "gpt-4o-mini" || req.MaxTokens != 250 {
			return false
		}
		if req.Temperature != 0.15 {
			return false
		}
		if len(req.Messages) != 2 {
			return false
		}
		return req.Messages[0].Role == openai.ChatMessageRoleSystem &&
			req.Messages[0].Content == "system prompt" &&
			req.Messages[1].Role == openai.ChatMessageRoleUser &&
			req.Messages[1].Content == "user prompt"
	})).Return(responseWithContent("ok"), nil)

	client := newTestClient(testConfig(), mockClient)
	_, err := client.Complete(context.Background(), "system prompt", "user prompt", 250)

	assert.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestComplete_APIError(t *testing.T) {
	mockClient := new(mockOpenAIClient)
	mockClient.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(openai.ChatCompletionResponse{}, &openai.APIError{
			HTTPStatusCode: 429,
			Message:        "rate limit exceeded",
		})

	client := newTestClient(testConfig(), mockClient)
	content, err := client.Complete(context.Background(), "system", "user", 400)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "调用 LLM API 失败")
	assert.Empty(t, content)
}

func TestComplete_NetworkError(t *testing.T) {
	mockClient := new(mockOpenAIClient)
	mockClient.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(openai.ChatCompletionResponse{}, fmt.Errorf("connection refused"))

	client := newTestClient(testConfig(), mockClient)
	_, err := client.Complete(context.Background(), "system", "user", 400)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "调用 LLM API 失败")
}

func TestComplete_EmptyChoices(t *testing.T) {
	mockClient := new(mockOpenAIClient)
	mockClient.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(openai.ChatCompletionResponse{}, nil)

	client := newTestClient(testConfig(), mockClient)
	_, err := client.Complete(context.Background(), "system", "user", 400)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "返回空结果")
}

func TestComplete_EmptyContent(t *testing.T) {
	mockClient := new(mockOpenAIClient)
	mockClient.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(responseWithContent("   \n\t  "), nil)

	client := newTestClient(testConfig(), mockClient)
	_, err := client.Complete(context.Background(), "system", "user", 400)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "返回空内容")
}

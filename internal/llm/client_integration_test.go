package llm

import (
	"context"
	"os"
	"testing"

	"github.com/fachebot/chat-recap-bot/internal/config"
	"github.com/stretchr/testify/assert"
)

// TestComplete_Integration 真实调用 LLM API，需要设置环境变量后手动运行:
//
//	LLM_API_KEY=sk-xxx LLM_BASE_URL=https://api.openai.com/v1 LLM_MODEL=gpt-4o-mini go test -run TestComplete_Integration ./internal/llm/
func TestComplete_Integration(t *testing.T) {
	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		t.Skip("未设置 LLM_API_KEY，跳过集成测试")
	}

	cfg := &config.LLM{
		BaseURL:        os.Getenv("LLM_BASE_URL"),
		APIKey:         apiKey,
		Model:          os.Getenv("LLM_MODEL"),
		RequestTimeout: 240,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	client := NewClient(cfg, nil)
	content, err := client.Complete(context.Background(),
		"You are a helpful assistant.",
		"Reply with the single word: pong",
		16)

	assert.NoError(t, err)
	assert.NotEmpty(t, content)
	t.Logf("LLM 返回: %s", content)
}

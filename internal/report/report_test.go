package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fachebot/chat-recap-bot/internal/summarizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummaries() (time.Time, time.Time, []summarizer.DaySummary) {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	summaries := []summarizer.DaySummary{
		{Date: start, Text: "Alice and Bob planned the trip.", Status: summarizer.StatusOk},
		{Date: end, Text: "No parsable messages for this day.", Status: summarizer.StatusEmpty},
	}
	return start, end, summaries
}

func TestRender(t *testing.T) {
	start, end, summaries := sampleSummaries()
	content := Render(start, end, "Alice", "Bob", summaries)

	assert.Contains(t, content, "WhatsApp Chat Summaries\n")
	assert.Contains(t, content, "Range: 2025-02-01 to 2025-02-02\n")
	assert.Contains(t, content, "Summarized 2 day(s).\n")
	assert.Contains(t, content, "Primary Senders Considered: Alice, Bob\n")
	assert.Contains(t, content, strings.Repeat("=", 30)+"\n")

	// 每日块：长日期标题、等长横线、正文
	header := "Date: February 01, 2025 (Saturday)"
	assert.Contains(t, content, header+"\n"+strings.Repeat("-", len(header))+"\n")
	assert.Contains(t, content, "Alice and Bob planned the trip.\n")
	assert.Contains(t, content, "Date: February 02, 2025 (Sunday)")
	assert.Contains(t, content, "No parsable messages for this day.\n")

	// 日期块保持时间顺序
	idx1 := strings.Index(content, "February 01")
	idx2 := strings.Index(content, "February 02")
	assert.Greater(t, idx2, idx1)
}

func TestRender_EmptySummaries(t *testing.T) {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	content := Render(start, start, "Alice", "Bob", nil)

	assert.Contains(t, content, "Summarized 0 day(s).\n")
	assert.NotContains(t, content, "Date: February")
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	w := NewWriter(path)
	assert.Equal(t, path, w.Path())

	start, end, summaries := sampleSummaries()
	require.NoError(t, w.Write(start, end, "Alice", "Bob", summaries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WhatsApp Chat Summaries")
}

func TestWrite_BadPath(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "missing-dir", "out.txt"))
	start, end, summaries := sampleSummaries()

	err := w.Write(start, end, "Alice", "Bob", summaries)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "写入汇总报告")
}

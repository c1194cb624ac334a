package summarizer

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fachebot/chat-recap-bot/internal/config"
	"github.com/fachebot/chat-recap-bot/internal/ent"
	entsummary "github.com/fachebot/chat-recap-bot/internal/ent/summary"
	"github.com/fachebot/chat-recap-bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type completionCall struct {
	systemPrompt string
	userPrompt   string
	maxTokens    int
}

// mockCompleter 脚本化的 LLM 补全，记录每次调用的 prompt 与 token 预算
type mockCompleter struct {
	fn    func(call completionCall) (string, error)
	calls []completionCall
}

func (f *mockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	call := completionCall{systemPrompt: systemPrompt, userPrompt: userPrompt, maxTokens: maxTokens}
	f.calls = append(f.calls, call)
	if f.fn == nil {
		return "ok", nil
	}
	return f.fn(call)
}

type mockMessageProvider struct {
	byDate    map[string][]*ent.Message
	counts    map[string]int
	countsErr error
	getErr    error
}

func (p *mockMessageProvider) GetByDate(ctx context.Context, date time.Time) ([]*ent.Message, error) {
	if p.getErr != nil {
		return nil, p.getErr
	}
	return p.byDate[date.Format(dateLayout)], nil
}

func (p *mockMessageProvider) GetSenderCounts(ctx context.Context) (map[string]int, error) {
	if p.countsErr != nil {
		return nil, p.countsErr
	}
	return p.counts, nil
}

type mockSummaryWriter struct {
	saved []*model.SummaryData
}

func (w *mockSummaryWriter) CreateOrUpdate(ctx context.Context, data *model.SummaryData) (*ent.Summary, error) {
	w.saved = append(w.saved, data)
	return &ent.Summary{}, nil
}

func newTestSummarizer(fc *mockCompleter, mp *mockMessageProvider, sw *mockSummaryWriter, cfg *config.Summary) *Summarizer {
	return &Summarizer{
		llmClient:    fc,
		messageModel: mp,
		summaryModel: sw,
		cfg:          cfg,
	}
}

func smallConfig() *config.Summary {
	return &config.Summary{
		ChunkTargetChars:      100,
		ChunkOverlapChars:     10,
		ChunkSummaryMaxTokens: 250,
		FinalSummaryMaxTokens: 400,
	}
}

func isChunkCall(call completionCall) bool {
	return strings.Contains(call.systemPrompt, "parts of a day's chat conversation")
}

func isFinalCall(call completionCall) bool {
	return strings.Contains(call.systemPrompt, "expert summarizer")
}

var testDate = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

func TestBuildTranscript(t *testing.T) {
	msgs := []*ent.Message{
		{SenderName: "Alice", Text: "Hello", SentAt: testDate.Add(9 * time.Hour)},
		{SenderName: "Bob", Text: "Hi there", SentAt: testDate.Add(10 * time.Hour)},
	}
	assert.Equal(t, "Alice: Hello\nBob: Hi there", BuildTranscript(msgs))
	assert.Equal(t, "", BuildTranscript(nil))
}

func TestPrimarySenders(t *testing.T) {
	tests := []struct {
		name    string
		counts  map[string]int
		sender1 string
		sender2 string
	}{
		{"取消息最多的两人", map[string]int{"Alice": 10, "Bob": 8, "Carol": 2}, "Alice", "Bob"},
		{"数量相同按名称排序", map[string]int{"Bob": 5, "Alice": 5}, "Alice", "Bob"},
		{"只有一个发送者时补默认名", map[string]int{"Alice": 3}, "Alice", "Sender2"},
		{"没有发送者时全部默认名", map[string]int{}, "Sender1", "Sender2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s1, s2 := PrimarySenders(tt.counts)
			assert.Equal(t, tt.sender1, s1)
			assert.Equal(t, tt.sender2, s2)
		})
	}
}

func TestSummarizeDay_DirectPathBoundary(t *testing.T) {
	// 长度不超过目标的 1.2 倍走直接路径，超过则进入分块
	cfg := smallConfig()

	fc := &mockCompleter{}
	s := newTestSummarizer(fc, nil, nil, cfg)
	text, status := s.SummarizeDay(context.Background(), testDate, strings.Repeat("a", 120), "Alice", "Bob")
	assert.Equal(t, StatusOk, status)
	assert.Equal(t, "ok", text)
	require.Len(t, fc.calls, 1)
	assert.Equal(t, cfg.FinalSummaryMaxTokens, fc.calls[0].maxTokens)

	fc = &mockCompleter{}
	s = newTestSummarizer(fc, nil, nil, cfg)
	_, status = s.SummarizeDay(context.Background(), testDate, strings.Repeat("a", 121), "Alice", "Bob")
	assert.Equal(t, StatusOk, status)
	require.Len(t, fc.calls, 3, "121 字符应切成 2 块，再加 1 次合成")
	assert.True(t, isChunkCall(fc.calls[0]))
	assert.True(t, isChunkCall(fc.calls[1]))
	assert.True(t, isFinalCall(fc.calls[2]))
	assert.Equal(t, cfg.ChunkSummaryMaxTokens, fc.calls[0].maxTokens)
	assert.Equal(t, cfg.FinalSummaryMaxTokens, fc.calls[2].maxTokens)
}

func TestSummarizeDay_DirectSuccess(t *testing.T) {
	fc := &mockCompleter{fn: func(call completionCall) (string, error) {
		return "A concise summary of the day.", nil
	}}
	s := newTestSummarizer(fc, nil, nil, smallConfig())

	transcript := "Alice: Hello\nBob: Hi"
	text, status := s.SummarizeDay(context.Background(), testDate, transcript, "Alice", "Bob")

	assert.Equal(t, StatusOk, status)
	assert.Equal(t, "A concise summary of the day.", text)
	require.Len(t, fc.calls, 1)
	assert.Contains(t, fc.calls[0].userPrompt, transcript)
	assert.Contains(t, fc.calls[0].userPrompt, "February 01, 2025")
	assert.Contains(t, fc.calls[0].systemPrompt, "Alice")
	assert.Contains(t, fc.calls[0].systemPrompt, "Bob")
}

func TestSummarizeDay_DirectFailure(t *testing.T) {
	fc := &mockCompleter{fn: func(call completionCall) (string, error) {
		return "", fmt.Errorf("api down")
	}}
	s := newTestSummarizer(fc, nil, nil, smallConfig())

	text, status := s.SummarizeDay(context.Background(), testDate, "short text", "Alice", "Bob")

	assert.Equal(t, StatusFailed, status)
	assert.Equal(t, "Error: Could not generate direct summary for 2025-02-01.", text)
}

func TestSummarizeDay_PartialChunkFailure(t *testing.T) {
	// 第 2 块失败：它的位置用占位文本补上，其余块和合成照常进行
	chunkCalls := 0
	fc := &mockCompleter{}
	fc.fn = func(call completionCall) (string, error) {
		if isChunkCall(call) {
			chunkCalls++
			if chunkCalls == 2 {
				return "", fmt.Errorf("timeout")
			}
			return fmt.Sprintf("S%d", chunkCalls), nil
		}
		return "FINAL", nil
	}
	s := newTestSummarizer(fc, nil, nil, smallConfig())

	text, status := s.SummarizeDay(context.Background(), testDate, strings.Repeat("a", 250), "Alice", "Bob")

	assert.Equal(t, StatusOk, status)
	assert.Equal(t, "FINAL", text)
	require.Len(t, fc.calls, 4)

	finalPrompt := fc.calls[3].userPrompt
	idx1 := strings.Index(finalPrompt, "Summary of Segment 1:\nS1")
	idx2 := strings.Index(finalPrompt, "Summary of Segment 2:\n[Error summarizing chunk 2]")
	idx3 := strings.Index(finalPrompt, "Summary of Segment 3:\nS3")
	assert.GreaterOrEqual(t, idx1, 0)
	assert.Greater(t, idx2, idx1, "失败块的占位文本必须保持原有顺序")
	assert.Greater(t, idx3, idx2)
}

func TestSummarizeDay_AllChunksFail(t *testing.T) {
	fc := &mockCompleter{}
	fc.fn = func(call completionCall) (string, error) {
		if isChunkCall(call) {
			return "", fmt.Errorf("timeout")
		}
		return "FINAL", nil
	}
	// 三个占位块合计 151 字符，目标 200 时上限为 300，不触发截断
	cfg := smallConfig()
	cfg.ChunkTargetChars = 200
	s := newTestSummarizer(fc, nil, nil, cfg)

	text, status := s.SummarizeDay(context.Background(), testDate, strings.Repeat("a", 500), "Alice", "Bob")

	// 全部块失败时占位文本仍会送去合成，只要合成成功就算成功
	assert.Equal(t, StatusOk, status)
	assert.Equal(t, "FINAL", text)
	require.Len(t, fc.calls, 4)
	finalPrompt := fc.calls[len(fc.calls)-1].userPrompt
	assert.NotContains(t, finalPrompt, truncationMarker)
	assert.Contains(t, finalPrompt, "[Error summarizing chunk 1]")
	assert.Contains(t, finalPrompt, "[Error summarizing chunk 2]")
	assert.Contains(t, finalPrompt, "[Error summarizing chunk 3]")
}

func TestSummarizeDay_NoChunks(t *testing.T) {
	// 超长但全是空白的文本切不出任何块，直接返回哨兵文本，不调用 LLM
	fc := &mockCompleter{}
	s := newTestSummarizer(fc, nil, nil, smallConfig())

	text, status := s.SummarizeDay(context.Background(), testDate, strings.Repeat(" ", 150), "Alice", "Bob")

	assert.Equal(t, StatusFailed, status)
	assert.Equal(t, "Error: No summaries generated from chunks for 2025-02-01.", text)
	assert.Empty(t, fc.calls)
}

func TestSummarizeDay_FinalSynthesisFailure(t *testing.T) {
	fc := &mockCompleter{}
	fc.fn = func(call completionCall) (string, error) {
		if isFinalCall(call) {
			return "", fmt.Errorf("api down")
		}
		return "segment summary", nil
	}
	s := newTestSummarizer(fc, nil, nil, smallConfig())

	text, status := s.SummarizeDay(context.Background(), testDate, strings.Repeat("a", 250), "Alice", "Bob")

	assert.Equal(t, StatusFailed, status)
	assert.Equal(t, "Error: Could not generate final summary from chunks for 2025-02-01.", text)
}

func TestSummarizeDay_TruncatesCombinedSummaries(t *testing.T) {
	// 分段摘要合并后超过目标长度的 1.5 倍时截断并追加标记
	fc := &mockCompleter{}
	fc.fn = func(call completionCall) (string, error) {
		if isChunkCall(call) {
			return strings.Repeat("s", 60), nil
		}
		return "FINAL", nil
	}
	cfg := smallConfig()
	s := newTestSummarizer(fc, nil, nil, cfg)

	_, status := s.SummarizeDay(context.Background(), testDate, strings.Repeat("a", 250), "Alice", "Bob")
	assert.Equal(t, StatusOk, status)

	finalPrompt := fc.calls[len(fc.calls)-1].userPrompt
	require.Contains(t, finalPrompt, truncationMarker)

	limit := int(float64(cfg.ChunkTargetChars) * combinedLimitRatio)
	start := strings.Index(finalPrompt, "Summary of Segment 1:")
	markerIdx := strings.Index(finalPrompt, truncationMarker)
	require.GreaterOrEqual(t, start, 0)
	assert.Equal(t, limit, markerIdx-start, "截断后的合并文本长度应等于上限")
}

func TestSummarizeDay_ChunkedEndToEnd(t *testing.T) {
	// 25000 字符、目标 10000、重叠 500：3 次分块调用 + 1 次合成
	fc := &mockCompleter{}
	fc.fn = func(call completionCall) (string, error) {
		if isChunkCall(call) {
			return "segment summary", nil
		}
		return "THE WHOLE DAY", nil
	}
	cfg := &config.Summary{
		ChunkTargetChars:      10000,
		ChunkOverlapChars:     500,
		ChunkSummaryMaxTokens: 250,
		FinalSummaryMaxTokens: 400,
	}
	s := newTestSummarizer(fc, nil, nil, cfg)

	text, status := s.SummarizeDay(context.Background(), testDate, strings.Repeat("a", 25000), "Alice", "Bob")

	assert.Equal(t, StatusOk, status)
	assert.Equal(t, "THE WHOLE DAY", text)
	require.Len(t, fc.calls, 4)
	for i := 0; i < 3; i++ {
		assert.True(t, isChunkCall(fc.calls[i]))
	}
	assert.True(t, isFinalCall(fc.calls[3]))
}

func TestSummarizeRange_Success(t *testing.T) {
	mp := &mockMessageProvider{
		counts: map[string]int{"Alice": 5, "Bob": 3},
		byDate: map[string][]*ent.Message{
			"2025-02-01": {
				{SenderName: "Alice", Text: "Hello", SentAt: testDate.Add(9 * time.Hour)},
				{SenderName: "Bob", Text: "Hi", SentAt: testDate.Add(10 * time.Hour)},
			},
		},
	}
	sw := &mockSummaryWriter{}
	fc := &mockCompleter{fn: func(call completionCall) (string, error) {
		return "DAY SUMMARY", nil
	}}
	s := newTestSummarizer(fc, mp, sw, smallConfig())

	result, err := s.SummarizeRange(context.Background(), testDate, testDate.AddDate(0, 0, 1))

	require.NoError(t, err)
	assert.Equal(t, "Alice", result.Sender1)
	assert.Equal(t, "Bob", result.Sender2)
	require.Len(t, result.Summaries, 2)

	assert.Equal(t, StatusOk, result.Summaries[0].Status)
	assert.Equal(t, "DAY SUMMARY", result.Summaries[0].Text)
	assert.Equal(t, StatusEmpty, result.Summaries[1].Status)
	assert.Equal(t, "No parsable messages for this day.", result.Summaries[1].Text)

	require.Len(t, fc.calls, 1, "无消息的日期不应调用 LLM")
	assert.Contains(t, fc.calls[0].userPrompt, "Alice: Hello")

	require.Len(t, sw.saved, 2)
	assert.Equal(t, entsummary.StatusOk, sw.saved[0].Status)
	assert.Equal(t, "DAY SUMMARY", sw.saved[0].Content)
	assert.Equal(t, entsummary.StatusEmpty, sw.saved[1].Status)
}

func TestSummarizeRange_SingleEmptyDay(t *testing.T) {
	mp := &mockMessageProvider{counts: map[string]int{"Alice": 1, "Bob": 1}}
	sw := &mockSummaryWriter{}
	fc := &mockCompleter{}
	s := newTestSummarizer(fc, mp, sw, smallConfig())

	result, err := s.SummarizeRange(context.Background(), testDate, testDate)

	require.NoError(t, err)
	require.Len(t, result.Summaries, 1)
	assert.Equal(t, StatusEmpty, result.Summaries[0].Status)
	assert.Empty(t, fc.calls)
	require.Len(t, sw.saved, 1)
}

func TestSummarizeRange_FailedDayDoesNotStopOthers(t *testing.T) {
	// 第一天失败写入哨兵文本，第二天照常总结
	mp := &mockMessageProvider{
		counts: map[string]int{"Alice": 2, "Bob": 2},
		byDate: map[string][]*ent.Message{
			"2025-02-01": {{SenderName: "Alice", Text: "day one", SentAt: testDate.Add(time.Hour)}},
			"2025-02-02": {{SenderName: "Bob", Text: "day two", SentAt: testDate.Add(25 * time.Hour)}},
		},
	}
	sw := &mockSummaryWriter{}
	failed := false
	fc := &mockCompleter{}
	fc.fn = func(call completionCall) (string, error) {
		if !failed {
			failed = true
			return "", fmt.Errorf("api down")
		}
		return "SECOND DAY", nil
	}
	s := newTestSummarizer(fc, mp, sw, smallConfig())

	result, err := s.SummarizeRange(context.Background(), testDate, testDate.AddDate(0, 0, 1))

	require.NoError(t, err)
	require.Len(t, result.Summaries, 2)
	assert.Equal(t, StatusFailed, result.Summaries[0].Status)
	assert.Equal(t, "Error: Could not generate direct summary for 2025-02-01.", result.Summaries[0].Text)
	assert.Equal(t, StatusOk, result.Summaries[1].Status)
	assert.Equal(t, "SECOND DAY", result.Summaries[1].Text)
}

func TestSummarizeRange_SenderCountError(t *testing.T) {
	mp := &mockMessageProvider{countsErr: fmt.Errorf("db closed")}
	s := newTestSummarizer(&mockCompleter{}, mp, &mockSummaryWriter{}, smallConfig())

	_, err := s.SummarizeRange(context.Background(), testDate, testDate)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "统计发送者失败")
}

func TestSummarizeRange_FetchError(t *testing.T) {
	mp := &mockMessageProvider{
		counts: map[string]int{"Alice": 1},
		getErr: fmt.Errorf("db closed"),
	}
	s := newTestSummarizer(&mockCompleter{}, mp, &mockSummaryWriter{}, smallConfig())

	_, err := s.SummarizeRange(context.Background(), testDate, testDate)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db closed")
}

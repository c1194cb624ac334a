package summarizer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fachebot/chat-recap-bot/internal/chunker"
	"github.com/fachebot/chat-recap-bot/internal/config"
	"github.com/fachebot/chat-recap-bot/internal/ent"
	entsummary "github.com/fachebot/chat-recap-bot/internal/ent/summary"
	"github.com/fachebot/chat-recap-bot/internal/llm"
	"github.com/fachebot/chat-recap-bot/internal/logger"
	"github.com/fachebot/chat-recap-bot/internal/model"
)

const (
	// directPathSlack 直接总结路径的长度富余系数：
	// 略超目标长度的当日文本不值得分块
	directPathSlack = 1.2
	// combinedLimitRatio 分段摘要合并文本的长度上限系数，
	// 保证合成请求的大小与分块数量无关
	combinedLimitRatio = 1.5
	// truncationMarker 合并文本被截断时追加的标记
	truncationMarker = "\n... (Summaries Truncated)"
	// emptyDaySentinel 当日无可解析消息时的哨兵文本
	emptyDaySentinel = "No parsable messages for this day."

	dateLayout = "2006-01-02"
)

// messageProvider 获取消息（便于测试注入 mock）
type messageProvider interface {
	GetByDate(ctx context.Context, date time.Time) ([]*ent.Message, error)
	GetSenderCounts(ctx context.Context) (map[string]int, error)
}

// summaryWriter 持久化摘要（便于测试注入 mock）
type summaryWriter interface {
	CreateOrUpdate(ctx context.Context, data *model.SummaryData) (*ent.Summary, error)
}

// llmCompleter 调用 LLM 补全（便于测试注入 mock）
type llmCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

type Summarizer struct {
	llmClient    llmCompleter
	messageModel messageProvider
	summaryModel summaryWriter
	cfg          *config.Summary
}

func NewSummarizer(llmClient *llm.Client, messageModel *model.MessageModel, summaryModel *model.SummaryModel, cfg *config.Summary) *Summarizer {
	return &Summarizer{
		llmClient:    llmClient,
		messageModel: messageModel,
		summaryModel: summaryModel,
		cfg:          cfg,
	}
}

// BuildTranscript 将当日消息渲染为 "发送者: 内容" 的逐行文本，按时间顺序
func BuildTranscript(msgs []*ent.Message) string {
	lines := make([]string, len(msgs))
	for i, msg := range msgs {
		lines[i] = fmt.Sprintf("%s: %s", msg.SenderName, msg.Text)
	}
	return strings.Join(lines, "\n")
}

// PrimarySenders 从发送者统计中选出消息最多的两人，用于 prompt 中的归属指引
// 不足两人时用默认名补齐；数量相同按名称排序保证结果稳定
func PrimarySenders(counts map[string]int) (string, string) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	senders := [2]string{"Sender1", "Sender2"}
	for i := 0; i < 2 && i < len(names); i++ {
		senders[i] = names[i]
	}
	if len(names) < 2 {
		logger.Warnf("[Summarizer] 识别到的发送者不足两人，缺失者使用默认名")
	}
	return senders[0], senders[1]
}

// SummarizeDay 生成一天的摘要
// 文本不超过目标长度的 1.2 倍时直接总结，否则分块总结后再合成；
// 任何失败都收敛为固定前缀的哨兵文本，不向上传播错误
func (s *Summarizer) SummarizeDay(ctx context.Context, date time.Time, transcriptText, sender1, sender2 string) (string, Status) {
	dateStr := date.Format(dateLayout)
	total := len(transcriptText)

	if float64(total) <= float64(s.cfg.ChunkTargetChars)*directPathSlack {
		logger.Infof("[Summarizer] %s 尝试直接总结 (长度 %d 字符)", dateStr, total)
		content, err := s.llmClient.Complete(ctx,
			directSystemPrompt(sender1, sender2),
			directUserPrompt(date, transcriptText, sender1, sender2),
			s.cfg.FinalSummaryMaxTokens)
		if err != nil {
			logger.Errorf("[Summarizer] %s 直接总结失败: %v", dateStr, err)
			return fmt.Sprintf("Error: Could not generate direct summary for %s.", dateStr), StatusFailed
		}
		return content, StatusOk
	}

	logger.Infof("[Summarizer] %s 文本过长 (%d 字符)，进入分块总结", dateStr, total)
	chunks := chunker.Split(transcriptText, s.cfg.ChunkTargetChars, s.cfg.ChunkOverlapChars)

	chunkSummaries := make([]string, 0, len(chunks))
	for _, ck := range chunks {
		logger.Debugf("[Summarizer] %s 总结分块 %d (字符 %d, 区间 %d-%d)", dateStr, ck.Ordinal, len(ck.Text), ck.Start, ck.End)
		content, err := s.llmClient.Complete(ctx,
			chunkSystemPrompt(sender1, sender2),
			chunkUserPrompt(date, ck.Text, sender1, sender2),
			s.cfg.ChunkSummaryMaxTokens)
		if err != nil {
			// 单块失败只损失该段，不中断整天
			logger.Warnf("[Summarizer] %s 分块 %d 总结失败: %v", dateStr, ck.Ordinal, err)
			chunkSummaries = append(chunkSummaries, fmt.Sprintf("[Error summarizing chunk %d]", ck.Ordinal))
			continue
		}
		chunkSummaries = append(chunkSummaries, content)
	}

	if len(chunkSummaries) == 0 {
		return fmt.Sprintf("Error: No summaries generated from chunks for %s.", dateStr), StatusFailed
	}

	logger.Infof("[Summarizer] %s 已生成 %d 个分段摘要，开始合成", dateStr, len(chunkSummaries))
	blocks := make([]string, len(chunkSummaries))
	for i, text := range chunkSummaries {
		blocks[i] = fmt.Sprintf("Summary of Segment %d:\n%s", i+1, text)
	}
	combined := strings.Join(blocks, "\n\n")

	limit := int(float64(s.cfg.ChunkTargetChars) * combinedLimitRatio)
	if len(combined) > limit {
		logger.Warnf("[Summarizer] %s 分段摘要合并文本过长 (%d 字符)，截断至 %d", dateStr, len(combined), limit)
		combined = combined[:limit] + truncationMarker
	}

	content, err := s.llmClient.Complete(ctx,
		finalSystemPrompt(sender1, sender2),
		finalUserPrompt(date, combined, sender1, sender2),
		s.cfg.FinalSummaryMaxTokens)
	if err != nil {
		logger.Errorf("[Summarizer] %s 合成总结失败: %v", dateStr, err)
		return fmt.Sprintf("Error: Could not generate final summary from chunks for %s.", dateStr), StatusFailed
	}
	return content, StatusOk
}

// SummarizeRange 逐日生成日期区间（含两端）的摘要
// 每天处理完再进入下一天；当日无消息时写入哨兵文本且不发起 LLM 调用；
// 单日失败不影响其余日期，摘要持久化失败只记录日志
func (s *Summarizer) SummarizeRange(ctx context.Context, startDate, endDate time.Time) (*RangeResult, error) {
	counts, err := s.messageModel.GetSenderCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("统计发送者失败: %w", err)
	}
	sender1, sender2 := PrimarySenders(counts)
	logger.Infof("[Summarizer] 主要发送者: %s 和 %s", sender1, sender2)

	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, endDate.Location())
	logger.Infof("[Summarizer] 开始生成 %s ~ %s 的每日摘要", start.Format(dateLayout), end.Format(dateLayout))

	result := &RangeResult{
		StartDate: start,
		EndDate:   end,
		Sender1:   sender1,
		Sender2:   sender2,
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		msgs, err := s.messageModel.GetByDate(ctx, day)
		if err != nil {
			return result, fmt.Errorf("获取 %s 消息失败: %w", day.Format(dateLayout), err)
		}

		var daySummary DaySummary
		if len(msgs) == 0 {
			logger.Infof("[Summarizer] %s 当日无可解析消息，跳过总结", day.Format(dateLayout))
			daySummary = DaySummary{Date: day, Text: emptyDaySentinel, Status: StatusEmpty}
		} else {
			logger.Infof("[Summarizer] 开始总结 %s (%d 条消息)", day.Format(dateLayout), len(msgs))
			text, status := s.SummarizeDay(ctx, day, BuildTranscript(msgs), sender1, sender2)
			daySummary = DaySummary{Date: day, Text: text, Status: status}
		}

		if _, err := s.summaryModel.CreateOrUpdate(ctx, &model.SummaryData{
			SummaryDate: daySummary.Date,
			Content:     daySummary.Text,
			Status:      entsummary.Status(daySummary.Status),
		}); err != nil {
			logger.Errorf("[Summarizer] 保存 %s 摘要失败: %v", day.Format(dateLayout), err)
		}

		result.Summaries = append(result.Summaries, daySummary)
	}

	return result, nil
}

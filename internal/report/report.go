package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fachebot/chat-recap-bot/internal/summarizer"
)

const (
	dateLayout     = "2006-01-02"
	longDateLayout = "January 02, 2006 (Monday)"
)

type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path 报告输出文件路径
func (w *Writer) Path() string {
	return w.path
}

// Render 渲染汇总报告文本：头部信息加上按时间顺序排列的每日摘要块
func Render(startDate, endDate time.Time, sender1, sender2 string, summaries []summarizer.DaySummary) string {
	var sb strings.Builder

	sb.WriteString("WhatsApp Chat Summaries\n")
	sb.WriteString(fmt.Sprintf("Range: %s to %s\n", startDate.Format(dateLayout), endDate.Format(dateLayout)))
	sb.WriteString(fmt.Sprintf("Generated on: %s\n", time.Now().Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Summarized %d day(s).\n", len(summaries)))
	sb.WriteString(fmt.Sprintf("Primary Senders Considered: %s, %s\n", sender1, sender2))
	sb.WriteString(strings.Repeat("=", 30) + "\n\n")

	for _, s := range summaries {
		header := fmt.Sprintf("Date: %s", s.Date.Format(longDateLayout))
		sb.WriteString(header + "\n")
		sb.WriteString(strings.Repeat("-", len(header)) + "\n")
		sb.WriteString(s.Text + "\n\n\n")
	}

	return sb.String()
}

// Write 将汇总报告写入输出文件，整体覆盖
func (w *Writer) Write(startDate, endDate time.Time, sender1, sender2 string, summaries []summarizer.DaySummary) error {
	content := Render(startDate, endDate, sender1, sender2, summaries)
	if err := os.WriteFile(w.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("写入汇总报告 %s 失败: %w", w.path, err)
	}
	return nil
}

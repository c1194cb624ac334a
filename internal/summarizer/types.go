package summarizer

import "time"

// Status 单日摘要的生成状态
type Status string

const (
	StatusOk     Status = "ok"     // 正常生成
	StatusFailed Status = "failed" // 生成失败，内容为哨兵文本
	StatusEmpty  Status = "empty"  // 当日无可解析消息
)

// DaySummary 单日摘要结果
type DaySummary struct {
	Date   time.Time
	Text   string
	Status Status
}

// RangeResult 日期区间摘要结果，含报告头部所需的信息
type RangeResult struct {
	StartDate time.Time
	EndDate   time.Time
	Sender1   string
	Sender2   string
	Summaries []DaySummary
}

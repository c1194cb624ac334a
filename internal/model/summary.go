package model

import (
	"context"
	"time"

	"github.com/fachebot/chat-recap-bot/internal/ent"
	"github.com/fachebot/chat-recap-bot/internal/ent/summary"
)

type SummaryModel struct {
	client *ent.SummaryClient
}

func NewSummaryModel(client *ent.SummaryClient) *SummaryModel {
	return &SummaryModel{client: client}
}

type SummaryData struct {
	SummaryDate time.Time
	Content     string
	Status      summary.Status
}

// Create 创建摘要
func (m *SummaryModel) Create(ctx context.Context, data *SummaryData) (*ent.Summary, error) {
	return m.client.Create().
		SetSummaryDate(data.SummaryDate).
		SetContent(data.Content).
		SetStatus(data.Status).
		Save(ctx)
}

// getByDate 按摘要日期（同一天）查询一条摘要
func (m *SummaryModel) getByDate(ctx context.Context, summaryDate time.Time) (*ent.Summary, error) {
	startOfDay := time.Date(summaryDate.Year(), summaryDate.Month(), summaryDate.Day(), 0, 0, 0, 0, summaryDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)
	return m.client.Query().
		Where(
			summary.SummaryDateGTE(startOfDay),
			summary.SummaryDateLT(endOfDay),
		).
		First(ctx)
}

// CreateOrUpdate 创建或更新摘要，同一日期不重复插入，已存在则更新内容和状态
func (m *SummaryModel) CreateOrUpdate(ctx context.Context, data *SummaryData) (*ent.Summary, error) {
	existing, err := m.getByDate(ctx, data.SummaryDate)
	if err != nil && !ent.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return m.client.UpdateOneID(existing.ID).
			SetContent(data.Content).
			SetStatus(data.Status).
			Save(ctx)
	}
	return m.Create(ctx, data)
}

// GetByDateRange 查询日期区间内的摘要，按日期升序
func (m *SummaryModel) GetByDateRange(ctx context.Context, startTime, endTime time.Time) ([]*ent.Summary, error) {
	return m.client.Query().
		Where(
			summary.SummaryDateGTE(startTime),
			summary.SummaryDateLT(endTime),
		).
		Order(summary.BySummaryDate()).
		All(ctx)
}

package model

import (
	"context"
	"time"

	"entgo.io/ent/dialect/sql"

	"github.com/fachebot/chat-recap-bot/internal/ent"
	"github.com/fachebot/chat-recap-bot/internal/ent/message"
)

type MessageModel struct {
	client *ent.MessageClient
}

func NewMessageModel(client *ent.MessageClient) *MessageModel {
	return &MessageModel{client: client}
}

type MessageData struct {
	SenderName string
	Text       string
	SentAt     time.Time
}

// Create 创建消息
func (m *MessageModel) Create(ctx context.Context, data *MessageData) (*ent.Message, error) {
	return m.client.Create().
		SetSenderName(data.SenderName).
		SetText(data.Text).
		SetSentAt(data.SentAt).
		Save(ctx)
}

// CreateBatch 批量创建消息
func (m *MessageModel) CreateBatch(ctx context.Context, items []*MessageData) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	builders := make([]*ent.MessageCreate, len(items))
	for i, data := range items {
		builders[i] = m.client.Create().
			SetSenderName(data.SenderName).
			SetText(data.Text).
			SetSentAt(data.SentAt)
	}

	created, err := m.client.CreateBulk(builders...).Save(ctx)
	if err != nil {
		return 0, err
	}
	return len(created), nil
}

// GetByDate 按日期查询当日消息，按发送时间升序
func (m *MessageModel) GetByDate(ctx context.Context, date time.Time) ([]*ent.Message, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	return m.client.Query().
		Where(
			message.SentAtGTE(startOfDay),
			message.SentAtLT(endOfDay),
		).
		Order(message.BySentAt()).
		All(ctx)
}

// GetSenderCounts 统计每个发送者的消息数量
func (m *MessageModel) GetSenderCounts(ctx context.Context) (map[string]int, error) {
	messages, err := m.client.Query().
		Select(message.FieldSenderName).
		All(ctx)
	if err != nil {
		return nil, err
	}

	// 在应用层聚合
	counts := make(map[string]int)
	for _, msg := range messages {
		counts[msg.SenderName]++
	}
	return counts, nil
}

// GetTimeRange 查询最早和最晚的消息时间
func (m *MessageModel) GetTimeRange(ctx context.Context) (first, last time.Time, err error) {
	earliest, err := m.client.Query().
		Order(message.BySentAt()).
		First(ctx)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	latest, err := m.client.Query().
		Order(message.BySentAt(sql.OrderDesc())).
		First(ctx)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return earliest.SentAt, latest.SentAt, nil
}

// Count 统计消息总数
func (m *MessageModel) Count(ctx context.Context) (int, error) {
	return m.client.Query().Count(ctx)
}

// DeleteBefore 删除指定日期之前的消息
func (m *MessageModel) DeleteBefore(ctx context.Context, cutoffDate time.Time) (int, error) {
	return m.client.Delete().
		Where(message.SentAtLT(cutoffDate)).
		Exec(ctx)
}

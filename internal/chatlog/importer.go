package chatlog

import (
	"context"

	"github.com/fachebot/chat-recap-bot/internal/logger"
	"github.com/fachebot/chat-recap-bot/internal/model"
)

// insertBatchSize 单次批量插入的消息数，受 sqlite 变量数限制
const insertBatchSize = 500

// Import 解析聊天记录文件并写入数据库，返回导入的消息数
func Import(ctx context.Context, messageModel *model.MessageModel, path string) (int, error) {
	records, err := ParseFile(path)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		logger.Warnf("[Import] 文件 %s 中没有可解析的消息", path)
		return 0, nil
	}

	total := 0
	for start := 0; start < len(records); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(records) {
			end = len(records)
		}

		batch := make([]*model.MessageData, 0, end-start)
		for _, r := range records[start:end] {
			batch = append(batch, &model.MessageData{
				SenderName: r.SenderName,
				Text:       r.Text,
				SentAt:     r.SentAt,
			})
		}

		n, err := messageModel.CreateBatch(ctx, batch)
		if err != nil {
			return total, err
		}
		total += n
	}

	logger.Infof("[Import] 已从 %s 导入 %d 条消息", path, total)
	return total, nil
}

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fachebot/chat-recap-bot/internal/config"
	"github.com/fachebot/chat-recap-bot/internal/ent/dailyrun"
	"github.com/fachebot/chat-recap-bot/internal/logger"
	"github.com/fachebot/chat-recap-bot/internal/model"
	"github.com/fachebot/chat-recap-bot/internal/report"
	"github.com/fachebot/chat-recap-bot/internal/summarizer"
	"github.com/robfig/cron/v3"
)

// locUTC UTC 标准时间（UTC）
var locUTC = time.UTC

type Scheduler struct {
	cron          *cron.Cron
	summarizer    *summarizer.Summarizer
	reportWriter  *report.Writer
	messageModel  *model.MessageModel
	dailyRunModel *model.DailyRunModel
	config        *config.Summary
	ctx           context.Context
	cancel        context.CancelFunc
	mu            sync.Mutex
}

func NewScheduler(
	summarizerInstance *summarizer.Summarizer,
	reportWriter *report.Writer,
	messageModel *model.MessageModel,
	dailyRunModel *model.DailyRunModel,
	cfg *config.Summary,
) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithLocation(locUTC)),
		summarizer:    summarizerInstance,
		reportWriter:  reportWriter,
		messageModel:  messageModel,
		dailyRunModel: dailyRunModel,
		config:        cfg,
	}
}

// Start 启动调度器
func (s *Scheduler) Start() error {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.mu.Unlock()

	// 注册每日总结任务
	_, err := s.cron.AddFunc(s.config.Cron, s.runDailySummary)
	if err != nil {
		return fmt.Errorf("注册每日总结任务失败: %w", err)
	}

	s.cron.Start()
	logger.Infof("[Scheduler] 调度器已启动，每日总结任务: %s", s.config.Cron)

	// 启动时恢复未完成的运行
	go s.recoverDailyRuns()

	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Infof("[Scheduler] 调度器已停止")
}

// recoverDailyRuns 恢复程序退出时未完成的 DailyRun
func (s *Scheduler) recoverDailyRuns() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	incompleteRuns, err := s.dailyRunModel.GetIncompleteRuns(ctx)
	if err != nil {
		logger.Errorf("[Scheduler] 查询未完成 DailyRun 失败: %v", err)
		return
	}

	for _, run := range incompleteRuns {
		select {
		case <-ctx.Done():
			logger.Infof("[Scheduler] 恢复已取消")
			return
		default:
		}
		logger.Infof("[Scheduler] 恢复未完成 DailyRun: startTime=%s, endTime=%s",
			run.StartTime.Format("2006-01-02"), run.EndTime.Format("2006-01-02"))
		if err := s.executeRangeWithRetry(ctx, run.StartTime, run.EndTime); err != nil {
			logger.Errorf("[Scheduler] 恢复 DailyRun 失败: %v", err)
			_ = s.dailyRunModel.MarkFailed(ctx, run.ID, err.Error())
		} else {
			_ = s.dailyRunModel.MarkCompleted(ctx, run.ID)
		}
	}
}

// runDailySummary 执行每日总结任务（cron 触发），总结昨天的消息
func (s *Scheduler) runDailySummary() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		logger.Infof("[Scheduler] 任务已取消，退出")
		return
	default:
	}

	now := time.Now().In(locUTC)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, locUTC)
	startTime := todayStart.AddDate(0, 0, -1)
	endTime := startTime

	logger.Infof("[Scheduler] 开始执行每日总结任务: %s", startTime.Format("2006-01-02"))

	// 在执行前创建 DailyRun 记录，便于崩溃恢复
	run, err := s.dailyRunModel.GetOrCreate(ctx, startTime, endTime, dailyrun.StatusInProgress)
	if err != nil {
		logger.Errorf("[Scheduler] 获取或创建 DailyRun 失败: %v", err)
		return
	}
	if run.Status == dailyrun.StatusCompleted {
		logger.Infof("[Scheduler] 当日 DailyRun 已完成，跳过")
		return
	}

	if err := s.executeRangeWithRetry(ctx, startTime, endTime); err != nil {
		logger.Errorf("[Scheduler] 每日总结执行失败: %v", err)
		_ = s.dailyRunModel.MarkFailed(ctx, run.ID, err.Error())
		return
	}
	_ = s.dailyRunModel.MarkCompleted(ctx, run.ID)

	s.cleanupMessages(ctx)
	logger.Infof("[Scheduler] 每日总结任务完成")
}

// executeRangeWithRetry 带重试地生成区间摘要并写出报告
// 报告写出失败只记录日志，不视为运行失败（摘要已持久化到数据库）
func (s *Scheduler) executeRangeWithRetry(ctx context.Context, startTime, endTime time.Time) error {
	retryTimes := s.config.RetryTimes
	if retryTimes <= 0 {
		retryTimes = 3
	}
	retryInterval := time.Duration(s.config.RetryInterval) * time.Second
	if retryInterval <= 0 {
		retryInterval = 60 * time.Second
	}

	var result *summarizer.RangeResult
	var err error
	for attempt := 1; attempt <= retryTimes; attempt++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("任务已取消")
		default:
		}

		result, err = s.summarizer.SummarizeRange(ctx, startTime, endTime)
		if err == nil {
			break
		}
		logger.Warnf("[Scheduler] 区间摘要生成失败 (第 %d/%d 次): %v", attempt, retryTimes, err)
		if attempt < retryTimes {
			select {
			case <-ctx.Done():
				return fmt.Errorf("任务已取消")
			case <-time.After(retryInterval):
			}
		}
	}
	if err != nil {
		return fmt.Errorf("区间摘要生成失败，已重试 %d 次: %w", retryTimes, err)
	}

	if err := s.reportWriter.Write(result.StartDate, result.EndDate, result.Sender1, result.Sender2, result.Summaries); err != nil {
		logger.Errorf("[Scheduler] 写出汇总报告失败: %v", err)
	} else {
		logger.Infof("[Scheduler] 汇总报告已写出: %s", s.reportWriter.Path())
	}
	return nil
}

// cleanupMessages 执行消息清理，RetentionDays 为 0 时不清理
func (s *Scheduler) cleanupMessages(ctx context.Context) {
	if s.config.RetentionDays <= 0 {
		return
	}

	cutoffDate := time.Now().In(locUTC).AddDate(0, 0, -s.config.RetentionDays-1)
	cutoffDate = time.Date(cutoffDate.Year(), cutoffDate.Month(), cutoffDate.Day(), 0, 0, 0, 0, locUTC)

	logger.Infof("[Scheduler] 开始清理 %s 之前的消息", cutoffDate.Format("2006-01-02"))
	deleted, err := s.messageModel.DeleteBefore(ctx, cutoffDate)
	if err != nil {
		logger.Errorf("[Scheduler] 清理消息失败: %v", err)
	} else {
		logger.Infof("[Scheduler] 已清理 %d 条消息", deleted)
	}
}

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fachebot/chat-recap-bot/internal/chatlog"
	"github.com/fachebot/chat-recap-bot/internal/config"
	"github.com/fachebot/chat-recap-bot/internal/ent"
	"github.com/fachebot/chat-recap-bot/internal/logger"
	"github.com/fachebot/chat-recap-bot/internal/model"
	"github.com/fachebot/chat-recap-bot/internal/report"
	"github.com/fachebot/chat-recap-bot/internal/scheduler"
	"github.com/fachebot/chat-recap-bot/internal/summarizer"
	"github.com/fachebot/chat-recap-bot/internal/svc"
)

const dateLayout = "2006-01-02"

var (
	configFile = flag.String("f", "etc/config.yaml", "the config file")
	importFile = flag.String("import", "", "要导入的聊天记录文件，留空时首次运行使用 Chat.File")
	startDate  = flag.String("start", "", "总结开始日期 (YYYY-MM-DD)，留空时交互输入")
	endDate    = flag.String("end", "", "总结结束日期 (YYYY-MM-DD)，留空表示与开始日期相同")
	daemonMode = flag.Bool("daemon", false, "以守护模式运行，按 Cron 配置执行每日总结")
)

func main() {
	flag.Parse()

	// 读取配置文件
	c, err := config.LoadFromFile(*configFile)
	if err != nil {
		logger.Fatalf("读取配置文件失败, %s", err)
	}

	// 创建数据目录
	if _, err := os.Stat("data"); os.IsNotExist(err) {
		err := os.Mkdir("data", 0755)
		if err != nil {
			logger.Fatalf("创建数据目录失败, %s", err)
		}
	}

	// 创建服务上下文
	svcCtx := svc.NewServiceContext(c)
	ctx := context.Background()

	// 导入聊天记录：显式指定文件，或消息库为空时使用配置中的文件
	if *importFile != "" {
		if _, err := chatlog.Import(ctx, svcCtx.MessageModel, *importFile); err != nil {
			logger.Fatalf("导入聊天记录失败, %s", err)
		}
	} else if c.Chat.File != "" {
		count, err := svcCtx.MessageModel.Count(ctx)
		if err != nil {
			logger.Fatalf("查询消息数量失败, %s", err)
		}
		if count == 0 {
			if _, err := chatlog.Import(ctx, svcCtx.MessageModel, c.Chat.File); err != nil {
				logger.Fatalf("导入聊天记录失败, %s", err)
			}
		}
	}

	// 创建总结器和报告输出器
	summarizerInstance := summarizer.NewSummarizer(
		svcCtx.LLMClient,
		svcCtx.MessageModel,
		svcCtx.SummaryModel,
		&c.Summary,
	)
	reportWriter := report.NewWriter(c.Summary.OutputFile)

	// 守护模式：创建并启动调度器，等待退出信号
	if *daemonMode {
		schedulerInstance := scheduler.NewScheduler(
			summarizerInstance,
			reportWriter,
			svcCtx.MessageModel,
			svcCtx.DailyRunModel,
			&c.Summary,
		)
		if err := schedulerInstance.Start(); err != nil {
			logger.Fatalf("[Scheduler] 启动调度器失败: %s", err)
		}

		ch := make(chan os.Signal, 2)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch

		// 优雅关闭
		logger.Infof("正在关闭服务...")
		schedulerInstance.Stop()
		svcCtx.Close()
		logger.Infof("服务已停止")
		return
	}

	// 批处理模式：总结指定日期区间并输出报告
	start, end := resolveDateRange(ctx, svcCtx.MessageModel)

	result, err := summarizerInstance.SummarizeRange(ctx, start, end)
	if err != nil {
		svcCtx.Close()
		logger.Fatalf("生成摘要失败, %s", err)
	}

	for _, day := range result.Summaries {
		fmt.Printf("\nDate: %s\n%s\n", day.Date.Format(dateLayout), day.Text)
	}

	if err := reportWriter.Write(result.StartDate, result.EndDate, result.Sender1, result.Sender2, result.Summaries); err != nil {
		logger.Errorf("写出汇总报告失败: %v", err)
	} else {
		logger.Infof("汇总报告已写出: %s", reportWriter.Path())
	}

	svcCtx.Close()
}

// parseDateRange 解析命令行给定的日期区间，结束日期缺省时与开始日期相同
func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("指定了 -end 但缺少 -start")
	}
	start, err := time.ParseInLocation(dateLayout, startStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("开始日期格式无效: %s", startStr)
	}
	end := start
	if endStr != "" {
		end, err = time.ParseInLocation(dateLayout, endStr, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("结束日期格式无效: %s", endStr)
		}
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("开始日期不能晚于结束日期")
	}
	return start, end, nil
}

// resolveDateRange 确定要总结的日期区间
// 命令行指定了日期时直接使用；否则按可用数据范围提示并交互输入
func resolveDateRange(ctx context.Context, messageModel *model.MessageModel) (time.Time, time.Time) {
	if *startDate != "" || *endDate != "" {
		start, end, err := parseDateRange(*startDate, *endDate)
		if err != nil {
			logger.Fatalf("%s", err)
		}
		return start, end
	}

	first, last, err := messageModel.GetTimeRange(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			logger.Fatalf("没有可总结的消息，请先导入聊天记录")
		}
		logger.Fatalf("查询消息时间范围失败, %s", err)
	}
	fmt.Printf("数据范围: %s ~ %s\n", first.Format(dateLayout), last.Format(dateLayout))

	reader := bufio.NewReader(os.Stdin)
	for {
		start, ok := promptDate(reader, "开始日期")
		if !ok {
			logger.Fatalf("未提供开始日期，退出")
		}
		end, ok := promptDate(reader, "结束日期（留空表示单日）")
		if !ok {
			end = start
		}
		if start.After(end) {
			fmt.Println("错误: 开始日期不能晚于结束日期，请重试。")
			continue
		}
		return start, end
	}
}

// promptDate 从标准输入读取一个日期，空输入返回 ok=false
func promptDate(reader *bufio.Reader, label string) (time.Time, bool) {
	for {
		fmt.Printf("%s (YYYY-MM-DD): ", label)
		line, err := reader.ReadString('\n')
		if err != nil {
			return time.Time{}, false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return time.Time{}, false
		}
		t, parseErr := time.ParseInLocation(dateLayout, line, time.Local)
		if parseErr != nil {
			fmt.Println("日期格式无效，请使用 YYYY-MM-DD。")
			continue
		}
		return t, true
	}
}

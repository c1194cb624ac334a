package svc

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/fachebot/chat-recap-bot/internal/config"
	"github.com/fachebot/chat-recap-bot/internal/ent"
	"github.com/fachebot/chat-recap-bot/internal/llm"
	"github.com/fachebot/chat-recap-bot/internal/logger"
	"github.com/fachebot/chat-recap-bot/internal/model"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/net/proxy"
)

type ServiceContext struct {
	Config        *config.Config
	DbClient      *ent.Client
	MessageModel  *model.MessageModel
	SummaryModel  *model.SummaryModel
	DailyRunModel *model.DailyRunModel
	LLMClient     *llm.Client
}

func NewServiceContext(c *config.Config) *ServiceContext {
	// 创建数据库连接
	client, err := ent.Open("sqlite3", "file:data/sqlite.db?mode=rwc&_journal_mode=WAL&_fk=1")
	if err != nil {
		logger.Fatalf("打开数据库失败, %v", err)
	}
	if err := client.Schema.Create(context.Background()); err != nil {
		logger.Fatalf("创建数据库Schema失败, %v", err)
	}

	// 创建SOCKS5代理传输，供 LLM HTTP 客户端使用
	var httpClient *http.Client
	if c.Sock5Proxy.Enable {
		socks5Proxy := fmt.Sprintf("%s:%d", c.Sock5Proxy.Host, c.Sock5Proxy.Port)
		dialer, err := proxy.SOCKS5("tcp", socks5Proxy, nil, proxy.Direct)
		if err != nil {
			logger.Fatalf("创建SOCKS5代理失败, %v", err)
		}

		httpClient = &http.Client{
			Transport: &http.Transport{
				Dial:            dialer.Dial,
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}

	svcCtx := &ServiceContext{
		Config:        c,
		DbClient:      client,
		MessageModel:  model.NewMessageModel(client.Message),
		SummaryModel:  model.NewSummaryModel(client.Summary),
		DailyRunModel: model.NewDailyRunModel(client.DailyRun),
		LLMClient:     llm.NewClient(&c.LLM, httpClient),
	}
	return svcCtx
}

func (svcCtx *ServiceContext) Close() {
	if err := svcCtx.DbClient.Close(); err != nil {
		logger.Errorf("关闭数据库失败, %v", err)
	}
}

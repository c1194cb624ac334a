package chatlog

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"
)

// linePattern WhatsApp 导出格式的消息头，如 "12/31/23, 21:05 - 张三: 你好"
var linePattern = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}), (\d{1,2}:\d{2}) - (.*?): (.*)$`)

// Record 一条解析后的聊天消息
type Record struct {
	SentAt     time.Time
	SenderName string
	Text       string
}

// parseHeader 解析消息头行，返回时间、发送者和首行内容
// 日期优先按 月/日/年 解析，失败后回退 日/月/年；支持两位和四位年份
func parseHeader(line string) (t time.Time, sender, text string, ok bool) {
	groups := linePattern.FindStringSubmatch(line)
	if groups == nil {
		return time.Time{}, "", "", false
	}
	dateStr, timeStr := groups[1], groups[2]

	yearLayout := "06"
	parts := strings.Split(dateStr, "/")
	if len(parts[len(parts)-1]) == 4 {
		yearLayout = "2006"
	}

	value := dateStr + " " + timeStr
	t, err := time.ParseInLocation("1/2/"+yearLayout+" 15:04", value, time.Local)
	if err != nil {
		t, err = time.ParseInLocation("2/1/"+yearLayout+" 15:04", value, time.Local)
		if err != nil {
			return time.Time{}, "", "", false
		}
	}

	return t, strings.TrimSpace(groups[3]), strings.TrimSpace(groups[4]), true
}

// ParseFile 解析 WhatsApp 导出的聊天记录文件
// 非消息头的行视为上一条消息的续行，用换行拼接；结果按时间稳定排序
func ParseFile(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开聊天记录文件失败: %w", err)
	}
	defer f.Close()

	var records []*Record
	var current *Record
	var parts []string

	flush := func() {
		if current != nil && len(parts) > 0 {
			current.Text = strings.Join(parts, "\n")
			records = append(records, current)
		}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if sentAt, sender, first, ok := parseHeader(line); ok {
			flush()
			current = &Record{SentAt: sentAt, SenderName: sender}
			parts = []string{first}
			continue
		}

		// 消息头之前的无法解析行直接跳过
		if current != nil {
			parts = append(parts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("读取聊天记录文件失败: %w", err)
	}
	flush()

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SentAt.Before(records[j].SentAt)
	})
	return records, nil
}

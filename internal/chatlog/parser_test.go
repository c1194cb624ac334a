package chatlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempChat(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		sentAt time.Time
		sender string
		text   string
		ok     bool
	}{
		{
			name:   "月/日/两位年",
			line:   "1/2/23, 14:05 - Alice: Hello",
			sentAt: time.Date(2023, 1, 2, 14, 5, 0, 0, time.Local),
			sender: "Alice",
			text:   "Hello",
			ok:     true,
		},
		{
			name:   "四位年份",
			line:   "1/2/2023, 9:05 - Bob: Hi",
			sentAt: time.Date(2023, 1, 2, 9, 5, 0, 0, time.Local),
			sender: "Bob",
			text:   "Hi",
			ok:     true,
		},
		{
			name:   "日/月格式回退",
			line:   "25/12/23, 10:00 - Alice: Merry Christmas",
			sentAt: time.Date(2023, 12, 25, 10, 0, 0, 0, time.Local),
			sender: "Alice",
			text:   "Merry Christmas",
			ok:     true,
		},
		{
			name:   "消息内容包含冒号",
			line:   "1/2/23, 14:05 - Alice: see: https://example.com",
			sentAt: time.Date(2023, 1, 2, 14, 5, 0, 0, time.Local),
			sender: "Alice",
			text:   "see: https://example.com",
			ok:     true,
		},
		{
			name: "没有发送者的系统消息",
			line: "1/2/23, 14:05 - Messages are end-to-end encrypted",
			ok:   false,
		},
		{
			name: "普通文本行",
			line: "just a continuation line",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentAt, sender, text, ok := parseHeader(tt.line)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.True(t, tt.sentAt.Equal(sentAt), "期望 %s, 实际 %s", tt.sentAt, sentAt)
			assert.Equal(t, tt.sender, sender)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestParseFile_Basic(t *testing.T) {
	path := writeTempChat(t, `1/2/23, 14:05 - Alice: Hello
1/2/23, 14:06 - Bob: Hi there
`)
	records, err := ParseFile(path)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alice", records[0].SenderName)
	assert.Equal(t, "Hello", records[0].Text)
	assert.Equal(t, "Bob", records[1].SenderName)
	assert.Equal(t, "Hi there", records[1].Text)
}

func TestParseFile_MultilineMessage(t *testing.T) {
	// 非消息头的行并入上一条消息
	path := writeTempChat(t, `1/2/23, 14:05 - Alice: first line
second line
third line
1/2/23, 14:06 - Bob: next message
`)
	records, err := ParseFile(path)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "first line\nsecond line\nthird line", records[0].Text)
	assert.Equal(t, "next message", records[1].Text)
}

func TestParseFile_SkipsLeadingJunk(t *testing.T) {
	// 第一条消息头之前的行（如加密提示）直接丢弃
	path := writeTempChat(t, `1/2/23, 14:00 - Messages are end-to-end encrypted
some random preamble
1/2/23, 14:05 - Alice: Hello
`)
	records, err := ParseFile(path)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Alice", records[0].SenderName)
	assert.Equal(t, "Hello", records[0].Text)
}

func TestParseFile_SortsByTime(t *testing.T) {
	path := writeTempChat(t, `1/3/23, 10:00 - Bob: later
1/2/23, 14:05 - Alice: earlier
`)
	records, err := ParseFile(path)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alice", records[0].SenderName)
	assert.Equal(t, "Bob", records[1].SenderName)
	assert.True(t, records[0].SentAt.Before(records[1].SentAt))
}

func TestParseFile_SkipsBlankLines(t *testing.T) {
	path := writeTempChat(t, `1/2/23, 14:05 - Alice: Hello

1/2/23, 14:06 - Bob: Hi
`)
	records, err := ParseFile(path)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Hello", records[0].Text)
}

func TestParseFile_NotExist(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplit_InvalidArgs(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		targetLen  int
		overlapLen int
	}{
		{"空文本", "", 100, 10},
		{"目标长度为0", "abc", 0, 10},
		{"重叠长度为0", "abc", 100, 0},
		{"重叠不小于目标", "abc", 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Split(tt.text, tt.targetLen, tt.overlapLen))
		})
	}
}

func TestSplit_ShortText(t *testing.T) {
	chunks := Split("hello world", 100, 10)
	assert.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0].Text)
	assert.Equal(t, 1, chunks[0].Ordinal)
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, 11, chunks[0].End)
}

func TestSplit_ThreeSegments(t *testing.T) {
	// 25000 字符、目标 10000、重叠 500 应切出 3 段
	text := strings.Repeat("a", 25000)
	chunks := Split(text, 10000, 500)

	assert.Len(t, chunks, 3)
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, 10000, chunks[0].End)
	assert.Equal(t, 10000, chunks[1].Start)
	assert.Equal(t, 20000, chunks[1].End)
	assert.Equal(t, 20000, chunks[2].Start)
	assert.Equal(t, 25000, chunks[2].End)
	for i, ck := range chunks {
		assert.Equal(t, i+1, ck.Ordinal)
	}
}

func TestSplit_CoversEverything(t *testing.T) {
	// 带换行的长文本：所有区间拼起来必须覆盖全文，不漏任何字符
	var sb strings.Builder
	for i := 0; sb.Len() < 3000; i++ {
		sb.WriteString(strings.Repeat("x", 37))
		sb.WriteByte('\n')
	}
	text := strings.TrimSuffix(sb.String(), "\n")

	chunks := Split(text, 250, 50)
	assert.NotEmpty(t, chunks)
	assert.Equal(t, 0, chunks[0].Start)
	for i := 1; i < len(chunks); i++ {
		assert.LessOrEqual(t, chunks[i].Start, chunks[i-1].End, "区间之间不能有缺口")
	}
	assert.Equal(t, len(text), chunks[len(chunks)-1].End)
}

func TestSplit_PrefersNewlineBoundary(t *testing.T) {
	// 换行落在目标长度的 0.7 倍之后时，段在换行处结束
	text := strings.Repeat("a", 99) + "\n" + strings.Repeat("b", 200)
	chunks := Split(text, 100, 10)

	assert.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, 99, chunks[0].End)
	assert.Equal(t, strings.Repeat("a", 99), chunks[0].Text)
}

func TestSplit_IgnoresEarlyNewline(t *testing.T) {
	// 换行离游标太近（不足 0.7 倍目标长度）时放弃按行切分，取整段
	text := strings.Repeat("a", 50) + "\n" + strings.Repeat("b", 149)
	chunks := Split(text, 100, 10)

	assert.NotEmpty(t, chunks)
	assert.Equal(t, 100, chunks[0].End)
	assert.Contains(t, chunks[0].Text, "\n")
}

func TestSplit_SkipsWhitespaceOnlySegment(t *testing.T) {
	// 中间的纯空白段不输出，但序号保持连续、覆盖不留缺口
	text := strings.Repeat("a", 100) + strings.Repeat(" ", 100) + strings.Repeat("b", 100)
	chunks := Split(text, 100, 10)

	assert.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].Ordinal)
	assert.Equal(t, 2, chunks[1].Ordinal)
	assert.Equal(t, strings.Repeat("a", 100), chunks[0].Text)
	assert.Equal(t, strings.Repeat("b", 100), chunks[1].Text)
	assert.Equal(t, 200, chunks[1].Start)
	assert.Equal(t, 300, chunks[1].End)
}

func TestSplit_TerminatesOnWhitespaceOnlyText(t *testing.T) {
	// 全空白文本：不输出任何段，也不能死循环
	chunks := Split(strings.Repeat(" ", 250), 100, 10)
	assert.Empty(t, chunks)
}

func TestSplit_TerminatesOnSparseNewlines(t *testing.T) {
	// 换行稀疏、反复回退到强切分时仍要在有限步数内结束
	text := strings.Repeat("a", 9999) + "\n" + strings.Repeat("b", 40000)
	targetLen, overlapLen := 1000, 100
	chunks := Split(text, targetLen, overlapLen)

	maxIterations := len(text)/(targetLen-overlapLen) + 2
	assert.NotEmpty(t, chunks)
	assert.LessOrEqual(t, len(chunks), maxIterations)
	assert.Equal(t, len(text), chunks[len(chunks)-1].End)
}

func TestSplit_KeepsRuneBoundaries(t *testing.T) {
	// 强制切分时不能把一个多字节字符劈在两个段里
	text := strings.Repeat("世", 100) // 300 字节，目标 100 不落在字符边界上
	chunks := Split(text, 100, 10)

	assert.NotEmpty(t, chunks)
	for _, ck := range chunks {
		assert.True(t, utf8.ValidString(ck.Text), "段 %d 含有被劈开的字符", ck.Ordinal)
		assert.Zero(t, ck.Start%3, "段 %d 的起点不在字符边界", ck.Ordinal)
	}
	assert.Equal(t, len(text), chunks[len(chunks)-1].End)
	var joined strings.Builder
	for _, ck := range chunks {
		joined.WriteString(ck.Text)
	}
	assert.Equal(t, text, joined.String())
}

func TestSplit_TrimsChunkText(t *testing.T) {
	text := "  hello  \n" + strings.Repeat("x", 120)
	chunks := Split(text, 100, 10)
	assert.NotEmpty(t, chunks)
	for _, ck := range chunks {
		assert.Equal(t, strings.TrimSpace(ck.Text), ck.Text)
	}
}

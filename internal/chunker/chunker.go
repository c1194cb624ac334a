package chunker

import (
	"strings"
	"unicode/utf8"
)

// minBoundaryRatio 换行边界至少要落在目标长度的这个比例之后，
// 否则放弃按行切分，避免产生过小的块
const minBoundaryRatio = 0.7

// Chunk 一段连续的文本切片
// Start/End 为该块在原文中去除空白前的区间 [Start, End)
type Chunk struct {
	Text    string
	Ordinal int
	Start   int
	End     int
}

// Split 将长文本切分为若干段
// 游标从 0 开始，每次取 targetLen 个字符作为候选终点，在 [cursor, end] 内
// 向后查找最近的换行；换行距游标不足 0.7×targetLen 时放弃按行切分，
// 切分点落在多字节字符中间时回退到字符边界。
// 去除空白后为空的段不输出，但游标照常前进；当仍有剩余文本时游标推进到
// 本段实际终点，保证既不会死循环也不会漏掉字符。
func Split(text string, targetLen, overlapLen int) []Chunk {
	if text == "" || targetLen <= 0 || overlapLen <= 0 || targetLen <= overlapLen {
		return nil
	}

	total := len(text)
	minBoundary := float64(targetLen) * minBoundaryRatio

	var chunks []Chunk
	cursor := 0
	for cursor < total {
		end := cursor + targetLen
		if end > total {
			end = total
		}

		// 在 [cursor, end] 内从后向前找换行（含 end 位置本身）
		searchEnd := end + 1
		if searchEnd > total {
			searchEnd = total
		}
		actualEnd := end
		if idx := strings.LastIndexByte(text[cursor:searchEnd], '\n'); idx >= 0 && float64(idx) >= minBoundary {
			actualEnd = cursor + idx
		}

		// 强制切分点可能落在多字节字符中间，回退到字符边界
		for actualEnd > cursor && actualEnd < total && !utf8.RuneStart(text[actualEnd]) {
			actualEnd--
		}
		if actualEnd == cursor {
			actualEnd = end
		}

		chunkText := strings.TrimSpace(text[cursor:actualEnd])
		if chunkText == "" {
			cursor = actualEnd
			continue
		}

		chunks = append(chunks, Chunk{
			Text:    chunkText,
			Ordinal: len(chunks) + 1,
			Start:   cursor,
			End:     actualEnd,
		})

		next := cursor + targetLen - overlapLen
		if next < actualEnd {
			next = actualEnd
		}
		// 只要还有剩余文本，游标就收在实际终点，保证覆盖不留缺口
		if next >= actualEnd && actualEnd < total {
			next = actualEnd
		}
		cursor = next
	}

	return chunks
}

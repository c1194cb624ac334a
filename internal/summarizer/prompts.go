package summarizer

import (
	"fmt"
	"time"
)

// promptDateLayout prompt 中使用的长日期格式，如 "May 05, 2025"
const promptDateLayout = "January 02, 2006"

// directSystemPrompt 直接总结路径的 system prompt
func directSystemPrompt(sender1, sender2 string) string {
	return fmt.Sprintf(
		"You are an expert assistant that summarizes chat conversations. "+
			"Pay close attention to attributing statements to the correct speaker, especially distinguishing between '%s' and '%s'. "+
			"The chat transcript is for a single day.",
		sender1, sender2)
}

// directUserPrompt 直接总结路径的 user prompt，嵌入完整当日文本
func directUserPrompt(date time.Time, transcript, sender1, sender2 string) string {
	return fmt.Sprintf(
		"The following is a transcript of WhatsApp messages primarily between %s and %s from %s. "+
			"Please provide a concise summary of the main topics they discussed. "+
			"It is crucial to correctly attribute statements, questions, or opinions to the specific person (%s or %s) who expressed them. "+
			"Focus on key events, decisions, or significant information shared.\n\n"+
			"Transcript (each line starts with the sender's name followed by a colon):\n"+
			"----------\n"+
			"%s\n"+
			"----------\n"+
			"Concise Summary of the Day (strictly attributing actions and words to either %s or %s based on the transcript):",
		sender1, sender2, date.Format(promptDateLayout), sender1, sender2, transcript, sender1, sender2)
}

// chunkSystemPrompt 单个分块的 system prompt
func chunkSystemPrompt(sender1, sender2 string) string {
	return fmt.Sprintf(
		"You are an assistant that summarizes parts of a day's chat conversation. "+
			"Focus on key information, decisions, and questions in this specific segment. "+
			"Mention who ('%s' or '%s') said what. This is one part of a larger conversation.",
		sender1, sender2)
}

// chunkUserPrompt 单个分块的 user prompt，嵌入该分块文本
func chunkUserPrompt(date time.Time, chunkText, sender1, sender2 string) string {
	return fmt.Sprintf(
		"This is a segment of a WhatsApp conversation between %s and %s from %s. "+
			"Please summarize the key points discussed in THIS SEGMENT ONLY. Be concise.\n\n"+
			"Chat Segment:\n"+
			"------------\n"+
			"%s\n"+
			"------------\n"+
			"Summary of this Segment:",
		sender1, sender2, date.Format(promptDateLayout), chunkText)
}

// finalSystemPrompt 合成阶段的 system prompt
func finalSystemPrompt(sender1, sender2 string) string {
	return fmt.Sprintf(
		"You are an expert summarizer. You will be given a series of summaries, each covering a segment of a day's WhatsApp conversation between %s and %s. "+
			"Your task is to synthesize these segment summaries into a single, coherent, and concise overview of the entire day's discussion. "+
			"Ensure to attribute key points to %s or %s. Highlight the most important topics, decisions, and outcomes.",
		sender1, sender2, sender1, sender2)
}

// finalUserPrompt 合成阶段的 user prompt，嵌入合并（可能已截断）的分段摘要
func finalUserPrompt(date time.Time, combined, sender1, sender2 string) string {
	return fmt.Sprintf(
		"The following are summaries of consecutive segments from a WhatsApp conversation that occurred on %s between %s and %s. "+
			"Please synthesize these into a single, well-organized, and concise summary for the entire day. "+
			"Attribute statements to the correct person.\n\n"+
			"Segment Summaries:\n"+
			"------------------\n"+
			"%s\n"+
			"------------------\n"+
			"Overall Concise Summary of the Day:",
		date.Format(promptDateLayout), sender1, sender2, combined)
}

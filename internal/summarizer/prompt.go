package summarizer

import "strings"

const systemPrompt = `You are an expert meeting summarizer. Generate a structured summary based on the user's custom instructions. Always maintain professional tone and ensure the summary is well-organized.`

// SystemPrompt returns the fixed role instruction sent with every request
func SystemPrompt() string {
	return systemPrompt
}

// UserPrompt interpolates the trimmed transcript and instruction
func UserPrompt(transcript, instruction string) string {
	b := strings.Builder{}
	b.WriteString("Transcript: ")
	b.WriteString(strings.TrimSpace(transcript))
	b.WriteString("\n\nCustom Instructions: ")
	b.WriteString(strings.TrimSpace(instruction))
	b.WriteString("\n\nPlease generate a structured summary following the custom instructions.")
	return b.String()
}

package ai

import (
	"fmt"
	"strings"
)

const AnalysisSystemPrompt = `You write minutes of meeting from transcripts. Answer in Markdown only.`

const analysisPromptTemplate = `Analyze the meeting transcript below and answer with exactly these sections.

## Summary
Three to six sentences on what was discussed and decided.

## Task Assignment
A Markdown table with the columns | Task | Owner | Deadline |.
One row per action item. Use "Not Mentioned" when no deadline was said.

## Conflict Detection
One JSON object per line, no list brackets, with the keys
"Name of speaker1", "Name of speaker2", "conflict type (Orig_type)" and "conflict description".
The conflict type is one of negative, neutral or positive.
Leave the section empty when nobody disagreed.

Transcript:
%s
`

// BuildAnalysisPrompt renders the user prompt for a transcript.
func BuildAnalysisPrompt(transcript string) string {
	return fmt.Sprintf(analysisPromptTemplate, strings.TrimSpace(transcript))
}

// StripCodeFence removes a Markdown code fence wrapped around the whole
// response, if any.
func StripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if nl := strings.IndexByte(content, '\n'); nl >= 0 && !strings.Contains(content[:nl], " ") {
		content = content[nl+1:]
	}
	if idx := strings.LastIndex(content, "```"); idx != -1 {
		content = content[:idx]
	}
	return strings.TrimSpace(content)
}

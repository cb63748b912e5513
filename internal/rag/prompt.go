package rag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/akolanti/GoPDFChat/internal/domain/chatModel"
)

const (
	// FallbackSentence is what the model is told to answer when the document does not cover the question.
	FallbackSentence = "I couldn't find that information in the document."
	// NoHistoryPlaceholder stands in for the history section of the first turn.
	NoHistoryPlaceholder = "No history yet"
)

const promptTemplate = `
      You are an AI assistant helping a user with questions about a PDF document.
      The PDF content is provided below. Please answer the user's question based on this content.
      If the answer cannot be found in the PDF, say "` + FallbackSentence + `"

      PDF Content:
      %s

      Conversation History:
      %s

      User Question: %s

      Please provide a helpful and concise answer:
    `

// BuildPrompt renders the single prompt sent to the model for one turn.
// The output is deterministic for the same inputs.
func BuildPrompt(documentText string, history []chatModel.Turn, question string) string {
	return fmt.Sprintf(promptTemplate, documentText, renderHistory(history), question)
}

func renderHistory(history []chatModel.Turn) string {
	if len(history) == 0 {
		return NoHistoryPlaceholder
	}
	lines := make([]string, 0, len(history))
	for _, t := range history {
		lines = append(lines, string(t.Role)+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}

// truncateRunes cuts text to at most limit runes. A limit <= 0 keeps the text as is.
func truncateRunes(text string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text, false
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i], true
		}
		count++
	}
	return text, false
}

package discussion

import (
	"strings"

	"github.com/polyarguminds/polyargu/internal/domain"
)

// composePrompt builds the full oracle prompt: the agent's system instruction
// block (already including any phase instruction or retry rebuke), the full
// message history rendered as "sender: content" lines, and the trailing
// response trigger. History is never filtered or windowed here; size limits
// are the oracle transport's concern.
func composePrompt(systemPrompt string, history []*domain.Message) string {
	var b strings.Builder

	b.WriteString("### SYSTEM INSTRUCTION ###\n")
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")

	b.WriteString("### CONVERSATION HISTORY ###\n")
	for _, m := range history {
		b.WriteString(m.SenderName)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}

	b.WriteString("\n### YOUR RESPONSE ###\n")
	b.WriteString("Response:")

	return b.String()
}

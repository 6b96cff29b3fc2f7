package discussion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polyarguminds/polyargu/internal/domain"
)

func TestComposePrompt(t *testing.T) {
	history := []*domain.Message{
		{SenderName: "You", Content: "please begin"},
		{SenderName: "ProBot", Content: "my claim stands"},
	}

	got := composePrompt("You are the PRO debater.", history)

	want := "### SYSTEM INSTRUCTION ###\n" +
		"You are the PRO debater.\n\n" +
		"### CONVERSATION HISTORY ###\n" +
		"You: please begin\n" +
		"ProBot: my claim stands\n" +
		"\n### YOUR RESPONSE ###\n" +
		"Response:"

	assert.Equal(t, want, got)
}

func TestComposePromptEmptyHistory(t *testing.T) {
	got := composePrompt("system text", nil)

	assert.Contains(t, got, "### SYSTEM INSTRUCTION ###\nsystem text")
	assert.Contains(t, got, "### CONVERSATION HISTORY ###\n\n### YOUR RESPONSE ###\nResponse:")
}

package discussion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polyarguminds/polyargu/internal/domain"
)

func msgFrom(sender, content string) *domain.Message {
	return &domain.Message{SenderName: sender, Content: content}
}

func TestIsRepetitiveThreshold(t *testing.T) {
	history := []*domain.Message{msgFrom("ProBot", "alpha beta gamma delta")}

	// Jaccard 3/5 = 0.6 is not strictly above the threshold.
	assert.False(t, isRepetitive("alpha beta gamma epsilon", history, "ProBot"))

	// Jaccard 3/4 = 0.75 must be flagged.
	assert.True(t, isRepetitive("alpha beta gamma", history, "ProBot"))
}

func TestIsRepetitiveOnlyChecksOwnMessages(t *testing.T) {
	history := []*domain.Message{
		msgFrom("ConBot", "alpha beta gamma delta"),
	}

	assert.False(t, isRepetitive("alpha beta gamma delta", history, "ProBot"))
	assert.True(t, isRepetitive("alpha beta gamma delta", history, "ConBot"))
}

func TestIsRepetitiveWindowIsThree(t *testing.T) {
	// The identical message is the agent's 4th-most-recent, outside the window.
	history := []*domain.Message{
		msgFrom("ProBot", "alpha beta gamma delta"),
		msgFrom("ProBot", "one two three four"),
		msgFrom("ProBot", "five six seven eight"),
		msgFrom("ProBot", "nine ten eleven twelve"),
	}

	assert.False(t, isRepetitive("alpha beta gamma delta", history, "ProBot"))
}

func TestIsRepetitiveNormalizesTokens(t *testing.T) {
	history := []*domain.Message{msgFrom("ProBot", "Alpha ALPHA beta")}

	// Lowercasing and duplicate collapse make these identical sets.
	assert.True(t, isRepetitive("alpha beta BETA", history, "ProBot"))
}

func TestIsRepetitiveEmptyTexts(t *testing.T) {
	history := []*domain.Message{msgFrom("ProBot", "")}

	// Empty union pairs are skipped, never flagged.
	assert.False(t, isRepetitive("", history, "ProBot"))
	assert.False(t, isRepetitive("   ", history, "ProBot"))
}

func TestIsRepetitiveNoHistory(t *testing.T) {
	assert.False(t, isRepetitive("anything at all", nil, "ProBot"))
}

func TestJaccard(t *testing.T) {
	a := tokenSet("a b c d")
	b := tokenSet("a b c e")
	assert.InDelta(t, 0.6, jaccard(a, b), 1e-9)

	assert.Equal(t, 0.0, jaccard(tokenSet(""), tokenSet("")))
	assert.Equal(t, 1.0, jaccard(tokenSet("x y"), tokenSet("y x")))
}

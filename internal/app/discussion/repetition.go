package discussion

import (
	"strings"

	"github.com/polyarguminds/polyargu/internal/domain"
)

const (
	// similarityThreshold is the Jaccard similarity above which a candidate
	// response counts as a repeat. Strictly above: 0.6 exactly passes.
	similarityThreshold = 0.6

	// recentWindow is how many of the agent's own prior messages a candidate
	// is compared against.
	recentWindow = 3

	// maxRegenerations bounds the retry loop. The candidate produced by the
	// last retry is accepted unconditionally.
	maxRegenerations = 2
)

const repetitionRebuke = "SYSTEM ALERT: Your previous response was rejected. It was too similar to your previous turns. You MUST provide a NOVEL argument or a different perspective/insight. Do not repeat yourself."

// isRepetitive reports whether candidate is a near-duplicate of any of the
// sender's most recent messages in history.
func isRepetitive(candidate string, history []*domain.Message, senderName string) bool {
	var own []*domain.Message
	for _, m := range history {
		if m.SenderName == senderName {
			own = append(own, m)
		}
	}
	if len(own) == 0 {
		return false
	}
	if len(own) > recentWindow {
		own = own[len(own)-recentWindow:]
	}

	candidateTokens := tokenSet(candidate)
	for _, m := range own {
		if jaccard(candidateTokens, tokenSet(m.Content)) > similarityThreshold {
			return true
		}
	}
	return false
}

// tokenSet lowercases the text and collapses it into a set of
// whitespace-separated tokens.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		set[tok] = struct{}{}
	}
	return set
}

// jaccard computes |intersection| / |union| of two token sets. An empty
// union yields 0 so that two blank texts never count as repeats.
func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

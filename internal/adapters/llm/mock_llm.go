package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/polyarguminds/polyargu/internal/domain"
)

// MockLLM is a deterministic oracle for local development and tests. It
// cycles through canned texts with disjoint vocabularies so consecutive turns
// of the same agent never trip the repetition guard.
type MockLLM struct {
	mu    sync.Mutex
	calls int
}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

var mockTexts = []string{
	"Opening claim: the premise rests on clearly defined terms and a single guiding principle.",
	"Consider the documented precedent from recent industry deployments as concrete supporting evidence.",
	"A creative alternative would combine modular design with incremental rollout and feedback loops.",
	"The counterpoint overlooks measurable constraints around cost, adoption timelines, and tooling maturity.",
	"Synthesis: weigh feasibility against ambition, then commit to the smallest reversible step.",
	"Verdict framing: strongest reasoning wins on logic, persuasion, and use of specifics.",
}

func (m *MockLLM) Generate(ctx context.Context, prompt string, role domain.AgentRole) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	text := mockTexts[m.calls%len(mockTexts)]
	m.calls++
	return fmt.Sprintf("[%s] %s", role, text), nil
}

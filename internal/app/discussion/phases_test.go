package discussion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstructionForTurn(t *testing.T) {
	tests := []struct {
		name       string
		turnNumber int
		maxTurns   int
		want       string
	}{
		{"first turn is opening", 1, 20, instructionOpening},
		{"turn on the lower cutoff is opening", 5, 20, instructionOpening},
		{"turn past the lower cutoff is evidence", 6, 20, instructionEvidence},
		{"turn on the upper cutoff is evidence", 15, 20, instructionEvidence},
		{"turn past the upper cutoff is closing", 16, 20, instructionClosing},
		{"last turn is closing", 20, 20, instructionClosing},

		// maxTurns not a multiple of 4: fractional cutoffs 2.5 and 7.5
		{"uneven budget opening", 2, 10, instructionOpening},
		{"uneven budget evidence start", 3, 10, instructionEvidence},
		{"uneven budget evidence end", 7, 10, instructionEvidence},
		{"uneven budget closing", 8, 10, instructionClosing},

		// tiny budget: cutoffs 0.5 and 1.5
		{"two-turn budget first", 1, 2, instructionEvidence},
		{"two-turn budget second", 2, 2, instructionClosing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, instructionForTurn(tt.turnNumber, tt.maxTurns))
		})
	}
}

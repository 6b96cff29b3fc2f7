package discussion

const instructionOpening = "SYSTEM INSTRUCTION: Define your terms clearly and state your core ethical or logical premise. Do not get bogged down in details yet."

const instructionEvidence = "SYSTEM INSTRUCTION: You MUST introduce a concrete real-world example, case study, or historical precedent to support your claim. Abstract philosophy is NOT allowed in this turn."

const instructionClosing = "SYSTEM INSTRUCTION: Identify a specific logical fallacy or factual error in the opponent's last message. direct your entire argument to dismantling that specific point. Do NOT just repeat your previous claims."

// instructionForTurn maps a turn index to a rhetorical phase instruction:
// opening for the first quarter of the budget, evidence up to three quarters,
// closing/clash after that. The integer index is compared against fractional
// cutoffs with non-strict inequality, so phase widths are uneven whenever
// maxTurns is not a multiple of 4.
func instructionForTurn(turnNumber, maxTurns int) string {
	total := float64(maxTurns)
	switch {
	case float64(turnNumber) <= total*0.25:
		return instructionOpening
	case float64(turnNumber) <= total*0.75:
		return instructionEvidence
	default:
		return instructionClosing
	}
}

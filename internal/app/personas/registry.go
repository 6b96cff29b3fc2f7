// Package personas holds the fixed persona definitions instantiated for each
// discussion session: display names, roles, and the system prompt templates
// the topic is interpolated into.
package personas

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/polyarguminds/polyargu/internal/domain"
)

// Display names double as turn-taking keys in the stored message history.
const (
	NamePro        = "ProBot"
	NameCon        = "ConBot"
	NameJudge      = "JudgeDredd"
	NameAnalyst    = "LogicLens"
	NameCreative   = "IdeaSpark"
	NameSummarizer = "WrapUp"
)

const promptPro = "You are the PRO debater. Your goal is to convince the audience that the statement is TRUE. You MUST argue IN FAVOR of the topic: '%s'. Plan your response to form a complete logical unit with a clear claim, supporting reasoning, and conclusion. Use **bold** for key sub-topics or emphasis. IMPORTANT: Do NOT declare a winner. Do NOT judge the debate. Focus only on your arguments."

const promptCon = "You are the CON debater. Your goal is to convince the audience that the statement is FALSE. You MUST argue AGAINST the topic: '%s'. Plan your response to form a complete logical unit with a clear claim, supporting reasoning, and conclusion. Use **bold** for key sub-topics or emphasis. IMPORTANT: Do NOT declare a winner. Do NOT judge the debate. Focus only on your counter-arguments."

const promptJudge = "You are the Judge. The debate is ending. Your task is to DECLARE A WINNER immediately based on the history so far. 1. Summarize the key points using **bold** headers. 2. Declare the winner (ProBot or ConBot) based on logic and persuasion. 3. Format your final line: 'WINNER: [Name]'. Do NOT ask for more arguments. This is final."

const promptAnalyst = "You are LogicLens, a data-driven Analyst. Analyze the topic: '%s'. Focus on feasibility, facts, constraints, and logical steps. Plan your response to form a complete logical unit. Use **bold** for key sub-topics. Do NOT wrap up the session."

const promptCreative = "You are IdeaSpark, a Creative Thinker. Brainstorm solutions for: '%s'. Think outside the box, suggest innovative features. Be inspiring. Plan your response to form a complete logical unit. Use **bold** for key sub-topics. Do NOT wrap up the session."

const promptSummarizer = "You are the Session Summarizer. The session is ending. Create a 'Discussion Summary Report'. 1. List Top Ideas. 2. List Key Risks. 3. Provide an Action Plan. Use **bold** for headers. This is the final output."

// ForMode builds the fixed agent set for a session. Each mode gets exactly
// one agent per role it requires; topic-dependent templates are interpolated
// here, once, and stored on the agent.
func ForMode(sessionID domain.SessionID, mode domain.SessionMode, topic string) []*domain.Agent {
	if mode == domain.ModeCollaboration {
		return []*domain.Agent{
			newAgent(sessionID, NameAnalyst, domain.RoleAnalyst, fmt.Sprintf(promptAnalyst, topic)),
			newAgent(sessionID, NameCreative, domain.RoleCreative, fmt.Sprintf(promptCreative, topic)),
			newAgent(sessionID, NameSummarizer, domain.RoleSummarizer, promptSummarizer),
		}
	}
	return []*domain.Agent{
		newAgent(sessionID, NamePro, domain.RolePro, fmt.Sprintf(promptPro, topic)),
		newAgent(sessionID, NameCon, domain.RoleCon, fmt.Sprintf(promptCon, topic)),
		newAgent(sessionID, NameJudge, domain.RoleJudge, promptJudge),
	}
}

func newAgent(sessionID domain.SessionID, name string, role domain.AgentRole, prompt string) *domain.Agent {
	return &domain.Agent{
		ID:           domain.AgentID(uuid.NewString()),
		SessionID:    sessionID,
		Name:         name,
		Role:         role,
		SystemPrompt: prompt,
	}
}

var nameToRole = map[string]domain.AgentRole{
	NamePro:        domain.RolePro,
	NameCon:        domain.RoleCon,
	NameJudge:      domain.RoleJudge,
	NameAnalyst:    domain.RoleAnalyst,
	NameCreative:   domain.RoleCreative,
	NameSummarizer: domain.RoleSummarizer,
}

// RoleOfName maps a display name back to its role.
func RoleOfName(name string) (domain.AgentRole, bool) {
	role, ok := nameToRole[name]
	return role, ok
}

// KnownNames lists every persona display name, for stripping self-identification
// prefixes from generated text.
func KnownNames() []string {
	return []string{NamePro, NameCon, NameJudge, NameAnalyst, NameCreative, NameSummarizer}
}

// IgnoredSenders is the set of senders excluded from the turn budget: the
// terminal agents plus human and system notices. Both the cycling decision
// and the force-end decision count through this same set.
func IgnoredSenders() []string {
	return []string{NameJudge, NameSummarizer, domain.SenderSystem, domain.SenderYou, domain.SenderUser}
}

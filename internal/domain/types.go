package domain

type SessionID string
type AgentID string
type MessageID string

// SessionMode selects the persona set and turn rotation of a session.
type SessionMode string

const (
	ModeDebate        SessionMode = "DEBATE"
	ModeCollaboration SessionMode = "COLLABORATION"
)

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	StatusCreated    SessionStatus = "CREATED"    // setup complete, waiting to start
	StatusActive     SessionStatus = "ACTIVE"     // discussion in progress
	StatusCompleted  SessionStatus = "COMPLETED"  // finished naturally (turn budget or forced wrap-up)
	StatusTerminated SessionStatus = "TERMINATED" // forced stop
)

// AgentRole identifies a persona's function inside a session.
// Turn taking is decided on roles; display names are presentation only.
type AgentRole string

const (
	// Debate roles
	RolePro   AgentRole = "PRO"
	RoleCon   AgentRole = "CON"
	RoleJudge AgentRole = "JUDGE"

	// Collaboration roles
	RoleAnalyst    AgentRole = "ANALYST"
	RoleCreative   AgentRole = "CREATIVE"
	RoleSummarizer AgentRole = "SUMMARIZER"

	// Governance
	RoleModerator AgentRole = "MODERATOR"
)

// FirstRole is the role that opens the cycle when no agent has spoken yet.
func (m SessionMode) FirstRole() AgentRole {
	if m == ModeCollaboration {
		return RoleAnalyst
	}
	return RolePro
}

// TerminalRole is the role that produces the session's closing message.
func (m SessionMode) TerminalRole() AgentRole {
	if m == ModeCollaboration {
		return RoleSummarizer
	}
	return RoleJudge
}

// NextRole is the total rotation function for the mode.
// The terminal role maps back to the first role, which is only reachable
// after an extension reopens an already-judged session.
func (m SessionMode) NextRole(last AgentRole) AgentRole {
	if m == ModeCollaboration {
		switch last {
		case RoleAnalyst:
			return RoleCreative
		case RoleCreative, RoleSummarizer:
			return RoleAnalyst
		default:
			return RoleAnalyst
		}
	}
	switch last {
	case RolePro:
		return RoleCon
	case RoleCon, RoleJudge:
		return RolePro
	default:
		return RolePro
	}
}

// IsTerminal reports whether the role closes a session in the given mode.
func (r AgentRole) IsTerminal(m SessionMode) bool {
	return r == m.TerminalRole()
}

// Sentinel sender identities for non-agent messages.
const (
	SenderYou    = "You"
	SenderUser   = "User"
	SenderSystem = "System"
)

package domain

import "context"

// LLMClient is the text-generation oracle: prompt in, text out. The role is
// only used to select an API credential on the transport side.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, role AgentRole) (string, error)
}

// SessionStore defines session persistence.
type SessionStore interface {
	CreateSession(session *Session) error
	UpdateSession(session *Session) error
	GetSession(id SessionID) (*Session, error)
	// ListSessions returns all sessions ordered by creation time descending.
	ListSessions() ([]*Session, error)
	DeleteSession(id SessionID) error
}

// AgentStore defines agent persistence. Agents are created atomically with
// their session and never modified afterwards.
type AgentStore interface {
	CreateAgents(agents []*Agent) error
	GetAgentsBySession(sessionID SessionID) ([]*Agent, error)
	GetAgentByRole(sessionID SessionID, role AgentRole) (*Agent, error)
	DeleteAgentsBySession(sessionID SessionID) error
}

// MessageStore defines message persistence.
type MessageStore interface {
	AppendMessage(msg *Message) error
	// GetMessagesBySession returns the full timeline ordered by timestamp ascending.
	GetMessagesBySession(sessionID SessionID) ([]*Message, error)
	// CountMessagesExcludingSenders counts a session's messages whose sender
	// is not in the excluded set. The turn budget is computed through this.
	CountMessagesExcludingSenders(sessionID SessionID, excluded []string) (int, error)
	DeleteMessagesBySession(sessionID SessionID) error
}

// TextExtractor turns a binary attachment into best-effort text. Failures
// degrade to an inline marker string instead of an error so that session
// creation never aborts on a bad file.
type TextExtractor interface {
	ExtractText(filename string, data []byte) string
}

package domain

import "time"

// Session is one discussion instance: a topic debated or brainstormed by a
// fixed set of agents under a turn budget.
type Session struct {
	ID     SessionID
	Topic  string
	Mode   SessionMode
	Status SessionStatus

	// MaxTurns counts bot turns (user-facing rounds x 2). Only session
	// creation and extension may change it.
	MaxTurns int

	StartTime time.Time
	EndTime   *time.Time
	CreatedAt time.Time

	// Optional attachment carried for later retrieval. The raw bytes are
	// never interpreted by the discussion core.
	FileName string
	FileType string
	FileData []byte
}

// Agent is one persona bound to exactly one session. The system prompt is
// generated once at session start with the topic interpolated.
type Agent struct {
	ID           AgentID
	SessionID    SessionID
	Name         string
	Role         AgentRole
	SystemPrompt string
}

// Message is one utterance in a session's timeline. Messages are append-only
// and ordered by timestamp; they are never mutated or deleted individually.
type Message struct {
	ID         MessageID
	SessionID  SessionID
	SenderName string
	Content    string
	IsAI       bool
	Timestamp  time.Time
}

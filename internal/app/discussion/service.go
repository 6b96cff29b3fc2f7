// Package discussion implements the turn orchestration engine: the session
// state machine that decides which agent speaks next, injects phase-specific
// instructions, rejects repetitive output, and closes sessions with a terminal
// judge or summarizer message.
package discussion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/polyarguminds/polyargu/internal/app/personas"
	"github.com/polyarguminds/polyargu/internal/domain"
	"github.com/polyarguminds/polyargu/internal/observability"
)

type Service struct {
	llm      domain.LLMClient
	sessions domain.SessionStore
	agents   domain.AgentStore
	messages domain.MessageStore
	now      func() time.Time
	locks    *sessionLocks
}

func NewService(
	llm domain.LLMClient,
	sessions domain.SessionStore,
	agents domain.AgentStore,
	messages domain.MessageStore,
) *Service {
	return &Service{
		llm:      llm,
		sessions: sessions,
		agents:   agents,
		messages: messages,
		now:      time.Now,
		locks:    newSessionLocks(),
	}
}

const defaultRounds = 10

// Attachment is an optional file carried on the session for later retrieval.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

type StartSessionInput struct {
	Topic string
	Mode  domain.SessionMode
	// Rounds is the user-facing round count; each round is one turn per
	// contesting agent. Zero or negative falls back to the default.
	Rounds     int
	Attachment *Attachment
}

// StartSession creates a session with its fixed agent set and activates it.
// No oracle call happens here; the first agent speaks on the first Advance.
func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*domain.Session, error) {
	log := observability.LoggerFromContext(ctx).With(
		"mode", in.Mode,
		"rounds", in.Rounds,
	)

	rounds := in.Rounds
	if rounds <= 0 {
		rounds = defaultRounds
	}

	now := s.now()
	session := &domain.Session{
		ID:        domain.SessionID(uuid.NewString()),
		Topic:     in.Topic,
		Mode:      in.Mode,
		Status:    domain.StatusActive,
		MaxTurns:  rounds * 2,
		StartTime: now,
		CreatedAt: now,
	}
	if in.Attachment != nil {
		session.FileName = in.Attachment.Name
		session.FileType = in.Attachment.ContentType
		session.FileData = in.Attachment.Data
	}

	if err := s.sessions.CreateSession(session); err != nil {
		log.Error("failed to create session", "error", err)
		return nil, err
	}

	if err := s.agents.CreateAgents(personas.ForMode(session.ID, session.Mode, session.Topic)); err != nil {
		log.Error("failed to create agents", "error", err)
		return nil, err
	}

	log.Info("session started", "session_id", session.ID, "max_turns", session.MaxTurns)
	return session, nil
}

// RecordUserMessage appends a human message to the timeline. It does not
// advance the automated cycle; a subsequent Advance call does that.
func (s *Service) RecordUserMessage(ctx context.Context, sessionID domain.SessionID, content string) (*domain.Message, error) {
	mu := s.locks.get(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.StatusCompleted {
		return nil, domain.ErrSessionClosed
	}

	msg := &domain.Message{
		ID:         domain.MessageID(uuid.NewString()),
		SessionID:  session.ID,
		SenderName: domain.SenderYou,
		Content:    content,
		IsAI:       false,
		Timestamp:  s.now(),
	}
	if err := s.messages.AppendMessage(msg); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info("user message recorded", "session_id", session.ID)
	return msg, nil
}

// Advance generates the next turn of the cycle. It returns (nil, nil) when
// the session is already completed or when the terminal agent has spoken and
// there is nothing left to do.
func (s *Service) Advance(ctx context.Context, sessionID domain.SessionID) (*domain.Message, error) {
	mu := s.locks.get(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.StatusCompleted {
		return nil, nil
	}

	log := observability.LoggerFromContext(ctx).With("session_id", session.ID)

	botTurns, err := s.botTurnCount(session.ID)
	if err != nil {
		return nil, err
	}

	history, err := s.messages.GetMessagesBySession(session.ID)
	if err != nil {
		return nil, err
	}
	last := lastRelevantMessage(history)

	if botTurns >= session.MaxTurns {
		// Budget exhausted. Force the terminal turn unless the terminal
		// agent already produced the closing message.
		if last == nil || !isTerminalSender(last.SenderName, session.Mode) {
			log.Info("turn budget exhausted, forcing terminal turn", "bot_turns", botTurns)
			return s.closeWithTerminalTurn(ctx, session)
		}
		if session.Status != domain.StatusCompleted {
			session.Status = domain.StatusCompleted
			if err := s.sessions.UpdateSession(session); err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	var nextRole domain.AgentRole
	if last == nil {
		nextRole = session.Mode.FirstRole()
	} else if lastRole, ok := personas.RoleOfName(last.SenderName); ok {
		nextRole = session.Mode.NextRole(lastRole)
	} else {
		nextRole = session.Mode.FirstRole()
	}

	turnNumber := botTurns + 1
	instruction := instructionForTurn(turnNumber, session.MaxTurns)

	log.Info("advancing turn", "role", nextRole, "turn", turnNumber)
	return s.generateAgentTurn(ctx, session, nextRole, instruction)
}

// Extend adds extraRounds x 2 bot turns to the budget, reopening the session
// if it had completed, and drops a System divider into the timeline. It never
// fails on an already-active session.
func (s *Service) Extend(ctx context.Context, sessionID domain.SessionID, extraRounds int) (*domain.Session, error) {
	mu := s.locks.get(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == domain.StatusCompleted {
		session.Status = domain.StatusActive
		session.EndTime = nil
	}
	session.MaxTurns += extraRounds * 2

	divider := &domain.Message{
		ID:         domain.MessageID(uuid.NewString()),
		SessionID:  session.ID,
		SenderName: domain.SenderSystem,
		Content:    fmt.Sprintf("--- SESSION EXTENDED BY USER (+%d Rounds) ---", extraRounds),
		IsAI:       false,
		Timestamp:  s.now(),
	}
	if err := s.messages.AppendMessage(divider); err != nil {
		return nil, err
	}

	if err := s.sessions.UpdateSession(session); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info("session extended",
		"session_id", session.ID,
		"extra_rounds", extraRounds,
		"max_turns", session.MaxTurns,
	)
	return session, nil
}

// EndEarly forces the terminal agent's closing turn regardless of remaining
// budget and completes the session.
func (s *Service) EndEarly(ctx context.Context, sessionID domain.SessionID) (*domain.Message, error) {
	mu := s.locks.get(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.StatusCompleted {
		return nil, domain.ErrSessionClosed
	}

	return s.closeWithTerminalTurn(ctx, session)
}

// closeWithTerminalTurn generates the judge/summarizer message and flips the
// session to COMPLETED. This is the only path out of ACTIVE. Caller holds the
// session lock.
func (s *Service) closeWithTerminalTurn(ctx context.Context, session *domain.Session) (*domain.Message, error) {
	msg, err := s.generateAgentTurn(ctx, session, session.Mode.TerminalRole(), "")
	if err != nil {
		return nil, err
	}

	now := s.now()
	session.EndTime = &now
	session.Status = domain.StatusCompleted
	if err := s.sessions.UpdateSession(session); err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info("session completed", "session_id", session.ID)
	return msg, nil
}

// generateAgentTurn runs the full generation pipeline for one role: compose
// the prompt, call the oracle, re-ask on repetition up to the retry cap,
// sanitize the accepted text, and persist it. Caller holds the session lock.
func (s *Service) generateAgentTurn(ctx context.Context, session *domain.Session, role domain.AgentRole, instruction string) (*domain.Message, error) {
	agent, err := s.agents.GetAgentByRole(session.ID, role)
	if err != nil {
		return nil, err
	}

	history, err := s.messages.GetMessagesBySession(session.ID)
	if err != nil {
		return nil, err
	}

	systemPrompt := agent.SystemPrompt
	if instruction != "" {
		systemPrompt += "\n\n" + instruction
	}
	prompt := composePrompt(systemPrompt, history)

	text := s.generate(ctx, prompt, role)
	for attempt := 0; attempt < maxRegenerations; attempt++ {
		if !isRepetitive(text, history, agent.Name) {
			break
		}
		observability.LoggerFromContext(ctx).Warn("repetitive response rejected",
			"session_id", session.ID,
			"agent", agent.Name,
			"attempt", attempt+1,
		)
		text = s.generate(ctx, composePrompt(systemPrompt+"\n\n"+repetitionRebuke, history), role)
	}

	msg := &domain.Message{
		ID:         domain.MessageID(uuid.NewString()),
		SessionID:  session.ID,
		SenderName: agent.Name,
		Content:    sanitizeResponse(text, personas.KnownNames()),
		IsAI:       true,
		Timestamp:  s.now(),
	}
	if err := s.messages.AppendMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// generate calls the oracle and converts transport failures into a placeholder
// body so a session never gets stuck mid-turn.
func (s *Service) generate(ctx context.Context, prompt string, role domain.AgentRole) string {
	text, err := s.llm.Generate(ctx, prompt, role)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("oracle call failed", "role", role, "error", err)
		return fmt.Sprintf("Error calling the model provider: %v", err)
	}
	return text
}

// botTurnCount is the single shared budget computation: messages from
// contesting/contributing agents only. Terminal agents, System notices, and
// human input are free.
func (s *Service) botTurnCount(sessionID domain.SessionID) (int, error) {
	return s.messages.CountMessagesExcludingSenders(sessionID, personas.IgnoredSenders())
}

// lastRelevantMessage finds the last message that participates in turn logic,
// skipping System dividers and human input but keeping terminal agents.
func lastRelevantMessage(history []*domain.Message) *domain.Message {
	for i := len(history) - 1; i >= 0; i-- {
		switch history[i].SenderName {
		case domain.SenderSystem, domain.SenderYou, domain.SenderUser:
			continue
		default:
			return history[i]
		}
	}
	return nil
}

func isTerminalSender(senderName string, mode domain.SessionMode) bool {
	role, ok := personas.RoleOfName(senderName)
	return ok && role.IsTerminal(mode)
}

// GetSession returns one session by id.
func (s *Service) GetSession(ctx context.Context, sessionID domain.SessionID) (*domain.Session, error) {
	return s.sessions.GetSession(sessionID)
}

// GetHistory returns a session's full timeline, oldest first.
func (s *Service) GetHistory(ctx context.Context, sessionID domain.SessionID) ([]*domain.Message, error) {
	if _, err := s.sessions.GetSession(sessionID); err != nil {
		return nil, err
	}
	return s.messages.GetMessagesBySession(sessionID)
}

// ListSessions returns all sessions newest first, with attachment bytes
// stripped to keep list payloads small.
func (s *Service) ListSessions(ctx context.Context) ([]*domain.Session, error) {
	sessions, err := s.sessions.ListSessions()
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Session, 0, len(sessions))
	for _, sess := range sessions {
		copied := *sess
		copied.FileData = nil
		out = append(out, &copied)
	}
	return out, nil
}

// DeleteSession removes a session together with its agents and messages.
func (s *Service) DeleteSession(ctx context.Context, sessionID domain.SessionID) error {
	mu := s.locks.get(sessionID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.sessions.GetSession(sessionID); err != nil {
		return err
	}
	if err := s.messages.DeleteMessagesBySession(sessionID); err != nil {
		return err
	}
	if err := s.agents.DeleteAgentsBySession(sessionID); err != nil {
		return err
	}
	if err := s.sessions.DeleteSession(sessionID); err != nil {
		return err
	}
	s.locks.forget(sessionID)

	observability.LoggerFromContext(ctx).Info("session deleted", "session_id", sessionID)
	return nil
}

package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/polyarguminds/polyargu/internal/domain"
)

// Store persists sessions with their agents and messages as subcollections.
// One store implements the three domain store interfaces.
type Store struct {
	client *firestore.Client
}

func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) sessionsCol() *firestore.CollectionRef {
	return s.client.Collection("sessions")
}

func (s *Store) sessionRef(id domain.SessionID) *firestore.DocumentRef {
	return s.sessionsCol().Doc(string(id))
}

func (s *Store) agentsCol(sessionID domain.SessionID) *firestore.CollectionRef {
	return s.sessionRef(sessionID).Collection("agents")
}

func (s *Store) messagesCol(sessionID domain.SessionID) *firestore.CollectionRef {
	return s.sessionRef(sessionID).Collection("messages")
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type sessionDoc struct {
	Topic     string     `firestore:"topic"`
	Mode      string     `firestore:"mode"`
	Status    string     `firestore:"status"`
	MaxTurns  int        `firestore:"max_turns"`
	StartTime time.Time  `firestore:"start_time"`
	EndTime   *time.Time `firestore:"end_time"`
	CreatedAt time.Time  `firestore:"created_at"`
	FileName  string     `firestore:"file_name"`
	FileType  string     `firestore:"file_type"`
	FileData  []byte     `firestore:"file_data"`
}

type agentDoc struct {
	Name         string `firestore:"name"`
	Role         string `firestore:"role"`
	SystemPrompt string `firestore:"system_prompt"`
}

type messageDoc struct {
	SenderName string    `firestore:"sender_name"`
	Content    string    `firestore:"content"`
	IsAI       bool      `firestore:"is_ai"`
	Timestamp  time.Time `firestore:"timestamp"`
}

func toSessionDoc(session *domain.Session) sessionDoc {
	return sessionDoc{
		Topic:     session.Topic,
		Mode:      string(session.Mode),
		Status:    string(session.Status),
		MaxTurns:  session.MaxTurns,
		StartTime: session.StartTime,
		EndTime:   session.EndTime,
		CreatedAt: session.CreatedAt,
		FileName:  session.FileName,
		FileType:  session.FileType,
		FileData:  session.FileData,
	}
}

func fromSessionDoc(id domain.SessionID, doc sessionDoc) *domain.Session {
	return &domain.Session{
		ID:        id,
		Topic:     doc.Topic,
		Mode:      domain.SessionMode(doc.Mode),
		Status:    domain.SessionStatus(doc.Status),
		MaxTurns:  doc.MaxTurns,
		StartTime: doc.StartTime,
		EndTime:   doc.EndTime,
		CreatedAt: doc.CreatedAt,
		FileName:  doc.FileName,
		FileType:  doc.FileType,
		FileData:  doc.FileData,
	}
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateSession(session *domain.Session) error {
	ctx := context.Background()

	if _, err := s.sessionRef(session.ID).Create(ctx, toSessionDoc(session)); err != nil {
		return fmt.Errorf("firestore CreateSession: %w", err)
	}
	return nil
}

func (s *Store) UpdateSession(session *domain.Session) error {
	ctx := context.Background()

	if _, err := s.sessionRef(session.ID).Set(ctx, toSessionDoc(session)); err != nil {
		return fmt.Errorf("firestore UpdateSession: %w", err)
	}
	return nil
}

func (s *Store) GetSession(id domain.SessionID) (*domain.Session, error) {
	ctx := context.Background()

	snap, err := s.sessionRef(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("firestore GetSession: %w", err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetSession decode: %w", err)
	}
	return fromSessionDoc(id, doc), nil
}

func (s *Store) ListSessions() ([]*domain.Session, error) {
	ctx := context.Background()

	iter := s.sessionsCol().OrderBy("created_at", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var out []*domain.Session
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListSessions: %w", err)
		}

		var doc sessionDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode sessionDoc: %w", err)
		}
		out = append(out, fromSessionDoc(domain.SessionID(snap.Ref.ID), doc))
	}
	return out, nil
}

func (s *Store) DeleteSession(id domain.SessionID) error {
	ctx := context.Background()

	if _, err := s.sessionRef(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore DeleteSession: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// AgentStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateAgents(agents []*domain.Agent) error {
	ctx := context.Background()

	for _, a := range agents {
		doc := agentDoc{
			Name:         a.Name,
			Role:         string(a.Role),
			SystemPrompt: a.SystemPrompt,
		}
		if _, err := s.agentsCol(a.SessionID).Doc(string(a.ID)).Create(ctx, doc); err != nil {
			return fmt.Errorf("firestore CreateAgents: %w", err)
		}
	}
	return nil
}

func (s *Store) GetAgentsBySession(sessionID domain.SessionID) ([]*domain.Agent, error) {
	ctx := context.Background()

	iter := s.agentsCol(sessionID).Documents(ctx)
	defer iter.Stop()

	var out []*domain.Agent
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore GetAgentsBySession: %w", err)
		}

		var doc agentDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode agentDoc: %w", err)
		}
		out = append(out, &domain.Agent{
			ID:           domain.AgentID(snap.Ref.ID),
			SessionID:    sessionID,
			Name:         doc.Name,
			Role:         domain.AgentRole(doc.Role),
			SystemPrompt: doc.SystemPrompt,
		})
	}
	return out, nil
}

func (s *Store) GetAgentByRole(sessionID domain.SessionID, role domain.AgentRole) (*domain.Agent, error) {
	agents, err := s.GetAgentsBySession(sessionID)
	if err != nil {
		return nil, err
	}
	for _, a := range agents {
		if a.Role == role {
			return a, nil
		}
	}
	return nil, domain.ErrAgentNotFound
}

func (s *Store) DeleteAgentsBySession(sessionID domain.SessionID) error {
	return s.deleteCollection(s.agentsCol(sessionID))
}

// ─────────────────────────────────────────
// MessageStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(msg *domain.Message) error {
	ctx := context.Background()

	doc := messageDoc{
		SenderName: msg.SenderName,
		Content:    msg.Content,
		IsAI:       msg.IsAI,
		Timestamp:  msg.Timestamp,
	}
	if _, err := s.messagesCol(msg.SessionID).Doc(string(msg.ID)).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}
	return nil
}

func (s *Store) GetMessagesBySession(sessionID domain.SessionID) ([]*domain.Message, error) {
	ctx := context.Background()

	iter := s.messagesCol(sessionID).OrderBy("timestamp", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var out []*domain.Message
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore GetMessagesBySession: %w", err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}
		out = append(out, &domain.Message{
			ID:         domain.MessageID(snap.Ref.ID),
			SessionID:  sessionID,
			SenderName: doc.SenderName,
			Content:    doc.Content,
			IsAI:       doc.IsAI,
			Timestamp:  doc.Timestamp,
		})
	}
	return out, nil
}

func (s *Store) CountMessagesExcludingSenders(sessionID domain.SessionID, excluded []string) (int, error) {
	msgs, err := s.GetMessagesBySession(sessionID)
	if err != nil {
		return 0, err
	}

	skip := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		skip[name] = struct{}{}
	}

	count := 0
	for _, m := range msgs {
		if _, ok := skip[m.SenderName]; !ok {
			count++
		}
	}
	return count, nil
}

func (s *Store) DeleteMessagesBySession(sessionID domain.SessionID) error {
	return s.deleteCollection(s.messagesCol(sessionID))
}

func (s *Store) deleteCollection(col *firestore.CollectionRef) error {
	ctx := context.Background()

	iter := col.Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return fmt.Errorf("firestore deleteCollection: %w", err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("firestore deleteCollection: %w", err)
		}
	}
	return nil
}

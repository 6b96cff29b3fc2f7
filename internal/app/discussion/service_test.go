package discussion_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyarguminds/polyargu/internal/adapters/storage/memory"
	"github.com/polyarguminds/polyargu/internal/app/discussion"
	"github.com/polyarguminds/polyargu/internal/domain"
)

// scriptedOracle returns canned responses in order, falling back to distinct
// generated texts once the script runs out. fixed, when set, is returned on
// every call instead.
type scriptedOracle struct {
	mu        sync.Mutex
	responses []string
	fixed     string
	err       error
	calls     int
}

func (o *scriptedOracle) Generate(ctx context.Context, prompt string, role domain.AgentRole) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.calls++
	if o.err != nil {
		return "", o.err
	}
	if o.fixed != "" {
		return o.fixed, nil
	}
	if len(o.responses) > 0 {
		next := o.responses[0]
		o.responses = o.responses[1:]
		return next, nil
	}
	n := o.calls
	return fmt.Sprintf("reply%d alpha%d beta%d gamma%d delta%d", n, n, n, n, n), nil
}

func newTestService(oracle domain.LLMClient) *discussion.Service {
	return discussion.NewService(
		oracle,
		memory.NewSessionStore(),
		memory.NewAgentStore(),
		memory.NewMessageStore(),
	)
}

func startDebate(t *testing.T, svc *discussion.Service, rounds int) *domain.Session {
	t.Helper()
	session, err := svc.StartSession(context.Background(), discussion.StartSessionInput{
		Topic:  "X",
		Mode:   domain.ModeDebate,
		Rounds: rounds,
	})
	require.NoError(t, err)
	return session
}

func TestStartSessionDefaults(t *testing.T) {
	svc := newTestService(&scriptedOracle{})

	session := startDebate(t, svc, 0)
	assert.Equal(t, 20, session.MaxTurns)
	assert.Equal(t, domain.StatusActive, session.Status)
	assert.Nil(t, session.EndTime)

	withRounds := startDebate(t, svc, 3)
	assert.Equal(t, 6, withRounds.MaxTurns)
}

func TestDebateLifecycle(t *testing.T) {
	ctx := context.Background()
	oracle := &scriptedOracle{}
	svc := newTestService(oracle)

	session := startDebate(t, svc, 1)
	require.Equal(t, 2, session.MaxTurns)

	// First advance opens with PRO.
	m1, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, m1)
	assert.Equal(t, "ProBot", m1.SenderName)
	assert.True(t, m1.IsAI)

	// Second advance rotates to CON.
	m2, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "ConBot", m2.SenderName)

	// Budget exhausted, last speaker not terminal: judge is forced and the
	// session completes.
	m3, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, m3)
	assert.Equal(t, "JudgeDredd", m3.SenderName)

	got, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.NotNil(t, got.EndTime)

	// Completed sessions no-op on further advances.
	m4, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, m4)

	got, err = svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
}

func TestCollaborationRotation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&scriptedOracle{})

	session, err := svc.StartSession(ctx, discussion.StartSessionInput{
		Topic:  "new product features",
		Mode:   domain.ModeCollaboration,
		Rounds: 2,
	})
	require.NoError(t, err)

	var senders []string
	for i := 0; i < 4; i++ {
		m, err := svc.Advance(ctx, session.ID)
		require.NoError(t, err)
		require.NotNil(t, m)
		senders = append(senders, m.SenderName)
	}
	assert.Equal(t, []string{"LogicLens", "IdeaSpark", "LogicLens", "IdeaSpark"}, senders)

	// Budget spent: the summarizer wraps up.
	m, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "WrapUp", m.SenderName)
}

func TestUserMessageDoesNotAdvanceCycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&scriptedOracle{})
	session := startDebate(t, svc, 2)

	userMsg, err := svc.RecordUserMessage(ctx, session.ID, "consider the economics")
	require.NoError(t, err)
	assert.Equal(t, domain.SenderYou, userMsg.SenderName)
	assert.False(t, userMsg.IsAI)

	// A user message alone does not change who opens: still PRO.
	m, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "ProBot", m.SenderName)
}

func TestUserMessageRejectedWhenCompleted(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&scriptedOracle{})
	session := startDebate(t, svc, 1)

	_, err := svc.EndEarly(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.RecordUserMessage(ctx, session.ID, "too late")
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestEndEarly(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&scriptedOracle{})
	session := startDebate(t, svc, 5)

	msg, err := svc.EndEarly(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "JudgeDredd", msg.SenderName)

	got, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)

	// Double completion is an invalid state, not a silent success.
	_, err = svc.EndEarly(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestExtendReopensCompletedSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&scriptedOracle{})
	session := startDebate(t, svc, 1)

	for i := 0; i < 3; i++ {
		_, err := svc.Advance(ctx, session.ID)
		require.NoError(t, err)
	}
	completed, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, completed.Status)

	extended, err := svc.Extend(ctx, session.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, extended.Status)
	assert.Nil(t, extended.EndTime)
	assert.Equal(t, 4, extended.MaxTurns)

	history, err := svc.GetHistory(ctx, session.ID)
	require.NoError(t, err)
	divider := history[len(history)-1]
	assert.Equal(t, domain.SenderSystem, divider.SenderName)
	assert.Equal(t, "--- SESSION EXTENDED BY USER (+1 Rounds) ---", divider.Content)

	// The cycle restarts at the mode's first role after the judge spoke.
	m, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "ProBot", m.SenderName)
}

func TestExtendOnActiveSessionIsAdditive(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&scriptedOracle{})
	session := startDebate(t, svc, 2)

	extended, err := svc.Extend(ctx, session.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 10, extended.MaxTurns)
	assert.Equal(t, domain.StatusActive, extended.Status)
}

func TestRepetitionRetryLoop(t *testing.T) {
	ctx := context.Background()
	oracle := &scriptedOracle{fixed: "the same argument every single time"}
	svc := newTestService(oracle)
	session := startDebate(t, svc, 2)

	// First PRO turn: no prior history, accepted on the first call.
	_, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, oracle.calls)

	// CON compares only against its own history: accepted on the first call.
	_, err = svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, oracle.calls)

	// PRO again: identical to its previous turn, so two regenerations are
	// attempted and the last candidate is accepted unconditionally.
	m, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, oracle.calls)
	assert.Equal(t, "the same argument every single time", m.Content)
}

func TestOracleFailureBecomesPlaceholderMessage(t *testing.T) {
	ctx := context.Background()
	oracle := &scriptedOracle{err: errors.New("connection refused")}
	svc := newTestService(oracle)
	session := startDebate(t, svc, 1)

	m, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Contains(t, m.Content, "Error calling the model provider")
	assert.Contains(t, m.Content, "connection refused")
}

func TestSessionNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&scriptedOracle{})

	_, err := svc.Advance(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.GetHistory(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	err = svc.DeleteSession(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestDeleteSessionCascades(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&scriptedOracle{})
	session := startDebate(t, svc, 1)

	_, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, session.ID))

	_, err = svc.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = svc.GetHistory(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestListSessionsStripsFileBytes(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&scriptedOracle{})

	_, err := svc.StartSession(ctx, discussion.StartSessionInput{
		Topic:  "topic with attachment",
		Mode:   domain.ModeDebate,
		Rounds: 1,
		Attachment: &discussion.Attachment{
			Name:        "notes.txt",
			ContentType: "text/plain",
			Data:        []byte("payload"),
		},
	})
	require.NoError(t, err)

	sessions, err := svc.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "notes.txt", sessions[0].FileName)
	assert.Nil(t, sessions[0].FileData)
}

func TestConcurrentAdvancesStaySerialized(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&scriptedOracle{})
	session := startDebate(t, svc, 4)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Advance(ctx, session.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	history, err := svc.GetHistory(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)

	// Strict alternation: serialization means no two consecutive turns share
	// a speaker.
	for i := 1; i < len(history); i++ {
		assert.NotEqual(t, history[i-1].SenderName, history[i].SenderName)
	}
}

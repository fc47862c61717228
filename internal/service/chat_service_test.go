package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nuggetube-backend/internal/config"
	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/responder"
	"nuggetube-backend/internal/storage"
)

type firstPicker struct{}

func (firstPicker) IntN(int) int { return 0 }

type recordingSpeaker struct {
	mu     sync.Mutex
	spoken []string
}

func (r *recordingSpeaker) Speak(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spoken = append(r.spoken, text)
	return nil
}

func (r *recordingSpeaker) said() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.spoken...)
}

func newChatService(t *testing.T, speaker Speaker) *ChatService {
	t.Helper()
	return NewChatService(
		storage.NewMemoryStorage(),
		responder.New(nil, firstPicker{}),
		speaker,
		config.ChatConfig{},
		config.SessionConfig{TTL: time.Hour, CleanupInterval: time.Minute},
	)
}

func TestCreateSessionSeedsGreeting(t *testing.T) {
	svc := newChatService(t, nil)

	session, err := svc.CreateSession("")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(session.Title, "New chat "))

	messages, err := svc.GetSessionMessages(session.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].IsBot())
	assert.Equal(t, responder.Greeting, messages[0].Content)
}

func TestSendAppendsUserAndAssistantMessages(t *testing.T) {
	speaker := &recordingSpeaker{}
	svc := newChatService(t, speaker)

	session, err := svc.CreateSession("")
	require.NoError(t, err)

	resp, err := svc.Send(context.Background(), session.ID, "  Where can I get FRIED chicken?  ")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAssistant, resp.Role)
	assert.Equal(t, responder.IntentFood, resp.Intent)
	require.NotNil(t, resp.Location)
	assert.Equal(t, "KFC HQ", resp.Location.Name)
	require.NotNil(t, resp.Speech)
	assert.Equal(t, 0.9, resp.Speech.Rate)

	messages, err := svc.GetSessionMessages(session.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "Where can I get FRIED chicken?", messages[1].Content)
	assert.False(t, messages[1].IsBot())
	assert.Equal(t, resp.Content, messages[2].Content)
	assert.Equal(t, resp.Location, messages[2].Location)
	assert.Less(t, messages[1].ID, messages[2].ID, "message ids sort by creation")

	renamed, err := svc.GetSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Where can I get FRIED chicken?", renamed.Title)

	assert.Eventually(t, func() bool {
		return len(speaker.said()) == 1 && speaker.said()[0] == resp.Content
	}, time.Second, 10*time.Millisecond)
}

func TestSendKeepsCustomTitle(t *testing.T) {
	svc := newChatService(t, nil)
	session, err := svc.CreateSession("Dinner plans")
	require.NoError(t, err)

	_, err = svc.Send(context.Background(), session.ID, "korean chicken")
	require.NoError(t, err)

	got, err := svc.GetSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dinner plans", got.Title)
}

func TestSendRejectsBadInput(t *testing.T) {
	svc := newChatService(t, nil)

	_, err := svc.Send(context.Background(), "whatever", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.Send(context.Background(), "", "hi")
	assert.ErrorIs(t, err, ErrSessionRequired)

	_, err = svc.Send(context.Background(), "missing", "hi")
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestSendHonoursCancellation(t *testing.T) {
	svc := NewChatService(storage.NewMemoryStorage(), responder.New(nil, nil), nil,
		config.ChatConfig{ReplyDelay: time.Hour}, config.SessionConfig{})
	session, err := svc.CreateSession("")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.Send(ctx, session.ID, "fried")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAskIsStateless(t *testing.T) {
	svc := newChatService(t, nil)

	resp, err := svc.Ask("tell me a joke")
	require.NoError(t, err)
	assert.Equal(t, responder.Fallback, resp.Content)
	assert.Nil(t, resp.Location)
	assert.Empty(t, resp.SessionID)

	_, err = svc.Ask("")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	sessions, err := svc.GetAllSessions()
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStreamChatEmitsUserThenAssistant(t *testing.T) {
	svc := newChatService(t, nil)
	session, err := svc.CreateSession("")
	require.NoError(t, err)

	respChan, errChan := svc.StreamChat(context.Background(), session.ID, "I want to adopt")

	var got []model.ChatResponse
	for resp := range respChan {
		got = append(got, resp)
	}
	assert.NoError(t, <-errChan)

	require.Len(t, got, 2)
	assert.Equal(t, model.RoleUser, got[0].Role)
	assert.Equal(t, model.RoleAssistant, got[1].Role)
	assert.Equal(t, responder.IntentRescue, got[1].Intent)
	require.NotNil(t, got[1].Location)
	assert.Equal(t, "San Francisco Animal Shelter", got[1].Location.Name)
}

func TestStreamChatReportsMissingSession(t *testing.T) {
	svc := newChatService(t, nil)

	respChan, errChan := svc.StreamChat(context.Background(), "missing", "hi")
	for range respChan {
	}
	assert.ErrorIs(t, <-errChan, storage.ErrSessionNotFound)
}

func TestCleanupExpired(t *testing.T) {
	svc := newChatService(t, nil)
	session, err := svc.CreateSession("old")
	require.NoError(t, err)

	assert.Zero(t, svc.CleanupExpired(time.Now()))
	assert.Equal(t, 1, svc.CleanupExpired(time.Now().Add(2*time.Hour)))

	_, err = svc.GetSession(session.ID)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestRunBackups(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewDiskStorage(dir, 10)
	require.NoError(t, store.Init())

	svc := NewChatService(store, responder.New(nil, firstPicker{}), nil, config.ChatConfig{}, config.SessionConfig{})
	_, err := svc.CreateSession("kept")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.RunBackups(ctx, 10*time.Millisecond) }()

	assert.Eventually(t, func() bool {
		entries, err := os.ReadDir(filepath.Join(dir, "backup"))
		return err == nil && len(entries) > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	// disabled
	assert.NoError(t, svc.RunBackups(context.Background(), 0))
}

// interleavingStorage adds a message to the session just before each header update, as a
// concurrent send from another tab would.
type interleavingStorage struct {
	storage.Storage
}

func (s interleavingStorage) UpdateSession(session *model.Session) error {
	err := s.Storage.AddMessage(session.ID, &model.Message{
		ID:        newMessageID(),
		SessionID: session.ID,
		Role:      model.RoleUser,
		Content:   "from another tab",
		Timestamp: time.Now(),
	})
	if err != nil {
		return err
	}
	return s.Storage.UpdateSession(session)
}

func TestTitleUpdatesKeepConcurrentMessages(t *testing.T) {
	svc := NewChatService(interleavingStorage{storage.NewMemoryStorage()}, responder.New(nil, firstPicker{}),
		nil, config.ChatConfig{}, config.SessionConfig{})

	session, err := svc.CreateSession("")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateSessionTitle(session.ID, "renamed"))
	messages, err := svc.GetSessionMessages(session.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, responder.Greeting, messages[0].Content)
	assert.Equal(t, "from another tab", messages[1].Content)

	// The first user message retitles the session through the same update.
	other, err := svc.CreateSession("")
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), other.ID, "where can I eat")
	require.NoError(t, err)

	got, err := svc.GetSession(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "where can I eat", got.Title)
	// greeting, user message, interleaved message, assistant reply
	assert.Len(t, got.Messages, 4)
}

func TestSessionManagement(t *testing.T) {
	svc := newChatService(t, nil)
	a, err := svc.CreateSession("a")
	require.NoError(t, err)
	_, err = svc.CreateSession("b")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateSessionTitle(a.ID, " renamed "))
	got, err := svc.GetSession(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, 1, ToSessionResponse(got).MessageCount)

	require.NoError(t, svc.DeleteSession(a.ID))
	assert.ErrorIs(t, svc.DeleteSession(a.ID), storage.ErrSessionNotFound)

	require.NoError(t, svc.ClearAllSessions())
	sessions, err := svc.GetAllSessions()
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

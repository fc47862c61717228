package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/responder"
)

func newSession(id string, at time.Time) *model.Session {
	return &model.Session{ID: id, Title: "chat " + id, CreatedAt: at, UpdatedAt: at}
}

func newMessage(sessionID, id, role, content string, at time.Time) *model.Message {
	return &model.Message{ID: id, SessionID: sessionID, Role: role, Content: content, Timestamp: at}
}

// exerciseStorage runs the behaviour both session stores must share.
func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateSession(newSession("a", base)))
	require.NoError(t, s.CreateSession(newSession("b", base.Add(time.Minute))))

	_, err := s.GetSession("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, s.AddMessage("missing", newMessage("missing", "m0", model.RoleUser, "hi", base)), ErrSessionNotFound)

	loc := &responder.Location{Lat: 38.2527, Lng: -85.7585, Name: "KFC HQ"}
	require.NoError(t, s.AddMessage("a", newMessage("a", "m1", model.RoleUser, "fried", base.Add(2*time.Minute))))
	bot := newMessage("a", "m2", model.RoleAssistant, "KFC!", base.Add(3*time.Minute))
	bot.Location = loc
	require.NoError(t, s.AddMessage("a", bot))

	messages, err := s.GetMessages("a")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "m1", messages[0].ID)
	assert.False(t, messages[0].IsBot())
	assert.True(t, messages[1].IsBot())
	assert.Equal(t, loc, messages[1].Location)

	// Mutating a returned session must not leak into the store.
	got, err := s.GetSession("a")
	require.NoError(t, err)
	got.Messages[0].Content = "changed"
	again, err := s.GetSession("a")
	require.NoError(t, err)
	assert.Equal(t, "fried", again.Messages[0].Content)

	sessions, err := s.ListSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "a", sessions[0].ID, "most recently updated first")
	assert.Len(t, sessions[0].Messages, 2)

	// A message added after the copy was read survives the header update.
	require.NoError(t, s.AddMessage("a", newMessage("a", "m3", model.RoleUser, "thanks", base.Add(4*time.Minute))))
	again.Title = "renamed"
	require.NoError(t, s.UpdateSession(again))
	renamed, err := s.GetSession("a")
	require.NoError(t, err)
	assert.Equal(t, "renamed", renamed.Title)
	require.Len(t, renamed.Messages, 3)
	assert.Equal(t, "m3", renamed.Messages[2].ID)
	assert.True(t, base.Add(4*time.Minute).Equal(renamed.UpdatedAt), "an older copy must not move UpdatedAt back")
	assert.ErrorIs(t, s.UpdateSession(newSession("missing", base)), ErrSessionNotFound)

	require.NoError(t, s.DeleteSession("b"))
	assert.ErrorIs(t, s.DeleteSession("b"), ErrSessionNotFound)
	sessions, err = s.ListSessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage()
	require.NoError(t, s.Init())
	exerciseStorage(t, s)
	assert.NoError(t, s.Close())
}

func TestDiskStorage(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStorage(dir, 1)
	require.NoError(t, s.Init())
	exerciseStorage(t, s)

	assert.FileExists(t, filepath.Join(dir, "sessions.json"))
	assert.FileExists(t, filepath.Join(dir, "sessions", "a.json"))
	assert.FileExists(t, filepath.Join(dir, "messages", "a.json"))
	assert.NoFileExists(t, filepath.Join(dir, "sessions", "b.json"))
}

func TestDiskStorageSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	first := NewDiskStorage(dir, 10)
	require.NoError(t, first.Init())
	require.NoError(t, first.CreateSession(newSession("a", base)))
	require.NoError(t, first.AddMessage("a", newMessage("a", "m1", model.RoleUser, "save a hen", base.Add(time.Minute))))
	require.NoError(t, first.Close())

	second := NewDiskStorage(dir, 10)
	require.NoError(t, second.Init())
	messages, err := second.GetMessages("a")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "save a hen", messages[0].Content)
}

func TestDiskStorageBackup(t *testing.T) {
	dir := t.TempDir()
	s := NewDiskStorage(dir, 10)
	require.NoError(t, s.Init())
	require.NoError(t, s.CreateSession(newSession("a", time.Now())))
	require.NoError(t, s.Backup())

	entries, err := os.ReadDir(filepath.Join(dir, "backup"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.FileExists(t, filepath.Join(dir, "backup", entries[0].Name(), "sessions", "a.json"))
	assert.FileExists(t, filepath.Join(dir, "backup", entries[0].Name(), "sessions.json"))
}

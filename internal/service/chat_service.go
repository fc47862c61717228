package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"nuggetube-backend/internal/config"
	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/responder"
	"nuggetube-backend/internal/storage"
	"nuggetube-backend/pkg/logger"
)

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrSessionRequired = errors.New("session id is required")
)

const (
	defaultTitlePrefix = "New chat"
	titleMaxRunes      = 30
)

// NewStorage builds the chat store named in the config, falling back to memory when the
// disk store cannot be initialised.
func NewStorage(cfg config.StorageConfig) storage.Storage {
	var store storage.Storage

	if cfg.Type == "disk" {
		store = storage.NewDiskStorage(cfg.DataDir, cfg.CacheSize)
	} else {
		store = storage.NewMemoryStorage()
	}

	if err := store.Init(); err != nil {
		logger.Errorf("Failed to initialize storage: %v", err)
		store = storage.NewMemoryStorage()
		_ = store.Init()
	}

	return store
}

type ChatService struct {
	storage    storage.Storage
	responder  *responder.Responder
	speaker    Speaker
	replyDelay time.Duration
	session    config.SessionConfig
}

func NewChatService(store storage.Storage, r *responder.Responder, speaker Speaker, chatCfg config.ChatConfig, sessionCfg config.SessionConfig) *ChatService {
	if speaker == nil {
		speaker = NopSpeaker{}
	}
	return &ChatService{
		storage:    store,
		responder:  r,
		speaker:    speaker,
		replyDelay: chatCfg.ReplyDelay,
		session:    sessionCfg,
	}
}

func newMessageID() string {
	return ulid.Make().String()
}

func sessionError(op, sessionID string, err error) error {
	if errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("%w: %s", storage.ErrSessionNotFound, sessionID)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// CreateSession stores a new session whose transcript opens with the assistant greeting.
func (s *ChatService) CreateSession(title string) (*model.Session, error) {
	now := time.Now()
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultTitlePrefix + " " + now.Format("2006-01-02 15:04")
	}

	session := &model.Session{
		ID:        uuid.New().String(),
		Title:     title,
		Messages:  make([]model.Message, 0, 1),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	greeting := &model.Message{
		ID:        newMessageID(),
		SessionID: session.ID,
		Role:      model.RoleAssistant,
		Content:   responder.Greeting,
		Timestamp: now,
	}
	if err := s.storage.AddMessage(session.ID, greeting); err != nil {
		return nil, fmt.Errorf("failed to seed greeting: %w", err)
	}
	session.Messages = append(session.Messages, *greeting)

	return session, nil
}

func (s *ChatService) GetSession(sessionID string) (*model.Session, error) {
	session, err := s.storage.GetSession(sessionID)
	if err != nil {
		return nil, sessionError("get session", sessionID, err)
	}

	return session, nil
}

func (s *ChatService) GetSessionMessages(sessionID string) ([]model.Message, error) {
	messages, err := s.storage.GetMessages(sessionID)
	if err != nil {
		return nil, sessionError("get messages", sessionID, err)
	}

	result := make([]model.Message, len(messages))
	for i, msg := range messages {
		result[i] = *msg
	}

	return result, nil
}

func (s *ChatService) addMessage(sessionID, role, content string, location *responder.Location) (*model.Message, error) {
	session, err := s.storage.GetSession(sessionID)
	if err != nil {
		return nil, sessionError("get session", sessionID, err)
	}

	message := &model.Message{
		ID:        newMessageID(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Location:  location,
		Timestamp: time.Now(),
	}

	if err := s.storage.AddMessage(sessionID, message); err != nil {
		return nil, fmt.Errorf("failed to add message: %w", err)
	}

	// The first user message replaces a generated title.
	if role == model.RoleUser && !hasUserMessage(session.Messages) && strings.HasPrefix(session.Title, defaultTitlePrefix) {
		session.Title = truncateString(content, titleMaxRunes)
		session.UpdatedAt = message.Timestamp
		if err := s.storage.UpdateSession(session); err != nil {
			logger.Warnf("Failed to retitle session %s: %v", sessionID, err)
		}
	}

	return message, nil
}

func hasUserMessage(messages []model.Message) bool {
	for _, m := range messages {
		if !m.IsBot() {
			return true
		}
	}
	return false
}

func (s *ChatService) UpdateSessionTitle(sessionID, title string) error {
	session, err := s.storage.GetSession(sessionID)
	if err != nil {
		return sessionError("get session", sessionID, err)
	}

	session.Title = strings.TrimSpace(title)
	session.UpdatedAt = time.Now()

	if err := s.storage.UpdateSession(session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// Send appends the user's message, waits the reply delay and appends the assistant's answer.
func (s *ChatService) Send(ctx context.Context, sessionID, text string) (*model.ChatResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	if _, err := s.addMessage(sessionID, model.RoleUser, text, nil); err != nil {
		return nil, err
	}

	if err := sleep(ctx, s.replyDelay); err != nil {
		return nil, err
	}

	reply := s.responder.Respond(text)
	message, err := s.addMessage(sessionID, model.RoleAssistant, reply.Text, reply.Location)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logger.Fields{
		"session": sessionID,
		"intent":  reply.Intent,
		"outcome": reply.Outcome,
	}).Debug("chat reply")

	speakAsync(s.speaker, reply.Text)
	return s.toResponse(message, reply.Intent), nil
}

// Ask answers a single query without touching any transcript.
func (s *ChatService) Ask(text string) (*model.ChatResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	reply := s.responder.Respond(text)
	speakAsync(s.speaker, reply.Text)

	return &model.ChatResponse{
		Content:   reply.Text,
		Role:      model.RoleAssistant,
		Intent:    reply.Intent,
		Location:  reply.Location,
		Speech:    DefaultSpeechOptions(),
		Timestamp: time.Now().Unix(),
	}, nil
}

func (s *ChatService) toResponse(message *model.Message, intent responder.Intent) *model.ChatResponse {
	resp := &model.ChatResponse{
		SessionID: message.SessionID,
		MessageID: message.ID,
		Content:   message.Content,
		Role:      message.Role,
		Intent:    intent,
		Location:  message.Location,
		Timestamp: message.Timestamp.Unix(),
	}
	if message.IsBot() {
		resp.Speech = DefaultSpeechOptions()
	}
	return resp
}

// StreamChat runs the same exchange as Send, emitting the stored user message and then the
// assistant reply. Both channels are closed when the exchange ends.
func (s *ChatService) StreamChat(ctx context.Context, sessionID, text string) (<-chan model.ChatResponse, <-chan error) {
	respChan := make(chan model.ChatResponse, 4)
	errChan := make(chan error, 1)

	go func() {
		defer close(respChan)
		defer close(errChan)

		text = strings.TrimSpace(text)
		if text == "" {
			errChan <- ErrEmptyMessage
			return
		}
		if sessionID == "" {
			errChan <- ErrSessionRequired
			return
		}

		userMessage, err := s.addMessage(sessionID, model.RoleUser, text, nil)
		if err != nil {
			errChan <- err
			return
		}
		respChan <- *s.toResponse(userMessage, "")

		if err := sleep(ctx, s.replyDelay); err != nil {
			errChan <- err
			return
		}

		reply := s.responder.Respond(text)
		botMessage, err := s.addMessage(sessionID, model.RoleAssistant, reply.Text, reply.Location)
		if err != nil {
			errChan <- err
			return
		}

		speakAsync(s.speaker, reply.Text)
		respChan <- *s.toResponse(botMessage, reply.Intent)
	}()

	return respChan, errChan
}

// RunCleanup deletes sessions idle for longer than the configured TTL until ctx is done.
func (s *ChatService) RunCleanup(ctx context.Context) error {
	if s.session.TTL <= 0 || s.session.CleanupInterval <= 0 {
		return nil
	}

	ticker := time.NewTicker(s.session.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.CleanupExpired(time.Now())
		}
	}
}

// CleanupExpired deletes sessions last updated before now minus the TTL and reports how many went.
func (s *ChatService) CleanupExpired(now time.Time) int {
	if s.session.TTL <= 0 {
		return 0
	}

	sessions, err := s.storage.ListSessions()
	if err != nil {
		logger.Errorf("Failed to list sessions for cleanup: %v", err)
		return 0
	}

	cutoff := now.Add(-s.session.TTL)
	removed := 0
	for _, session := range sessions {
		if !session.UpdatedAt.Before(cutoff) {
			continue
		}
		if err := s.storage.DeleteSession(session.ID); err != nil {
			logger.Errorf("Failed to delete expired session %s: %v", session.ID, err)
			continue
		}
		logger.Infof("Cleaned up expired session: %s", session.ID)
		removed++
	}

	return removed
}

func (s *ChatService) GetAllSessions() ([]*model.Session, error) {
	sessions, err := s.storage.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

func (s *ChatService) DeleteSession(sessionID string) error {
	if err := s.storage.DeleteSession(sessionID); err != nil {
		return sessionError("delete session", sessionID, err)
	}

	return nil
}

func (s *ChatService) ClearAllSessions() error {
	sessions, err := s.storage.ListSessions()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	for _, session := range sessions {
		if err := s.storage.DeleteSession(session.ID); err != nil {
			logger.Errorf("Failed to delete session %s: %v", session.ID, err)
		}
	}

	return nil
}

func (s *ChatService) Backup() error {
	return s.storage.Backup()
}

// RunBackups snapshots the store every interval until ctx is done. A zero interval disables it.
func (s *ChatService) RunBackups(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.Backup(); err != nil {
				logger.Errorf("Failed to back up sessions: %v", err)
			}
		}
	}
}

func (s *ChatService) Close() error {
	return s.storage.Close()
}

func ToSessionResponse(session *model.Session) model.SessionResponse {
	return model.SessionResponse{
		SessionID:    session.ID,
		Title:        session.Title,
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
		MessageCount: len(session.Messages),
	}
}

func truncateString(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	return string(runes[:maxLen]) + "..."
}

// sleep waits d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

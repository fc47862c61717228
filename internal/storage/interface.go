package storage

import (
	"context"

	"nuggetube-backend/internal/model"
)

// Storage keeps chat sessions and their append-only transcripts. UpdateSession writes the
// header fields only; messages are added through AddMessage and never replaced.
type Storage interface {
	CreateSession(session *model.Session) error
	GetSession(sessionID string) (*model.Session, error)
	UpdateSession(session *model.Session) error
	DeleteSession(sessionID string) error
	ListSessions() ([]*model.Session, error)

	AddMessage(sessionID string, message *model.Message) error
	GetMessages(sessionID string) ([]*model.Message, error)

	Init() error
	Close() error
	Backup() error
}

// CounterStore keeps one record per user with the chicken and chick counters. Reads either
// find the record or return ErrUserNotFound; Increment creates the record on first write.
type CounterStore interface {
	GetUser(ctx context.Context, userID string) (*model.UserRecord, error)
	Increment(ctx context.Context, profile model.UserProfile, chickens, chicks int) (*model.UserRecord, error)
	TopUsers(ctx context.Context, limit int) ([]model.UserRecord, error)
	CountUsers(ctx context.Context) (int, error)
	Close() error
}

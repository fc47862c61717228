package model

import (
	"time"

	"nuggetube-backend/internal/classifier"
	"nuggetube-backend/internal/responder"
)

const (
	RoleAssistant = "assistant"
	RoleUser      = "user"
)

// SpeechOptions tells the browser how to voice a reply.
type SpeechOptions struct {
	Rate            float64  `json:"rate"`
	Pitch           float64  `json:"pitch"`
	Volume          float64  `json:"volume"`
	PreferredVoices []string `json:"preferred_voices,omitempty"`
}

type ChatResponse struct {
	SessionID string              `json:"session_id,omitempty"`
	MessageID string              `json:"message_id,omitempty"`
	Content   string              `json:"content"`
	Role      string              `json:"role"`
	Intent    responder.Intent    `json:"intent,omitempty"`
	Location  *responder.Location `json:"location,omitempty"`
	Speech    *SpeechOptions      `json:"speech,omitempty"`
	Timestamp int64               `json:"timestamp"`
}

type SessionResponse struct {
	SessionID    string    `json:"session_id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// Message is append-only; Role is the sender flag.
type Message struct {
	ID        string              `json:"id"`
	SessionID string              `json:"session_id"`
	Role      string              `json:"role"`
	Content   string              `json:"content"`
	Location  *responder.Location `json:"location,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

func (m Message) IsBot() bool {
	return m.Role == RoleAssistant
}

type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Recommendation struct {
	Kind     string              `json:"kind"`
	Name     string              `json:"name"`
	Message  string              `json:"message"`
	Location *responder.Location `json:"location"`
}

type DrawingResponse struct {
	IsFood         bool                    `json:"is_food"`
	Descriptor     classifier.Descriptor   `json:"descriptor"`
	Counts         classifier.BucketCounts `json:"counts"`
	Scores         classifier.Scores       `json:"scores"`
	Recommendation Recommendation          `json:"recommendation"`
}

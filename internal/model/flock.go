package model

import "time"

// UserProfile is the identity forwarded by the auth proxy.
type UserProfile struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

// UserRecord is the per-user counter document.
type UserRecord struct {
	UserID       string    `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	PhotoURL     string    `json:"photo_url"`
	ChickenCount int       `json:"chicken_count"`
	ChickCount   int       `json:"chick_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
)

func (m Mood) Emoji() string {
	switch m {
	case MoodHappy:
		return "😊"
	case MoodSad:
		return "😢"
	case MoodAngry:
		return "😠"
	default:
		return "😐"
	}
}

func (m Mood) Label() string {
	switch m {
	case MoodHappy:
		return "Happy & Content"
	case MoodSad:
		return "Sad & Lonely"
	case MoodAngry:
		return "Angry & Upset"
	default:
		return "Neutral"
	}
}

type Bird struct {
	ID          int  `json:"id"`
	IsChick     bool `json:"is_chick"`
	IsDrumstick bool `json:"is_drumstick"`
	Mood        Mood `json:"mood"`
}

type FlockResponse struct {
	Birds        []Bird `json:"birds"`
	ChickenCount int    `json:"chicken_count"`
	ChickCount   int    `json:"chick_count"`
}

type SpawnResponse struct {
	Bird         Bird `json:"bird"`
	ChickenCount int  `json:"chicken_count"`
	ChickCount   int  `json:"chick_count"`
	Persisted    bool `json:"persisted"`
}

type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	UserID       string `json:"user_id"`
	DisplayName  string `json:"display_name"`
	PhotoURL     string `json:"photo_url"`
	ChickenCount int    `json:"chicken_count"`
	ChickCount   int    `json:"chick_count"`
}

type Leaderboard struct {
	Entries       []LeaderboardEntry `json:"entries"`
	TotalChickens int                `json:"total_chickens"`
	TotalUsers    int                `json:"total_users"`
	ViewerRank    *int               `json:"viewer_rank"`
}

type AdoptableChicken struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	DefaultName string  `json:"default_name"`
	CustomName  string  `json:"custom_name,omitempty"`
	Backstory   string  `json:"backstory"`
	Center      string  `json:"center"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/elliotchance/pie/v2"

	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/storage"
	"nuggetube-backend/pkg/logger"
)

var (
	ErrUnauthenticated   = errors.New("Please login to generate chickens!")
	ErrBirdNotFound      = errors.New("bird not found")
	ErrChickImmutable    = errors.New("chicks cannot be turned into drumsticks")
	ErrDrumstickCare     = errors.New("drumsticks cannot be cared for")
	ErrUnknownCareAction = errors.New("unknown care action")
)

const (
	chickChance = 0.1

	// maxDisplayedBirds bounds one user's on-screen flock; the oldest birds scroll off.
	maxDisplayedBirds = 200
	// maxRosters bounds the cached rosters; the least recently used one is dropped and
	// rebuilt from the counter store on its next access.
	maxRosters = 1000
)

// Chance returns a float in [0, 1). *rand.Rand from math/rand/v2 satisfies it.
type Chance interface {
	Float64() float64
}

type globalChance struct{}

func (globalChance) Float64() float64 { return rand.Float64() }

var careMoods = map[string]model.Mood{
	"feed":   model.MoodHappy,
	"water":  model.MoodHappy,
	"bath":   model.MoodHappy,
	"play":   model.MoodHappy,
	"pet":    model.MoodHappy,
	"ignore": model.MoodSad,
}

// roster is the displayed flock of one user. Counts mirror the counter store and survive Clear.
type roster struct {
	birds    []model.Bird
	nextID   int
	chickens int
	chicks   int
	maxBirds int
	lastUsed uint64
}

func (r *roster) add(isChick bool) model.Bird {
	bird := model.Bird{ID: r.nextID, IsChick: isChick, Mood: model.MoodNeutral}
	r.nextID++
	r.birds = append(r.birds, bird)
	if over := len(r.birds) - r.maxBirds; over > 0 {
		r.birds = append(r.birds[:0:0], r.birds[over:]...)
	}
	return bird
}

func (r *roster) find(id int) *model.Bird {
	for i := range r.birds {
		if r.birds[i].ID == id {
			return &r.birds[i]
		}
	}
	return nil
}

func (r *roster) response() *model.FlockResponse {
	return &model.FlockResponse{
		Birds:        append([]model.Bird{}, r.birds...),
		ChickenCount: r.chickens,
		ChickCount:   r.chicks,
	}
}

type FlockService struct {
	counters        storage.CounterStore
	chance          Chance
	leaderboardSize int

	mu         sync.Mutex
	rosters    map[string]*roster
	clock      uint64
	maxBirds   int
	maxRosters int
}

func NewFlockService(counters storage.CounterStore, chance Chance, leaderboardSize int) *FlockService {
	if chance == nil {
		chance = globalChance{}
	}
	if leaderboardSize <= 0 {
		leaderboardSize = 10
	}
	return &FlockService{
		counters:        counters,
		chance:          chance,
		leaderboardSize: leaderboardSize,
		rosters:         make(map[string]*roster),
		maxBirds:        maxDisplayedBirds,
		maxRosters:      maxRosters,
	}
}

// rosterFor returns the user's roster, rebuilding it from stored counts on first access:
// chickens first, then chicks, all neutral, at most maxBirds of them. Callers hold s.mu.
func (s *FlockService) rosterFor(ctx context.Context, userID string) *roster {
	s.clock++
	if r, ok := s.rosters[userID]; ok {
		r.lastUsed = s.clock
		return r
	}

	r := &roster{maxBirds: s.maxBirds, lastUsed: s.clock}
	record, err := s.counters.GetUser(ctx, userID)
	switch {
	case err == nil:
		chickens := min(record.ChickenCount, s.maxBirds)
		chicks := min(record.ChickCount, s.maxBirds-chickens)
		for i := 0; i < chickens; i++ {
			r.add(false)
		}
		for i := 0; i < chicks; i++ {
			r.add(true)
		}
		r.chickens, r.chicks = record.ChickenCount, record.ChickCount
	case errors.Is(err, storage.ErrUserNotFound):
	default:
		logger.Warnf("Failed to load counters for %s: %v", userID, err)
	}

	s.evictRosters()
	s.rosters[userID] = r
	return r
}

// evictRosters makes room for one more roster by dropping the least recently used.
func (s *FlockService) evictRosters() {
	for len(s.rosters) >= s.maxRosters {
		oldest := ""
		var oldestUse uint64
		for id, r := range s.rosters {
			if oldest == "" || r.lastUsed < oldestUse {
				oldest, oldestUse = id, r.lastUsed
			}
		}
		delete(s.rosters, oldest)
	}
}

// Spawn adds one bird, a chick one time in ten, and records it in the counter store.
// A store failure is logged and the bird is still shown.
func (s *FlockService) Spawn(ctx context.Context, user model.UserProfile) (*model.SpawnResponse, error) {
	if user.UserID == "" {
		return nil, ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rosterFor(ctx, user.UserID)
	isChick := s.chance.Float64() < chickChance
	bird := r.add(isChick)

	chickens, chicks := 1, 0
	if isChick {
		chickens, chicks = 0, 1
	}

	persisted := true
	record, err := s.counters.Increment(ctx, user, chickens, chicks)
	if err != nil {
		logger.WithFields(logger.Fields{"user": user.UserID, "error": err}).Warn("Failed to persist chicken counts")
		persisted = false
		r.chickens += chickens
		r.chicks += chicks
	} else {
		r.chickens, r.chicks = record.ChickenCount, record.ChickCount
	}

	return &model.SpawnResponse{
		Bird:         bird,
		ChickenCount: r.chickens,
		ChickCount:   r.chicks,
		Persisted:    persisted,
	}, nil
}

func (s *FlockService) Roster(ctx context.Context, userID string) (*model.FlockResponse, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rosterFor(ctx, userID).response(), nil
}

// Clear empties the displayed flock only; stored counts stay.
func (s *FlockService) Clear(ctx context.Context, userID string) (*model.FlockResponse, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rosterFor(ctx, userID)
	r.birds = nil
	return r.response(), nil
}

func (s *FlockService) Toggle(ctx context.Context, userID string, birdID int) (*model.Bird, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bird := s.rosterFor(ctx, userID).find(birdID)
	if bird == nil {
		return nil, ErrBirdNotFound
	}
	if bird.IsChick {
		return nil, ErrChickImmutable
	}

	bird.IsDrumstick = !bird.IsDrumstick
	result := *bird
	return &result, nil
}

func (s *FlockService) Care(ctx context.Context, userID string, birdID int, action string) (*model.Bird, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	mood, ok := careMoods[action]
	if !ok {
		return nil, ErrUnknownCareAction
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bird := s.rosterFor(ctx, userID).find(birdID)
	if bird == nil {
		return nil, ErrBirdNotFound
	}
	if bird.IsDrumstick {
		return nil, ErrDrumstickCare
	}

	bird.Mood = mood
	result := *bird
	return &result, nil
}

// Leaderboard lists the top users by chicken count. TotalChickens sums the listed entries only,
// TotalUsers counts every stored user, and ViewerRank is set when the viewer is listed.
func (s *FlockService) Leaderboard(ctx context.Context, viewerID string) (*model.Leaderboard, error) {
	records, err := s.counters.TopUsers(ctx, s.leaderboardSize)
	if err != nil {
		return nil, err
	}

	board := &model.Leaderboard{Entries: make([]model.LeaderboardEntry, 0, len(records))}
	for i, rec := range records {
		board.Entries = append(board.Entries, model.LeaderboardEntry{
			Rank:         i + 1,
			UserID:       rec.UserID,
			DisplayName:  rec.DisplayName,
			PhotoURL:     rec.PhotoURL,
			ChickenCount: rec.ChickenCount,
			ChickCount:   rec.ChickCount,
		})
		board.TotalChickens += rec.ChickenCount
	}

	if board.TotalUsers, err = s.counters.CountUsers(ctx); err != nil {
		logger.Warnf("Failed to count users: %v", err)
		board.TotalUsers = len(records)
	}

	if viewerID != "" {
		idx := pie.FindFirstUsing(board.Entries, func(e model.LeaderboardEntry) bool {
			return e.UserID == viewerID
		})
		if idx >= 0 {
			rank := idx + 1
			board.ViewerRank = &rank
		}
	}

	return board, nil
}

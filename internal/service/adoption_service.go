package service

import (
	"errors"
	"strings"
	"sync"

	"nuggetube-backend/internal/model"
	"nuggetube-backend/internal/reference"
	"nuggetube-backend/internal/responder"
)

var ErrChickenNotFound = errors.New("rescue chicken not found")

// AdoptionService lists the rescue chickens and remembers the names each user gave them.
type AdoptionService struct {
	table *reference.Table

	mu    sync.RWMutex
	names map[string]map[int]string
}

func NewAdoptionService(table *reference.Table) *AdoptionService {
	if table == nil {
		table = reference.Default
	}
	return &AdoptionService{
		table: table,
		names: make(map[string]map[int]string),
	}
}

func (s *AdoptionService) List(userID string) []model.AdoptableChicken {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rescues := s.table.RescueChickens()
	chickens := make([]model.AdoptableChicken, 0, len(rescues))
	for _, rc := range rescues {
		chickens = append(chickens, s.toAdoptable(userID, rc))
	}
	return chickens
}

// Rename sets the user's name for a chicken; a blank name restores the default.
func (s *AdoptionService) Rename(userID string, id int, name string) (*model.AdoptableChicken, error) {
	rc, ok := s.table.RescueChicken(id)
	if !ok {
		return nil, ErrChickenNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	userNames := s.names[userID]
	if name == "" {
		delete(userNames, id)
	} else {
		if userNames == nil {
			userNames = make(map[int]string)
			s.names[userID] = userNames
		}
		userNames[id] = name
	}

	chicken := s.toAdoptable(userID, rc)
	return &chicken, nil
}

// Adopt returns the adoption center where the chicken can be met.
func (s *AdoptionService) Adopt(id int) (*responder.Location, error) {
	rc, ok := s.table.RescueChicken(id)
	if !ok {
		return nil, ErrChickenNotFound
	}

	center, ok := s.table.Lookup(rc.Center)
	if !ok {
		return nil, ErrChickenNotFound
	}
	return responder.LocationOf(center), nil
}

// toAdoptable expects s.mu to be held.
func (s *AdoptionService) toAdoptable(userID string, rc reference.RescueChicken) model.AdoptableChicken {
	chicken := model.AdoptableChicken{
		ID:          rc.ID,
		Name:        rc.DefaultName,
		DefaultName: rc.DefaultName,
		CustomName:  s.names[userID][rc.ID],
		Backstory:   rc.Backstory,
		Center:      rc.Center,
	}
	if chicken.CustomName != "" {
		chicken.Name = chicken.CustomName
	}
	if center, ok := s.table.Lookup(rc.Center); ok {
		chicken.Lat, chicken.Lng = center.Lat, center.Lng
	}
	return chicken
}

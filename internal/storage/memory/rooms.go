package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"room_ledger/internal/domain"
)

type Rooms struct {
	mu       sync.RWMutex
	byNumber map[string]domain.Room
}

func NewRooms() *Rooms {
	return &Rooms{byNumber: make(map[string]domain.Room)}
}

func (s *Rooms) Insert(_ context.Context, r domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := r.DedupeKey()
	if _, ok := s.byNumber[key]; ok {
		return fmt.Errorf("room %s: %w", key, domain.ErrDuplicateRoom)
	}
	s.byNumber[key] = r
	return nil
}

func (s *Rooms) Get(_ context.Context, number string) (domain.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byNumber[number]
	return r, ok
}

func (s *Rooms) List(ctx context.Context) []domain.Room {
	snap := s.Snapshot(ctx)
	out := make([]domain.Room, 0, len(snap))
	for _, r := range snap {
		out = append(out, r)
	}
	SortRooms(out)
	return out
}

func (s *Rooms) Snapshot(_ context.Context) map[string]domain.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.Room, len(s.byNumber))
	for k, r := range s.byNumber {
		out[k] = r
	}
	return out
}

// SortRooms orders rooms by number so listings are stable between calls.
func SortRooms(rs []domain.Room) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].Number < rs[j].Number })
}

package app

import (
	"context"
	"fmt"
	"sync"

	"room_ledger/internal/domain"
)

type RoomCatalog struct {
	repo domain.RoomRepository
	// writes holds catalog inserts out of in-flight searches.
	// Pass ReservationEngine.CatalogLock when the engine reads the same repository; nil for none.
	writes sync.Locker
}

func NewRoomCatalog(r domain.RoomRepository, writes sync.Locker) *RoomCatalog {
	return &RoomCatalog{repo: r, writes: writes}
}

func (s *RoomCatalog) Add(ctx context.Context, r domain.Room) error {
	if s.writes != nil {
		s.writes.Lock()
		defer s.writes.Unlock()
	}
	return s.repo.Insert(ctx, r)
}

// AddAll adds rooms in order and stops at the first failure; rooms before it stay added.
func (s *RoomCatalog) AddAll(ctx context.Context, rooms []domain.Room) error {
	for i, r := range rooms {
		if err := s.Add(ctx, r); err != nil {
			return fmt.Errorf("add room %d of %d: %w", i+1, len(rooms), err)
		}
	}
	return nil
}

func (s *RoomCatalog) Get(ctx context.Context, number string) (domain.Room, error) {
	r, ok := s.repo.Get(ctx, number)
	if !ok {
		return domain.Room{}, fmt.Errorf("room %s: %w", number, domain.ErrRoomNotFound)
	}
	return r, nil
}

func (s *RoomCatalog) ListAll(ctx context.Context) []domain.Room {
	return s.repo.List(ctx)
}

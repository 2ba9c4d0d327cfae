package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"room_ledger/internal/domain"
)

// Reservations is a set keyed by Reservation.DedupeKey.
type Reservations struct {
	mu    sync.RWMutex
	byKey map[domain.ReservationKey]domain.Reservation
}

func NewReservations() *Reservations {
	return &Reservations{byKey: make(map[domain.ReservationKey]domain.Reservation)}
}

func (s *Reservations) Insert(_ context.Context, r domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := r.DedupeKey()
	if _, ok := s.byKey[k]; ok {
		return fmt.Errorf("room %s %s-%s: %w", k.RoomNumber,
			domain.FormatDay(k.CheckIn), domain.FormatDay(k.CheckOut), domain.ErrAlreadyReserved)
	}
	s.byKey[k] = r
	return nil
}

func (s *Reservations) Contains(_ context.Context, k domain.ReservationKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byKey[k]
	return ok
}

func (s *Reservations) List(_ context.Context) []domain.Reservation {
	s.mu.RLock()
	out := make([]domain.Reservation, 0, len(s.byKey))
	for _, r := range s.byKey {
		out = append(out, r)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Room.Number != b.Room.Number {
			return a.Room.Number < b.Room.Number
		}
		if !a.CheckIn.Equal(b.CheckIn) {
			return a.CheckIn.Before(b.CheckIn)
		}
		return a.CheckOut.Before(b.CheckOut)
	})
	return out
}

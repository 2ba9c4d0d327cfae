package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"room_ledger/internal/adapters/observability"
	"room_ledger/internal/domain"
)

// snapshot is a consistent copy of the catalog and reservation set.
// Both only ever grow, so their sizes identify the state for cache keys.
type snapshot struct {
	rooms        map[string]domain.Room
	reservations []domain.Reservation
}

func (s snapshot) version() string {
	return fmt.Sprintf("%d.%d", len(s.rooms), len(s.reservations))
}

func (e *ReservationEngine) snapshot(ctx context.Context) snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshot{rooms: e.rooms.Snapshot(ctx), reservations: e.reservations.List(ctx)}
}

// FindAvailableRooms returns the rooms free for [checkIn, checkOut), or, when none are,
// the rooms free one FallbackShift later. Use Search to learn which window answered.
func (e *ReservationEngine) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]domain.Room, error) {
	a, err := e.Search(ctx, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return a.Rooms, nil
}

// FreeRooms checks only the requested window, without the shifted retry.
func (e *ReservationEngine) FreeRooms(ctx context.Context, checkIn, checkOut time.Time) ([]domain.Room, error) {
	checkIn, checkOut = domain.Day(checkIn), domain.Day(checkOut)
	if err := domain.ValidateRange(checkIn, checkOut); err != nil {
		return nil, err
	}
	return available(e.snapshot(ctx), checkIn, checkOut), nil
}

// Search runs the availability algorithm with a single shifted retry.
func (e *ReservationEngine) Search(ctx context.Context, checkIn, checkOut time.Time) (domain.Availability, error) {
	checkIn, checkOut = domain.Day(checkIn), domain.Day(checkOut)
	if err := domain.ValidateRange(checkIn, checkOut); err != nil {
		return domain.Availability{}, err
	}

	snap := e.snapshot(ctx)
	key := fmt.Sprintf("avail:%s:%s:%s:%s", e.instance, snap.version(),
		checkIn.Format(time.DateOnly), checkOut.Format(time.DateOnly))

	if e.cache != nil {
		var cached domain.Availability
		ok, err := e.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("availability cache get failed")
		} else if ok {
			if cached.Rooms == nil {
				cached.Rooms = []domain.Room{}
			}
			observability.ObserveSearch(searchResult(cached))
			return cached, nil
		}
	}

	out := search(snap, checkIn, checkOut)
	observability.ObserveSearch(searchResult(out))

	if e.cache != nil {
		if err := e.cache.Set(ctx, key, out, int(e.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("availability cache set failed")
		}
	}
	return out, nil
}

func search(snap snapshot, checkIn, checkOut time.Time) domain.Availability {
	if rooms := available(snap, checkIn, checkOut); len(rooms) > 0 {
		return domain.Availability{Rooms: rooms, CheckIn: checkIn, CheckOut: checkOut}
	}
	in, out := domain.ShiftWindow(checkIn, checkOut)
	return domain.Availability{Rooms: available(snap, in, out), CheckIn: in, CheckOut: out, Shifted: true}
}

// available removes from a copy of the catalog every room with a reservation
// the window is not clear of.
func available(snap snapshot, checkIn, checkOut time.Time) []domain.Room {
	pool := make(map[string]domain.Room, len(snap.rooms))
	for k, r := range snap.rooms {
		pool[k] = r
	}
	for _, r := range snap.reservations {
		if !r.ClearOf(checkIn, checkOut) {
			delete(pool, r.Room.DedupeKey())
		}
	}

	out := make([]domain.Room, 0, len(pool))
	for _, r := range pool {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func searchResult(a domain.Availability) string {
	switch {
	case len(a.Rooms) == 0:
		return "none"
	case a.Shifted:
		return "shifted"
	}
	return "original"
}

// GetCustomerReservations returns the reservations held by c, matched by email.
func (e *ReservationEngine) GetCustomerReservations(ctx context.Context, c domain.Customer) []domain.Reservation {
	all := e.ListAll(ctx)
	out := make([]domain.Reservation, 0)
	for _, r := range all {
		if r.Customer.Is(c) {
			out = append(out, r)
		}
	}
	return out
}

func (e *ReservationEngine) ListAll(ctx context.Context) []domain.Reservation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.reservations.List(ctx)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"room_ledger/internal/adapters/observability"
	"room_ledger/internal/domain"
)

// ReservationEngine owns the reservation set and reads the room catalog to answer availability.
type ReservationEngine struct {
	// mu makes Reserve's membership check and insert atomic, and gives searches
	// a consistent view of catalog and reservations. Catalog writes take it via CatalogLock.
	mu           sync.RWMutex
	rooms        domain.RoomRepository
	reservations domain.ReservationRepository

	cache    domain.Cache // optional
	cacheTTL time.Duration
	instance string
}

func NewReservationEngine(rooms domain.RoomRepository, reservations domain.ReservationRepository, c domain.Cache, ttl time.Duration) *ReservationEngine {
	return &ReservationEngine{
		rooms:        rooms,
		reservations: reservations,
		cache:        c,
		cacheTTL:     ttl,
		instance:     uuid.NewString(),
	}
}

// CatalogLock is the engine's exclusive lock, for writers of the room repository it searches.
func (e *ReservationEngine) CatalogLock() sync.Locker { return &e.mu }

// Reserve records a reservation unless one with the same room and exact dates exists.
// It does not check that the room is in the catalog; overlapping but unequal ranges are accepted.
func (e *ReservationEngine) Reserve(ctx context.Context, c domain.Customer, r domain.Room, checkIn, checkOut time.Time) (domain.Reservation, error) {
	checkIn, checkOut = domain.Day(checkIn), domain.Day(checkOut)
	if err := domain.ValidateRange(checkIn, checkOut); err != nil {
		observability.ObserveReservation("invalid")
		return domain.Reservation{}, err
	}

	res := domain.NewReservation(c, r, checkIn, checkOut)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.reservations.Contains(ctx, res.DedupeKey()) {
		observability.ObserveReservation("duplicate")
		return domain.Reservation{}, errAlreadyReserved(res)
	}
	if err := e.reservations.Insert(ctx, res); err != nil {
		if errors.Is(err, domain.ErrAlreadyReserved) {
			observability.ObserveReservation("duplicate")
		}
		return domain.Reservation{}, err
	}

	observability.ObserveReservation("created")
	log.Debug().
		Str("room", r.Number).
		Str("email", c.Email).
		Str("check_in", domain.FormatDay(checkIn)).
		Str("check_out", domain.FormatDay(checkOut)).
		Msg("reservation created")
	return res, nil
}

func errAlreadyReserved(r domain.Reservation) error {
	return fmt.Errorf("room %s %s-%s: %w", r.Room.Number,
		domain.FormatDay(r.CheckIn), domain.FormatDay(r.CheckOut), domain.ErrAlreadyReserved)
}

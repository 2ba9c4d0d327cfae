package domain

import "context"

// Repositories hand out copies; callers never see the backing maps.

type CustomerRepository interface {
	// Insert fails with ErrDuplicateCustomer when the email is taken.
	Insert(ctx context.Context, c Customer) error
	Get(ctx context.Context, email string) (Customer, bool)
	List(ctx context.Context) []Customer
}

type RoomRepository interface {
	// Insert fails with ErrDuplicateRoom when the number is taken.
	Insert(ctx context.Context, r Room) error
	Get(ctx context.Context, number string) (Room, bool)
	List(ctx context.Context) []Room
	// Snapshot copies the whole catalog keyed by room number.
	Snapshot(ctx context.Context) map[string]Room
}

type ReservationRepository interface {
	// Insert fails with ErrAlreadyReserved when an equal reservation exists.
	Insert(ctx context.Context, r Reservation) error
	Contains(ctx context.Context, k ReservationKey) bool
	List(ctx context.Context) []Reservation
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
}

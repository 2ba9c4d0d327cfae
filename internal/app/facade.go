package app

import (
	"context"
	"fmt"
	"time"

	"room_ledger/internal/domain"
)

// BookingFacade is the surface callers use; it resolves customers and rooms and delegates.
type BookingFacade struct {
	customers *CustomerRegistry
	rooms     *RoomCatalog
	engine    *ReservationEngine
}

func NewBookingFacade(c *CustomerRegistry, r *RoomCatalog, e *ReservationEngine) *BookingFacade {
	return &BookingFacade{customers: c, rooms: r, engine: e}
}

func (f *BookingFacade) customer(ctx context.Context, email string) (domain.Customer, error) {
	c, ok := f.customers.Find(ctx, email)
	if !ok {
		return domain.Customer{}, fmt.Errorf("%s: %w", email, domain.ErrCustomerNotFound)
	}
	return c, nil
}

// BookRoom reserves room for the customer registered under email.
func (f *BookingFacade) BookRoom(ctx context.Context, email string, room domain.Room, checkIn, checkOut time.Time) (domain.Reservation, error) {
	c, err := f.customer(ctx, email)
	if err != nil {
		return domain.Reservation{}, err
	}
	return f.engine.Reserve(ctx, c, room, checkIn, checkOut)
}

// BookRoomByNumber is BookRoom with the room looked up in the catalog first.
func (f *BookingFacade) BookRoomByNumber(ctx context.Context, email, number string, checkIn, checkOut time.Time) (domain.Reservation, error) {
	c, err := f.customer(ctx, email)
	if err != nil {
		return domain.Reservation{}, err
	}
	room, err := f.rooms.Get(ctx, number)
	if err != nil {
		return domain.Reservation{}, err
	}
	return f.engine.Reserve(ctx, c, room, checkIn, checkOut)
}

func (f *BookingFacade) GetReservationsFor(ctx context.Context, email string) ([]domain.Reservation, error) {
	c, err := f.customer(ctx, email)
	if err != nil {
		return nil, err
	}
	return f.engine.GetCustomerReservations(ctx, c), nil
}

func (f *BookingFacade) FindRooms(ctx context.Context, checkIn, checkOut time.Time) (domain.Availability, error) {
	return f.engine.Search(ctx, checkIn, checkOut)
}

// FreeRooms answers for the requested window only.
func (f *BookingFacade) FreeRooms(ctx context.Context, checkIn, checkOut time.Time) ([]domain.Room, error) {
	return f.engine.FreeRooms(ctx, checkIn, checkOut)
}

func (f *BookingFacade) CreateCustomer(ctx context.Context, email, firstName, lastName string) (domain.Customer, error) {
	return f.customers.Register(ctx, email, firstName, lastName)
}

// GetCustomer reports absence with ok=false rather than an error.
func (f *BookingFacade) GetCustomer(ctx context.Context, email string) (domain.Customer, bool) {
	return f.customers.Find(ctx, email)
}

func (f *BookingFacade) GetRoom(ctx context.Context, number string) (domain.Room, error) {
	return f.rooms.Get(ctx, number)
}

func (f *BookingFacade) AddRoom(ctx context.Context, r domain.Room) error {
	return f.rooms.Add(ctx, r)
}

func (f *BookingFacade) AddRooms(ctx context.Context, rooms []domain.Room) error {
	return f.rooms.AddAll(ctx, rooms)
}

func (f *BookingFacade) GetAllRooms(ctx context.Context) []domain.Room {
	return f.rooms.ListAll(ctx)
}

func (f *BookingFacade) GetAllCustomers(ctx context.Context) []domain.Customer {
	return f.customers.ListAll(ctx)
}

func (f *BookingFacade) GetAllReservations(ctx context.Context) []domain.Reservation {
	return f.engine.ListAll(ctx)
}

package domain

import (
	"fmt"
	"time"
)

type Reservation struct {
	Customer Customer  `json:"customer"`
	Room     Room      `json:"room"`
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
}

// ReservationKey is the uniqueness projection of a reservation: room and dates, never the customer.
// Two different customers asking for the same room on the same dates produce equal keys.
type ReservationKey struct {
	RoomNumber string
	CheckIn    time.Time
	CheckOut   time.Time
}

func NewReservation(c Customer, r Room, checkIn, checkOut time.Time) Reservation {
	return Reservation{Customer: c, Room: r, CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
}

func (r Reservation) DedupeKey() ReservationKey {
	return ReservationKey{RoomNumber: r.Room.DedupeKey(), CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}

// ClearOf reports whether the window [checkIn, checkOut) leaves r's room usable.
// Each endpoint is tested on its own: check-in may land on r's check-out day and
// check-out may land on r's check-in day, so back-to-back stays are allowed.
func (r Reservation) ClearOf(checkIn, checkOut time.Time) bool {
	checkInOK := checkIn.Before(r.CheckIn) || !checkIn.Before(r.CheckOut)
	checkOutOK := !checkOut.After(r.CheckIn) || checkOut.After(r.CheckOut)
	return checkInOK && checkOutOK
}

func (r Reservation) String() string {
	return fmt.Sprintf("Reservation for %s %s Dates: %s - %s.",
		r.Customer, r.Room, FormatDay(r.CheckIn), FormatDay(r.CheckOut))
}

// Availability is the outcome of a search: the rooms found and the window that produced them.
type Availability struct {
	Rooms    []Room    `json:"rooms"`
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
	Shifted  bool      `json:"shifted"`
}

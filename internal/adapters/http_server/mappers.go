package httpserver

import (
	"github.com/shopspring/decimal"

	"room_ledger/internal/domain"
)

type roomDTO struct {
	Number string `json:"number"`
	Price  string `json:"price"`
	Type   string `json:"type"`
	Free   bool   `json:"free"`
}

type customerDTO struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type reservationDTO struct {
	Customer customerDTO `json:"customer"`
	Room     roomDTO     `json:"room"`
	CheckIn  string      `json:"checkIn"`
	CheckOut string      `json:"checkOut"`
}

type availabilityDTO struct {
	CheckIn  string    `json:"checkIn"`
	CheckOut string    `json:"checkOut"`
	Shifted  bool      `json:"shifted"`
	Rooms    []roomDTO `json:"rooms"`
}

type roomRequest struct {
	Number string          `json:"number"`
	Price  decimal.Decimal `json:"price"`
	Type   string          `json:"type"`
}

type customerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type reservationRequest struct {
	Email    string `json:"email"`
	Room     string `json:"room"`
	CheckIn  string `json:"checkIn"`  // MM/DD/YYYY
	CheckOut string `json:"checkOut"` // MM/DD/YYYY
}

func (r roomRequest) toDomain() (domain.Room, error) {
	t, err := domain.ParseRoomType(r.Type)
	if err != nil {
		return domain.Room{}, err
	}
	return domain.NewRoom(r.Number, r.Price, t)
}

func mapRoom(r domain.Room) roomDTO {
	return roomDTO{Number: r.Number, Price: r.Price.StringFixed(2), Type: r.Type.String(), Free: r.IsFree()}
}

func mapRooms(rs []domain.Room) []roomDTO {
	out := make([]roomDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, mapRoom(r))
	}
	return out
}

func mapCustomer(c domain.Customer) customerDTO {
	return customerDTO{Email: c.Email, FirstName: c.FirstName, LastName: c.LastName}
}

func mapCustomers(cs []domain.Customer) []customerDTO {
	out := make([]customerDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, mapCustomer(c))
	}
	return out
}

func mapReservation(r domain.Reservation) reservationDTO {
	return reservationDTO{
		Customer: mapCustomer(r.Customer),
		Room:     mapRoom(r.Room),
		CheckIn:  domain.FormatDay(r.CheckIn),
		CheckOut: domain.FormatDay(r.CheckOut),
	}
}

func mapReservations(rs []domain.Reservation) []reservationDTO {
	out := make([]reservationDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, mapReservation(r))
	}
	return out
}

func mapAvailability(a domain.Availability) availabilityDTO {
	return availabilityDTO{
		CheckIn:  domain.FormatDay(a.CheckIn),
		CheckOut: domain.FormatDay(a.CheckOut),
		Shifted:  a.Shifted,
		Rooms:    mapRooms(a.Rooms),
	}
}

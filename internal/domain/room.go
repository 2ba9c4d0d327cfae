package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type RoomType int

const (
	Single RoomType = iota + 1
	Double
)

func (t RoomType) String() string {
	switch t {
	case Single:
		return "SINGLE"
	case Double:
		return "DOUBLE"
	}
	return fmt.Sprintf("RoomType(%d)", int(t))
}

// ParseRoomType accepts the type names case-insensitively, and the menu shortcuts "1" and "2".
func ParseRoomType(s string) (RoomType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SINGLE", "1":
		return Single, nil
	case "DOUBLE", "2":
		return Double, nil
	}
	return 0, fmt.Errorf("room type %q: %w", s, ErrInvalidRoom)
}

func (t RoomType) MarshalText() ([]byte, error) {
	if t != Single && t != Double {
		return nil, fmt.Errorf("room type %d: %w", int(t), ErrInvalidRoom)
	}
	return []byte(t.String()), nil
}

func (t *RoomType) UnmarshalText(b []byte) error {
	v, err := ParseRoomType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type Room struct {
	Number string          `json:"number"`
	Price  decimal.Decimal `json:"price"`
	Type   RoomType        `json:"type"`
}

func NewRoom(number string, price decimal.Decimal, t RoomType) (Room, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return Room{}, fmt.Errorf("empty room number: %w", ErrInvalidRoom)
	}
	if price.IsNegative() {
		return Room{}, fmt.Errorf("room %s price %s: %w", number, price, ErrInvalidRoom)
	}
	if t != Single && t != Double {
		return Room{}, fmt.Errorf("room %s type %d: %w", number, int(t), ErrInvalidRoom)
	}
	return Room{Number: number, Price: price, Type: t}, nil
}

// NewFreeRoom is a room that costs nothing to book.
func NewFreeRoom(number string, t RoomType) (Room, error) {
	return NewRoom(number, decimal.Zero, t)
}

// DedupeKey is the catalog key; re-entering a number with a different price or type is a duplicate.
func (r Room) DedupeKey() string { return r.Number }

func (r Room) IsFree() bool { return r.Price.IsZero() }

func (r Room) String() string {
	if r.IsFree() {
		return fmt.Sprintf("Free of charge. Room number: %s, price: %s, type: %s.", r.Number, r.Price.StringFixed(2), r.Type)
	}
	return fmt.Sprintf("Room number: %s, price: %s, type: %s.", r.Number, r.Price.StringFixed(2), r.Type)
}

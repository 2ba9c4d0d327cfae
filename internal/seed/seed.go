// Package seed loads a JSON fixture of rooms and customers into a running ledger.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"room_ledger/internal/domain"
)

type Fixture struct {
	Rooms     []RoomSeed     `json:"rooms"`
	Customers []CustomerSeed `json:"customers"`
}

type RoomSeed struct {
	Number string          `json:"number"`
	Price  decimal.Decimal `json:"price"`
	Type   domain.RoomType `json:"type"`
}

func (s RoomSeed) ToRoom() (domain.Room, error) { return domain.NewRoom(s.Number, s.Price, s.Type) }

type CustomerSeed struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Sink is where a fixture is applied; the booking facade and the remote API client both satisfy it.
type Sink interface {
	AddRoom(ctx context.Context, r domain.Room) error
	CreateCustomer(ctx context.Context, email, firstName, lastName string) (domain.Customer, error)
}

func Load(path string) (Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (Fixture, error) {
	var fx Fixture
	if err := json.Unmarshal(b, &fx); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	return fx, nil
}

// WithoutRooms returns fx minus the rooms whose numbers are already in existing,
// and how many were dropped.
func (fx Fixture) WithoutRooms(existing []domain.Room) (Fixture, int) {
	have := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		have[r.DedupeKey()] = struct{}{}
	}
	out := Fixture{Customers: fx.Customers, Rooms: make([]RoomSeed, 0, len(fx.Rooms))}
	for _, rs := range fx.Rooms {
		if _, ok := have[strings.TrimSpace(rs.Number)]; ok {
			continue
		}
		out.Rooms = append(out.Rooms, rs)
	}
	return out, len(fx.Rooms) - len(out.Rooms)
}

// Stats counts what Apply did.
type Stats struct {
	Rooms, Customers, Skipped int
}

// Apply pushes rooms then customers into sink. Entries that already exist are
// skipped with a warning so a fixture can be re-applied; any other failure aborts.
func Apply(ctx context.Context, sink Sink, fx Fixture) (Stats, error) {
	var st Stats
	for _, rs := range fx.Rooms {
		room, err := rs.ToRoom()
		if err != nil {
			return st, fmt.Errorf("room %q: %w", rs.Number, err)
		}
		if err := sink.AddRoom(ctx, room); err != nil {
			if errors.Is(err, domain.ErrDuplicateRoom) {
				log.Warn().Str("room", room.Number).Msg("seed: room exists, skipped")
				st.Skipped++
				continue
			}
			return st, fmt.Errorf("room %q: %w", rs.Number, err)
		}
		st.Rooms++
	}
	for _, cs := range fx.Customers {
		if _, err := sink.CreateCustomer(ctx, cs.Email, cs.FirstName, cs.LastName); err != nil {
			if errors.Is(err, domain.ErrDuplicateCustomer) {
				log.Warn().Str("email", cs.Email).Msg("seed: customer exists, skipped")
				st.Skipped++
				continue
			}
			return st, fmt.Errorf("customer %q: %w", cs.Email, err)
		}
		st.Customers++
	}
	return st, nil
}

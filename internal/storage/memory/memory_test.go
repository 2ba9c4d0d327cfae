package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"room_ledger/internal/domain"
	"room_ledger/internal/storage/memory"
)

func room(t *testing.T, n string) domain.Room {
	t.Helper()
	r, err := domain.NewRoom(n, decimal.NewFromInt(50), domain.Double)
	if err != nil {
		t.Fatalf("NewRoom: %v", err)
	}
	return r
}

func TestRooms_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := memory.NewRooms()
	if err := s.Insert(ctx, room(t, "1")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	snap := s.Snapshot(ctx)
	delete(snap, "1")
	snap["2"] = room(t, "2")

	if _, ok := s.Get(ctx, "1"); !ok {
		t.Fatalf("deleting from the snapshot removed the room")
	}
	if _, ok := s.Get(ctx, "2"); ok {
		t.Fatalf("adding to the snapshot added a room")
	}
	if err := s.Insert(ctx, room(t, "1")); !errors.Is(err, domain.ErrDuplicateRoom) {
		t.Fatalf("expected ErrDuplicateRoom, got %v", err)
	}
}

func TestRooms_ListSorted(t *testing.T) {
	ctx := context.Background()
	s := memory.NewRooms()
	for _, n := range []string{"300", "100", "200"} {
		if err := s.Insert(ctx, room(t, n)); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	got := s.List(ctx)
	if len(got) != 3 || got[0].Number != "100" || got[1].Number != "200" || got[2].Number != "300" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestCustomers_InsertGet(t *testing.T) {
	ctx := context.Background()
	s := memory.NewCustomers()
	c, _ := domain.NewCustomer("a@b.com", "A", "B")

	if err := s.Insert(ctx, c); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Insert(ctx, c); !errors.Is(err, domain.ErrDuplicateCustomer) {
		t.Fatalf("expected ErrDuplicateCustomer, got %v", err)
	}
	if got, ok := s.Get(ctx, "a@b.com"); !ok || got != c {
		t.Fatalf("get: %+v %v", got, ok)
	}
	if _, ok := s.Get(ctx, "x@y.com"); ok {
		t.Fatalf("unexpected hit")
	}
}

func TestReservations_SetSemantics(t *testing.T) {
	ctx := context.Background()
	s := memory.NewReservations()
	ann, _ := domain.NewCustomer("ann@x.com", "A", "B")
	bob, _ := domain.NewCustomer("bob@x.com", "B", "C")
	in, out := domain.Date(2099, time.May, 1), domain.Date(2099, time.May, 3)

	first := domain.NewReservation(ann, room(t, "1"), in, out)
	if err := s.Insert(ctx, first); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !s.Contains(ctx, domain.NewReservation(bob, room(t, "1"), in, out).DedupeKey()) {
		t.Fatalf("contains must ignore the customer")
	}
	if err := s.Insert(ctx, domain.NewReservation(bob, room(t, "1"), in, out)); !errors.Is(err, domain.ErrAlreadyReserved) {
		t.Fatalf("expected ErrAlreadyReserved, got %v", err)
	}
	if err := s.Insert(ctx, domain.NewReservation(bob, room(t, "0"), in, out)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	all := s.List(ctx)
	if len(all) != 2 || all[0].Room.Number != "0" || all[1].Customer.Email != "ann@x.com" {
		t.Fatalf("unexpected list: %+v", all)
	}
}

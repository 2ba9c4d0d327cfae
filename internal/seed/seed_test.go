package seed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"room_ledger/internal/app"
	"room_ledger/internal/domain"
	"room_ledger/internal/seed"
	"room_ledger/internal/storage/memory"
)

func newFacade() *app.BookingFacade {
	rooms := memory.NewRooms()
	engine := app.NewReservationEngine(rooms, memory.NewReservations(), nil, time.Minute)
	return app.NewBookingFacade(
		app.NewCustomerRegistry(memory.NewCustomers()),
		app.NewRoomCatalog(rooms, engine.CatalogLock()),
		engine,
	)
}

func TestLoadAndApply(t *testing.T) {
	ctx := context.Background()
	fx, err := seed.Load("testdata/fixture.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(fx.Rooms) != 5 || len(fx.Customers) != 2 {
		t.Fatalf("unexpected fixture: %+v", fx)
	}
	if fx.Rooms[3].Type != domain.Single || fx.Rooms[4].Type != domain.Double {
		t.Fatalf("numeric room types not decoded: %+v", fx.Rooms[3:])
	}

	f := newFacade()
	st, err := seed.Apply(ctx, f, fx)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if st.Rooms != 5 || st.Customers != 2 || st.Skipped != 0 {
		t.Fatalf("unexpected stats: %+v", st)
	}

	r, err := f.GetRoom(ctx, "100")
	if err != nil || !r.IsFree() {
		t.Fatalf("room 100 should be free: %+v, %v", r, err)
	}
	if _, ok := f.GetCustomer(ctx, "bo@example.org"); !ok {
		t.Fatal("customer not seeded")
	}
}

func TestApply_IsRepeatable(t *testing.T) {
	ctx := context.Background()
	fx, err := seed.Load("testdata/fixture.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := newFacade()
	if _, err := seed.Apply(ctx, f, fx); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	st, err := seed.Apply(ctx, f, fx)
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	if st.Rooms != 0 || st.Customers != 0 || st.Skipped != 7 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if n := len(f.GetAllRooms(ctx)); n != 5 {
		t.Fatalf("rooms = %d, want 5", n)
	}
}

func TestApply_InvalidEntriesAbort(t *testing.T) {
	ctx := context.Background()

	fx, err := seed.Parse([]byte(`{"customers":[{"email":"not-an-email","firstName":"X","lastName":"Y"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := seed.Apply(ctx, newFacade(), fx); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	fx, err = seed.Parse([]byte(`{"rooms":[{"number":"1","price":"-5","type":"SINGLE"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := seed.Apply(ctx, newFacade(), fx); !errors.Is(err, domain.ErrInvalidRoom) {
		t.Fatalf("expected ErrInvalidRoom, got %v", err)
	}
}

func TestParse_RejectsUnknownRoomType(t *testing.T) {
	if _, err := seed.Parse([]byte(`{"rooms":[{"number":"1","price":"5","type":"SUITE"}]}`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := seed.Load("testdata/nope.json"); err == nil {
		t.Fatal("expected error")
	}
}

func TestWithoutRooms(t *testing.T) {
	fx, err := seed.Load("testdata/fixture.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	existing := []domain.Room{}
	for _, n := range []string{"101", "202", "999"} {
		r, err := domain.NewFreeRoom(n, domain.Single)
		if err != nil {
			t.Fatalf("NewFreeRoom: %v", err)
		}
		existing = append(existing, r)
	}

	rest, dropped := fx.WithoutRooms(existing)
	if dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}
	var got []string
	for _, rs := range rest.Rooms {
		got = append(got, rs.Number)
	}
	if len(got) != 3 || got[0] != "100" || got[1] != "102" || got[2] != "201" {
		t.Fatalf("unexpected remaining rooms: %v", got)
	}
	if len(rest.Customers) != len(fx.Customers) {
		t.Fatalf("customers must be kept, got %d", len(rest.Customers))
	}
	if len(fx.Rooms) != 5 {
		t.Fatalf("input fixture was modified")
	}
}

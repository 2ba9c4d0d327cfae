package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	redisad "room_ledger/internal/adapters/redis"
	"room_ledger/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetAvailability(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)

	room, _ := domain.NewRoom("101", decimal.RequireFromString("110.25"), domain.Double)
	in := domain.Date(2099, time.May, 1)
	want := domain.Availability{Rooms: []domain.Room{room}, CheckIn: in, CheckOut: in.AddDate(0, 0, 2), Shifted: true}

	if err := c.Set(ctx, "avail:test", want, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("avail:test"); ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	var got domain.Availability
	ok, err := c.Get(ctx, "avail:test", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(got.Rooms) != 1 || got.Rooms[0].Number != "101" || !got.Rooms[0].Price.Equal(room.Price) {
		t.Fatalf("unexpected rooms: %+v", got.Rooms)
	}
	if !got.CheckIn.Equal(want.CheckIn) || !got.CheckOut.Equal(want.CheckOut) || !got.Shifted {
		t.Fatalf("unexpected window: %+v", got)
	}
}

func TestCache_Miss(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)

	var dst domain.Availability
	if ok, err := c.Get(ctx, "absent", &dst); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	if mr.Exists("absent") {
		t.Fatalf("a miss must not create the key")
	}
}

func TestCache_ExpiredEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)

	if err := c.Set(ctx, "k", "v", 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Second)

	var s string
	if ok, _ := c.Get(ctx, "k", &s); ok {
		t.Fatalf("expected expiry")
	}
}

func TestCache_ServerDown(t *testing.T) {
	c, mr := newCache(t)
	mr.Close()

	var s string
	if _, err := c.Get(context.Background(), "k", &s); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping failure")
	}
}

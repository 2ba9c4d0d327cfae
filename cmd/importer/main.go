// Command importer pushes a JSON fixture of rooms and customers into a running ledger API.
package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"room_ledger/internal/adapters/ledgerapi"
	"room_ledger/internal/adapters/observability"
	"room_ledger/internal/domain"
	"room_ledger/internal/seed"
	"room_ledger/internal/shared"
)

func main() {
	cfg := shared.Load()
	file := flag.String("file", cfg.SeedFile, "fixture to import")
	flag.Parse()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	for _, w := range cfg.Warnings {
		log.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *file == "" {
		log.Fatal().Msg("no fixture: pass -file or set SEED_FILE")
	}
	fx, err := seed.Load(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("fixture load failed")
	}

	client, err := ledgerapi.New(cfg.LedgerURL, cfg.ImportRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize ledger client")
	}

	// pre-flight: skip rooms the target already has instead of POSTing them into a 409
	if existing, err := client.ListRooms(ctx); err != nil {
		log.Warn().Err(err).Msg("listing remote rooms failed, importing all")
	} else {
		var dropped int
		fx, dropped = fx.WithoutRooms(existing)
		log.Info().Int("present", dropped).Msg("rooms already on target")
	}

	log.Info().
		Str("target", cfg.LedgerURL).
		Int("workers", cfg.ImportWorkers).
		Int("rooms", len(fx.Rooms)).
		Int("customers", len(fx.Customers)).
		Msg("importer starting")

	sem := semaphore.NewWeighted(int64(max(cfg.ImportWorkers, 1)))
	var wg sync.WaitGroup
	var failed atomic.Int32

	run := func(what, key string, fn func() error) {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("import interrupted")
			failed.Add(1)
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			err := fn()
			switch {
			case err == nil:
				log.Info().Str(what, key).Msg("imported")
			case errors.Is(err, domain.ErrDuplicateRoom), errors.Is(err, domain.ErrDuplicateCustomer):
				log.Warn().Str(what, key).Msg("already present, skipped")
			default:
				failed.Add(1)
				log.Warn().Str(what, key).Err(err).Msg("import failed")
			}
		}()
	}

	for _, rs := range fx.Rooms {
		room, err := rs.ToRoom()
		if err != nil {
			failed.Add(1)
			log.Warn().Str("room", rs.Number).Err(err).Msg("invalid room in fixture")
			continue
		}
		run("room", room.Number, func() error { return client.AddRoom(ctx, room) })
	}
	for _, cs := range fx.Customers {
		cs := cs // per-iteration copy; go.mod targets go1.21 loop semantics
		run("customer", cs.Email, func() error {
			_, err := client.CreateCustomer(ctx, cs.Email, cs.FirstName, cs.LastName)
			return err
		})
	}

	wg.Wait()
	if n := failed.Load(); n > 0 {
		log.Fatal().Int32("failed", n).Msg("import finished with errors")
	}
	log.Info().Msg("import completed")
}

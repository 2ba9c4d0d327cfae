package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	server "room_ledger/internal/adapters/http_server"
	"room_ledger/internal/adapters/observability"
	redisad "room_ledger/internal/adapters/redis"
	"room_ledger/internal/app"
	"room_ledger/internal/domain"
	"room_ledger/internal/seed"
	"room_ledger/internal/shared"
	"room_ledger/internal/storage/memory"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	for _, w := range cfg.Warnings {
		log.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()

	// optional cache; a ledger without Redis just computes every search
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rc.Ping(pctx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, cache disabled")
			_ = rc.Close()
		} else {
			log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache enabled")
			cache = rc
			defer rc.Close()
		}
	} else {
		log.Info().Msg("REDIS_ADDR is empty, availability cache disabled")
	}

	// deps
	rooms := memory.NewRooms()
	engine := app.NewReservationEngine(rooms, memory.NewReservations(), cache, cfg.CacheTTL)
	facade := app.NewBookingFacade(
		app.NewCustomerRegistry(memory.NewCustomers()),
		app.NewRoomCatalog(rooms, engine.CatalogLock()),
		engine,
	)

	if cfg.SeedFile != "" {
		fx, err := seed.Load(cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.SeedFile).Msg("seed load failed")
		}
		st, err := seed.Apply(ctx, facade, fx)
		if err != nil {
			log.Fatal().Err(err).Msg("seed apply failed")
		}
		log.Info().Int("rooms", st.Rooms).Int("customers", st.Customers).Int("skipped", st.Skipped).Msg("seed applied")
	}

	// http
	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitRPS)
	}
	srv := server.New()
	srv.MountHandlers(&server.Handlers{F: facade, Limiter: limiter})

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 10 * time.Second}
	metricsSrv := observability.NewMetricsServer(cfg.MetricsAddr, reg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		return listen(apiSrv)
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
		return listen(metricsSrv)
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return errors.Join(apiSrv.Shutdown(sctx), metricsSrv.Shutdown(sctx))
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("stopped gracefully")
}

func listen(s *http.Server) error {
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

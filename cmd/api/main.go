package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/audit"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/peluqueria-scheduler/internal/db"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/peluqueria-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/metrics"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/routes"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/scheduler"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/peluqueria-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/validators"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init failed")
	}

	rdb, availCache := newCache(cfg, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	if cfg.MetricsEnabled {
		metrics.Register()
	}
	if err := validators.Register(); err != nil {
		logger.Fatal().Err(err).Msg("validator init failed")
	}

	loc := timezone.Location(cfg.Timezone)
	clock := timezone.NewClock(cfg.Timezone)
	dispatcher := audit.NewDispatcher(audit.New(db), logger)

	sweep := ucAppointment.NewSweepExpired(
		infraRepo.NewAppointmentGormRepository(db),
		availCache,
		clock,
		dispatcher,
		logger,
	)
	sched, err := scheduler.New(cfg.SweepCron, loc, sweep, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("scheduler init failed")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Redis:  rdb,
		Cache:  availCache,
		Audit:  dispatcher,
		Clock:  clock,
		Config: cfg,
		Logger: logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched.Start()

	go func() {
		logger.Info().
			Str("addr", cfg.Addr()).
			Str("timezone", loc.String()).
			Bool("cache", rdb != nil).
			Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	sched.Stop(shutdownCtx)
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("audit queue not drained")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.IsProduction() {
		return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// newCache returns a nil client and a no-op cache when REDIS_URL is unset
// or unreachable at startup.
func newCache(cfg *config.Config, logger zerolog.Logger) (*redis.Client, domain.AvailabilityCache) {
	if cfg.RedisURL == "" {
		return nil, cache.NoopCache{}
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("invalid REDIS_URL, availability cache disabled")
		return nil, cache.NoopCache{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unreachable, availability cache disabled")
		_ = rdb.Close()
		return nil, cache.NoopCache{}
	}

	c := cache.NewRedisAvailabilityCache(rdb, cfg.AvailabilityCacheTTL, logger)
	if cfg.MetricsEnabled {
		c = c.WithObserver(metrics.CacheObserver{})
	}
	return rdb, c
}

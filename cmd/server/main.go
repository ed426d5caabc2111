package main

import (
	"context"
	"database/sql"
	"errors"
	"flight-emissions-service/internal/adapters/cache"
	"flight-emissions-service/internal/adapters/lookup"
	"flight-emissions-service/internal/adapters/store"
	"flight-emissions-service/internal/api"
	"flight-emissions-service/internal/config"
	"flight-emissions-service/internal/platform/db"
	"flight-emissions-service/internal/platform/metrics"
	"flight-emissions-service/internal/platform/obs"
	"flight-emissions-service/internal/ports"
	"flight-emissions-service/internal/reference"
	"flight-emissions-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// main is the application composition root.
// It wires the page sources, the process-wide resolution cache, the resolvers
// and the optional Postgres estimate log, then starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := obs.NewLogger("info", "json")
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := obs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logger.Info().Msg("No .env file found (using environment variables)")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	distanceSrc, statusSrc, flightSrc := textSources(cfg)

	// One cache for the lifetime of the process, shared by both resolvers.
	resolutionCache := cache.NewMemoryResolutionCache()
	metrics.RegisterCacheEntries(reg, resolutionCache.Len)
	logger.Info().
		Int("aircraft_profiles", len(reference.AircraftProfiles())).
		Msg("reference tables loaded")
	distances := services.NewDistanceResolver(resolutionCache, distanceSrc, logger, m)
	aircraft := services.NewAircraftResolver(resolutionCache, statusSrc, flightSrc, logger, m)

	var (
		recorder ports.EstimateRecorder
		lister   ports.EstimateLister
	)
	if cfg.DatabaseURL != "" {
		conn, err := openEstimateLog(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("estimate log unavailable")
		}
		defer conn.Close()

		estimateLog := store.NewSQLEstimateLog(conn)
		recorder, lister = estimateLog, estimateLog
		logger.Info().Msg("estimate log enabled")
	}

	dispatcher := services.NewDispatcher(distances, aircraft, recorder, logger, m)
	router := api.NewRouter(dispatcher, lister, reg, logger)

	// Timeouts leave room for a cold cache hitting two external pages.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
		<-signalChan

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Shutdown failed")
		}
		close(shutdownDone)
	}()

	logger.Info().Str("addr", srv.Addr).Bool("offline", cfg.Offline).Msg("Server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("Server failed")
	}
	<-shutdownDone
}

func textSources(cfg config.Config) (distance, status, flight ports.TextSource) {
	if cfg.Offline {
		return lookup.NewStaticTextSource("offline-distance", nil),
			lookup.NewStaticTextSource("offline-status", nil),
			lookup.NewStaticTextSource("offline-flight", nil)
	}

	session := lookup.NewHTTPClient(cfg.LookupTimeout)
	return lookup.NewDistancePageSource(cfg.DistanceSourceURL, session),
		lookup.NewStatusPageSource(cfg.StatusSourceURL, session),
		lookup.NewFlightPageSource(cfg.FlightSourceURL, session)
}

func openEstimateLog(databaseURL string) (*sql.DB, error) {
	ctx := context.Background()

	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := store.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// README: Composition root; turns a resolved Config into the wired planner and its collaborators.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	firebase "firebase.google.com/go/v4"

	"tripdraft/internal/ai"
	"tripdraft/internal/config"
	"tripdraft/internal/infra"
	"tripdraft/internal/maps"
	"tripdraft/internal/metrics"
	"tripdraft/internal/modules/imagery"
	"tripdraft/internal/modules/itinerary"
	"tripdraft/internal/modules/places"
	"tripdraft/internal/modules/trip"
)

// App holds everything the entrypoints need. Places and Verifier are nil when
// the corresponding feature is off.
type App struct {
	Planner  *trip.Planner
	Drafter  *itinerary.Drafter
	Places   *maps.PlacesService
	Verifier infra.TokenVerifier

	closers []func()
}

// NewLogger builds the JSON logger used across the process.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Build wires every component from cfg. Missing credentials disable features
// instead of failing; unreachable infrastructure does fail.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger, m *metrics.Metrics) (*App, error) {
	a := &App{}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	provider, err := ai.NewProvider(ctx, cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("ai provider: %w", err)
	}
	var gen itinerary.Generator
	if provider != nil {
		gen = provider
		a.closers = append(a.closers, provider.Close)
	} else {
		logger.Warn("generation disabled; every draft uses the fallback itinerary", "provider", cfg.AI.Provider)
	}
	a.Drafter = itinerary.NewDrafter(gen, cfg.AI.Timeout, logger, m)

	var (
		placeResolver *places.Resolver
		imageResolver *imagery.Resolver
	)
	if cfg.Maps.Enabled() {
		a.Places, err = maps.NewPlacesService(cfg.Maps.APIKey, maps.WithLanguage(cfg.Maps.Language))
		if err != nil {
			return nil, fmt.Errorf("maps: %w", err)
		}
		placeResolver = places.NewResolver(a.Places, cfg.Maps.Timeout, cfg.Maps.Budget, cfg.Maps.MaxConcurrent, logger, m)
		imageResolver = imagery.NewResolver(a.Places,
			maps.NewURLBuilder(cfg.Maps.APIKey, cfg.Maps.ProxyImages, cfg.HTTP.PublicBaseURL),
			imagery.Options{
				Timeout:           cfg.Maps.Timeout,
				Budget:            cfg.Maps.Budget,
				ImageWidth:        cfg.Maps.ImageWidth,
				RegionQualifier:   cfg.Maps.RegionQualifier,
				AlwaysReturnImage: cfg.Maps.AlwaysReturnImage,
				Logger:            logger,
				Metrics:           m,
			})
	} else {
		logger.Warn("maps disabled; blocks stay unenriched and drafts carry no image")
	}

	var fbApp *firebase.App
	firebaseApp := func() (*firebase.App, error) {
		if fbApp != nil {
			return fbApp, nil
		}
		fbApp, err = infra.NewFirebaseApp(ctx, cfg.Store.FirebaseProjectID, cfg.Store.CredentialsFile)
		return fbApp, err
	}

	store, err := a.buildStore(ctx, cfg, logger, firebaseApp)
	if err != nil {
		return nil, err
	}

	if cfg.Auth.Enabled {
		fb, err := firebaseApp()
		if err != nil {
			return nil, err
		}
		if a.Verifier, err = infra.NewFirebaseVerifier(ctx, fb); err != nil {
			return nil, err
		}
	}

	// Typed nils must not reach the planner's interfaces.
	var (
		enricher trip.DayEnricher
		images   trip.ImageFinder
	)
	if placeResolver != nil {
		enricher = placeResolver
	}
	if imageResolver != nil {
		images = imageResolver
	}
	a.Planner = trip.NewPlanner(a.Drafter, enricher, images, store, logger)
	ok = true
	return a, nil
}

func (a *App) buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger, firebaseApp func() (*firebase.App, error)) (trip.Store, error) {
	var store trip.Store
	switch cfg.Store.Backend {
	case config.StorePostgres:
		pool, err := infra.NewDB(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		applied, err := infra.Migrate(ctx, pool)
		if err != nil {
			return nil, err
		}
		logger.Info("database ready", "migrations_applied", applied)
		store = trip.NewPostgresStore(pool)
	case config.StoreFirestore:
		fb, err := firebaseApp()
		if err != nil {
			return nil, err
		}
		client, err := infra.NewFirestore(ctx, fb)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		store = trip.NewFirestoreStore(client)
	default:
		store = trip.NewMemoryStore()
	}

	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		store = trip.NewCachedStore(store, rdb, cfg.Redis.TTL, logger)
	}
	return store, nil
}

// Close releases clients in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

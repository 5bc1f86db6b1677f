package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dungeon/internal/config"
	v1 "github.com/KirkDiggler/rpg-dungeon/internal/handlers/api/v1"
	"github.com/KirkDiggler/rpg-dungeon/internal/messaging"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/random"
	"github.com/KirkDiggler/rpg-dungeon/internal/pkg/startup"
	"github.com/KirkDiggler/rpg-dungeon/internal/redis"
	dungeonrun "github.com/KirkDiggler/rpg-dungeon/internal/repositories/dungeon_run"
	"github.com/KirkDiggler/rpg-dungeon/internal/repositories/gamedata"
	runcache "github.com/KirkDiggler/rpg-dungeon/internal/repositories/run_cache"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/combat"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/monsters"
	"github.com/KirkDiggler/rpg-dungeon/internal/services/roomgraph"
	"github.com/KirkDiggler/rpg-dungeon/internal/telemetry"
)

const serviceName = "rpg-dungeon"

var (
	httpPort int
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the dungeon run HTTP server. Dependencies are connected in the background; /api routes answer 503 until they are ready.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&httpPort, "port", 0, "HTTP port (overrides DUNGEON_HTTP_PORT)")
}

func runServer(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if httpPort != 0 {
		cfg.HTTPPort = httpPort
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, &telemetry.Config{
		ServiceName: serviceName,
		Endpoint:    cfg.OTELEndpoint,
	})
	if err != nil {
		slog.Warn("Tracing disabled", "error", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("Failed to flush traces", "error", err)
		}
	}()

	app, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.close()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(v1.TraceContext(nil))
	e.Use(v1.RequestLogger(logger))
	app.handler.RegisterRoutes(e)

	app.supervisor.Start(ctx)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return err
		}
		slog.Info("Server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

// app holds the wired service graph
type app struct {
	handler    *v1.Handler
	supervisor *startup.Supervisor
	closers    []func() error
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("Close failed", "error", err)
		}
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}
	fail := func(err error) (*app, error) {
		a.close()
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	runDB, err := dungeonrun.OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, runDB.Close)

	gameDB, err := gamedata.OpenReadOnly(ctx, cfg.GameDataPath)
	if err != nil {
		return fail(err)
	}
	a.closers = append(a.closers, gameDB.Close)

	cacheClient, err := redis.New(&redis.Config{Addr: cfg.RedisAddr, Timeout: 2 * time.Second})
	if err != nil {
		return fail(err)
	}
	a.closers = append(a.closers, cacheClient.Close)

	brokerClient := cacheClient
	if cfg.BrokerAddr != cfg.RedisAddr {
		brokerClient, err = redis.New(&redis.Config{Addr: cfg.BrokerAddr, Timeout: 2 * time.Second})
		if err != nil {
			return fail(err)
		}
		a.closers = append(a.closers, brokerClient.Close)
	}

	wired, err := wire(cfg, runDB, gameDB, cacheClient, brokerClient)
	if err != nil {
		return fail(err)
	}
	a.handler = wired.handler
	a.supervisor = wired.supervisor
	return a, nil
}

type wiring struct {
	handler    *v1.Handler
	supervisor *startup.Supervisor
}

// wire builds the repositories, services and handler over open connections
func wire(cfg *config.Config, runDB, gameDB *sql.DB, cacheClient, brokerClient redis.Client) (*wiring, error) {
	roller, err := random.New()
	if err != nil {
		return nil, fmt.Errorf("seed roller: %w", err)
	}
	clk := clock.New()

	store, err := dungeonrun.NewSQLiteRepository(&dungeonrun.SQLiteConfig{DB: runDB, Clock: clk})
	if err != nil {
		return nil, err
	}
	cache, err := runcache.NewRedisRepository(&runcache.Config{Client: cacheClient, TTL: cfg.CacheTTL})
	if err != nil {
		return nil, err
	}
	runRepo, err := dungeonrun.NewCachedRepository(&dungeonrun.CachedConfig{
		Store: store,
		Cache: cache,
		TTL:   cfg.CacheTTL,
	})
	if err != nil {
		return nil, err
	}

	gameRepo, err := gamedata.NewSQLiteRepository(&gamedata.Config{DB: gameDB})
	if err != nil {
		return nil, err
	}

	publisher, err := messaging.NewStreamPublisher(&messaging.Config{
		Client:       brokerClient,
		EventsStream: cfg.EventsStream,
		CombatStream: cfg.CombatStream,
		MaxLen:       cfg.StreamMaxLen,
	})
	if err != nil {
		return nil, err
	}

	monsterCache, err := monsters.New(&monsters.Config{GameData: gameRepo, Roller: roller})
	if err != nil {
		return nil, err
	}
	generator, err := roomgraph.New(&roomgraph.Config{
		Monsters:      monsterCache,
		Roller:        roller,
		Floors:        cfg.Floors,
		RoomsPerFloor: cfg.RoomsPerFloor,
	})
	if err != nil {
		return nil, err
	}
	bridge, err := combat.New(&combat.Config{GameData: gameRepo, Publisher: publisher})
	if err != nil {
		return nil, err
	}

	orchestrator, err := dungeon.New(&dungeon.Config{
		RunRepo:     runRepo,
		Generator:   generator,
		Combat:      bridge,
		Publisher:   publisher,
		IDGenerator: idgen.NewUUID("run"),
		Clock:       clk,
	})
	if err != nil {
		return nil, err
	}

	supervisor, err := startup.New(&startup.Config{
		InitialBackoff: cfg.StartupInitialBackoff,
		MaxBackoff:     cfg.StartupMaxBackoff,
	})
	if err != nil {
		return nil, err
	}
	supervisor.Add(startup.Task{Name: "document_store", Required: true, Run: runRepo.Ping})
	supervisor.Add(startup.Task{Name: "gamedata_store", Required: true, Run: gameRepo.Ping})
	supervisor.Add(startup.Task{Name: "monster_cache", Required: true, Run: monsterCache.Refresh})
	supervisor.Add(startup.Task{Name: "run_cache", Run: func(ctx context.Context) error {
		return redis.Ping(ctx, cacheClient)
	}})
	supervisor.Add(startup.Task{Name: "broker", Run: publisher.Ping})

	handler, err := v1.NewHandler(&v1.HandlerConfig{
		DungeonService: orchestrator,
		Readiness:      supervisor,
	})
	if err != nil {
		return nil, err
	}

	return &wiring{handler: handler, supervisor: supervisor}, nil
}

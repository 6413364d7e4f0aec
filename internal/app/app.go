package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/agenda/internal/config"
	"github.com/MrSnakeDoc/agenda/internal/favorites"
	"github.com/MrSnakeDoc/agenda/internal/fetcher"
	"github.com/MrSnakeDoc/agenda/internal/httpserver"
	"github.com/MrSnakeDoc/agenda/internal/httpserver/deps"
	"github.com/MrSnakeDoc/agenda/internal/index"
	"github.com/MrSnakeDoc/agenda/internal/kv"
	"github.com/MrSnakeDoc/agenda/internal/locale"
	"github.com/MrSnakeDoc/agenda/internal/logger"
	"github.com/MrSnakeDoc/agenda/internal/redis"
	"github.com/MrSnakeDoc/agenda/internal/render"
	"github.com/MrSnakeDoc/agenda/internal/scheduler"
	"github.com/MrSnakeDoc/agenda/internal/sources/fixture"
	"github.com/MrSnakeDoc/agenda/internal/sources/tribe"
	boltstore "github.com/MrSnakeDoc/agenda/internal/store/bolt"
	redisstore "github.com/MrSnakeDoc/agenda/internal/store/redis"
	"github.com/MrSnakeDoc/agenda/internal/utils"
	"github.com/MrSnakeDoc/agenda/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	reloader *scheduler.EventsReloader
	closers  []namedCloser
}

type namedCloser struct {
	name string
	c    io.Closer
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog, logger.WithFile(logger.FileSink{
		Path:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	}))

	a := &App{cfg: cfg, logger: loggerClient}

	// Durable favorites backend - fail fast if unavailable
	backend, err := a.openStore()
	if err != nil {
		a.closeAll()
		return nil, err
	}

	registry, err := favorites.NewRegistry(backend, cfg.FavoritesCacheSize)
	if err != nil {
		a.closeAll()
		return nil, err
	}
	registry.Subscribe(func(c favorites.Change) {
		loggerClient.Debug("favorites changed",
			logger.String("visitor", c.Visitor),
			logger.Int("event_id", c.EventID),
			logger.Bool("added", c.Added),
			logger.Int("count", len(c.Favorites)))
	})

	loc := locale.Match(cfg.Locale)
	renderer, err := render.New(loc)
	if err != nil {
		a.closeAll()
		return nil, err
	}

	eventIndex := index.NewEventIndex()

	var source fetcher.Source
	if cfg.EventsFile != "" {
		loggerClient.Info("events fixture configured, remote source disabled",
			logger.String("file", cfg.EventsFile))
		source = fixture.NewLoader(cfg.EventsFile)
	} else {
		source = tribe.NewClient(cfg.EventsURL, 0)
	}
	f := fetcher.New(source, eventIndex, loggerClient, cfg.FetchTimeout)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)
	reloader, err := scheduler.NewEventsReloader(f, loggerClient, cfg.RefreshCron, reloadTrigger)
	if err != nil {
		a.closeAll()
		return nil, err
	}
	a.reloader = reloader

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		SecureCookies: cfg.SecureCookies,
		Index:         eventIndex,
		Favorites:     registry,
		Renderer:      renderer,
		SourceName:    f.SourceName(),
		StoreName:     cfg.Store,
		ReloadTrigger: reloadTrigger,
		ToggleBurst:   cfg.ToggleBurst,
		ToggleRefill:  cfg.ToggleRefillPerMin,
	}
	if checker, ok := backend.(kv.Checker); ok {
		d.Store = checker
	}

	a.server = httpserver.New(cfg, loggerClient, d)
	return a, nil
}

// openStore connects the backend selected by AGENDA_STORE.
func (a *App) openStore() (kv.Store, error) {
	cfg := a.cfg
	switch cfg.Store {
	case config.StoreRedis:
		a.logger.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, a.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, namedCloser{"redis", client})
		a.logger.Info("Redis initialized successfully")
		return redisstore.NewStore(client, cfg.FavoritesTTL), nil

	case config.StoreBolt:
		store, err := boltstore.Open(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, namedCloser{"bolt", store})
		a.logger.Info("bolt favorites store opened", logger.String("path", cfg.BoltPath))
		return store, nil

	default:
		a.logger.Warn("favorites kept in memory only, they are lost on restart")
		return kv.NewMemory(), nil
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Agenda v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Agenda %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)
	defer a.closeAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// First fetch runs in the background, the page shows its loading state meanwhile
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start events reloader: %w", err)
	}
	a.logger.Info("events reloader started", logger.String("schedule", a.cfg.RefreshCron))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.reloader.Stop()
		return err
	}

	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ Agenda stopped cleanly")
	return nil
}

func (a *App) closeAll() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		utils.MustClose(a.closers[i].c, a.closers[i].name, a.logger)
	}
	a.closers = nil
	_ = a.logger.Sync()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/toastkit/modules/dashboard"
	"github.com/dmitrymomot/toastkit/pkg/config"
	"github.com/dmitrymomot/toastkit/pkg/cookie"
	"github.com/dmitrymomot/toastkit/pkg/flash"
	"github.com/dmitrymomot/toastkit/pkg/httpserver"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/outcome"
	"github.com/dmitrymomot/toastkit/pkg/redis"
	"github.com/dmitrymomot/toastkit/pkg/requestid"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"toastkit"`

	CollaboratorURL     string        `env:"COLLABORATOR_URL" envDefault:"http://localhost:8000"`
	CollaboratorBulk    string        `env:"COLLABORATOR_BULK_PATH" envDefault:"/admin/bulk-action"`
	CollaboratorTimeout time.Duration `env:"COLLABORATOR_TIMEOUT" envDefault:"10s"`

	FlashBackend string        `env:"FLASH_BACKEND" envDefault:"memory"`
	FlashTTL     time.Duration `env:"FLASH_TTL" envDefault:"10m"`
}

type toastConfig struct {
	DismissDelay time.Duration `env:"TOAST_DISMISS_DELAY" envDefault:"5s"`
	MaxVisible   int           `env:"TOAST_MAX_VISIBLE" envDefault:"0"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("dashboard stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		app       appConfig
		toastCfg  toastConfig
		serverCfg httpserver.Config
		cookieCfg cookie.Config
		dashCfg   dashboard.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&app) },
		func() error { return config.Load(&toastCfg) },
		func() error { return config.Load(&serverCfg) },
		func() error { return config.Load(&cookieCfg) },
		func() error { return config.Load(&dashCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	log := logger.New(
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			dashboard.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store, health, closeStore, err := newFlashStore(ctx, app)
	if err != nil {
		return err
	}
	defer closeStore()

	pages := dashboard.NewPages(dashCfg.StreamBuffer, log,
		toast.WithDismissDelay(toastCfg.DismissDelay),
		toast.WithMaxVisible(toastCfg.MaxVisible),
	)
	defer pages.Close()
	go pages.Run(ctx, dashCfg.PruneEvery, dashCfg.PageIdle)

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}

	client := outcome.NewClient(app.CollaboratorURL,
		outcome.WithHTTPClient(&http.Client{Timeout: app.CollaboratorTimeout}),
		outcome.WithBulkPath(app.CollaboratorBulk),
		outcome.WithLogger(log),
	)

	svc := dashboard.NewService(dashCfg, pages, client, store, cookies, dashboard.WithLogger(log))

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health(r.Context()); err != nil {
				log.LogAttrs(r.Context(), slog.LevelWarn, "healthcheck failed", logger.Error(err))
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusNoContent)
	})
	r.Mount("/", dashboard.Router(dashboard.RouterOptions{Pages: svc}))

	return httpserver.New(serverCfg, httpserver.WithLogger(log)).Run(ctx, r)
}

var errUnknownFlashBackend = errors.New("unknown flash backend")

// newFlashStore builds the flash store selected by FLASH_BACKEND together with
// its healthcheck, which is nil for the memory store.
func newFlashStore(ctx context.Context, app appConfig) (flash.Store, func(context.Context) error, func(), error) {
	switch app.FlashBackend {
	case "", "memory":
		return flash.NewMemoryStore(flash.WithMemoryTTL(app.FlashTTL)), nil, func() {}, nil
	case "redis":
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, nil, nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		store := flash.NewRedisStore(client, flash.WithRedisTTL(app.FlashTTL))
		return store, redis.Healthcheck(client), func() { _ = client.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", errUnknownFlashBackend, app.FlashBackend)
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/template/html/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"wgpuguide/internal/config"
	"wgpuguide/internal/content"
	handlers "wgpuguide/internal/http/handler"
	"wgpuguide/internal/http/middleware"
	"wgpuguide/internal/linkcheck"
	"wgpuguide/internal/logger"
	"wgpuguide/internal/otel"
	"wgpuguide/internal/service"
)

func main() {
	app := &cli.App{
		Name:  "wgpuguide",
		Usage: "Serve the wgpu guide website",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the web server",
				Action: runServe,
			},
			{
				Name:   "check",
				Usage:  "Verify internal link integrity across all chapters",
				Action: runCheck,
			},
			{
				Name:   "healthcheck",
				Usage:  "Probe the running server; used as the container healthcheck",
				Action: runHealthcheck,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runServe(c *cli.Context) error {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := loadStore(ctx, cfg)
	if err != nil {
		return err
	}

	if cfg.Content.Watch {
		watcher, werr := content.NewWatcher(cfg.Content.Dir, store)
		if werr != nil {
			return fmt.Errorf("start content watcher: %w", werr)
		}
		defer watcher.Close()
	}

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	svc := service.NewGuideService(store)

	app, err := newApp(cfg, svc, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()
	slog.Info("server started", "port", cfg.Server.Port, "chapters", store.Len())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
		timeout := time.Duration(cfg.Server.ShutdownTimeoutSec) * time.Second
		return app.ShutdownWithTimeout(timeout)
	}
}

// newApp assembles the Fiber app: view engine, middleware chain, the
// metrics endpoint, static assets, and routes.
func newApp(cfg *config.AppConfig, svc service.GuideService, reg prometheus.Registerer) (*fiber.App, error) {
	engine := html.New(cfg.Content.ViewsDir, ".html")
	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(compress.New())
	app.Use(otelfiber.Middleware())

	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	app.Use(promMW.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Static assets carry a long-lived cache header; content pages do not.
	app.Static("/static", cfg.Content.StaticDir, fiber.Static{
		MaxAge: cfg.Server.StaticMaxAgeSec,
	})

	handlers.RegisterRoutes(app, svc)
	app.Use(handlers.NotFound())

	return app, nil
}

func runCheck(c *cli.Context) error {
	cfg := config.Load()

	store, err := loadStore(c.Context, cfg)
	if err != nil {
		return err
	}

	checker := linkcheck.New(store, os.DirFS(cfg.Content.StaticDir))
	issues, err := checker.Run(c.Context)
	if err != nil {
		return err
	}

	for _, issue := range issues {
		fmt.Fprintln(os.Stderr, issue)
	}
	if len(issues) > 0 {
		return fmt.Errorf("link check failed: %d broken links", len(issues))
	}

	slog.Info("link check passed", "chapters", store.Len())
	return nil
}

// runHealthcheck performs a GET / against the local server and exits
// non-zero when it does not answer 200. Distroless images have no curl,
// so the binary probes itself.
func runHealthcheck(c *cli.Context) error {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(c.Context, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://127.0.0.1:"+cfg.Server.Port+"/", nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("healthcheck: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthcheck: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func loadStore(ctx context.Context, cfg *config.AppConfig) (*content.Store, error) {
	store := content.NewStore(os.DirFS(cfg.Content.Dir), content.NewRenderer())
	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("load guide content: %w", err)
	}
	return store, nil
}

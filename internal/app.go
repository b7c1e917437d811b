package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"scorekeeper/internal/backup/interfaces"
	"scorekeeper/internal/controllers"
	"scorekeeper/internal/providers"
	"scorekeeper/internal/structures"
	"strconv"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
	scheduler interfaces.SchedulerInterface
	conf      *structures.Config
	logger    providers.Logger
}

// NewHandler assembles the HTTP surface: health and metrics, the API routes
// and the static frontend as the fallback for GET.
func NewHandler(conf *structures.Config, router providers.RouterProviderInterface, healthController *controllers.HealthController, metrics providers.MetricsProviderInterface) http.Handler {
	// Inner mux: API routes + frontend
	apiMux := http.NewServeMux()
	router.Mount(apiMux)
	if conf.Frontend.Dir != "" {
		apiMux.Handle("GET /", http.FileServer(http.Dir(conf.Frontend.Dir)))
	}

	instrumentedAPI := providers.MetricsMiddleware(metrics, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return providers.CorsMiddleware(conf.Cors.AllowOrigins, gzhttp.GzipHandler(mux))
}

func NewApp(handler http.Handler, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger) (*App, error) {
	if err := os.MkdirAll(conf.Backup.Dir, 0750); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		scheduler: scheduler,
		conf:      conf,
		logger:    logger,
	}, nil
}

// Run serves until SIGINT/SIGTERM or ctx is done, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)
	a.scheduler.Init()
	defer a.scheduler.Stop()

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", a.conf.WebServer.Host, a.conf.WebServer.Port)
		if err := a.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case <-ctx.Done():
		a.logger.Infof(providers.TypeApp, "Shutting down")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.WebServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}

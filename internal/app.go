package internal

import (
	"context"
	"errors"
	"fmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"os"
	"os/signal"
	"petcare/internal/controllers"
	"petcare/internal/persistence"
	"petcare/internal/providers"
	"petcare/internal/services"
	"petcare/internal/structures"
	"strconv"
	"syscall"
	"time"
)

const (
	seedTimeout     = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	closeTimeout    = 30 * time.Second
)

type App struct {
	WebServer *http.Server
	conf      *structures.Config
	logger    providers.Logger
	scheduler persistence.SchedulerInterface
	persister persistence.PersisterInterface
	seed      *services.SeedService
	users     services.UserStoreInterface
}

func NewApp(apiController *controllers.ApiController, healthController *controllers.HealthController, scheduler persistence.SchedulerInterface, persister persistence.PersisterInterface, seed *services.SeedService, users services.UserStoreInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) (*App, error) {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	// Wrap API routes with metrics middleware
	instrumentedAPI := providers.MetricsMiddleware(metrics, logger, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second + conf.Scanner.Delay,
			IdleTimeout:  60 * time.Second,
		},
		conf:      conf,
		logger:    logger,
		scheduler: scheduler,
		persister: persister,
		seed:      seed,
		users:     users,
	}, nil
}

// startup waits for the profile created on first start to be stored, then
// seeds demo data. Failures are logged only: the state stays in memory and
// the scheduler keeps retrying the unsaved documents.
func (app *App) startup(ctx context.Context) {
	if err := app.users.InitAck().Wait(ctx); err != nil {
		app.logger.Errorf(providers.TypeUser, "Default user profile not stored: %s", err)
	}
	if err := app.seed.Seed(ctx); err != nil {
		app.logger.Errorf(providers.TypeApp, "Seed error: %s", err)
	}
}

// Run seeds demo data, serves HTTP until SIGINT/SIGTERM and then flushes
// every document before returning.
func (app *App) Run() error {
	app.logger.Infof(providers.TypeApp, "Starting %s", app.conf.AppName)

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	app.startup(ctx)
	cancel()

	app.scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", app.WebServer.Addr)
		if err := app.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-stop:
		app.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	app.scheduler.Stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := app.WebServer.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}

	if err := app.scheduler.Persist(); err != nil {
		runErr = errors.Join(runErr, err)
	}

	closeCtx, cancelClose := context.WithTimeout(context.Background(), closeTimeout)
	defer cancelClose()
	if err := app.persister.Close(closeCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}

	if runErr == nil {
		app.logger.Infof(providers.TypeApp, "gracefully stopped")
	}
	return runErr
}

package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/tailorhub/internal/devserver/config"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// App runs the development backend until a signal arrives or the context is
// cancelled.
type App struct {
	config *config.Config
	logger logging.Logger
	store  *Store
	server *http.Server
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	store := NewStore(0)
	if cfg.Seed {
		if err := store.Seed(); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(store, Options{
		SecretKey: []byte(cfg.SecretKey),
		TokenTTL:  cfg.TokenTTL,
		Logger:    logger,
		Registry:  reg,
	})

	return &App{
		config: cfg,
		logger: logger,
		store:  store,
		server: &http.Server{Addr: cfg.Addr, Handler: router, ReadHeaderTimeout: 10 * time.Second},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP and shuts down gracefully when ctx is done.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)
	app.logger.Info(ctx, "starting devserver", "addr", app.config.Addr, "seed", app.config.Seed)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	app.logger.Info(ctx, "devserver stopped")
	return nil
}

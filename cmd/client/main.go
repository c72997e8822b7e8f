package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/tailorhub/internal/buildinfo"
	"github.com/dmitrijs2005/tailorhub/internal/client/cli"
	"github.com/dmitrijs2005/tailorhub/internal/client/client"
	"github.com/dmitrijs2005/tailorhub/internal/client/config"
	"github.com/dmitrijs2005/tailorhub/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
	"github.com/dmitrijs2005/tailorhub/internal/tracing"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, "tailorhub-client", buildinfo.Version, cfg.JaegerEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	reg := prometheus.NewRegistry()
	metrics := client.NewMetrics(reg)
	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "metrics server failed", "error", err)
			}
		}()
		defer srv.Close()
	}

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	api, err := client.NewHTTPClient(client.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	svc := cli.NewServices(api, credentials.NewSQLiteRepository(db), logger)
	api.SetTokenSource(svc.Session)

	app := cli.NewApp(svc, logger, cfg.Language(), os.Stdin, os.Stdout)
	return app.Run(ctx)
}

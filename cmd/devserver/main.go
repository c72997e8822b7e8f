package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/tailorhub/internal/buildinfo"
	"github.com/dmitrijs2005/tailorhub/internal/devserver"
	"github.com/dmitrijs2005/tailorhub/internal/devserver/config"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := devserver.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}

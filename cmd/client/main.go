package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/hwidgate/internal/client/cli"
	"github.com/dmitrijs2005/hwidgate/internal/client/client"
	"github.com/dmitrijs2005/hwidgate/internal/client/config"
	"github.com/dmitrijs2005/hwidgate/internal/client/hwid"
	"github.com/dmitrijs2005/hwidgate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/hwidgate/internal/client/services"
	"github.com/dmitrijs2005/hwidgate/internal/client/session"
	"github.com/dmitrijs2005/hwidgate/internal/logging"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(os.Stderr, cfg.LogLevel)

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	meta := metadata.NewSQLiteRepository(db)
	api := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, logger)
	sessions := session.NewHolder()

	app := cli.NewApp(
		services.NewAuthService(api, sessions, meta, logger),
		services.NewVerifier(api, hwid.NewSystemProvider(meta), sessions, logger),
		services.NewAccountService(api, sessions, logger),
		sessions,
		logger,
		os.Stdin,
		os.Stdout,
	)

	app.Run(ctx)

}

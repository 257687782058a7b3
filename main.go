package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bryan-buckman/onair/internal/catalog"
	"github.com/bryan-buckman/onair/internal/config"
	"github.com/bryan-buckman/onair/internal/server"
	"github.com/bryan-buckman/onair/internal/view"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	loc := cfg.Location()

	catalog.RegisterMetrics()
	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Timeout(), cfg.Catalog.PageSize, loc)
	ctrl := view.New(client, loc)

	srv, err := server.New(ctrl, loc)
	if err != nil {
		log.Fatalf("Error creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx, cfg.Server.Addr); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}

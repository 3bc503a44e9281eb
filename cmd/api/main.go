package main

import (
	"context"
	"log"

	"careercraft-backend/internal/bootstrap"
	"careercraft-backend/internal/server"
	"careercraft-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := app.Sweeper.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("sweeper stopped: %v", err)
		}
	}()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

package main

import (
	"context"
	"log"

	"novel-recall-be/internal/bootstrap"
	"novel-recall-be/internal/config"
	"novel-recall-be/internal/server"
	"novel-recall-be/internal/tracer"
	"novel-recall-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	// Postgres is only required for the pgvector corpus backend.
	var gormDB *gorm.DB
	if cfg.Corpus.Backend == "postgres" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Corpus.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}

package main

import (
	"context"
	"log"

	"chartprep/adapters/memory"
	"chartprep/adapters/postgres"
	"chartprep/app"
	"chartprep/internal/config"
	"chartprep/ports"
	"chartprep/ui"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	var artifacts ports.ArtifactRepository
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL, cfg.Database.MaxOpenConns)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			log.Fatal("Failed to prepare database schema:", err)
		}
		artifacts = postgres.NewArtifactRepository(db)
		log.Println("Using Postgres artifact store")
	} else {
		artifacts = memory.NewArtifactRepository()
		log.Println("Using in-memory artifact store")
	}

	server := ui.NewServer(app.NewAnalysisService(artifacts))
	log.Printf("Starting chartprep API on http://localhost:%s", cfg.Server.Port)
	log.Fatal(server.Start(ui.Config{Port: cfg.Server.Port}))
}

package main

import (
	"context"
	"log"
	"time"

	"notegraph-be/internal/config"
	"notegraph-be/internal/model"
	"notegraph-be/pkg/database"
	"notegraph-be/pkg/search"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	log.Println("Step 2: Running AutoMigrate for notes and note_links...")
	if err := db.AutoMigrate(&model.Note{}, &model.NoteLink{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Printf("Step 3: Ensuring search index %q...", cfg.Search.IndexName)
	index, err := search.NewElasticIndex(search.ElasticConfig{
		Addresses: cfg.Search.Addresses,
		Username:  cfg.Search.Username,
		Password:  cfg.Search.Password,
		IndexName: cfg.Search.IndexName,
	})
	if err != nil {
		log.Fatalf("Error: Failed to create search client: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := index.EnsureIndex(ctx); err != nil {
		log.Fatalf("Error: Failed to create search index: %v", err)
	}

	log.Println("Success: migration completed.")
}

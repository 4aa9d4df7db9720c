package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/database"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding the *.sql migrations")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx := context.Background()
	db, err := database.OpenSQL(ctx, dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if *rollback {
		name, err := database.Rollback(ctx, db, *dir)
		if errors.Is(err, database.ErrNoMigrations) {
			log.Fatal("No migrations to rollback")
		}
		if err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
		fmt.Printf("Successfully rolled back migration: %s\n", name)
		return
	}

	applied, err := database.MigrateUp(ctx, db, *dir)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	for _, name := range applied {
		fmt.Printf("Successfully applied migration: %s\n", name)
	}
	fmt.Println("All migrations applied successfully.")
}

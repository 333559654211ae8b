package main

import (
	"errors"
	"log"
	"os"

	"github.com/DeadlyParkour777/solution-share/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const defaultSource = "file://migrations/sql"

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: ./migrate [up|down] [source]")
	}

	cfg := config.ConfigInit()

	source := defaultSource
	if len(os.Args) > 2 {
		source = os.Args[2]
	}

	command := os.Args[1]
	log.Printf("Running migration command: %s from %s", command, source)

	m, err := migrate.New(source, cfg.MigrateURL())
	if err != nil {
		log.Fatalf("Cannot create migrate instance: %v", err)
	}
	defer m.Close()

	var errMigration error
	switch command {
	case "up":
		errMigration = m.Up()
	case "down":
		errMigration = m.Down()
	default:
		log.Fatalf("Unknown command: %s", command)
	}

	if errMigration != nil && !errors.Is(errMigration, migrate.ErrNoChange) {
		log.Fatalf("Migration failed: %v", errMigration)
	}

	log.Println("Migration finished successfully!")
}

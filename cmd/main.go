package main

import (
	"log"

	"github.com/DeadlyParkour777/solution-share/cmd/app"
	"github.com/DeadlyParkour777/solution-share/internal/config"
	_ "github.com/lib/pq"
)

// @title Solution Share API
// @version 1.0

// @host localhost:8000
// @BasePath /
func main() {
	cfg := config.ConfigInit()
	log.Println("Configuration loaded")

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to init app: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Failed to run app: %v", err)
	}
}

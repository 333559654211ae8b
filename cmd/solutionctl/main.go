package main

import (
	"log"

	"github.com/DeadlyParkour777/solution-share/internal/cli"
	_ "github.com/lib/pq"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Fatalf("solutionctl: %v", err)
	}
}

package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"

	"potato-racer/internal/cli"
	"potato-racer/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Fatal Error: invalid configuration: %v", err)
	}

	cli.Execute(cfg)
}

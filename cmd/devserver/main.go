package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/you/estately/internal/app"
	"github.com/you/estately/internal/config"
)

func main() {
	configPath := flag.String("config", "config/config.yml", "config file path")
	flag.Parse()

	// .env is optional; environment variables win over the yaml file.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.RunDevServer(cfg); err != nil {
		log.Fatalf("devserver: %v", err)
	}
}

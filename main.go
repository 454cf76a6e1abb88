package main

import (
	"flag"
	"log"
	"os"

	"github.com/avstrong/stayquote/internal/app"
	"github.com/avstrong/stayquote/internal/config"
	"github.com/avstrong/stayquote/internal/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err.Error())
		os.Exit(1)
	}

	l := logger.NewWithOptions(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	var exitCode int

	if err := app.Run(cfg, l); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	os.Exit(exitCode)
}

package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/amresh-singh-kipm/quick-admin/client"
	"github.com/amresh-singh-kipm/quick-admin/config"
	"github.com/amresh-singh-kipm/quick-admin/handlers"
	"github.com/amresh-singh-kipm/quick-admin/pkg/logger"
	"github.com/amresh-singh-kipm/quick-admin/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "quickadmin:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		listenAddr = flag.String("addr", "", "listen address, overrides config")
	)
	flag.Parse()

	cfg := config.New()
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return err
		}
	}
	cfg.ApplyEnv()
	if *listenAddr != "" {
		cfg.ListenAddr = *listenAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(cfg.Log)

	sessions, err := session.Open(cfg.SessionFile)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}

	api, err := client.New(cfg.APIBaseURL, sessions, cfg.RequestTimeout.Std(), log)
	if err != nil {
		return fmt.Errorf("building platform client: %w", err)
	}

	h := handlers.New(api, sessions, log)

	log.Info("console listening", "addr", cfg.ListenAddr, "api", cfg.APIBaseURL)
	return http.ListenAndServe(cfg.ListenAddr, h.Routes())
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/openvenue/wayfinder/pkg/api"
	"github.com/openvenue/wayfinder/pkg/config"
	"github.com/openvenue/wayfinder/pkg/logging"
	"github.com/openvenue/wayfinder/pkg/metrics"
	"github.com/openvenue/wayfinder/pkg/server"
	"github.com/openvenue/wayfinder/pkg/spatial"
	"github.com/openvenue/wayfinder/pkg/store"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to YAML config file")
	migrate := pflag.Bool("migrate", false, "apply database migrations before serving")
	pflag.Parse()

	if err := run(*configPath, *migrate); err != nil {
		fmt.Fprintf(os.Stderr, "wayfinder-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, migrate bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.Logging.Level))
	log.Info("wayfinder starting",
		logging.String("addr", cfg.Addr()),
		logging.String("log_level", cfg.Logging.Level))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	registry := metrics.DefaultRegistry()

	pg, err := store.NewPGStore(ctx, store.PGConfig{
		URL:      cfg.Database.URL,
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
		Recorder: registry,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pg.Close()

	if migrate {
		if err := pg.Migrate(ctx); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		log.Info("database migrations applied")
	}

	index := spatial.NewIndex()

	apiServer := api.NewServer(pg, index, api.Options{
		Logger:      log,
		Metrics:     registry,
		CORSOrigins: cfg.Server.CORSOrigins,
	})
	if err := apiServer.WarmIndex(ctx); err != nil {
		return fmt.Errorf("warm spatial index: %w", err)
	}

	gs := server.NewGracefulServer(cfg.Addr(), apiServer.Router(), log)
	gs.SetConfigReloadFunc(func() error {
		reloaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		log.SetLevel(logging.ParseLevel(reloaded.Logging.Level))
		log.Info("log level reloaded", logging.String("log_level", reloaded.Logging.Level))
		return nil
	})

	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				registry.UpdateSystemMetrics(startTime)
			case <-gs.ShutdownChannel():
				return
			}
		}
	}()

	return gs.Start()
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/binder/internal/cardtrader"
	"github.com/Veraticus/binder/internal/common"
	"github.com/Veraticus/binder/internal/config"
	"github.com/Veraticus/binder/internal/storage"
	"github.com/spf13/viper"
)

// loadConfig reads the validated run configuration from the global viper.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("invalid configuration", err)
	}
	return cfg, nil
}

func newClient(ctx context.Context, cfg *config.Config) (*cardtrader.Client, error) {
	timeout := cfg.API.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return cardtrader.NewClient(ctx, cfg.Token,
		cardtrader.WithBaseURL(cfg.API.BaseURL),
		cardtrader.WithTimeout(timeout),
		cardtrader.WithRequestsPerMinute(cfg.API.RequestsPerMinute),
	)
}

// initStorage opens the blueprint cache and brings its schema up to date.
func initStorage(ctx context.Context, path string) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.ExpandPath(path))
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

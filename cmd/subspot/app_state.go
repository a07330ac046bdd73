package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/suryansh-23/subspot/internal/cache"
	"github.com/suryansh-23/subspot/internal/config"
	"github.com/suryansh-23/subspot/internal/library"
)

type appState struct {
	cfg      config.Config
	cfgFound bool
	cache    *cache.Cache
	logger   *slog.Logger
	cfgPath  string
}

type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.code)
}

func ensureCache(existing *cache.Cache, cfg config.Config) *cache.Cache {
	if existing == nil {
		return library.NewCache(cfg.Library)
	}
	existing.SetTTL(time.Duration(cfg.Library.CacheTTLSeconds) * time.Second)
	return existing
}

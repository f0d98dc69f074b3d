// Package app assembles storage backends and click sinks from the configuration.
package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/config"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/metrics"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/accounting"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage/cached"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage/infile"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage/inmemory"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage/inpsql"
)

// Storage backend names.
const (
	BackendPSQL     = "inpsql"
	BackendFile     = "infile"
	BackendInMemory = "inmemory"
)

// Backend names the storage selected by cfg: Postgres if a DSN is set, a file if a path is set, memory otherwise.
func Backend(cfg *config.Config) string {
	switch {
	case cfg.DatabaseDSN != "":
		return BackendPSQL
	case cfg.FileStoragePath != "":
		return BackendFile
	default:
		return BackendInMemory
	}
}

// OpenStorage initializes the selected backend and wraps it with a Redis cache when one is configured.
// Persistent backends and the cache register closers on wg which finish once ctx is cancelled.
func OpenStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config, log *zap.Logger) (storage.ShortLinkStorage, error) {
	var st storage.ShortLinkStorage
	backend := Backend(cfg)
	switch backend {
	case BackendPSQL:
		wg.Add(1)
		s, err := inpsql.InitStorage(ctx, wg, cfg, log)
		if err != nil {
			wg.Done()
			return nil, err
		}
		st = s
	case BackendFile:
		wg.Add(1)
		s, err := infile.InitStorage(ctx, wg, cfg, log)
		if err != nil {
			wg.Done()
			return nil, err
		}
		st = s
	default:
		st = inmemory.InitStorage(log)
	}
	log.Info("storage initialized", zap.String("backend", backend))
	if cfg.RedisAddress == "" {
		return st, nil
	}
	client, err := cached.NewClient(ctx, cfg.RedisAddress, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}
	log.Info("redis cache enabled", zap.String("address", cfg.RedisAddress), zap.Duration("ttl", cfg.CacheTTL))
	cache := cached.InitStorage(st, client, cfg.CacheTTL, log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := cache.CloseDB(); err != nil {
			log.Error("redis client closure failed", zap.Error(err))
		}
	}()
	return cache, nil
}

// OpenSink returns a click sink publishing to the broker when one is configured
// and incrementing counters in st directly otherwise.
func OpenSink(cfg *config.Config, st storage.ClickCounter, log *zap.Logger, m *metrics.Metrics) (accounting.ClickSink, error) {
	if cfg.AMQPURL == "" {
		return accounting.NewStoreSink(st, cfg.ClickTimeout, log, m), nil
	}
	sink, err := accounting.DialAMQPSink(cfg.AMQPURL, cfg.ClickQueue, cfg.ClickTimeout, log, m)
	if err != nil {
		return nil, err
	}
	log.Info("click events published to broker", zap.String("queue", cfg.ClickQueue))
	return sink, nil
}

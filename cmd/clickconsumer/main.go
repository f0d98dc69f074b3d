package main

import (
	"context"
	"log"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/app"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/config"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/logger"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/metrics"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/accounting"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()
	wg := &sync.WaitGroup{}
	cfg, err := config.NewDefaultConfiguration()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Parse(); err != nil {
		log.Fatal(err)
	}
	logg, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer logg.Sync() //nolint:errcheck
	if cfg.AMQPURL == "" {
		logg.Fatal("AMQP URL is not configured")
	}
	if app.Backend(cfg) == app.BackendInMemory {
		logg.Warn("consumer runs over in-memory storage, counts are not shared with the server")
	}
	st, err := app.OpenStorage(ctx, wg, cfg, logg)
	if err != nil {
		logg.Fatal("storage initialization failed", zap.Error(err))
	}
	conn, ch, err := accounting.DialQueue(cfg.AMQPURL, cfg.ClickQueue)
	if err != nil {
		logg.Fatal("broker connection failed", zap.Error(err))
	}
	defer conn.Close()
	defer ch.Close()
	// unacknowledged deliveries are bounded by the worker count
	if err := ch.Qos(cfg.ConsumerWorkers, 0, false); err != nil {
		logg.Fatal("channel QoS setup failed", zap.Error(err))
	}
	deliveries, err := ch.Consume(cfg.ClickQueue, "clickconsumer", false, false, false, false, nil)
	if err != nil {
		logg.Fatal("queue consumption failed", zap.Error(err))
	}
	consumer := accounting.NewConsumer(st, cfg.ConsumerWorkers, cfg.ClickTimeout, logg, metrics.New())
	logg.Info("consuming click events", zap.String("queue", cfg.ClickQueue), zap.Int("workers", cfg.ConsumerWorkers))
	consumer.Run(ctx, deliveries)
	cancel()
	wg.Wait()
	logg.Info("consumer stopped")
}

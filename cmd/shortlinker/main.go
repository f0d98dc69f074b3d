package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/api/rest"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/app"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/config"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/logger"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/metrics"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/codegen"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/issuer/v1"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/resolver/v1"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// add a waiting group for storage closers
	wg := &sync.WaitGroup{}
	// get configuration
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
	logg.Info("starting shortlinker",
		zap.String("version", buildVersion),
		zap.String("date", buildDate),
		zap.String("commit", buildCommit),
		zap.String("shortDomain", cfg.ShortLinkDomain),
		zap.String("mainSite", cfg.MainSiteURL),
	)
	// initialize storage, switch between "inpsql", "infile" and "inmemory" modules
	st, err := app.OpenStorage(ctx, wg, cfg, logg)
	if err != nil {
		logg.Fatal("storage initialization failed", zap.Error(err))
	}
	m := metrics.New()
	sink, err := app.OpenSink(cfg, st, logg, m)
	if err != nil {
		logg.Fatal("click sink initialization failed", zap.Error(err))
	}
	gen, err := codegen.New(cfg.CodeStrategy, cfg.CodeLength, cfg.HashSalt)
	if err != nil {
		logg.Fatal("code generator initialization failed", zap.Error(err))
	}
	iss, err := issuer.InitIssuer(st, gen, cfg, logg, m)
	if err != nil {
		logg.Fatal("issuer initialization failed", zap.Error(err))
	}
	res, err := resolver.InitResolver(st, sink, cfg, logg, m)
	if err != nil {
		logg.Fatal("resolver initialization failed", zap.Error(err))
	}
	// initialize server
	server, err := rest.InitServer(cfg, iss, res, st, logg, m)
	if err != nil {
		logg.Fatal("server initialization failed", zap.Error(err))
	}
	// set a listener for os.Signal
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	idle := make(chan struct{})
	go func() {
		<-done
		logg.Info("server shutdown attempted")
		ctxTO, cancelTO := context.WithTimeout(ctx, 5*time.Second)
		defer cancelTO()
		if err := server.Shutdown(ctxTO); err != nil {
			logg.Error("server shutdown failed", zap.Error(err))
		}
		close(idle)
	}()
	// start up the server
	logg.Info("server start attempted", zap.String("address", cfg.ServerAddress), zap.Bool("https", cfg.EnableHTTPS))
	if err := rest.Serve(server, cfg); err != nil && err != http.ErrServerClosed {
		logg.Fatal("server failed", zap.Error(err))
	}
	<-idle
	// drain pending click increments before storages are closed
	if err := sink.Close(); err != nil {
		logg.Error("click sink closure failed", zap.Error(err))
	}
	cancel()
	// wait for goroutines in InitStorage to finish before exiting
	wg.Wait()
	logg.Info("server shutdown succeeded")
}

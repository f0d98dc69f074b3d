// Package rest provides functionality for initializing a server for the paste short link service.
package rest

import (
	"expvar"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/api/rest/handlers"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/config"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/metrics"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/issuer"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/resolver"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage"
)

// CertCacheDir keeps certificates obtained by autocert.
const CertCacheDir = "certs"

var (
	serverStart = time.Now()
	publishOnce sync.Once
)

// uptime returns time in seconds since the server start-up.
func uptime() interface{} {
	return int64(time.Since(serverStart).Seconds())
}

// NewRouter wires handlers and middleware.
func NewRouter(cfg *config.Config, iss issuer.Issuer, res resolver.Resolver, pinger storage.Pinger, log *zap.Logger, m *metrics.Metrics) (*chi.Mux, error) {
	linkHandler, err := handlers.InitLinkHandler(iss, res, pinger, cfg, log)
	if err != nil {
		return nil, err
	}
	trustedNetHandler := middleware.NewTrustedNetHandler(cfg, log)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.NewRequestLogger(log, m).Handle)
	r.Use(middleware.CORSHandle)

	r.Route("/api/shortlinks", func(r chi.Router) {
		r.Use(middleware.CompressHandle)
		r.Use(middleware.DecompressHandle)
		r.Post("/", linkHandler.HandleIssue())
		r.Get("/{pasteID}", linkHandler.HandleLookup())
	})
	r.Get("/ping", linkHandler.HandlePingDB())
	r.Group(func(r chi.Router) {
		r.Use(trustedNetHandler.TrustedNetworkHandler)
		r.Method(http.MethodGet, "/metrics", m.Handler())
		r.Mount("/debug", chiMiddleware.Profiler()) // see https://github.com/go-chi/chi/blob/master/middleware/profiler.go
	})
	r.Get("/", linkHandler.HandleResolve())
	r.Get("/*", linkHandler.HandleResolve())
	r.Head("/", linkHandler.HandleResolve())
	r.Head("/*", linkHandler.HandleResolve())
	publishOnce.Do(func() {
		expvar.Publish("system.uptime", expvar.Func(uptime))
	})
	return r, nil
}

// InitServer returns a http.Server object ready to be listening and serving.
func InitServer(cfg *config.Config, iss issuer.Issuer, res resolver.Resolver, pinger storage.Pinger, log *zap.Logger, m *metrics.Metrics) (*http.Server, error) {
	r, err := NewRouter(cfg, iss, res, pinger, log, m)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		ErrorLog:     zap.NewStdLog(log),
	}
	if cfg.EnableHTTPS {
		manager := &autocert.Manager{
			Cache:      autocert.DirCache(CertCacheDir),
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(cfg.ShortDomainHost(), hostOf(cfg.MainSiteURL)),
		}
		srv.TLSConfig = manager.TLSConfig()
	}
	return srv, nil
}

// Serve runs srv with or without TLS depending on the configuration.
func Serve(srv *http.Server, cfg *config.Config) error {
	if cfg.EnableHTTPS {
		return srv.ListenAndServeTLS("", "")
	}
	return srv.ListenAndServe()
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

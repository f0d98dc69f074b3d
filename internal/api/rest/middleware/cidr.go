// Package middleware provides various middleware functionality.
package middleware

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/config"
)

// TrustedNetHandler sets object structure.
type TrustedNetHandler struct {
	Resolved bool
	IP       net.IP
	IPNet    *net.IPNet
	log      *zap.Logger
}

// NewTrustedNetHandler initializes a new trusted network handler.
// An empty or malformed subnet denies every request.
func NewTrustedNetHandler(cfg *config.Config, log *zap.Logger) *TrustedNetHandler {
	ip, ipnet, err := net.ParseCIDR(cfg.TrustedSubnet)
	if err != nil {
		if cfg.TrustedSubnet != "" {
			log.Warn("trusted network was not initialized", zap.String("subnet", cfg.TrustedSubnet), zap.Error(err))
		}
		return &TrustedNetHandler{log: log}
	}
	return &TrustedNetHandler{
		Resolved: true,
		IP:       ip,
		IPNet:    ipnet,
		log:      log,
	}
}

// TrustedNetworkHandler provides trusted network handling functionality.
func (tn *TrustedNetHandler) TrustedNetworkHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !tn.Resolved || !tn.trusted(r) {
			tn.log.Debug("internal subnet access violation", zap.String("remoteAddr", r.RemoteAddr), zap.String("path", r.URL.Path))
			http.Error(w, "Internal subnet access violation", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (tn *TrustedNetHandler) trusted(r *http.Request) bool {
	ipStr, _, err := net.SplitHostPort(r.RemoteAddr)
	if ip := net.ParseIP(ipStr); err == nil && ip != nil && tn.IPNet.Contains(ip) {
		return true
	}
	ip := net.ParseIP(r.Header.Get("X-Real-IP"))
	if ip == nil {
		first := strings.Split(r.Header.Get("X-Forwarded-For"), ",")[0]
		ip = net.ParseIP(strings.TrimSpace(first))
	}
	return ip != nil && tn.IPNet.Contains(ip)
}

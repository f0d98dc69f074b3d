// Package handlers provides http.HandlerFunc handler functions to be used for endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/api/rest/modeldto"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/config"
	serviceErrors "github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/errors"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/modellink"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/issuer"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/resolver"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage"
)

// DefaultTimeout bounds store operations of a single request.
const DefaultTimeout = 500 * time.Millisecond

// maxBodyBytes limits issue request bodies.
const maxBodyBytes = 1 << 16

// LinkHandler defines data structure handling and provides support for adding new implementations.
type LinkHandler struct {
	issuer   issuer.Issuer
	resolver resolver.Resolver
	pinger   storage.Pinger
	timeout  time.Duration
	log      *zap.Logger
}

// InitLinkHandler initializes a LinkHandler object and sets its attributes.
func InitLinkHandler(iss issuer.Issuer, res resolver.Resolver, pinger storage.Pinger, cfg *config.Config, log *zap.Logger) (*LinkHandler, error) {
	if iss == nil || res == nil {
		return nil, fmt.Errorf("nil service was passed to link handler initializer")
	}
	if pinger == nil {
		return nil, fmt.Errorf("nil storage pinger was passed to link handler initializer")
	}
	timeout := cfg.StoreTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &LinkHandler{
		issuer:   iss,
		resolver: res,
		pinger:   pinger,
		timeout:  timeout,
		log:      log,
	}, nil
}

// HandleResolve redirects to the destination of the short code in the trailing path segment.
// It never responds with an error status. HEAD requests get the same redirect but are not counted as clicks.
func (h *LinkHandler) HandleResolve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		shortCode := trailingSegment(r.URL.Path)
		var res modellink.Resolution
		if r.Method == http.MethodHead {
			res = h.resolver.Locate(ctx, r.Host, shortCode)
		} else {
			res = h.resolver.Resolve(ctx, r.Host, shortCode)
		}
		if res.Fallback {
			h.log.Debug("redirecting to fallback", zap.String("host", r.Host), zap.String("shortCode", shortCode), zap.Error(res.Reason))
		}
		redirect(w, res.Location)
	}
}

// HandleIssue accepts JSON as {"url":"<paste_url>"} and provides client with the short link issued for the paste.
func (h *LinkHandler) HandleIssue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			h.writeError(w, http.StatusBadRequest, errors.New("invalid Content-Type"))
			return
		}
		b, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
		var req modeldto.RequestShortLink
		if err := json.Unmarshal(b, &req); err != nil {
			h.writeError(w, http.StatusBadRequest, err)
			return
		}
		link, err := h.issuer.GetOrCreateShortLink(ctx, req.URL)
		if err != nil {
			h.log.Info("short link issuance rejected", zap.String("url", req.URL), zap.Error(err))
			h.writeError(w, statusFor(err), err)
			return
		}
		h.writeJSON(w, http.StatusOK, modeldto.FromShortLink(link))
	}
}

// HandleLookup provides client with the short link issued for a paste and its click count.
func (h *LinkHandler) HandleLookup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		pasteID := chi.URLParam(r, "pasteID")
		link, err := h.issuer.Lookup(ctx, pasteID)
		if err != nil {
			h.writeError(w, statusFor(err), err)
			return
		}
		h.writeJSON(w, http.StatusOK, modeldto.FromShortLink(link))
	}
}

// HandlePingDB reports whether the store answers.
func (h *LinkHandler) HandlePingDB() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.pinger.PingDB(); err != nil {
			h.log.Error("store ping failed", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var invalid *serviceErrors.InvalidInputError
	var notFound *serviceErrors.LinkNotFoundError
	var unavailable *serviceErrors.StoreUnavailableError
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// redirect responds with 302 and headers preventing intermediaries from caching the destination.
func redirect(w http.ResponseWriter, location string) {
	h := w.Header()
	h.Set("Location", location)
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
	w.WriteHeader(http.StatusFound)
}

func trailingSegment(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

func (h *LinkHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.log.Debug("response write failed", zap.Error(err))
	}
}

func (h *LinkHandler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, modeldto.ResponseError{Error: err.Error()})
}

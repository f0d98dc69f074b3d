// Package resolver provides functionality for resolving short codes into redirect destinations.
package resolver

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/config"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/metrics"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/accounting"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/codegen"
	serviceErrors "github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/errors"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/modellink"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/resolver"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage/errors"
)

// PastePathPrefix is the main site path pastes are served under.
const PastePathPrefix = "/p/"

// Check interface implementation explicitly
var (
	_ resolver.Resolver = (*Resolver)(nil)
)

// Resolver struct defines data structure handling and provides support for adding new implementations.
type Resolver struct {
	Storage     storage.ShortLinkGetter
	Sink        accounting.ClickSink
	ShortHost   string
	MainSiteURL string
	FallbackURL string
	mainHost    string
	log         *zap.Logger
	metrics     *metrics.Metrics
}

// InitResolver initializes a Resolver object and sets its attributes.
func InitResolver(s storage.ShortLinkGetter, sink accounting.ClickSink, cfg *config.Config, log *zap.Logger, m *metrics.Metrics) (*Resolver, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	if sink == nil {
		return nil, errors.New("nil click sink was passed to service initializer")
	}
	site, err := url.Parse(cfg.MainSiteURL)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		Storage:     s,
		Sink:        sink,
		ShortHost:   cfg.ShortDomainHost(),
		MainSiteURL: strings.TrimRight(cfg.MainSiteURL, "/"),
		FallbackURL: cfg.FallbackURL,
		mainHost:    site.Host,
		log:         log,
		metrics:     m,
	}, nil
}

// Resolve maps shortCode to a redirect destination for a request that arrived on host
// and records a click for a resolved link. Every failure yields the fallback destination.
func (r *Resolver) Resolve(ctx context.Context, host string, shortCode string) modellink.Resolution {
	res := r.Locate(ctx, host, shortCode)
	if !res.Fallback {
		r.Sink.RecordClick(res.PasteID)
	}
	return res
}

// Locate resolves shortCode like Resolve without recording a click.
func (r *Resolver) Locate(ctx context.Context, host string, shortCode string) modellink.Resolution {
	if !codegen.IsValid(shortCode) {
		r.metrics.Resolved(metrics.OutcomeInvalidCode)
		return r.fallback(&serviceErrors.InvalidShortCodeError{Code: shortCode})
	}

	link, err := r.Storage.FindByShortCode(ctx, shortCode)
	if err != nil {
		var notFound *storageErrors.NotFoundError
		if errors.As(err, &notFound) {
			r.metrics.Resolved(metrics.OutcomeNotFound)
			return r.fallback(&serviceErrors.LinkNotFoundError{Key: shortCode})
		}
		r.log.Warn("short code lookup failed", zap.String("shortCode", shortCode), zap.Error(err))
		r.metrics.Resolved(metrics.OutcomeStoreError)
		return r.fallback(&serviceErrors.StoreUnavailableError{Op: "lookup", Err: err})
	}

	r.metrics.Resolved(metrics.OutcomeRedirect)
	return modellink.Resolution{Location: r.destination(host, link), PasteID: link.PasteID}
}

// destination picks the main site paste page for short domain traffic,
// the canonical URL when it points outside the main site, and the relative paste path otherwise.
func (r *Resolver) destination(host string, link modellink.ShortLink) string {
	pastePath := PastePathPrefix + url.PathEscape(link.PasteID)
	if host == r.ShortHost {
		return r.MainSiteURL + pastePath
	}
	if canonical, ok := r.externalURL(link.CanonicalURL); ok {
		return canonical
	}
	return pastePath
}

func (r *Resolver) externalURL(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "http") {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	if strings.EqualFold(u.Host, r.mainHost) {
		return "", false
	}
	return raw, true
}

func (r *Resolver) fallback(reason error) modellink.Resolution {
	r.log.Debug("resolving to fallback", zap.Error(reason))
	return modellink.Resolution{Location: r.FallbackURL, Fallback: true, Reason: reason}
}

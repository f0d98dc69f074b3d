// Package issuer provides functionality for issuing stable short links for pastes.
package issuer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/config"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/metrics"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/codegen"
	serviceErrors "github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/errors"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/issuer"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/modellink"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage/errors"
)

// MaxCodeAttempts bounds short code regeneration after collisions.
const MaxCodeAttempts = 3

// Check interface implementation explicitly
var (
	_ issuer.Issuer = (*Issuer)(nil)
)

// Issuer struct defines data structure handling and provides support for adding new implementations.
type Issuer struct {
	Storage     storage.ShortLinkStorage
	Generator   codegen.Generator
	ShortBase   string
	MaxAttempts int
	log         *zap.Logger
	metrics     *metrics.Metrics
}

// InitIssuer initializes an Issuer object and sets its attributes.
func InitIssuer(s storage.ShortLinkStorage, gen codegen.Generator, cfg *config.Config, log *zap.Logger, m *metrics.Metrics) (*Issuer, error) {
	if s == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	if gen == nil {
		return nil, errors.New("nil code generator was passed to service initializer")
	}
	return &Issuer{
		Storage:     s,
		Generator:   gen,
		ShortBase:   cfg.ShortBaseURL(),
		MaxAttempts: MaxCodeAttempts,
		log:         log,
		metrics:     m,
	}, nil
}

// GetOrCreateShortLink returns the short link issued for the paste contentURL points to, issuing one if absent.
func (iss *Issuer) GetOrCreateShortLink(ctx context.Context, contentURL string) (modellink.ShortLink, error) {
	pasteID, err := PasteIDFromURL(contentURL)
	if err != nil {
		iss.metrics.Issued(metrics.IssueResultInvalid)
		return modellink.ShortLink{}, err
	}

	link, err := iss.Storage.FindByPasteID(ctx, pasteID)
	if err == nil {
		iss.metrics.Issued(metrics.IssueResultExisting)
		return link, nil
	}
	var notFound *storageErrors.NotFoundError
	if !errors.As(err, &notFound) {
		return iss.storeFailure("find", pasteID, err)
	}

	for attempt := 1; attempt <= iss.MaxAttempts; attempt++ {
		code, err := iss.Generator.Generate()
		if err != nil {
			return modellink.ShortLink{}, fmt.Errorf("generating short code: %w", err)
		}
		link, err = iss.Storage.Insert(ctx, modellink.ShortLink{
			PasteID:      pasteID,
			ShortCode:    code,
			CanonicalURL: contentURL,
			ShortURL:     iss.ShortBase + "/" + code,
		})
		if err == nil {
			iss.log.Info("short link issued", zap.String("pasteId", pasteID), zap.String("shortCode", code))
			iss.metrics.Issued(metrics.IssueResultCreated)
			return link, nil
		}
		var exists *storageErrors.AlreadyExistsError
		if !errors.As(err, &exists) {
			return iss.storeFailure("insert", pasteID, err)
		}
		if exists.Field == storageErrors.FieldPasteID {
			// a concurrent call issued a link first, converge on its row
			link, err = iss.Storage.FindByPasteID(ctx, pasteID)
			if err != nil {
				return iss.storeFailure("reread", pasteID, err)
			}
			iss.log.Debug("short link issued concurrently", zap.String("pasteId", pasteID))
			iss.metrics.Issued(metrics.IssueResultRaceLost)
			return link, nil
		}
		iss.log.Warn("short code collision", zap.String("shortCode", code), zap.Int("attempt", attempt))
		iss.metrics.CodeCollided()
	}
	return iss.storeFailure("insert", pasteID, fmt.Errorf("no free short code after %d attempts", iss.MaxAttempts))
}

// Lookup returns the short link issued for pasteID together with its click count.
func (iss *Issuer) Lookup(ctx context.Context, pasteID string) (modellink.ShortLink, error) {
	link, err := iss.Storage.FindByPasteID(ctx, pasteID)
	if err != nil {
		var notFound *storageErrors.NotFoundError
		if errors.As(err, &notFound) {
			return modellink.ShortLink{}, &serviceErrors.LinkNotFoundError{Key: pasteID}
		}
		return modellink.ShortLink{}, &serviceErrors.StoreUnavailableError{Op: "lookup", Err: err}
	}
	return link, nil
}

// PingDB checks the underlying store.
func (iss *Issuer) PingDB() error {
	return iss.Storage.PingDB()
}

func (iss *Issuer) storeFailure(op, pasteID string, err error) (modellink.ShortLink, error) {
	iss.log.Error("short link issuance failed", zap.String("op", op), zap.String("pasteId", pasteID), zap.Error(err))
	iss.metrics.Issued(metrics.IssueResultStoreFail)
	return modellink.ShortLink{}, &serviceErrors.StoreUnavailableError{Op: op, Err: err}
}

// PasteIDFromURL extracts the paste identifier, the final path segment of an absolute URL.
func PasteIDFromURL(contentURL string) (string, error) {
	u, err := url.Parse(contentURL)
	if err != nil {
		return "", &serviceErrors.InvalidInputError{Input: contentURL, Msg: err.Error()}
	}
	if u.Scheme == "" || u.Host == "" {
		return "", &serviceErrors.InvalidInputError{Input: contentURL, Msg: "URL is not absolute"}
	}
	p := strings.TrimRight(u.Path, "/")
	if p == "" {
		return "", &serviceErrors.InvalidInputError{Input: contentURL, Msg: "URL has no paste identifier"}
	}
	return path.Base(p), nil
}

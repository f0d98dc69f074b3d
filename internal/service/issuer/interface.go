// Package issuer provides interfaces for types to be in compliance with.
package issuer

import (
	"context"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/modellink"
)

// Issuer defines a set of methods for types issuing short links for pastes.
type Issuer interface {
	GetOrCreateShortLink(ctx context.Context, contentURL string) (modellink.ShortLink, error)
	Lookup(ctx context.Context, pasteID string) (modellink.ShortLink, error)
}

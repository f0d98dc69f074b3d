// Package resolver provides interfaces for types to be in compliance with.
package resolver

import (
	"context"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/modellink"
)

// Resolver defines a set of methods for types resolving short codes into redirect destinations.
type Resolver interface {
	Resolve(ctx context.Context, host string, shortCode string) modellink.Resolution
	Locate(ctx context.Context, host string, shortCode string) modellink.Resolution
}

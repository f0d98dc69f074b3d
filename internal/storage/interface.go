// Package storage provides interfaces for types to be in compliance with.
package storage

import (
	"context"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/modellink"
)

//go:generate mockgen -source=interface.go -destination=../mocks/mock_storage.go -package=mocks

// ShortLinkGetter defines a set of methods for types implementing ShortLinkGetter.
type ShortLinkGetter interface {
	FindByPasteID(ctx context.Context, pasteID string) (modellink.ShortLink, error)
	FindByShortCode(ctx context.Context, shortCode string) (modellink.ShortLink, error)
}

// ShortLinkSetter defines a set of methods for types implementing ShortLinkSetter.
type ShortLinkSetter interface {
	Insert(ctx context.Context, link modellink.ShortLink) (modellink.ShortLink, error)
}

// ClickCounter defines a set of methods for types implementing ClickCounter.
type ClickCounter interface {
	IncrementClicks(ctx context.Context, pasteID string) error
}

// Pinger defines a set of methods for types implementing Pinger.
type Pinger interface {
	PingDB() error
}

// Closer defines a set of methods for types implementing Closer.
type Closer interface {
	CloseDB() error
}

// ShortLinkStorage defines a set of embedded interfaces for types implementing ShortLinkStorage.
type ShortLinkStorage interface {
	ShortLinkGetter
	ShortLinkSetter
	ClickCounter
	Pinger
	Closer
}

// Package inmemory provides functionality for storing short links in local memory maps.
package inmemory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/modellink"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage/errors"
)

// Check interface implementation explicitly
var (
	_ storage.ShortLinkStorage = (*Storage)(nil)
)

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu      sync.Mutex
	log     *zap.Logger
	byCode  map[string]*modellink.ShortLink
	byPaste map[string]*modellink.ShortLink
}

// InitStorage initializes a Storage object and sets its attributes.
func InitStorage(log *zap.Logger) *Storage {
	return &Storage{
		log:     log,
		byCode:  make(map[string]*modellink.ShortLink),
		byPaste: make(map[string]*modellink.ShortLink),
	}
}

type result struct {
	link modellink.ShortLink
	err  error
}

// FindByPasteID returns the short link issued for pasteID.
func (s *Storage) FindByPasteID(ctx context.Context, pasteID string) (modellink.ShortLink, error) {
	return s.find(ctx, func() (*modellink.ShortLink, bool) {
		link, ok := s.byPaste[pasteID]
		return link, ok
	}, pasteID)
}

// FindByShortCode returns the short link identified by shortCode.
func (s *Storage) FindByShortCode(ctx context.Context, shortCode string) (modellink.ShortLink, error) {
	return s.find(ctx, func() (*modellink.ShortLink, bool) {
		link, ok := s.byCode[shortCode]
		return link, ok
	}, shortCode)
}

func (s *Storage) find(ctx context.Context, lookup func() (*modellink.ShortLink, bool), key string) (modellink.ShortLink, error) {
	// buffered so that the goroutine never blocks after a timeout
	done := make(chan result, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		link, ok := lookup()
		if !ok {
			done <- result{err: &storageErrors.NotFoundError{Key: key}}
			return
		}
		done <- result{link: *link}
	}()

	select {
	case <-ctx.Done():
		s.log.Debug("retrieving short link", zap.String("key", key), zap.Error(ctx.Err()))
		return modellink.ShortLink{}, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case res := <-done:
		if res.err != nil {
			s.log.Debug("retrieving short link", zap.String("key", key), zap.Error(res.err))
			return modellink.ShortLink{}, res.err
		}
		s.log.Debug("retrieving short link", zap.String("key", key), zap.String("shortCode", res.link.ShortCode))
		return res.link, nil
	}
}

// Insert stores a new short link; pasteID and shortCode must both be unused.
func (s *Storage) Insert(ctx context.Context, link modellink.ShortLink) (modellink.ShortLink, error) {
	done := make(chan result, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.byPaste[link.PasteID]; ok {
			done <- result{err: &storageErrors.AlreadyExistsError{Field: storageErrors.FieldPasteID, Value: link.PasteID}}
			return
		}
		if _, ok := s.byCode[link.ShortCode]; ok {
			done <- result{err: &storageErrors.AlreadyExistsError{Field: storageErrors.FieldShortCode, Value: link.ShortCode}}
			return
		}
		stored := link
		stored.ClickCount = 0
		stored.CreatedAt = time.Now().UTC()
		s.byPaste[stored.PasteID] = &stored
		s.byCode[stored.ShortCode] = &stored
		done <- result{link: stored}
	}()

	select {
	case <-ctx.Done():
		s.log.Debug("inserting short link", zap.String("pasteId", link.PasteID), zap.Error(ctx.Err()))
		return modellink.ShortLink{}, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case res := <-done:
		if res.err != nil {
			s.log.Debug("inserting short link", zap.String("pasteId", link.PasteID), zap.Error(res.err))
			return modellink.ShortLink{}, res.err
		}
		s.log.Debug("inserting short link", zap.String("pasteId", link.PasteID), zap.String("shortCode", link.ShortCode))
		return res.link, nil
	}
}

// IncrementClicks adds one click to the short link issued for pasteID.
func (s *Storage) IncrementClicks(ctx context.Context, pasteID string) error {
	done := make(chan error, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		link, ok := s.byPaste[pasteID]
		if !ok {
			done <- &storageErrors.NotFoundError{Key: pasteID}
			return
		}
		link.ClickCount++
		done <- nil
	}()

	select {
	case <-ctx.Done():
		return &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case err := <-done:
		return err
	}
}

// PingDB is a mock for PSQL DB pinger.
func (s *Storage) PingDB() error {
	return nil
}

// CloseDB is a mock for PSQL DB closer.
func (s *Storage) CloseDB() error {
	return nil
}

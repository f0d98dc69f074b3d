// Package cached provides a Redis cache-aside decorator over any short link storage.
package cached

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/modellink"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage"
)

// Key prefixes of cached entries.
const (
	CodePrefix  = "shortlinks:code:"
	PastePrefix = "shortlinks:paste:"
)

// DefaultOpTimeout bounds a single cache call so that a hung Redis leaves the request deadline to the inner storage.
const DefaultOpTimeout = 100 * time.Millisecond

// Check interface implementation explicitly
var (
	_ storage.ShortLinkStorage = (*Storage)(nil)
)

// Storage serves reads from Redis and falls through to the inner storage on a miss or a cache failure.
// Entries keyed by short code may carry a stale click count, entries keyed by paste are dropped on every click.
type Storage struct {
	Inner     storage.ShortLinkStorage
	OpTimeout time.Duration
	client    *redis.Client
	ttl       time.Duration
	log       *zap.Logger
}

// InitStorage wraps inner with a cache on client.
func InitStorage(inner storage.ShortLinkStorage, client *redis.Client, ttl time.Duration, log *zap.Logger) *Storage {
	return &Storage{
		Inner:     inner,
		OpTimeout: DefaultOpTimeout,
		client:    client,
		ttl:       ttl,
		log:       log,
	}
}

// NewClient creates a Redis client and checks the connection.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := newClient(addr, password)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// newClient returns a client honoring context deadlines with short socket timeouts.
func newClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:                  addr,
		Password:              password,
		DialTimeout:           time.Second,
		ReadTimeout:           DefaultOpTimeout,
		WriteTimeout:          DefaultOpTimeout,
		ContextTimeoutEnabled: true,
	})
}

// FindByPasteID returns the short link issued for pasteID.
func (s *Storage) FindByPasteID(ctx context.Context, pasteID string) (modellink.ShortLink, error) {
	return s.find(ctx, PastePrefix+pasteID, s.Inner.FindByPasteID, pasteID)
}

// FindByShortCode returns the short link identified by shortCode.
func (s *Storage) FindByShortCode(ctx context.Context, shortCode string) (modellink.ShortLink, error) {
	return s.find(ctx, CodePrefix+shortCode, s.Inner.FindByShortCode, shortCode)
}

type finder func(ctx context.Context, key string) (modellink.ShortLink, error)

func (s *Storage) find(ctx context.Context, cacheKey string, next finder, key string) (modellink.ShortLink, error) {
	if link, ok := s.get(ctx, cacheKey); ok {
		return link, nil
	}
	link, err := next(ctx, key)
	if err != nil {
		return modellink.ShortLink{}, err
	}
	s.set(ctx, link)
	return link, nil
}

// Insert stores the link in the inner storage and populates the cache.
func (s *Storage) Insert(ctx context.Context, link modellink.ShortLink) (modellink.ShortLink, error) {
	stored, err := s.Inner.Insert(ctx, link)
	if err != nil {
		return modellink.ShortLink{}, err
	}
	s.set(ctx, stored)
	return stored, nil
}

// IncrementClicks passes through and invalidates the paste entry.
func (s *Storage) IncrementClicks(ctx context.Context, pasteID string) error {
	if err := s.Inner.IncrementClicks(ctx, pasteID); err != nil {
		return err
	}
	cctx, cancel := s.opContext(ctx)
	defer cancel()
	if err := s.client.Del(cctx, PastePrefix+pasteID).Err(); err != nil {
		s.log.Warn("cache invalidation failed", zap.String("pasteId", pasteID), zap.Error(err))
	}
	return nil
}

// PingDB checks the inner storage, the cache is optional.
func (s *Storage) PingDB() error {
	return s.Inner.PingDB()
}

// CloseDB closes the Redis client, the inner storage is closed by its owner.
func (s *Storage) CloseDB() error {
	return s.client.Close()
}

// opContext derives the deadline of a single cache call from the request context.
func (s *Storage) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.OpTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.OpTimeout)
}

func (s *Storage) get(ctx context.Context, key string) (modellink.ShortLink, bool) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return modellink.ShortLink{}, false
	}
	var link modellink.ShortLink
	if err := json.Unmarshal(data, &link); err != nil {
		s.log.Warn("cache entry corrupted", zap.String("key", key), zap.Error(err))
		return modellink.ShortLink{}, false
	}
	return link, true
}

func (s *Storage) set(ctx context.Context, link modellink.ShortLink) {
	data, err := json.Marshal(link)
	if err != nil {
		return
	}
	ctx, cancel := s.opContext(ctx)
	defer cancel()
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, CodePrefix+link.ShortCode, data, s.ttl)
		pipe.Set(ctx, PastePrefix+link.PasteID, data, s.ttl)
		return nil
	})
	if err != nil {
		s.log.Warn("cache write failed", zap.String("pasteId", link.PasteID), zap.Error(err))
	}
}

package accounting

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/metrics"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage"
)

// DefaultTimeout bounds a single detached increment.
const DefaultTimeout = 2 * time.Second

// Check interface implementation explicitly
var (
	_ ClickSink = (*StoreSink)(nil)
)

// StoreSink increments click counters directly in the store, detached from the request.
type StoreSink struct {
	Counter storage.ClickCounter
	Timeout time.Duration
	mu      sync.Mutex
	closed  bool
	wg      sync.WaitGroup
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewStoreSink initializes a StoreSink object.
func NewStoreSink(c storage.ClickCounter, timeout time.Duration, log *zap.Logger, m *metrics.Metrics) *StoreSink {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &StoreSink{
		Counter: c,
		Timeout: timeout,
		log:     log,
		metrics: m,
	}
}

// RecordClick starts an increment and returns immediately.
// Clicks recorded after Close are dropped.
func (s *StoreSink) RecordClick(pasteID string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Warn("click dropped, sink is closed", zap.String("pasteId", pasteID))
		s.metrics.ClickFailed("store")
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	go func() {
		defer s.wg.Done()
		// request context is gone by the time the increment runs
		ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
		defer cancel()
		if err := s.Counter.IncrementClicks(ctx, pasteID); err != nil {
			s.log.Warn("click increment failed", zap.String("pasteId", pasteID), zap.Error(err))
			s.metrics.ClickFailed("store")
		}
	}()
}

// Close stops accepting clicks and waits for in-flight increments.
func (s *StoreSink) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.wg.Wait()
	return nil
}

// Package infile provides data types and methods for local file storage operations.
package infile

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/config"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/modellink"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage/errors"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ storage.ShortLinkStorage = (*Storage)(nil)
)

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu      sync.Mutex
	Cfg     *config.Config
	log     *zap.Logger
	byCode  map[string]*modellink.ShortLink
	byPaste map[string]*modellink.ShortLink
	file    *os.File
	Encoder *json.Encoder
}

// InitStorage initializes a Storage object, restores its state from file and starts a listener closing the file.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config, log *zap.Logger) (*Storage, error) {
	st := Storage{
		Cfg:     cfg,
		log:     log,
		byCode:  make(map[string]*modellink.ShortLink),
		byPaste: make(map[string]*modellink.ShortLink),
	}
	if err := st.restore(); err != nil {
		return nil, err
	}
	// open file outside goroutine since this operation might not finish prior to encoding operations
	file, err := os.OpenFile(cfg.FileStoragePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	st.file = file
	st.Encoder = json.NewEncoder(file)
	// listen for ctx cancellation followed by file storage closure,
	// use sync.WaitGroup to prevent goroutine premature termination when main exits
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := st.CloseDB(); err != nil {
			log.Error("file storage closure failed", zap.Error(err))
			return
		}
		log.Info("file storage closed successfully")
	}()
	return &st, nil
}

type result struct {
	link modellink.ShortLink
	err  error
}

// FindByPasteID returns the short link issued for pasteID.
func (s *Storage) FindByPasteID(ctx context.Context, pasteID string) (modellink.ShortLink, error) {
	return s.find(ctx, s.byPaste, pasteID)
}

// FindByShortCode returns the short link identified by shortCode.
func (s *Storage) FindByShortCode(ctx context.Context, shortCode string) (modellink.ShortLink, error) {
	return s.find(ctx, s.byCode, shortCode)
}

func (s *Storage) find(ctx context.Context, index map[string]*modellink.ShortLink, key string) (modellink.ShortLink, error) {
	retrieveDone := make(chan result, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		link, ok := index[key]
		if !ok {
			retrieveDone <- result{err: &storageErrors.NotFoundError{Key: key}}
			return
		}
		retrieveDone <- result{link: *link}
	}()

	select {
	case <-ctx.Done():
		s.log.Debug("retrieving short link", zap.String("key", key), zap.Error(ctx.Err()))
		return modellink.ShortLink{}, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case res := <-retrieveDone:
		return res.link, res.err
	}
}

// Insert stores a new short link in memory and appends it to the file.
func (s *Storage) Insert(ctx context.Context, link modellink.ShortLink) (modellink.ShortLink, error) {
	dumpDone := make(chan result, 1)
	go func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.byPaste[link.PasteID]; ok {
			dumpDone <- result{err: &storageErrors.AlreadyExistsError{Field: storageErrors.FieldPasteID, Value: link.PasteID}}
			return
		}
		if _, ok := s.byCode[link.ShortCode]; ok {
			dumpDone <- result{err: &storageErrors.AlreadyExistsError{Field: storageErrors.FieldShortCode, Value: link.ShortCode}}
			return
		}
		stored := link
		stored.ClickCount = 0
		stored.CreatedAt = time.Now().UTC()
		err := s.append(modelstorage.ShortLinkFileEntry{
			Kind:         modelstorage.KindLink,
			PasteID:      stored.PasteID,
			ShortCode:    stored.ShortCode,
			CanonicalURL: stored.CanonicalURL,
			ShortURL:     stored.ShortURL,
			CreatedAt:    stored.CreatedAt,
		})
		if err != nil {
			dumpDone <- result{err: &storageErrors.FileWriteError{Err: err}}
			return
		}
		s.byPaste[stored.PasteID] = &stored
		s.byCode[stored.ShortCode] = &stored
		dumpDone <- result{link: stored}
	}()

	select {
	case <-ctx.Done():
		s.log.Debug("inserting short link", zap.String("pasteId", link.PasteID), zap.Error(ctx.Err()))
		return modellink.ShortLink{}, &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case res := <-dumpDone:
		if res.err != nil {
			s.log.Debug("inserting short link", zap.String("pasteId", link.PasteID), zap.Error(res.err))
		}
		return res.link, res.err
	}
}

// IncrementClicks adds one click and records it in the file.
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
		if err := s.append(modelstorage.ShortLinkFileEntry{Kind: modelstorage.KindClick, PasteID: pasteID}); err != nil {
			done <- &storageErrors.FileWriteError{Err: err}
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

// restore replays the file into the in-memory indexes.
func (s *Storage) restore() error {
	file, err := os.OpenFile(s.Cfg.FileStoragePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	var links, clicks int
	for scanner.Scan() {
		var entry modelstorage.ShortLinkFileEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return err
		}
		switch entry.Kind {
		case modelstorage.KindLink:
			link := &modellink.ShortLink{
				PasteID:      entry.PasteID,
				ShortCode:    entry.ShortCode,
				CanonicalURL: entry.CanonicalURL,
				ShortURL:     entry.ShortURL,
				CreatedAt:    entry.CreatedAt,
			}
			s.byPaste[link.PasteID] = link
			s.byCode[link.ShortCode] = link
			links++
		case modelstorage.KindClick:
			if link, ok := s.byPaste[entry.PasteID]; ok {
				link.ClickCount++
				clicks++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	s.log.Info("file storage restored", zap.Int("links", links), zap.Int("clicks", clicks))
	return nil
}

// append writes one entry to the file; the caller holds s.mu.
func (s *Storage) append(entry modelstorage.ShortLinkFileEntry) error {
	if s.Encoder == nil {
		return os.ErrClosed
	}
	return s.Encoder.Encode(entry)
}

// PingDB is a mock for PSQL DB pinger.
func (s *Storage) PingDB() error {
	return nil
}

// CloseDB closes the underlying file, further writes fail.
func (s *Storage) CloseDB() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.Encoder = nil
	return err
}

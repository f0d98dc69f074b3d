// Package inpsql provides data types and methods for PostgreSQL storage operations.
package inpsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/lib/pq"
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
	Cfg     *config.Config
	DB      *sql.DB
	log     *zap.Logger
	queries queries
}

type queries struct {
	createTable     string
	insert          string
	findByPasteID   string
	findByShortCode string
	incrementClicks string
}

// newQueries builds the statements for the given table, identifiers are quoted.
func newQueries(table string) queries {
	t := pq.QuoteIdentifier(table)
	pasteKey := pq.QuoteIdentifier(constraintName(table, storageErrors.FieldPasteID))
	codeKey := pq.QuoteIdentifier(constraintName(table, storageErrors.FieldShortCode))
	columns := "paste_id, short_code, canonical_url, short_url, click_count, created_at"
	return queries{
		createTable: fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id bigserial PRIMARY KEY,
		paste_id text NOT NULL,
		short_code text NOT NULL,
		canonical_url text NOT NULL,
		short_url text NOT NULL,
		click_count bigint NOT NULL DEFAULT 0,
		created_at timestamptz NOT NULL DEFAULT now(),
		CONSTRAINT %s UNIQUE (paste_id),
		CONSTRAINT %s UNIQUE (short_code)
	);`, t, pasteKey, codeKey),
		insert: fmt.Sprintf("INSERT INTO %s (paste_id, short_code, canonical_url, short_url) VALUES ($1, $2, $3, $4) RETURNING id, %s",
			t, columns),
		findByPasteID:   fmt.Sprintf("SELECT id, %s FROM %s WHERE paste_id = $1", columns, t),
		findByShortCode: fmt.Sprintf("SELECT id, %s FROM %s WHERE short_code = $1", columns, t),
		incrementClicks: fmt.Sprintf("UPDATE %s SET click_count = click_count + 1 WHERE paste_id = $1", t),
	}
}

func constraintName(table, field string) string {
	return table + "_" + field + "_key"
}

// InitStorage initializes a Storage object, creates the table and starts a listener closing the connection.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config, log *zap.Logger) (*Storage, error) {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	st := Storage{
		Cfg:     cfg,
		DB:      db,
		log:     log,
		queries: newQueries(cfg.StoreTable),
	}
	if err := st.createTable(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	go func() {
		defer wg.Done()
		<-ctx.Done()
		if err := st.CloseDB(); err != nil {
			log.Error("PSQL DB connection closure failed", zap.Error(err))
			return
		}
		log.Info("PSQL DB connection closed successfully")
	}()
	return &st, nil
}

// FindByPasteID returns the short link issued for pasteID.
func (s *Storage) FindByPasteID(ctx context.Context, pasteID string) (modellink.ShortLink, error) {
	return s.findOne(ctx, s.queries.findByPasteID, pasteID)
}

// FindByShortCode returns the short link identified by shortCode.
func (s *Storage) FindByShortCode(ctx context.Context, shortCode string) (modellink.ShortLink, error) {
	return s.findOne(ctx, s.queries.findByShortCode, shortCode)
}

func (s *Storage) findOne(ctx context.Context, query string, key string) (modellink.ShortLink, error) {
	var entry modelstorage.ShortLinkPostgresEntry
	err := s.DB.QueryRowContext(ctx, query, key).Scan(
		&entry.ID,
		&entry.PasteID,
		&entry.ShortCode,
		&entry.CanonicalURL,
		&entry.ShortURL,
		&entry.ClickCount,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return modellink.ShortLink{}, &storageErrors.NotFoundError{Key: key, Err: err}
		}
		err = mapError(err, nil)
		s.log.Debug("retrieving short link", zap.String("key", key), zap.Error(err))
		return modellink.ShortLink{}, err
	}
	return toModel(entry), nil
}

// Insert stores a new short link relying on the table's unique constraints.
func (s *Storage) Insert(ctx context.Context, link modellink.ShortLink) (modellink.ShortLink, error) {
	var entry modelstorage.ShortLinkPostgresEntry
	err := s.DB.QueryRowContext(ctx, s.queries.insert, link.PasteID, link.ShortCode, link.CanonicalURL, link.ShortURL).Scan(
		&entry.ID,
		&entry.PasteID,
		&entry.ShortCode,
		&entry.CanonicalURL,
		&entry.ShortURL,
		&entry.ClickCount,
		&entry.CreatedAt,
	)
	if err != nil {
		err = mapError(err, &link)
		s.log.Debug("inserting short link", zap.String("pasteId", link.PasteID), zap.Error(err))
		return modellink.ShortLink{}, err
	}
	return toModel(entry), nil
}

// IncrementClicks atomically adds one click to the short link issued for pasteID.
func (s *Storage) IncrementClicks(ctx context.Context, pasteID string) error {
	res, err := s.DB.ExecContext(ctx, s.queries.incrementClicks, pasteID)
	if err != nil {
		return mapError(err, nil)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	if n == 0 {
		return &storageErrors.NotFoundError{Key: pasteID}
	}
	return nil
}

// PingDB checks DB connection.
func (s *Storage) PingDB() error {
	return s.DB.Ping()
}

// CloseDB closes DB connection.
func (s *Storage) CloseDB() error {
	return s.DB.Close()
}

func (s *Storage) createTable(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, s.queries.createTable); err != nil {
		return &storageErrors.StatementPSQLError{Err: err}
	}
	return nil
}

// mapError translates driver errors into storage errors; link is set for inserts.
func mapError(err error, link *modellink.ShortLink) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &storageErrors.ContextTimeoutExceededError{Err: err}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgerrcode.UniqueViolation && link != nil {
			field, value := storageErrors.FieldPasteID, link.PasteID
			if strings.HasSuffix(pgErr.ConstraintName, storageErrors.FieldShortCode+"_key") {
				field, value = storageErrors.FieldShortCode, link.ShortCode
			}
			return &storageErrors.AlreadyExistsError{Field: field, Value: value, Err: err}
		}
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	if strings.HasPrefix(err.Error(), "sql: Scan error") {
		return &storageErrors.ScanningPSQLError{Err: err}
	}
	return &storageErrors.ExecutionPSQLError{Err: err}
}

func toModel(entry modelstorage.ShortLinkPostgresEntry) modellink.ShortLink {
	return modellink.ShortLink{
		PasteID:      entry.PasteID,
		ShortCode:    entry.ShortCode,
		CanonicalURL: entry.CanonicalURL,
		ShortURL:     entry.ShortURL,
		ClickCount:   entry.ClickCount,
		CreatedAt:    entry.CreatedAt,
	}
}

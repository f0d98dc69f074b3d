package inpsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/modellink"
	storageErrors "github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage/errors"
)

func TestMapError(t *testing.T) {
	link := &modellink.ShortLink{PasteID: "abc123", ShortCode: "Xy12Zq"}
	tests := []struct {
		name  string
		err   error
		link  *modellink.ShortLink
		check func(t *testing.T, err error)
	}{
		{
			name: "paste id unique violation",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "short_links_paste_id_key"},
			link: link,
			check: func(t *testing.T, err error) {
				var exists *storageErrors.AlreadyExistsError
				require.ErrorAs(t, err, &exists)
				assert.Equal(t, storageErrors.FieldPasteID, exists.Field)
				assert.Equal(t, "abc123", exists.Value)
			},
		},
		{
			name: "short code unique violation",
			err:  fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "short_links_short_code_key"}),
			link: link,
			check: func(t *testing.T, err error) {
				var exists *storageErrors.AlreadyExistsError
				require.ErrorAs(t, err, &exists)
				assert.Equal(t, storageErrors.FieldShortCode, exists.Field)
				assert.Equal(t, "Xy12Zq", exists.Value)
			},
		},
		{
			name: "deadline",
			err:  fmt.Errorf("query: %w", context.DeadlineExceeded),
			check: func(t *testing.T, err error) {
				var timeout *storageErrors.ContextTimeoutExceededError
				require.ErrorAs(t, err, &timeout)
				assert.ErrorIs(t, err, context.DeadlineExceeded)
			},
		},
		{
			name: "other postgres error",
			err:  &pgconn.PgError{Code: pgerrcode.UndefinedTable},
			link: link,
			check: func(t *testing.T, err error) {
				var execErr *storageErrors.ExecutionPSQLError
				require.ErrorAs(t, err, &execErr)
			},
		},
		{
			name: "connection refused",
			err:  errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
			check: func(t *testing.T, err error) {
				var execErr *storageErrors.ExecutionPSQLError
				require.ErrorAs(t, err, &execErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, mapError(tt.err, tt.link))
		})
	}
}

func TestNewQueries(t *testing.T) {
	q := newQueries("short_links")
	assert.Contains(t, q.createTable, `CONSTRAINT "short_links_paste_id_key" UNIQUE (paste_id)`)
	assert.Contains(t, q.createTable, `CONSTRAINT "short_links_short_code_key" UNIQUE (short_code)`)
	assert.Contains(t, q.findByShortCode, `FROM "short_links" WHERE short_code = $1`)

	injected := newQueries(`links"; DROP TABLE users; --`)
	assert.Contains(t, injected.insert, `INSERT INTO "links""; DROP TABLE users; --"`)
}

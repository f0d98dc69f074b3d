// Package modelstorage provides locally used types and their structure for storage objects.
package modelstorage

import "time"

// Record kinds of the JSON-lines file storage.
const (
	KindLink  = "link"
	KindClick = "click"
)

// ShortLinkFileEntry is one line of the file storage.
type ShortLinkFileEntry struct {
	Kind         string    `json:"kind"`
	PasteID      string    `json:"pasteId"`
	ShortCode    string    `json:"shortCode,omitempty"`
	CanonicalURL string    `json:"canonicalUrl,omitempty"`
	ShortURL     string    `json:"shortUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// ShortLinkPostgresEntry mirrors one row of the short link table.
type ShortLinkPostgresEntry struct {
	ID           int64     `db:"id"`
	PasteID      string    `db:"paste_id"`
	ShortCode    string    `db:"short_code"`
	CanonicalURL string    `db:"canonical_url"`
	ShortURL     string    `db:"short_url"`
	ClickCount   int64     `db:"click_count"`
	CreatedAt    time.Time `db:"created_at"`
}

// Package modeldto provides locally used types and their structure for data transfer objects.
package modeldto

import (
	"time"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/service/modellink"
)

type (
	RequestShortLink struct {
		URL string `json:"url"`
	}

	ResponseShortLink struct {
		PasteID      string    `json:"pasteId"`
		ShortCode    string    `json:"shortCode"`
		ShortURL     string    `json:"shortUrl"`
		CanonicalURL string    `json:"canonicalUrl"`
		ClickCount   int64     `json:"clickCount"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	ResponseError struct {
		Error string `json:"error"`
	}
)

// FromShortLink converts a short link into its response representation.
func FromShortLink(link modellink.ShortLink) ResponseShortLink {
	return ResponseShortLink{
		PasteID:      link.PasteID,
		ShortCode:    link.ShortCode,
		ShortURL:     link.ShortURL,
		CanonicalURL: link.CanonicalURL,
		ClickCount:   link.ClickCount,
		CreatedAt:    link.CreatedAt,
	}
}

// Package modellink provides locally used types and their structure for short link handling between modules.
package modellink

import "time"

// ShortLink maps a short code to the paste it was issued for.
type ShortLink struct {
	PasteID      string    `json:"pasteId"`
	ShortCode    string    `json:"shortCode"`
	CanonicalURL string    `json:"canonicalUrl"`
	ShortURL     string    `json:"shortUrl"`
	ClickCount   int64     `json:"clickCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Resolution is the outcome of resolving one short code.
// Location is always set: either the computed destination or the fallback URL.
type Resolution struct {
	Location string
	PasteID  string
	Fallback bool
	Reason   error
}

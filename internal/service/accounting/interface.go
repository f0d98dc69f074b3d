// Package accounting provides click accounting for resolved short links.
package accounting

//go:generate mockgen -source=interface.go -destination=../../mocks/mock_accounting.go -package=mocks

// ClickSink defines a set of methods for types recording clicks.
// RecordClick must not block on the store.
type ClickSink interface {
	RecordClick(pasteID string)
	Close() error
}

// Package errors provides custom errors for the issuer and resolver services.
package errors

import "fmt"

type (
	ServiceFoundNilStorage struct {
		Msg string
	}
	InvalidInputError struct {
		Input string
		Msg   string
	}
	StoreUnavailableError struct {
		Op  string
		Err error
	}
	LinkNotFoundError struct {
		Key string
	}
	InvalidShortCodeError struct {
		Code string
	}
)

func (e *ServiceFoundNilStorage) Error() string {
	return e.Msg
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Msg)
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: store unavailable: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

func (e *LinkNotFoundError) Error() string {
	return fmt.Sprintf("%s: no short link", e.Key)
}

func (e *InvalidShortCodeError) Error() string {
	return fmt.Sprintf("%q: malformed short code", e.Code)
}

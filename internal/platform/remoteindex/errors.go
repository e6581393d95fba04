package remoteindex

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork covers transport failures and non-success HTTP responses.
	ErrNetwork = errors.New("network error")
	// ErrParse covers bodies that are not valid JSON even after repair.
	ErrParse = errors.New("parse error")
)

type NetworkError struct {
	URL        string
	StatusCode int // zero for transport failures
	Status     string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status: %s", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, e.Err}
}

type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse index: %v", e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

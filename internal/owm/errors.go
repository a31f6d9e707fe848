package owm

import (
	"errors"
	"fmt"
)

// Kind classifies why a request failed
type Kind int

const (
	KindNotFound  Kind = iota // provider answered with a non-2xx status
	KindTransport             // request never produced a usable response
)

var (
	ErrNotFound  = errors.New("owm: not found")
	ErrTransport = errors.New("owm: transport failure")
)

// RequestError is returned by every Client fetch. Its message is the fixed,
// user-facing text for the endpoint regardless of Kind; the cause is kept for
// logging and unwrapping.
type RequestError struct {
	Op      string // "weather", "weather-coords", "forecast"
	Message string
	Kind    Kind
	Status  int // HTTP status for KindNotFound
	Err     error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is matches ErrNotFound and ErrTransport by Kind
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrTransport:
		return e.Kind == KindTransport
	}
	return false
}

// Detail describes the underlying cause, for logs
func (e *RequestError) Detail() string {
	if e.Kind == KindNotFound {
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

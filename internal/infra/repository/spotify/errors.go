package spotify

import (
	"errors"
	"fmt"
)

var ErrMissingToken = errors.New("missing access token")

// AuthError reports a failed token acquisition, exchange or refresh.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("spotify auth: %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// RequestError reports a failed API call after a token was available:
// an HTTP error status, a transport failure, or an undecodable body.
// Status is zero for transport-level failures.
type RequestError struct {
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("spotify request: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("spotify request: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

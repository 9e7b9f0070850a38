// Package prcerr defines the error types shared between the github
// client and its callers.
package prcerr

import (
	"fmt"
	"net/http"
)

// RejectedError is returned when the github API answered a request with
// a non-success status code.
// It carries the raw HTTP status so that callers can report the exact
// response and decide if the failure is tolerated.
type RejectedError struct {
	// Err is the wrapped original error
	Err error
	// StatusCode is the HTTP status code of the response
	StatusCode int
	// Body is the decoded error message of the response
	Body string
}

func NewRejectedError(originalErr error, statusCode int, body string) *RejectedError {
	return &RejectedError{
		Err:        originalErr,
		StatusCode: statusCode,
		Body:       body,
	}
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf(
		"github rejected the request: %d %s: %s",
		e.StatusCode, http.StatusText(e.StatusCode), e.Body,
	)
}

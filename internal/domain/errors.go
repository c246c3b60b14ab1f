package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest  = errors.New("photo, height and weight are required")
	ErrMissingAPIKey   = errors.New("OPENAI_API_KEY is not configured")
	ErrUpstreamReport  = errors.New("upstream report generation failure")
	ErrUpstreamImage   = errors.New("upstream image edit failure")
	ErrInvalidDataURI  = errors.New("photo is not valid base64 image data")
	ErrNoImageReturned = errors.New("no image in upstream response")
)

// UpstreamError carries the status and raw body of a failed provider call.
type UpstreamError struct {
	Kind   error
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Kind, e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Kind
}

// Package provider implements the HTTP clients for the external scraping,
// search and rendering services. Response schemas are strict: a payload
// that does not match the expected shape is an ErrUnrecognizedShape, never
// a guess.
package provider

import (
	"errors"
	"net/http"
	"time"
)

var (
	// ErrRateLimited is returned on HTTP 429 so callers can back off.
	ErrRateLimited = errors.New("provider rate limited")
	// ErrUnrecognizedShape is returned when a response decodes but does
	// not carry the fields the schema requires.
	ErrUnrecognizedShape = errors.New("unrecognized response shape")
	// ErrNotFound is returned when the provider has no data for the id.
	ErrNotFound = errors.New("not found")
)

// Connection pool defaults, shared by all provider clients.
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second
	defaultTLSHandshake        = 10 * time.Second
)

// newHTTPClient builds a pooled HTTP client with the given total timeout.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        defaultMaxIdleConns,
			MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
			IdleConnTimeout:     defaultIdleConnTimeout,
			TLSHandshakeTimeout: defaultTLSHandshake,
		},
	}
}

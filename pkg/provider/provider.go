package provider

import (
	"context"
	"fmt"
)

// Wallpaper represents a single catalog search result.
type Wallpaper struct {
	ID         string
	Path       string     // URL of the full resolution image
	ThumbURL   string     // URL of the preview thumbnail
	Resolution Resolution // Native image resolution
	Colors     []string   // Dominant colors as hex strings without '#'
}

// SearchQuery describes one catalog search.
type SearchQuery struct {
	Text          string
	MinResolution Resolution // zero value means no resolution filter
	Limit         int        // cap on returned results, ignored when <= 0
}

// Catalog defines the interface for a remote wallpaper catalog.
type Catalog interface {
	// Name returns the catalog name.
	Name() string
	// Search issues a single search request and returns at most q.Limit results
	// in catalog order. Transport failures are reported as *NetworkError and
	// malformed responses as *ParseError.
	Search(ctx context.Context, q SearchQuery) ([]Wallpaper, error)
}

// NetworkError is returned when the catalog could not be reached or answered
// with a non-success status.
type NetworkError struct {
	URL        string
	StatusCode int // 0 when the transport itself failed
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP Error %d: %v", e.StatusCode, e.Err)
	}
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the catalog response is not the expected JSON shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid catalog response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

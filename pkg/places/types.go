// Package places provides a typed client for the Google Places API (New).
// This package centralizes all Places API (v1) interactions for the application.
package places

import (
	"fmt"
)

// RankPreference is the sort criterion requested for search results.
type RankPreference string

const (
	// RankByPopularity ranks nearby search results by popularity.
	RankByPopularity RankPreference = "popularity"

	// RankByRelevance ranks text search results by relevance to the query.
	RankByRelevance RankPreference = "relevance"

	// RankByDistance ranks results by distance from the search area.
	RankByDistance RankPreference = "distance"
)

// QueryOption represents an optional parameter for Places API calls.
type QueryOption func(*queryParams)

// queryParams holds optional query parameters. Each operation reads only the
// parameters it supports and validates them before any request is built.
type queryParams struct {
	includedTypes        []string
	excludedTypes        []string
	includedPrimaryTypes []string
	excludedPrimaryTypes []string
	includedType         string
	languageCode         string
	maxResults           int
	rankBy               RankPreference
	biasArea             Area
	restrictArea         Area
	pageToken            string
	minRating            *float64
	openNow              bool
	priceLevels          []PriceLevel
	maxWidth             int
	maxHeight            int
}

// WithIncludedTypes keeps only places matching at least one of the given types.
func WithIncludedTypes(types ...string) QueryOption {
	return func(p *queryParams) {
		p.includedTypes = types
	}
}

// WithExcludedTypes drops places matching any of the given types.
func WithExcludedTypes(types ...string) QueryOption {
	return func(p *queryParams) {
		p.excludedTypes = types
	}
}

// WithIncludedPrimaryTypes keeps only places whose primary type matches one of
// the given types.
func WithIncludedPrimaryTypes(types ...string) QueryOption {
	return func(p *queryParams) {
		p.includedPrimaryTypes = types
	}
}

// WithExcludedPrimaryTypes drops places whose primary type matches any of the
// given types.
func WithExcludedPrimaryTypes(types ...string) QueryOption {
	return func(p *queryParams) {
		p.excludedPrimaryTypes = types
	}
}

// WithIncludedType keeps only places of the given type (text search). Setting
// a type turns on strict type filtering.
func WithIncludedType(placeType string) QueryOption {
	return func(p *queryParams) {
		p.includedType = placeType
	}
}

// WithLanguageCode sets the language for results (default "en").
func WithLanguageCode(code string) QueryOption {
	return func(p *queryParams) {
		p.languageCode = code
	}
}

// WithMaxResults sets the maximum number of results per page. Must be in the
// range [1, 20] (default 20).
func WithMaxResults(n int) QueryOption {
	return func(p *queryParams) {
		p.maxResults = n
	}
}

// WithRankBy sets the ranking criterion. Nearby search accepts popularity or
// distance; text search accepts relevance or distance.
func WithRankBy(rank RankPreference) QueryOption {
	return func(p *queryParams) {
		p.rankBy = rank
	}
}

// WithBiasArea biases text search results towards an area without excluding
// places outside of it. The area may be circular or rectangular.
func WithBiasArea(area Area) QueryOption {
	return func(p *queryParams) {
		p.biasArea = area
	}
}

// WithRestrictArea limits text search results to places inside the area.
// Only rectangular areas are accepted.
func WithRestrictArea(area Area) QueryOption {
	return func(p *queryParams) {
		p.restrictArea = area
	}
}

// WithPageToken requests the next page of text search results.
func WithPageToken(token string) QueryOption {
	return func(p *queryParams) {
		p.pageToken = token
	}
}

// WithMinRating keeps only places rated at or above the given value.
// Must be in the range [0, 5].
func WithMinRating(rating float64) QueryOption {
	return func(p *queryParams) {
		p.minRating = &rating
	}
}

// WithOpenNow keeps only places that are open at request time. Places that do
// not publish opening hours are excluded.
func WithOpenNow() QueryOption {
	return func(p *queryParams) {
		p.openNow = true
	}
}

// WithPriceLevels keeps only places matching one of the given price levels.
// PriceLevelFree is not accepted by the API.
func WithPriceLevels(levels ...PriceLevel) QueryOption {
	return func(p *queryParams) {
		p.priceLevels = levels
	}
}

// WithMaxWidth sets the maximum photo width in pixels, in the range [1, 4800].
func WithMaxWidth(px int) QueryOption {
	return func(p *queryParams) {
		p.maxWidth = px
	}
}

// WithMaxHeight sets the maximum photo height in pixels, in the range [1, 4800].
func WithMaxHeight(px int) QueryOption {
	return func(p *queryParams) {
		p.maxHeight = px
	}
}

// ValidationError is returned before any request is made when parameters fail
// client-side validation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("places: invalid request: %s", e.Message)
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// APIError represents a non-success response from the Places API.
type APIError struct {
	StatusCode int
	Message    string
	Status     string
	Details    interface{}
	Endpoint   string
}

func (e *APIError) Error() string {
	message := e.Message
	if message == "" {
		message = "Unknown error"
	}
	return fmt.Sprintf("places API error: %s (status: %d, endpoint: %s)", message, e.StatusCode, e.Endpoint)
}

// DecodeError indicates a success response whose body did not match the
// expected contract, such as a missing "places" array. It is distinct from
// APIError: the upstream accepted the request but returned an unusable body.
type DecodeError struct {
	Endpoint string
	Reason   string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("places: malformed response from %s: %s", e.Endpoint, e.Reason)
}

package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
)

const (
	// DefaultBaseURL is the base URL for the Places API (New).
	DefaultBaseURL = "https://places.googleapis.com/v1"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultLanguageCode is the language requested when none is given.
	DefaultLanguageCode = "en"

	// EnvAPIKey is the environment variable consulted when no API key is
	// passed to NewClient.
	EnvAPIKey = "GOOGLE_MAPS_API_KEY"

	// Google Maps platform keys start with this prefix. The check is a
	// sanity guard against obviously wrong keys, not a verification.
	apiKeyPrefix = "AIza"

	headerAPIKey    = "X-Goog-Api-Key"
	headerFieldMask = "X-Goog-FieldMask"

	maxPhotoDimensionPx = 4800
)

// Client is a Places API client. All operations are stateless request/response
// round trips, so a single Client is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Places API client. If apiKey is empty the
// GOOGLE_MAPS_API_KEY environment variable is used instead.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return nil, validationErrorf("an API key must be provided either as an argument or through the %s environment variable", EnvAPIKey)
	}
	if !strings.HasPrefix(apiKey, apiKeyPrefix) {
		return nil, validationErrorf("the provided API key is invalid")
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// areaWire nests an area under the wire key matching its variant.
type areaWire struct {
	Circle    *CircularArea    `json:"circle,omitempty"`
	Rectangle *RectangularArea `json:"rectangle,omitempty"`
}

type nearbySearchRequest struct {
	LocationRestriction  areaWire `json:"locationRestriction"`
	LanguageCode         string   `json:"languageCode"`
	MaxResultCount       int      `json:"maxResultCount"`
	RankPreference       string   `json:"rankPreference"`
	IncludedTypes        []string `json:"includedTypes"`
	ExcludedTypes        []string `json:"excludedTypes"`
	IncludedPrimaryTypes []string `json:"includedPrimaryTypes"`
	ExcludedPrimaryTypes []string `json:"excludedPrimaryTypes"`
}

type textSearchRequest struct {
	TextQuery           string       `json:"textQuery"`
	LanguageCode        string       `json:"languageCode"`
	PageSize            int          `json:"pageSize"`
	RankPreference      string       `json:"rankPreference"`
	OpenNow             bool         `json:"openNow"`
	IncludedType        string       `json:"includedType,omitempty"`
	StrictTypeFiltering bool         `json:"strictTypeFiltering,omitempty"`
	PageToken           string       `json:"pageToken,omitempty"`
	LocationBias        *areaWire    `json:"locationBias,omitempty"`
	LocationRestriction *areaWire    `json:"locationRestriction,omitempty"`
	MinRating           *float64     `json:"minRating,omitempty"`
	PriceLevels         []PriceLevel `json:"priceLevels,omitempty"`
}

type searchResponse struct {
	Places        *[]Place `json:"places"`
	NextPageToken string   `json:"nextPageToken"`
}

// SearchNearby searches for places inside a circular area.
//
// Supported options: WithIncludedTypes, WithExcludedTypes,
// WithIncludedPrimaryTypes, WithExcludedPrimaryTypes, WithLanguageCode,
// WithMaxResults (1..20, default 20) and WithRankBy (popularity or distance,
// default popularity). Field names are given without the "places." prefix.
func (c *Client) SearchNearby(ctx context.Context, area CircularArea, fields []string, opts ...QueryOption) ([]Place, error) {
	params := &queryParams{
		languageCode: DefaultLanguageCode,
		maxResults:   20,
		rankBy:       RankByPopularity,
	}
	for _, opt := range opts {
		opt(params)
	}

	if params.maxResults < 1 || params.maxResults > 20 {
		return nil, validationErrorf("the maximum number of results must be in the range [1, 20], got %d", params.maxResults)
	}
	if params.rankBy != RankByPopularity && params.rankBy != RankByDistance {
		return nil, validationErrorf("nearby search can rank by %q or %q, got %q", RankByPopularity, RankByDistance, params.rankBy)
	}

	mask, err := FieldMask(fields, true)
	if err != nil {
		return nil, err
	}

	body := nearbySearchRequest{
		LocationRestriction:  areaWire{Circle: &area},
		LanguageCode:         params.languageCode,
		MaxResultCount:       params.maxResults,
		RankPreference:       strings.ToUpper(string(params.rankBy)),
		IncludedTypes:        emptyIfNil(params.includedTypes),
		ExcludedTypes:        emptyIfNil(params.excludedTypes),
		IncludedPrimaryTypes: emptyIfNil(params.includedPrimaryTypes),
		ExcludedPrimaryTypes: emptyIfNil(params.excludedPrimaryTypes),
	}

	endpoint := "/places:searchNearby"
	var result searchResponse
	if err := c.post(ctx, endpoint, mask, body, &result); err != nil {
		return nil, err
	}
	if result.Places == nil {
		return nil, &DecodeError{Endpoint: endpoint, Reason: `missing "places" array`}
	}

	return *result.Places, nil
}

// SearchText searches for places matching a free-text query. It returns the
// matching places and a continuation token; an empty token means there are no
// more pages.
//
// Supported options: WithIncludedType, WithLanguageCode, WithBiasArea,
// WithRestrictArea (rectangular only), WithMaxResults (page size, 1..20,
// default 20), WithPageToken, WithMinRating (0..5), WithOpenNow,
// WithPriceLevels (PriceLevelFree is rejected) and WithRankBy (relevance or
// distance, default relevance).
func (c *Client) SearchText(ctx context.Context, query string, fields []string, opts ...QueryOption) ([]Place, string, error) {
	params := &queryParams{
		languageCode: DefaultLanguageCode,
		maxResults:   20,
		rankBy:       RankByRelevance,
	}
	for _, opt := range opts {
		opt(params)
	}

	if query == "" {
		return nil, "", validationErrorf("the query must not be empty")
	}
	if params.biasArea != nil && params.restrictArea != nil {
		return nil, "", validationErrorf("a bias area and a restrict area cannot both be specified")
	}
	if params.maxResults < 1 || params.maxResults > 20 {
		return nil, "", validationErrorf("the page size must be in the range [1, 20], got %d", params.maxResults)
	}
	if params.minRating != nil && (*params.minRating < 0 || *params.minRating > 5) {
		return nil, "", validationErrorf("the minimum rating must be between 0 and 5, got %v", *params.minRating)
	}
	for _, level := range params.priceLevels {
		if level == PriceLevelFree {
			return nil, "", validationErrorf("the %s price level cannot be used as a price filter", PriceLevelFree.ToAPIFormat())
		}
	}
	if params.rankBy != RankByRelevance && params.rankBy != RankByDistance {
		return nil, "", validationErrorf("text search can rank by %q or %q, got %q", RankByRelevance, RankByDistance, params.rankBy)
	}

	mask, err := FieldMask(fields, true)
	if err != nil {
		return nil, "", err
	}

	body := textSearchRequest{
		TextQuery:      query,
		LanguageCode:   params.languageCode,
		PageSize:       params.maxResults,
		RankPreference: strings.ToUpper(string(params.rankBy)),
		OpenNow:        params.openNow,
	}
	if params.includedType != "" {
		// An explicit type filter is treated as strict.
		body.IncludedType = params.includedType
		body.StrictTypeFiltering = true
	}
	if params.pageToken != "" {
		body.PageToken = params.pageToken
	}
	switch area := params.biasArea.(type) {
	case CircularArea:
		body.LocationBias = &areaWire{Circle: &area}
	case RectangularArea:
		body.LocationBias = &areaWire{Rectangle: &area}
	}
	if params.restrictArea != nil {
		rect, ok := params.restrictArea.(RectangularArea)
		if !ok {
			return nil, "", validationErrorf("the restrict area must be a rectangular area")
		}
		body.LocationRestriction = &areaWire{Rectangle: &rect}
	}
	if params.minRating != nil {
		body.MinRating = params.minRating
	}
	if len(params.priceLevels) > 0 {
		body.PriceLevels = params.priceLevels
	}

	endpoint := "/places:searchText"
	var result searchResponse
	if err := c.post(ctx, endpoint, mask, body, &result); err != nil {
		return nil, "", err
	}
	if result.Places == nil {
		return nil, "", &DecodeError{Endpoint: endpoint, Reason: `missing "places" array`}
	}

	return *result.Places, result.NextPageToken, nil
}

// GetPlaceDetails retrieves the requested fields of a single place. Field
// names are given without any prefix.
//
// Supported options: WithLanguageCode.
func (c *Client) GetPlaceDetails(ctx context.Context, placeID string, fields []string, opts ...QueryOption) (*Place, error) {
	params := &queryParams{languageCode: DefaultLanguageCode}
	for _, opt := range opts {
		opt(params)
	}

	if placeID == "" {
		return nil, validationErrorf("the place ID must not be empty")
	}

	mask, err := FieldMask(fields, false)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("languageCode", params.languageCode)

	var place Place
	if err := c.get(ctx, "/places/"+placeID, mask, query, &place); err != nil {
		return nil, err
	}

	return &place, nil
}

// GetPhotoURI resolves the URI of a place photo. At least one of WithMaxWidth
// and WithMaxHeight must be given; when both are, only the width is sent.
// The photo endpoint is asked to skip the redirect so the URI comes back in
// the response body.
func (c *Client) GetPhotoURI(ctx context.Context, photo Photo, opts ...QueryOption) (string, error) {
	params := &queryParams{}
	for _, opt := range opts {
		opt(params)
	}

	if params.maxWidth == 0 && params.maxHeight == 0 {
		return "", validationErrorf("at least one of the maximum width and maximum height must be provided")
	}
	if params.maxWidth != 0 && (params.maxWidth < 1 || params.maxWidth > maxPhotoDimensionPx) {
		return "", validationErrorf("the maximum width must be between 1 and %d, got %d", maxPhotoDimensionPx, params.maxWidth)
	}
	if params.maxHeight != 0 && (params.maxHeight < 1 || params.maxHeight > maxPhotoDimensionPx) {
		return "", validationErrorf("the maximum height must be between 1 and %d, got %d", maxPhotoDimensionPx, params.maxHeight)
	}

	name := strings.Trim(photo.Name, "/")
	endpoint := "/" + name + "/media"

	query := url.Values{}
	query.Set("skipHttpRedirect", "true")
	if params.maxWidth != 0 {
		query.Set("maxWidthPx", strconv.Itoa(params.maxWidth))
	} else {
		query.Set("maxHeightPx", strconv.Itoa(params.maxHeight))
	}

	var result struct {
		PhotoURI *string `json:"photoUri"`
	}
	if err := c.get(ctx, endpoint, "", query, &result); err != nil {
		return "", err
	}
	if result.PhotoURI == nil {
		return "", &DecodeError{Endpoint: endpoint, Reason: `missing "photoUri" field`}
	}

	return *result.PhotoURI, nil
}

// post performs a POST request with a JSON body.
func (c *Client) post(ctx context.Context, endpoint, fieldMask string, body, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAPIKey, c.apiKey)
	if fieldMask != "" {
		req.Header.Set(headerFieldMask, fieldMask)
	}

	return c.do(req, endpoint, result)
}

// get performs a GET request with query parameters.
func (c *Client) get(ctx context.Context, endpoint, fieldMask string, query url.Values, result interface{}) error {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(headerAPIKey, c.apiKey)
	if fieldMask != "" {
		req.Header.Set(headerFieldMask, fieldMask)
	}

	return c.do(req, endpoint, result)
}

// do executes the request and decodes the JSON response into result. The API
// key is never logged.
func (c *Client) do(req *http.Request, endpoint string, result interface{}) error {
	requestID := uuid.New().String()

	if c.logger != nil {
		c.logger.Debug().
			Str("request_id", requestID).
			Str("method", req.Method).
			Str("endpoint", endpoint).
			Msg("Places API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := decodeAPIError(resp, endpoint)
		if c.logger != nil {
			c.logger.Warn().
				Str("request_id", requestID).
				Int("status", resp.StatusCode).
				Str("endpoint", endpoint).
				Msg("Places API request failed")
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Msg("Places API response")
	}

	return nil
}

// decodeAPIError builds an APIError from a non-success response. A body with
// no message field still yields a usable error.
func decodeAPIError(resp *http.Response, endpoint string) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
	}

	var body struct {
		Message string      `json:"message"`
		Status  string      `json:"status"`
		Details interface{} `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
		apiErr.Status = body.Status
		apiErr.Details = body.Details
	}

	return apiErr
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

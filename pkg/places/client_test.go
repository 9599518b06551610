package places

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "AIzaTestKey000000000000000000000000000"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(testAPIKey, WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return client, server
}

func TestNewClientValidatesAPIKey(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		_, err := NewClient("")
		require.Error(t, err)
		var valErr *ValidationError
		assert.ErrorAs(t, err, &valErr)
	})

	t.Run("key from environment", func(t *testing.T) {
		t.Setenv(EnvAPIKey, testAPIKey)
		client, err := NewClient("")
		require.NoError(t, err)
		assert.Equal(t, testAPIKey, client.apiKey)
	})

	t.Run("wrong prefix", func(t *testing.T) {
		_, err := NewClient("sk-not-a-maps-key")
		require.Error(t, err)
	})
}

func TestSearchNearby(t *testing.T) {
	var gotBody map[string]interface{}
	var gotMask, gotKey string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/places:searchNearby", r.URL.Path)
		gotMask = r.Header.Get("X-Goog-FieldMask")
		gotKey = r.Header.Get("X-Goog-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"places": [{"id": "ChIJ123", "rating": 4.5}]}`))
	})

	area, err := NewCircularArea(LatLng{Latitude: 45.4642, Longitude: 9.19}, 500)
	require.NoError(t, err)

	results, err := client.SearchNearby(context.Background(), area, []string{"id", "rating"},
		WithIncludedTypes("restaurant"),
		WithRankBy(RankByDistance),
		WithMaxResults(5),
	)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ChIJ123", *results[0].ID)

	assert.Equal(t, testAPIKey, gotKey)
	assert.Equal(t, "places.id,places.rating", gotMask)

	restriction, ok := gotBody["locationRestriction"].(map[string]interface{})
	require.True(t, ok)
	circle, ok := restriction["circle"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(500), circle["radius"])

	assert.Equal(t, "DISTANCE", gotBody["rankPreference"])
	assert.Equal(t, float64(5), gotBody["maxResultCount"])
	assert.Equal(t, "en", gotBody["languageCode"])
	assert.Equal(t, []interface{}{"restaurant"}, gotBody["includedTypes"])
	// Unset type filters are sent as empty lists, not omitted.
	assert.Equal(t, []interface{}{}, gotBody["excludedTypes"])
	assert.Equal(t, []interface{}{}, gotBody["includedPrimaryTypes"])
	assert.Equal(t, []interface{}{}, gotBody["excludedPrimaryTypes"])
}

func TestSearchNearbyValidation(t *testing.T) {
	client, err := NewClient(testAPIKey)
	require.NoError(t, err)

	area, err := NewCircularArea(LatLng{}, 500)
	require.NoError(t, err)

	tests := []struct {
		name string
		opts []QueryOption
	}{
		{"zero max results", []QueryOption{WithMaxResults(0)}},
		{"too many results", []QueryOption{WithMaxResults(21)}},
		{"text-search rank", []QueryOption{WithRankBy(RankByRelevance)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.SearchNearby(context.Background(), area, []string{"id"}, tt.opts...)
			require.Error(t, err)
			var valErr *ValidationError
			assert.ErrorAs(t, err, &valErr)
		})
	}

	t.Run("no fields", func(t *testing.T) {
		_, err := client.SearchNearby(context.Background(), area, nil)
		require.Error(t, err)
		var valErr *ValidationError
		assert.ErrorAs(t, err, &valErr)
	})

	t.Run("max results boundary accepted", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"places": []}`))
		})
		_, err := client.SearchNearby(context.Background(), area, []string{"id"}, WithMaxResults(20))
		require.NoError(t, err)
	})
}

func TestSearchText(t *testing.T) {
	var gotBody map[string]interface{}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places:searchText", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"places": [{"id": "ChIJ123"}], "nextPageToken": "token-2"}`))
	})

	results, nextPage, err := client.SearchText(context.Background(), "pizza in milan", []string{"id"},
		WithIncludedType("pizza_restaurant"),
		WithMinRating(4.0),
		WithOpenNow(),
		WithPriceLevels(PriceLevelModerate, PriceLevelExpensive),
		WithBiasArea(RectangularArea{
			SouthWest: LatLng{Latitude: 45.40, Longitude: 9.04},
			NorthEast: LatLng{Latitude: 45.53, Longitude: 9.27},
		}),
	)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "token-2", nextPage)

	assert.Equal(t, "pizza in milan", gotBody["textQuery"])
	assert.Equal(t, "RELEVANCE", gotBody["rankPreference"])
	assert.Equal(t, float64(20), gotBody["pageSize"])
	assert.Equal(t, true, gotBody["openNow"])
	// Setting a type filter forces strict filtering on.
	assert.Equal(t, "pizza_restaurant", gotBody["includedType"])
	assert.Equal(t, true, gotBody["strictTypeFiltering"])
	assert.Equal(t, float64(4), gotBody["minRating"])
	assert.Equal(t, []interface{}{"PRICE_LEVEL_MODERATE", "PRICE_LEVEL_EXPENSIVE"}, gotBody["priceLevels"])

	bias, ok := gotBody["locationBias"].(map[string]interface{})
	require.True(t, ok)
	_, hasRectangle := bias["rectangle"]
	assert.True(t, hasRectangle)
	_, hasRestriction := gotBody["locationRestriction"]
	assert.False(t, hasRestriction)
}

func TestSearchTextCircularBias(t *testing.T) {
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"places": []}`))
	})

	area, err := NewCircularArea(LatLng{Latitude: 45.46, Longitude: 9.19}, 1000)
	require.NoError(t, err)

	_, _, err = client.SearchText(context.Background(), "coffee", []string{"id"}, WithBiasArea(area))
	require.NoError(t, err)

	bias, ok := gotBody["locationBias"].(map[string]interface{})
	require.True(t, ok)
	_, hasCircle := bias["circle"]
	assert.True(t, hasCircle)
}

func TestSearchTextValidation(t *testing.T) {
	client, err := NewClient(testAPIKey)
	require.NoError(t, err)

	circle, err := NewCircularArea(LatLng{}, 500)
	require.NoError(t, err)
	rect := RectangularArea{}

	tests := []struct {
		name  string
		query string
		opts  []QueryOption
	}{
		{"empty query", "", nil},
		{"bias and restrict together", "pizza", []QueryOption{WithBiasArea(rect), WithRestrictArea(rect)}},
		{"circular restrict area", "pizza", []QueryOption{WithRestrictArea(circle)}},
		{"page size zero", "pizza", []QueryOption{WithMaxResults(0)}},
		{"page size too large", "pizza", []QueryOption{WithMaxResults(21)}},
		{"min rating too large", "pizza", []QueryOption{WithMinRating(5.5)}},
		{"min rating negative", "pizza", []QueryOption{WithMinRating(-0.5)}},
		{"free price level", "pizza", []QueryOption{WithPriceLevels(PriceLevelFree)}},
		{"nearby-search rank", "pizza", []QueryOption{WithRankBy(RankByPopularity)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := client.SearchText(context.Background(), tt.query, []string{"id"}, tt.opts...)
			require.Error(t, err)
			var valErr *ValidationError
			assert.ErrorAs(t, err, &valErr)
		})
	}

	t.Run("min rating boundary accepted", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"places": []}`))
		})
		_, _, err := client.SearchText(context.Background(), "pizza", []string{"id"}, WithMinRating(5.0))
		require.NoError(t, err)
	})
}

func TestGetPlaceDetails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/places/ChIJ123", r.URL.Path)
		// The details endpoint is a singular resource: no "places." prefix.
		assert.Equal(t, "displayName,rating", r.Header.Get("X-Goog-FieldMask"))
		assert.Equal(t, "it", r.URL.Query().Get("languageCode"))

		w.Write([]byte(`{"displayName": {"text": "Trattoria da Mario", "languageCode": "it"}, "rating": 4.6}`))
	})

	place, err := client.GetPlaceDetails(context.Background(), "ChIJ123", []string{"display_name", "rating"},
		WithLanguageCode("it"))
	require.NoError(t, err)

	require.NotNil(t, place.DisplayName)
	assert.Equal(t, "Trattoria da Mario", place.DisplayName.Text)
	require.NotNil(t, place.Rating)
	assert.Equal(t, 4.6, *place.Rating)
}

func TestGetPlaceDetailsValidation(t *testing.T) {
	client, err := NewClient(testAPIKey)
	require.NoError(t, err)

	_, err = client.GetPlaceDetails(context.Background(), "", []string{"id"})
	require.Error(t, err)
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)

	_, err = client.GetPlaceDetails(context.Background(), "ChIJ123", nil)
	require.Error(t, err)
	assert.ErrorAs(t, err, &valErr)
}

func TestGetPhotoURI(t *testing.T) {
	photo := Photo{Name: "places/ChIJ123/photos/abc"}

	t.Run("width wins over height", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/places/ChIJ123/photos/abc/media", r.URL.Path)
			assert.Equal(t, "true", r.URL.Query().Get("skipHttpRedirect"))
			assert.Equal(t, "100", r.URL.Query().Get("maxWidthPx"))
			assert.False(t, r.URL.Query().Has("maxHeightPx"))
			// No field mask on the photo media endpoint.
			assert.Empty(t, r.Header.Get("X-Goog-FieldMask"))

			w.Write([]byte(`{"photoUri": "https://lh3.googleusercontent.com/p/abc"}`))
		})

		uri, err := client.GetPhotoURI(context.Background(), photo, WithMaxWidth(100), WithMaxHeight(200))
		require.NoError(t, err)
		assert.Equal(t, "https://lh3.googleusercontent.com/p/abc", uri)
	})

	t.Run("height only", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "200", r.URL.Query().Get("maxHeightPx"))
			assert.False(t, r.URL.Query().Has("maxWidthPx"))
			w.Write([]byte(`{"photoUri": "https://lh3.googleusercontent.com/p/abc"}`))
		})

		_, err := client.GetPhotoURI(context.Background(), photo, WithMaxHeight(200))
		require.NoError(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		client, err := NewClient(testAPIKey)
		require.NoError(t, err)

		tests := []struct {
			name string
			opts []QueryOption
		}{
			{"no dimensions", nil},
			{"width too large", []QueryOption{WithMaxWidth(5000)}},
			{"height too large", []QueryOption{WithMaxHeight(4801)}},
			{"negative width", []QueryOption{WithMaxWidth(-1)}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := client.GetPhotoURI(context.Background(), photo, tt.opts...)
				require.Error(t, err)
				var valErr *ValidationError
				assert.ErrorAs(t, err, &valErr)
			})
		}
	})
}

func TestAPIErrorDecoding(t *testing.T) {
	t.Run("full error body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message": "Invalid argument", "status": "INVALID_ARGUMENT"}`))
		})

		area, err := NewCircularArea(LatLng{}, 500)
		require.NoError(t, err)

		_, err = client.SearchNearby(context.Background(), area, []string{"id"})
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "Invalid argument", apiErr.Message)
		assert.Equal(t, "INVALID_ARGUMENT", apiErr.Status)
		assert.Contains(t, apiErr.Error(), "Invalid argument")
	})

	t.Run("empty error body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{}`))
		})

		_, err := client.GetPlaceDetails(context.Background(), "ChIJ123", []string{"id"})
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Empty(t, apiErr.Message)
		assert.Contains(t, apiErr.Error(), "Unknown error")
	})
}

func TestMissingPlacesArrayIsDecodeError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	area, err := NewCircularArea(LatLng{}, 500)
	require.NoError(t, err)

	_, err = client.SearchNearby(context.Background(), area, []string{"id"})
	require.Error(t, err)

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

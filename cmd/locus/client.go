package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/locus/pkg/places"
)

// newPlacesClient builds the API client from the resolved configuration.
func newPlacesClient() (*places.Client, error) {
	opts := []places.ClientOption{
		places.WithLogger(logger),
		places.WithHTTPClient(&http.Client{Timeout: config.PlacesAPI.RequestTimeout}),
	}
	if config.PlacesAPI.BaseURL != "" {
		opts = append(opts, places.WithBaseURL(config.PlacesAPI.BaseURL))
	}

	client, err := places.NewClient(config.PlacesAPI.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create places client: %w", err)
	}
	return client, nil
}

// splitFields parses a comma-separated -fields value. An empty value falls
// back to a small default set useful for terminal output.
func splitFields(value string) []string {
	if value == "" {
		return []string{"id", "display_name", "formatted_address", "rating", "user_rating_count", "types"}
	}
	var fields []string
	for _, f := range strings.Split(value, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

func splitTypes(value string) []string {
	var types []string
	for _, t := range strings.Split(value, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

func printPlaces(results []places.Place) {
	for i, place := range results {
		fmt.Printf("--- %d ---\n%s\n", i+1, place.String())
	}
	fmt.Printf("%d place(s)\n", len(results))
}

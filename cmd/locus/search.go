package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/ternarybob/locus/pkg/places"
)

// runSearch executes a text search: locus search [flags] <query...>
func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	fields := fs.String("fields", "", "Comma-separated place fields (snake_case, * for all)")
	maxResults := fs.Int("max", 0, "Maximum results per page (1-20)")
	minRating := fs.Float64("min-rating", 0, "Minimum rating (0.5-5.0 in half steps)")
	openNow := fs.Bool("open-now", false, "Only places open now")
	includedType := fs.String("type", "", "Restrict results to a single place type")
	rankBy := fs.String("rank", "", "Rank preference: relevance or distance")
	lat := fs.Float64("lat", 0, "Bias circle center latitude")
	lng := fs.Float64("lng", 0, "Bias circle center longitude")
	radius := fs.Int("radius", 0, "Bias circle radius in meters (1-50000)")
	pages := fs.Int("pages", 1, "Result pages to fetch (1-3)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	query := strings.Join(fs.Args(), " ")
	if query == "" {
		return fmt.Errorf("search requires a query")
	}

	client, err := newPlacesClient()
	if err != nil {
		return err
	}

	opts := []places.QueryOption{
		places.WithLanguageCode(config.PlacesAPI.LanguageCode),
	}
	if *maxResults > 0 {
		opts = append(opts, places.WithMaxResults(*maxResults))
	} else {
		opts = append(opts, places.WithMaxResults(config.PlacesAPI.MaxResults))
	}
	if *minRating > 0 {
		opts = append(opts, places.WithMinRating(*minRating))
	}
	if *openNow {
		opts = append(opts, places.WithOpenNow())
	}
	if *includedType != "" {
		opts = append(opts, places.WithIncludedType(*includedType))
	}
	if *rankBy != "" {
		opts = append(opts, places.WithRankBy(places.RankPreference(*rankBy)))
	}
	if *radius > 0 {
		area, err := places.NewCircularArea(places.LatLng{Latitude: *lat, Longitude: *lng}, *radius)
		if err != nil {
			return err
		}
		opts = append(opts, places.WithBiasArea(area))
	}

	ctx := context.Background()
	pageToken := ""
	var results []places.Place
	for page := 0; page < *pages; page++ {
		pageOpts := opts
		if pageToken != "" {
			pageOpts = append(pageOpts, places.WithPageToken(pageToken))
		}

		found, nextToken, err := client.SearchText(ctx, query, splitFields(*fields), pageOpts...)
		if err != nil {
			return err
		}
		results = append(results, found...)

		if nextToken == "" {
			break
		}
		pageToken = nextToken
	}

	printPlaces(results)
	return nil
}

// runNearby executes a nearby search: locus nearby -lat ... -lng ... -radius ...
func runNearby(args []string) error {
	fs := flag.NewFlagSet("nearby", flag.ExitOnError)
	fields := fs.String("fields", "", "Comma-separated place fields (snake_case, * for all)")
	maxResults := fs.Int("max", 0, "Maximum results (1-20)")
	includedTypes := fs.String("types", "", "Comma-separated included place types")
	excludedTypes := fs.String("exclude-types", "", "Comma-separated excluded place types")
	rankBy := fs.String("rank", "", "Rank preference: popularity or distance")
	lat := fs.Float64("lat", 0, "Search circle center latitude")
	lng := fs.Float64("lng", 0, "Search circle center longitude")
	radius := fs.Int("radius", 1000, "Search circle radius in meters (1-50000)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	area, err := places.NewCircularArea(places.LatLng{Latitude: *lat, Longitude: *lng}, *radius)
	if err != nil {
		return err
	}

	client, err := newPlacesClient()
	if err != nil {
		return err
	}

	opts := []places.QueryOption{
		places.WithLanguageCode(config.PlacesAPI.LanguageCode),
	}
	if *maxResults > 0 {
		opts = append(opts, places.WithMaxResults(*maxResults))
	} else {
		opts = append(opts, places.WithMaxResults(config.PlacesAPI.MaxResults))
	}
	if *includedTypes != "" {
		opts = append(opts, places.WithIncludedTypes(splitTypes(*includedTypes)...))
	}
	if *excludedTypes != "" {
		opts = append(opts, places.WithExcludedTypes(splitTypes(*excludedTypes)...))
	}
	if *rankBy != "" {
		opts = append(opts, places.WithRankBy(places.RankPreference(*rankBy)))
	}

	results, err := client.SearchNearby(context.Background(), area, splitFields(*fields), opts...)
	if err != nil {
		return err
	}

	printPlaces(results)
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
	"github.com/ternarybob/locus/internal/common"
	"github.com/ternarybob/locus/internal/interfaces"
	"github.com/ternarybob/locus/internal/models"
	badgerstore "github.com/ternarybob/locus/internal/storage/badger"
	"github.com/ternarybob/locus/pkg/places"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

// collectorFields is the field mask requested for every collector search. It
// covers exactly what PlaceDocument persists.
var collectorFields = []string{
	"id", "display_name", "formatted_address", "primary_type", "types",
	"location", "rating", "user_rating_count", "price_level",
	"business_status", "website_uri", "national_phone_number",
}

// searchDefinition describes one collector search loaded from the
// definitions file.
type searchDefinition struct {
	Name       string   `toml:"name" yaml:"name"`
	Query      string   `toml:"query" yaml:"query"`             // Text search query; empty means nearby search
	Latitude   float64  `toml:"latitude" yaml:"latitude"`       // Bias/search circle center
	Longitude  float64  `toml:"longitude" yaml:"longitude"`
	Radius     int      `toml:"radius" yaml:"radius"`           // Circle radius in meters; 0 disables the bias circle
	Types      []string `toml:"types" yaml:"types"`             // Included types for nearby searches
	MaxResults int      `toml:"max_results" yaml:"max_results"`
	MinRating  float64  `toml:"min_rating" yaml:"min_rating"`
	OpenNow    bool     `toml:"open_now" yaml:"open_now"`
}

type searchDefinitionsFile struct {
	Searches []searchDefinition `toml:"searches" yaml:"searches"`
}

// loadSearchDefinitions parses the definitions file, choosing the decoder by
// file extension (.toml, .yaml or .yml).
func loadSearchDefinitions(path string) ([]searchDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions file %s: %w", path, err)
	}

	var file searchDefinitionsFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported definitions file extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse definitions file %s: %w", path, err)
	}

	if len(file.Searches) == 0 {
		return nil, fmt.Errorf("definitions file %s contains no searches", path)
	}
	return file.Searches, nil
}

// runCollect executes the collector: locus collect [flags]
func runCollect(args []string) error {
	fs := flag.NewFlagSet("collect", flag.ExitOnError)
	definitionsFile := fs.String("definitions", "", "Search definitions file (overrides config)")
	schedule := fs.String("schedule", "", "Cron schedule for repeated runs (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	common.PrintBanner(common.GetVersion())

	path := config.Collector.DefinitionsFile
	if *definitionsFile != "" {
		path = *definitionsFile
	}
	definitions, err := loadSearchDefinitions(path)
	if err != nil {
		return err
	}

	client, err := newPlacesClient()
	if err != nil {
		return err
	}

	db, err := badgerstore.NewBadgerDB(logger, &config.Storage.Badger)
	if err != nil {
		return err
	}
	defer db.Close()
	storage := badgerstore.NewPlaceStorage(db, logger)

	collector := &collector{
		client:   client,
		storage:  storage,
		limiter:  rate.NewLimiter(rate.Limit(config.Collector.RequestsPerSecond), 1),
		maxPages: config.Collector.MaxPages,
	}

	cronSpec := config.Collector.Schedule
	if *schedule != "" {
		cronSpec = *schedule
	}
	if cronSpec == "" {
		return collector.run(context.Background(), definitions)
	}

	// Scheduled mode: run immediately, then on every cron tick until
	// interrupted.
	if err := collector.run(context.Background(), definitions); err != nil {
		logger.Error().Err(err).Msg("Collection run failed")
	}

	c := cron.New()
	if _, err := c.AddFunc(cronSpec, func() {
		if err := collector.run(context.Background(), definitions); err != nil {
			logger.Error().Err(err).Msg("Scheduled collection run failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", cronSpec, err)
	}
	c.Start()
	defer c.Stop()

	logger.Info().Str("schedule", cronSpec).Msg("Collector scheduled - Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Interrupt signal received, stopping collector")
	return nil
}

// collector drives paginated searches and persists the results.
type collector struct {
	client   *places.Client
	storage  interfaces.PlaceStorage
	limiter  *rate.Limiter
	maxPages int
}

func (c *collector) run(ctx context.Context, definitions []searchDefinition) error {
	total := 0
	for _, def := range definitions {
		count, err := c.runDefinition(ctx, def)
		if err != nil {
			logger.Error().Err(err).Str("name", def.Name).Msg("Search definition failed")
			continue
		}
		total += count
	}
	logger.Info().Int("definitions", len(definitions)).Int("places", total).Msg("Collection run complete")
	return nil
}

func (c *collector) runDefinition(ctx context.Context, def searchDefinition) (int, error) {
	logger.Info().Str("name", def.Name).Str("query", def.Query).Msg("Running search definition")

	var results []places.Place
	var err error
	if def.Query != "" {
		results, err = c.textSearch(ctx, def)
	} else {
		results, err = c.nearbySearch(ctx, def)
	}
	if err != nil {
		return 0, err
	}

	docs := make([]*models.PlaceDocument, 0, len(results))
	for _, place := range results {
		docs = append(docs, toPlaceDocument(place, def.Query))
	}
	if err := c.storage.SavePlaces(docs); err != nil {
		return 0, err
	}

	logger.Info().Str("name", def.Name).Int("places", len(docs)).Msg("Search definition complete")
	return len(docs), nil
}

func (c *collector) textSearch(ctx context.Context, def searchDefinition) ([]places.Place, error) {
	opts := c.queryOptions(def)
	if def.Radius > 0 {
		area, err := places.NewCircularArea(places.LatLng{Latitude: def.Latitude, Longitude: def.Longitude}, def.Radius)
		if err != nil {
			return nil, err
		}
		opts = append(opts, places.WithBiasArea(area))
	}

	var results []places.Place
	pageToken := ""
	for page := 0; page < c.maxPages; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		pageOpts := opts
		if pageToken != "" {
			pageOpts = append(pageOpts, places.WithPageToken(pageToken))
		}

		found, nextToken, err := c.client.SearchText(ctx, def.Query, collectorFields, pageOpts...)
		if err != nil {
			return nil, err
		}
		results = append(results, found...)

		if nextToken == "" {
			break
		}
		pageToken = nextToken
	}
	return results, nil
}

func (c *collector) nearbySearch(ctx context.Context, def searchDefinition) ([]places.Place, error) {
	if def.Radius == 0 {
		return nil, fmt.Errorf("nearby definition %q requires a radius", def.Name)
	}
	area, err := places.NewCircularArea(places.LatLng{Latitude: def.Latitude, Longitude: def.Longitude}, def.Radius)
	if err != nil {
		return nil, err
	}

	opts := c.queryOptions(def)
	if len(def.Types) > 0 {
		opts = append(opts, places.WithIncludedTypes(def.Types...))
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.client.SearchNearby(ctx, area, collectorFields, opts...)
}

func (c *collector) queryOptions(def searchDefinition) []places.QueryOption {
	opts := []places.QueryOption{
		places.WithLanguageCode(config.PlacesAPI.LanguageCode),
	}
	if def.MaxResults > 0 {
		opts = append(opts, places.WithMaxResults(def.MaxResults))
	} else {
		opts = append(opts, places.WithMaxResults(config.PlacesAPI.MaxResults))
	}
	if def.MinRating > 0 {
		opts = append(opts, places.WithMinRating(def.MinRating))
	}
	if def.OpenNow {
		opts = append(opts, places.WithOpenNow())
	}
	return opts
}

// toPlaceDocument flattens an API place into its stored form.
func toPlaceDocument(place places.Place, searchQuery string) *models.PlaceDocument {
	doc := &models.PlaceDocument{
		PlaceID:          stringValue(place.ID),
		FormattedAddress: stringValue(place.FormattedAddress),
		PrimaryType:      stringValue(place.PrimaryType),
		Types:            place.Types,
		WebsiteURI:       stringValue(place.WebsiteURI),
		PhoneNumber:      stringValue(place.NationalPhoneNumber),
		SearchQuery:      searchQuery,
	}
	if place.DisplayName != nil {
		doc.DisplayName = place.DisplayName.Text
	}
	if place.Location != nil {
		doc.Latitude = place.Location.Latitude
		doc.Longitude = place.Location.Longitude
	}
	if place.Rating != nil {
		doc.Rating = *place.Rating
	}
	if place.UserRatingCount != nil {
		doc.UserRatingCount = *place.UserRatingCount
	}
	if place.PriceLevel != nil {
		doc.PriceLevel = string(*place.PriceLevel)
	}
	if place.BusinessStatus != nil {
		doc.BusinessStatus = string(*place.BusinessStatus)
	}
	return doc
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

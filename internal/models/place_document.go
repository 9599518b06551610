package models

import (
	"time"
)

// PlaceDocument is the stored form of a collected place. It flattens the
// fields the collector queries on so badgerhold can index them directly.
type PlaceDocument struct {
	ID               string    `badgerhold:"key"` // Internal document ID (place_<uuid>)
	PlaceID          string    `badgerholdIndex:"PlaceID"`
	DisplayName      string
	FormattedAddress string
	PrimaryType      string
	Types            []string
	Latitude         float64
	Longitude        float64
	Rating           float64
	UserRatingCount  int
	PriceLevel       string
	BusinessStatus   string
	WebsiteURI       string
	PhoneNumber      string
	SearchQuery      string `badgerholdIndex:"SearchQuery"` // Definition query that produced this place
	CollectedAt      time.Time
	UpdatedAt        time.Time
}

package interfaces

import (
	"github.com/ternarybob/locus/internal/models"
)

// PlaceStorage defines the interface for persisting collected places
type PlaceStorage interface {
	SavePlace(doc *models.PlaceDocument) error
	SavePlaces(docs []*models.PlaceDocument) error
	GetPlaceByPlaceID(placeID string) (*models.PlaceDocument, error)
	ListPlacesByQuery(searchQuery string, limit int) ([]*models.PlaceDocument, error)
	CountPlaces() (int, error)
	DeletePlace(id string) error
}

package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/locus/internal/common"
	"github.com/ternarybob/locus/internal/interfaces"
	"github.com/ternarybob/locus/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// PlaceStorage implements the PlaceStorage interface for Badger
type PlaceStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewPlaceStorage creates a new PlaceStorage instance
func NewPlaceStorage(db *BadgerDB, logger arbor.ILogger) interfaces.PlaceStorage {
	return &PlaceStorage{
		db:     db,
		logger: logger,
	}
}

// SavePlace upserts a place document. When a document for the same PlaceID
// already exists its ID and CollectedAt are preserved so repeated collector
// runs update in place instead of duplicating.
func (s *PlaceStorage) SavePlace(doc *models.PlaceDocument) error {
	if doc.PlaceID == "" {
		return fmt.Errorf("place ID is required")
	}

	now := time.Now()
	if existing, err := s.GetPlaceByPlaceID(doc.PlaceID); err == nil {
		doc.ID = existing.ID
		doc.CollectedAt = existing.CollectedAt
	}
	if doc.ID == "" {
		doc.ID = common.NewPlaceDocumentID()
	}
	if doc.CollectedAt.IsZero() {
		doc.CollectedAt = now
	}
	doc.UpdatedAt = now

	if err := s.db.Store().Upsert(doc.ID, doc); err != nil {
		return fmt.Errorf("failed to save place: %w", err)
	}
	return nil
}

func (s *PlaceStorage) SavePlaces(docs []*models.PlaceDocument) error {
	for _, doc := range docs {
		if err := s.SavePlace(doc); err != nil {
			return err
		}
	}
	return nil
}

func (s *PlaceStorage) GetPlaceByPlaceID(placeID string) (*models.PlaceDocument, error) {
	var docs []models.PlaceDocument
	err := s.db.Store().Find(&docs, badgerhold.Where("PlaceID").Eq(placeID).Index("PlaceID"))
	if err != nil {
		return nil, fmt.Errorf("failed to find place: %w", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("place not found: %s", placeID)
	}
	return &docs[0], nil
}

func (s *PlaceStorage) ListPlacesByQuery(searchQuery string, limit int) ([]*models.PlaceDocument, error) {
	query := badgerhold.Where("ID").Ne("") // Select all
	if searchQuery != "" {
		query = badgerhold.Where("SearchQuery").Eq(searchQuery).Index("SearchQuery")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var docs []models.PlaceDocument
	if err := s.db.Store().Find(&docs, query); err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}

	result := make([]*models.PlaceDocument, len(docs))
	for i := range docs {
		result[i] = &docs[i]
	}
	return result, nil
}

func (s *PlaceStorage) CountPlaces() (int, error) {
	count, err := s.db.Store().Count(&models.PlaceDocument{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count places: %w", err)
	}
	return int(count), nil
}

func (s *PlaceStorage) DeletePlace(id string) error {
	if err := s.db.Store().Delete(id, &models.PlaceDocument{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete place: %w", err)
	}
	return nil
}

package common

import (
	"github.com/google/uuid"
)

// NewPlaceDocumentID generates a unique place document ID with the "place_" prefix
// Format: place_<uuid>
func NewPlaceDocumentID() string {
	return "place_" + uuid.New().String()
}

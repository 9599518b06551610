package places

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PriceLevel is the price bracket reported for a place.
type PriceLevel string

const (
	PriceLevelUnspecified   PriceLevel = "unspecified"
	PriceLevelFree          PriceLevel = "free"
	PriceLevelInexpensive   PriceLevel = "inexpensive"
	PriceLevelModerate      PriceLevel = "moderate"
	PriceLevelExpensive     PriceLevel = "expensive"
	PriceLevelVeryExpensive PriceLevel = "very_expensive"
)

// PriceLevelFromAPIFormat converts a wire value such as "PRICE_LEVEL_MODERATE"
// to its PriceLevel.
func PriceLevelFromAPIFormat(value string) (PriceLevel, error) {
	trimmed := strings.TrimPrefix(value, "PRICE_LEVEL_")
	level := PriceLevel(strings.ToLower(trimmed))
	switch level {
	case PriceLevelUnspecified, PriceLevelFree, PriceLevelInexpensive,
		PriceLevelModerate, PriceLevelExpensive, PriceLevelVeryExpensive:
		return level, nil
	}
	return "", fmt.Errorf("unknown price level: %q", value)
}

// ToAPIFormat returns the price level in the wire format, for example
// "PRICE_LEVEL_MODERATE".
func (p PriceLevel) ToAPIFormat() string {
	return "PRICE_LEVEL_" + strings.ToUpper(string(p))
}

func (p PriceLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToAPIFormat())
}

func (p *PriceLevel) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	level, err := PriceLevelFromAPIFormat(value)
	if err != nil {
		return err
	}
	*p = level
	return nil
}

// BusinessStatus is the operational status of a place.
type BusinessStatus string

const (
	BusinessStatusOperational       BusinessStatus = "operational"
	BusinessStatusClosedTemporarily BusinessStatus = "closed_temporarily"
	BusinessStatusClosedPermanently BusinessStatus = "closed_permanently"
)

// BusinessStatusFromAPIFormat converts a wire value such as "OPERATIONAL" to
// its BusinessStatus.
func BusinessStatusFromAPIFormat(value string) (BusinessStatus, error) {
	status := BusinessStatus(strings.ToLower(value))
	switch status {
	case BusinessStatusOperational, BusinessStatusClosedTemporarily, BusinessStatusClosedPermanently:
		return status, nil
	}
	return "", fmt.Errorf("unknown business status: %q", value)
}

// ToAPIFormat returns the business status in the wire format, for example
// "CLOSED_TEMPORARILY".
func (s BusinessStatus) ToAPIFormat() string {
	return strings.ToUpper(string(s))
}

func (s BusinessStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToAPIFormat())
}

func (s *BusinessStatus) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	status, err := BusinessStatusFromAPIFormat(value)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// LocalizedString is a string together with its language code.
type LocalizedString struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

// AddressComponent is one structured part of an address.
type AddressComponent struct {
	LongText     string   `json:"longText"`
	ShortText    string   `json:"shortText"`
	Types        []string `json:"types"`
	LanguageCode string   `json:"languageCode"`
}

// PlusCode is an Open Location Code for a place.
type PlusCode struct {
	GlobalCode   string `json:"globalCode"`
	CompoundCode string `json:"compoundCode"`
}

// AuthorAttribution credits the author of a photo or review.
type AuthorAttribution struct {
	DisplayName string `json:"displayName"`
	URI         string `json:"uri,omitempty"`
	PhotoURI    string `json:"photoUri,omitempty"`
}

// Photo references a place photo. Name is the opaque resource identifier used
// to resolve the photo URI.
type Photo struct {
	Name               string              `json:"name"`
	Width              int                 `json:"widthPx"`
	Height             int                 `json:"heightPx"`
	AuthorAttributions []AuthorAttribution `json:"authorAttributions"`
}

// Review is a user review of a place.
type Review struct {
	Name                           string            `json:"name"`
	RelativePublishTimeDescription string            `json:"relativePublishTimeDescription"`
	Rating                         int               `json:"rating"`
	Text                           LocalizedString   `json:"text"`
	OriginalText                   LocalizedString   `json:"originalText"`
	AuthorAttribution              AuthorAttribution `json:"authorAttribution"`
	PublishTime                    time.Time         `json:"publishTime"`
}

// ParkingOptions describes the parking available at a place. A nil field
// means the option was not reported, which is distinct from false.
type ParkingOptions struct {
	FreeGarageParking *bool `json:"freeGarageParking,omitempty"`
	FreeParkingLot    *bool `json:"freeParkingLot,omitempty"`
	FreeStreetParking *bool `json:"freeStreetParking,omitempty"`
	PaidGarageParking *bool `json:"paidGarageParking,omitempty"`
	PaidParkingLot    *bool `json:"paidParkingLot,omitempty"`
	PaidStreetParking *bool `json:"paidStreetParking,omitempty"`
	ValetParking      *bool `json:"valetParking,omitempty"`
}

// PaymentOptions describes the payment methods accepted at a place. A nil
// field means the option was not reported.
type PaymentOptions struct {
	AcceptsCashOnly    *bool `json:"acceptsCashOnly,omitempty"`
	AcceptsCreditCards *bool `json:"acceptsCreditCards,omitempty"`
	AcceptsDebitCards  *bool `json:"acceptsDebitCards,omitempty"`
	AcceptsNFC         *bool `json:"acceptsNfc,omitempty"`
}

// AccessibilityOptions maps accessibility feature names (snake_case) to
// whether the place offers them.
type AccessibilityOptions map[string]bool

func (o AccessibilityOptions) MarshalJSON() ([]byte, error) {
	wire := make(map[string]bool, len(o))
	for key, value := range o {
		wire[snakeToCamel(key)] = value
	}
	return json.Marshal(wire)
}

func (o *AccessibilityOptions) UnmarshalJSON(data []byte) error {
	var wire map[string]bool
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	options := make(AccessibilityOptions, len(wire))
	for key, value := range wire {
		options[camelToSnake(key)] = value
	}
	*o = options
	return nil
}

package places

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Place describes a point of interest returned by the Places API. Only a
// subset of the upstream fields is modeled.
//
// Every field is optional: the API returns only the fields named in the
// request's field mask, so a nil field means "not requested", not "unknown".
// A Place with every field nil is valid.
type Place struct {
	ID   *string `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
	// basic fields
	AccessibilityOptions   AccessibilityOptions `json:"accessibilityOptions,omitempty"`
	AddressComponents      []AddressComponent   `json:"addressComponents,omitempty"`
	AdrFormatAddress       *string              `json:"adrFormatAddress,omitempty"`
	BusinessStatus         *BusinessStatus      `json:"businessStatus,omitempty"`
	DisplayName            *LocalizedString     `json:"displayName,omitempty"`
	FormattedAddress       *string              `json:"formattedAddress,omitempty"`
	GoogleMapsURI          *string              `json:"googleMapsUri,omitempty"`
	IconBackgroundColor    *string              `json:"iconBackgroundColor,omitempty"`
	IconMaskBaseURI        *string              `json:"iconMaskBaseUri,omitempty"`
	Location               *LatLng              `json:"location,omitempty"`
	Photos                 []Photo              `json:"photos,omitempty"`
	PlusCode               *PlusCode            `json:"plusCode,omitempty"`
	PrimaryType            *string              `json:"primaryType,omitempty"`
	PrimaryTypeDisplayName *LocalizedString     `json:"primaryTypeDisplayName,omitempty"`
	ShortFormattedAddress  *string              `json:"shortFormattedAddress,omitempty"`
	Types                  []string             `json:"types,omitempty"`
	UTCOffsetMinutes       *int                 `json:"utcOffsetMinutes,omitempty"`
	Viewport               *RectangularArea     `json:"viewport,omitempty"`
	// advanced fields
	CurrentOpeningHours          *OpeningHours `json:"currentOpeningHours,omitempty"`
	CurrentSecondaryOpeningHours *OpeningHours `json:"currentSecondaryOpeningHours,omitempty"`
	InternationalPhoneNumber     *string       `json:"internationalPhoneNumber,omitempty"`
	NationalPhoneNumber          *string       `json:"nationalPhoneNumber,omitempty"`
	PriceLevel                   *PriceLevel   `json:"priceLevel,omitempty"`
	Rating                       *float64      `json:"rating,omitempty"`
	RegularOpeningHours          *OpeningHours `json:"regularOpeningHours,omitempty"`
	RegularSecondaryOpeningHours *OpeningHours `json:"regularSecondaryOpeningHours,omitempty"`
	UserRatingCount              *int          `json:"userRatingCount,omitempty"`
	WebsiteURI                   *string       `json:"websiteUri,omitempty"`
	// preferred fields
	AllowsDogs           *bool           `json:"allowsDogs,omitempty"`
	CurbsidePickup       *bool           `json:"curbsidePickup,omitempty"`
	Delivery             *bool           `json:"delivery,omitempty"`
	DineIn               *bool           `json:"dineIn,omitempty"`
	GoodForChildren      *bool           `json:"goodForChildren,omitempty"`
	GoodForGroups        *bool           `json:"goodForGroups,omitempty"`
	GoodForWatchingSports *bool          `json:"goodForWatchingSports,omitempty"`
	LiveMusic            *bool           `json:"liveMusic,omitempty"`
	MenuForChildren      *bool           `json:"menuForChildren,omitempty"`
	ParkingOptions       *ParkingOptions `json:"parkingOptions,omitempty"`
	PaymentOptions       *PaymentOptions `json:"paymentOptions,omitempty"`
	OutdoorSeating       *bool           `json:"outdoorSeating,omitempty"`
	Reservable           *bool           `json:"reservable,omitempty"`
	Restroom             *bool           `json:"restroom,omitempty"`
	Reviews              []Review        `json:"reviews,omitempty"`
	ServesBeer           *bool           `json:"servesBeer,omitempty"`
	ServesBreakfast      *bool           `json:"servesBreakfast,omitempty"`
	ServesBrunch         *bool           `json:"servesBrunch,omitempty"`
	ServesCocktails      *bool           `json:"servesCocktails,omitempty"`
	ServesCoffee         *bool           `json:"servesCoffee,omitempty"`
	ServesDesserts       *bool           `json:"servesDesserts,omitempty"`
	ServesDinner         *bool           `json:"servesDinner,omitempty"`
	ServesLunch          *bool           `json:"servesLunch,omitempty"`
	ServesVegetarianFood *bool           `json:"servesVegetarianFood,omitempty"`
	ServesWine           *bool           `json:"servesWine,omitempty"`
	Takeout              *bool           `json:"takeout,omitempty"`
}

// placeFields lists the snake_case field names accepted by the field-mask
// builder, matching the Place struct above field for field.
var placeFields = []string{
	"id", "name",
	"accessibility_options", "address_components", "adr_format_address",
	"business_status", "display_name", "formatted_address", "google_maps_uri",
	"icon_background_color", "icon_mask_base_uri", "location", "photos",
	"plus_code", "primary_type", "primary_type_display_name",
	"short_formatted_address", "types", "utc_offset_minutes", "viewport",
	"current_opening_hours", "current_secondary_opening_hours",
	"international_phone_number", "national_phone_number", "price_level",
	"rating", "regular_opening_hours", "regular_secondary_opening_hours",
	"user_rating_count", "website_uri",
	"allows_dogs", "curbside_pickup", "delivery", "dine_in",
	"good_for_children", "good_for_groups", "good_for_watching_sports",
	"live_music", "menu_for_children", "parking_options", "payment_options",
	"outdoor_seating", "reservable", "restroom", "reviews",
	"serves_beer", "serves_breakfast", "serves_brunch", "serves_cocktails",
	"serves_coffee", "serves_desserts", "serves_dinner", "serves_lunch",
	"serves_vegetarian_food", "serves_wine", "takeout",
}

// placeWireNames maps snake_case field names to their camelCase wire names.
// Built once at package initialization.
var placeWireNames = func() map[string]string {
	names := make(map[string]string, len(placeFields))
	for _, field := range placeFields {
		names[field] = snakeToCamel(field)
	}
	return names
}()

// DecodePlace decodes a single place from its wire representation. Wire keys
// that are not modeled are dropped, so new upstream fields never cause a
// failure.
func DecodePlace(data []byte) (*Place, error) {
	var place Place
	if err := json.Unmarshal(data, &place); err != nil {
		return nil, fmt.Errorf("failed to decode place: %w", err)
	}
	return &place, nil
}

// String renders only the populated fields.
func (p Place) String() string {
	value := reflect.ValueOf(p)
	typ := value.Type()

	var parts []string
	for i := 0; i < typ.NumField(); i++ {
		field := value.Field(i)
		switch field.Kind() {
		case reflect.Ptr:
			if field.IsNil() {
				continue
			}
			field = field.Elem()
		case reflect.Slice, reflect.Map:
			if field.IsNil() {
				continue
			}
		}
		parts = append(parts, fmt.Sprintf("%s=%v", typ.Field(i).Name, field.Interface()))
	}

	return "Place(" + strings.Join(parts, ", ") + ")"
}

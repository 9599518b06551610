package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldMask(t *testing.T) {
	tests := []struct {
		name      string
		fields    []string
		addPrefix bool
		want      string
		wantErr   string
	}{
		{
			name:    "no fields",
			fields:  nil,
			wantErr: "at least one field",
		},
		{
			name:      "wildcard bypasses validation",
			fields:    []string{"*"},
			addPrefix: true,
			want:      "*",
		},
		{
			name:      "wildcard wins over other fields",
			fields:    []string{"rating", "*", "bogus"},
			addPrefix: true,
			want:      "*",
		},
		{
			name:      "single field with prefix",
			fields:    []string{"rating"},
			addPrefix: true,
			want:      "places.rating",
		},
		{
			name:   "single field without prefix",
			fields: []string{"rating"},
			want:   "rating",
		},
		{
			name:      "camel casing",
			fields:    []string{"display_name", "formatted_address", "utc_offset_minutes"},
			addPrefix: true,
			want:      "places.displayName,places.formattedAddress,places.utcOffsetMinutes",
		},
		{
			name:   "duplicates collapse",
			fields: []string{"rating", "rating", "id"},
			want:   "id,rating",
		},
		{
			name:    "unknown field",
			fields:  []string{"unknown_field"},
			wantErr: "unknown_field",
		},
		{
			name:    "unknown fields are all listed",
			fields:  []string{"rating", "zzz_bogus", "aaa_bogus"},
			wantErr: "aaa_bogus, zzz_bogus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask, err := FieldMask(tt.fields, tt.addPrefix)
			if tt.wantErr != "" {
				require.Error(t, err)
				var valErr *ValidationError
				require.ErrorAs(t, err, &valErr)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mask)
		})
	}
}

func TestFieldMaskCoversEveryPlaceField(t *testing.T) {
	mask, err := FieldMask(placeFields, false)
	require.NoError(t, err)
	assert.NotEmpty(t, mask)
}

func TestCasingHelpers(t *testing.T) {
	tests := []struct {
		snake string
		camel string
	}{
		{"id", "id"},
		{"display_name", "displayName"},
		{"google_maps_uri", "googleMapsUri"},
		{"serves_vegetarian_food", "servesVegetarianFood"},
		{"utc_offset_minutes", "utcOffsetMinutes"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.camel, snakeToCamel(tt.snake))
		assert.Equal(t, tt.snake, camelToSnake(tt.camel))
	}
}

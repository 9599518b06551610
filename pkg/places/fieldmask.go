package places

import (
	"sort"
	"strings"
	"unicode"
)

// fieldMaskPrefix namespaces field names for the list-shaped search
// endpoints.
const fieldMaskPrefix = "places."

// FieldMask builds the X-Goog-FieldMask header value from snake_case Place
// field names. The wildcard "*" requests every field and bypasses all other
// checks. When addPrefix is true each field is namespaced under "places." as
// required by the search endpoints. Fields are deduplicated and the output is
// sorted for reproducibility.
func FieldMask(fields []string, addPrefix bool) (string, error) {
	requested := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		requested[field] = struct{}{}
	}

	if len(requested) == 0 {
		return "", validationErrorf("at least one field must be provided")
	}

	if _, ok := requested["*"]; ok {
		return "*", nil
	}

	var invalid []string
	for field := range requested {
		if _, ok := placeWireNames[field]; !ok {
			invalid = append(invalid, field)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return "", validationErrorf("invalid field(s): %s", strings.Join(invalid, ", "))
	}

	masked := make([]string, 0, len(requested))
	for field := range requested {
		name := placeWireNames[field]
		if addPrefix {
			name = fieldMaskPrefix + name
		}
		masked = append(masked, name)
	}
	sort.Strings(masked)

	return strings.Join(masked, ","), nil
}

// snakeToCamel converts snake_case to lowerCamelCase.
func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// camelToSnake converts lowerCamelCase to snake_case.
func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

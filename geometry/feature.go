package geometry

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/paulmach/orb/geojson"
)

// FeatureID returns the feature id, falling back to the "id" property.
func FeatureID(f *geojson.Feature) string {
	if f.ID != nil {
		return FormatID(f.ID)
	}
	if f.Properties != nil {
		if v, ok := f.Properties["id"]; ok && v != nil {
			return FormatID(v)
		}
	}
	return ""
}

// FormatID renders a decoded JSON id as a string. Numbers are written in
// plain decimal so 1234567 stays "1234567".
func FormatID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(id), 'f', -1, 32)
	case json.Number:
		return id.String()
	default:
		return fmt.Sprint(id)
	}
}

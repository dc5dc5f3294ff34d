// package mapper turns decoded API items into flat table records.
//
// Lookups are total: an absent key, a missing nested object, or a JSON null yields
// [table.Missing] instead of an error.
package mapper

import (
	"encoding/json"

	"github.com/desertthunder/tracktab/internal/table"
)

// Object is a decoded JSON object.
type Object = map[string]any

// Get follows path through nested objects and returns the scalar at the end of it.
//
// Anything other than a scalar at the leaf (an object, an array) is Missing too.
func Get(obj Object, path ...string) table.Value {
	var cur any = obj
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return table.Missing
		}
		cur, ok = m[key]
		if !ok {
			return table.Missing
		}
	}
	return Scalar(cur)
}

// Child returns the nested object under key, or nil when it's absent or not an object.
func Child(obj Object, key string) Object {
	m, _ := obj[key].(map[string]any)
	return m
}

// Scalar converts a decoded JSON value into a [table.Value].
func Scalar(v any) table.Value {
	switch x := v.(type) {
	case nil:
		return table.Missing
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return table.Text(x.String())
		}
		return table.Number(f)
	case float64:
		return table.Number(x)
	case float32:
		return table.Number(float64(x))
	case int:
		return table.Number(float64(x))
	case int64:
		return table.Number(float64(x))
	case string:
		return table.Text(x)
	case bool:
		return table.Bool(x)
	default:
		return table.Missing
	}
}

// Items returns the objects in the top-level "data" array of a response body.
// Entries that aren't objects are skipped.
func Items(body Object) []Object {
	raw, _ := body["data"].([]any)
	items := make([]Object, 0, len(raw))
	for _, it := range raw {
		if m, ok := it.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

// Package output serializes and renders attendance results.
package output

import "encoding/json"

// ToJSON serializes a report, index or sheet.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

package shanghaifantasy

import "encoding/json"

// record is one loosely-typed item from the JSON API. Field names differ
// between endpoints and site versions, so lookups go through str.
type record map[string]any

// str returns the first non-empty string value among keys.
func (r record) str(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k].(string); ok && v != "" {
			return v
		}
	}

	return ""
}

// decodeRecords accepts either a bare array or an object wrapping the array
// in "data". Non-object entries are kept as nil records so that positions
// in the result match positions in the payload.
func decodeRecords(body []byte) ([]record, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	var list []any
	switch v := payload.(type) {
	case []any:
		list = v
	case map[string]any:
		list, _ = v["data"].([]any)
	}

	out := make([]record, len(list))
	for i, item := range list {
		if m, ok := item.(map[string]any); ok {
			out[i] = record(m)
		}
	}

	return out, nil
}

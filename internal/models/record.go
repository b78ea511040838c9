package models

import (
	"encoding/json"
	"math"
)

// Record is a single schemaless entry of a collection. Field names follow the
// JSON payloads sent by the browser client (camelCase).
//
// Records held by the store are treated as immutable: updates replace the
// record with a merged copy instead of writing into the existing map.
type Record map[string]any

// ID returns the numeric id of the record.
func (r Record) ID() (int64, bool) {
	return toInt64(r["id"])
}

// String returns the field as a string, or "" when absent or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Merge returns a new record holding the fields of r overridden by the fields
// present in patch. Fields absent from patch are retained.
func (r Record) Merge(patch Record) Record {
	merged := make(Record, len(r)+len(patch))
	for k, v := range r {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// Without returns a copy of r with the given keys removed.
func (r Record) Without(keys ...string) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Clone returns a deep copy of the record, including nested objects and arrays.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return cloneValue(map[string]any(r)).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case Record:
		return Record(cloneValue(map[string]any(t)).(map[string]any))
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}

// toInt64 accepts the numeric representations a record may carry: int64 for
// records created in-process, json.Number for records decoded from storage.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) {
			return 0, false
		}
		return int64(f), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

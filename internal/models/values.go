package models

import (
	"strconv"
	"time"
)

// ISOFormat is the millisecond UTC layout used for timestamps handed to clients.
const ISOFormat = "2006-01-02T15:04:05.000Z"

func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOFormat)
}

// The helpers below read loosely typed field values. Values come back from
// Firestore as native Go types and from JSON (badger, snapshot files) as
// strings, float64 and []any, so both shapes are accepted.

func String(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func Bool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, _ := strconv.ParseBool(b)
		return parsed
	default:
		return false
	}
}

func Float(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

// Time accepts time.Time, RFC3339 strings and the {_seconds,_nanoseconds}
// object that Firestore timestamps serialize to in JSON exports.
func Time(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	case map[string]any:
		sec, ok := t["_seconds"]
		if !ok {
			sec, ok = t["seconds"]
		}
		if !ok {
			return time.Time{}, false
		}
		nsec := t["_nanoseconds"]
		if nsec == nil {
			nsec = t["nanoseconds"]
		}
		return time.Unix(int64(Float(sec)), int64(Float(nsec))).UTC(), true
	default:
		return time.Time{}, false
	}
}

func Strings(v any) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			out = append(out, String(item))
		}
		return out
	default:
		return nil
	}
}

func Maps(v any) []map[string]any {
	switch s := v.(type) {
	case []map[string]any:
		return s
	case []any:
		out := make([]map[string]any, 0, len(s))
		for _, item := range s {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

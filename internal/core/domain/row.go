package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Row is one record of a resource collection as the server returned it.
type Row map[string]any

// ID renders the row identifier stored under field.
func (r Row) ID(field string) string {
	return r.String(field)
}

// String renders the value stored under field the way a form shows it.
// Missing and null values render as the empty string.
func (r Row) String(field string) string {
	return formatValue(r[field])
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

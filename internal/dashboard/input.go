package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"rockalpatio/internal/collection"
	"rockalpatio/internal/model"
)

// FormNumber is a numeric form input. It accepts both JSON numbers and
// strings, since range inputs submit their value as text.
type FormNumber string

func (n *FormNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = FormNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = FormNumber(num.String())
	return nil
}

const dateLayout = "2006-01-02"

// parseDate turns a date input into a value for the store. Empty input is
// stored as NULL.
func parseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d, nil
	}
	return nil, &collection.FieldError{Field: field, Reason: fmt.Sprintf("%q is not a date (want YYYY-MM-DD)", s)}
}

// ParseProgress converts a progress input to a percentage in [0,100] that is
// a multiple of 5. Out-of-range values are clamped and in-between values
// snap to the nearest step.
func ParseProgress(raw any) (int, error) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		return ParseProgress(string(v))
	case FormNumber:
		return ParseProgress(string(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, &collection.FieldError{Field: "progreso", Reason: fmt.Sprintf("%q is not a number", v)}
		}
		f = parsed
	default:
		return 0, &collection.FieldError{Field: "progreso", Reason: fmt.Sprintf("unsupported value %v", raw)}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &collection.FieldError{Field: "progreso", Reason: "is not a finite number"}
	}
	f = math.Max(0, math.Min(100, f))
	return int(math.Round(f/5)) * 5, nil
}

// enumValue validates an optional enumerated input. Empty input yields def.
func enumValue(field, raw string, opts []model.Option, def string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return def, nil
	}
	if !model.Declared(opts, v) {
		return "", collection.Undeclared(field, v)
	}
	return v, nil
}

// requiredEnum is enumValue for a field that must be filled in.
func requiredEnum(field, raw string, opts []model.Option) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", collection.Required(field)
	}
	return enumValue(field, raw, opts, "")
}

func stringValue(field string, raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", &collection.FieldError{Field: field, Reason: fmt.Sprintf("unsupported value %v", raw)}
	}
	return strings.TrimSpace(s), nil
}

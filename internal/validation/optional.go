package validation

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The Optional* types distinguish three states a JSON field can be in:
// absent from the payload, explicitly null, or present with a value. Partial
// updates only validate and apply fields that are present. A value of the
// wrong JSON type does not abort decoding; it is recorded as Invalid so the
// type failure can be reported as a field-level message alongside the rest
// of the payload's errors.

var jsonNull = []byte("null")

// OptionalString is a string field that tracks presence and nullability.
type OptionalString struct {
	Present bool
	Null    bool
	Invalid bool
	Value   string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, jsonNull) {
		o.Null = true
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		o.Invalid = true
	}
	return nil
}

// OptionalInt accepts JSON integers and integer-shaped strings. Fractional
// numbers and anything else are marked Invalid.
type OptionalInt struct {
	Present bool
	Null    bool
	Invalid bool
	Value   int64
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, jsonNull) {
		o.Null = true
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		if v, err := strconv.ParseInt(num.String(), 10, 64); err == nil {
			o.Value = v
			return nil
		}
		o.Invalid = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			o.Value = v
			return nil
		}
	}
	o.Invalid = true
	return nil
}

// OptionalBool accepts JSON booleans plus the 1/0 and "1"/"0" forms that
// HTML form clients send for checkbox state.
type OptionalBool struct {
	Present bool
	Null    bool
	Invalid bool
	Value   bool
}

func (o *OptionalBool) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, jsonNull) {
		o.Null = true
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err == nil {
		return nil
	}
	switch strings.Trim(string(data), `"`) {
	case "1":
		o.Value = true
	case "0":
		o.Value = false
	default:
		o.Invalid = true
	}
	return nil
}

// OptionalDecimal accepts JSON numbers and numeric strings.
type OptionalDecimal struct {
	Present bool
	Null    bool
	Invalid bool
	Value   decimal.Decimal
}

func (o *OptionalDecimal) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, jsonNull) {
		o.Null = true
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		if v, err := decimal.NewFromString(num.String()); err == nil {
			o.Value = v
			return nil
		}
		o.Invalid = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := decimal.NewFromString(strings.TrimSpace(s)); err == nil {
			o.Value = v
			return nil
		}
	}
	o.Invalid = true
	return nil
}

// OptionalDate accepts "YYYY-MM-DD" strings.
type OptionalDate struct {
	Present bool
	Null    bool
	Invalid bool
	Value   time.Time
}

func (o *OptionalDate) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, jsonNull) {
		o.Null = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		o.Invalid = true
		return nil
	}
	v, err := time.Parse("2006-01-02", s)
	if err != nil {
		o.Invalid = true
		return nil
	}
	o.Value = v
	return nil
}

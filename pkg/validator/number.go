package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors returned by Number conversions.
var (
	ErrNotNumber = errors.New("not a number")
	ErrNotWhole  = errors.New("not a whole number")
)

// Number is a JSON value that accepts a number literal or a numeric string,
// so form posts sending "5" are treated like 5. It keeps the raw text and is
// checked with the jsonnumber, whole and nonnegative tags. null and missing
// values decode to the empty Number, which fails the required tag.
type Number string

// UnmarshalJSON never fails for well-formed JSON: values that are not numbers
// are kept verbatim and rejected later by validation with a field message.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*n = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(s))
	default:
		*n = Number(b)
	}
	return nil
}

// IntNumber formats i as a Number.
func IntNumber(i int64) Number {
	return Number(strconv.FormatInt(i, 10))
}

// Float64 parses the number. NaN and infinities are rejected.
func (n Number) Float64() (float64, error) {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotNumber
	}
	return f, nil
}

// Int64 parses the number as a whole number. "5" and "5.0" are accepted,
// "5.5" returns ErrNotWhole.
func (n Number) Int64() (int64, error) {
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, ErrNotWhole
	}
	return int64(f), nil
}

func isNumber(fl validator.FieldLevel) bool {
	_, err := Number(fl.Field().String()).Float64()
	return err == nil
}

func isWhole(fl validator.FieldLevel) bool {
	_, err := Number(fl.Field().String()).Int64()
	return err == nil
}

func isNonNegative(fl validator.FieldLevel) bool {
	f, err := Number(fl.Field().String()).Float64()
	return err == nil && f >= 0
}

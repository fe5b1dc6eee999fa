package api

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// timeLayouts are the timestamp encodings the backend is known to emit.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// decodeDecimal reads a monetary value. The backend emits plain JSON numbers;
// decimal parsing keeps them exact.
func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	switch d.Next() {
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromString(strings.Trim(n.String(), `"`))
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return decimal.Zero, err
		}
		return decimal.NewFromString(s)
	default:
		return decimal.Zero, errors.Wrap(ErrMalformedResponse, "expected numeric value")
	}
}

// decodeTime reads a timestamp string.
func decodeTime(d *jx.Decoder) (time.Time, error) {
	s, err := d.Str()
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range timeLayouts {
		if t, perr := time.Parse(layout, s); perr == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrMalformedResponse, "unsupported timestamp %q", s)
}

// decodeBool reads a boolean. The backend stores flags as 0/1, so both JSON
// booleans and numbers are part of the contract.
func decodeBool(d *jx.Decoder) (bool, error) {
	switch d.Next() {
	case jx.Bool:
		return d.Bool()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return false, err
		}
		v, err := n.Int64()
		if err != nil {
			return false, err
		}
		return v != 0, nil
	case jx.Null:
		return false, d.Null()
	default:
		return false, errors.Wrap(ErrMalformedResponse, "expected boolean value")
	}
}

// optStr reads a string field that may be null.
func optStr(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}
	return d.Str()
}

// encodeNum writes a decimal as a plain JSON number.
func encodeNum(e *jx.Encoder, v decimal.Decimal) {
	e.Num(jx.Num(v.String()))
}

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IDKind tags the shape an optional identifier arrived in.
type IDKind int

// Possible identifier shapes.
const (
	IDAbsent IDKind = iota
	IDNumeric
	IDInvalid
)

// String returns a readable name for logs.
func (k IDKind) String() string {
	switch k {
	case IDAbsent:
		return "absent"
	case IDNumeric:
		return "numeric"
	case IDInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("IDKind(%d)", int(k))
	}
}

// OptionalID is an identifier a client may or may not have supplied.
// Clients send numbers, numeric strings, empty strings or nothing at all;
// ParseOptionalID resolves all of those once at the boundary.
type OptionalID struct {
	kind  IDKind
	value int64
	raw   string
	cause error
}

// AbsentID returns an OptionalID carrying no identifier.
func AbsentID() OptionalID {
	return OptionalID{kind: IDAbsent}
}

// NumericID returns an OptionalID holding n.
func NumericID(n int64) OptionalID {
	return OptionalID{kind: IDNumeric, value: n, raw: strconv.FormatInt(n, 10)}
}

// ParseOptionalID classifies a raw JSON value.
//
//   - missing, null or a blank string: Absent
//   - a JSON number: Numeric, fractions truncated toward zero
//   - a string that strconv.ParseInt accepts: Numeric
//   - anything else: Invalid, with Cause describing why
func ParseOptionalID(raw json.RawMessage) OptionalID {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return AbsentID()
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return invalidID(string(trimmed), err)
		}
		if strings.TrimSpace(s) == "" {
			return AbsentID()
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return invalidID(s, err)
		}
		return OptionalID{kind: IDNumeric, value: n, raw: s}
	default:
		var num json.Number
		if err := json.Unmarshal(trimmed, &num); err != nil {
			return invalidID(string(trimmed), err)
		}
		if n, err := num.Int64(); err == nil {
			return OptionalID{kind: IDNumeric, value: n, raw: num.String()}
		}
		f, err := num.Float64()
		if err != nil || math.IsNaN(f) || f > math.MaxInt64 || f < math.MinInt64 {
			return invalidID(num.String(), fmt.Errorf("%w: %s out of range", ErrInvalidID, num))
		}
		return OptionalID{kind: IDNumeric, value: int64(f), raw: num.String()}
	}
}

func invalidID(raw string, cause error) OptionalID {
	return OptionalID{kind: IDInvalid, raw: raw, cause: cause}
}

// Kind reports the shape the identifier arrived in.
func (o OptionalID) Kind() IDKind {
	return o.kind
}

// Raw returns the identifier as the client sent it, for logging.
func (o OptionalID) Raw() string {
	return o.raw
}

// Cause returns the parse failure behind an Invalid identifier.
func (o OptionalID) Cause() error {
	return o.cause
}

// Resolve returns the identifier to update and true, or false when the
// write must insert. Invalid identifiers and values <= 0 fold into the
// insert branch.
func (o OptionalID) Resolve() (int64, bool) {
	if o.kind != IDNumeric || o.value <= 0 {
		return 0, false
	}
	return o.value, true
}

// UnmarshalJSON lets OptionalID be used directly as a request field.
// It never fails: malformed values become Invalid.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	*o = ParseOptionalID(data)
	return nil
}

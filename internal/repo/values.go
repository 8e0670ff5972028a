package repo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The drivers hand back numerics as strings, ids as strings or [16]byte and
// timestamps as time.Time; the helpers below accept every representation seen.

// AsDecimal converts any numeric representation a store returns to a decimal.
func AsDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case *decimal.Decimal:
		if t == nil {
			return decimal.Zero, fmt.Errorf("nil decimal")
		}
		return *t, nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int32:
		return decimal.NewFromInt32(t), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case float32:
		return decimal.NewFromFloat32(t), nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case json.Number:
		return decimal.NewFromString(t.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(t))
	case []byte:
		return decimal.NewFromString(strings.TrimSpace(string(t)))
	default:
		return decimal.Zero, fmt.Errorf("not numeric: %T", v)
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case decimal.Decimal, *decimal.Decimal, int, int32, int64, float32, float64, json.Number:
		return true
	}
	return false
}

func asInt(v any) (int, error) {
	d, err := AsDecimal(v)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("not an integer: %s", d)
	}
	return int(d.IntPart()), nil
}

func asString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case uuid.UUID:
		return t.String(), nil
	case [16]byte:
		return uuid.UUID(t).String(), nil
	default:
		return "", fmt.Errorf("not a string: %T", v)
	}
}

func asUUID(v any) (uuid.UUID, error) {
	switch t := v.(type) {
	case uuid.UUID:
		return t, nil
	case [16]byte:
		return uuid.UUID(t), nil
	}
	s, err := asString(v)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(s)
}

func asBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(t) {
		case "t", "true":
			return true, nil
		case "f", "false":
			return false, nil
		}
	}
	return false, fmt.Errorf("not a bool: %T", v)
}

func asTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		return time.Parse(time.RFC3339Nano, t)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(t))
	default:
		return time.Time{}, fmt.Errorf("not a timestamp: %T", v)
	}
}

// compareValues orders two field values. ok is false when they are not comparable.
func compareValues(a, b any) (cmp int, ok bool) {
	if a == nil || b == nil {
		return 0, false
	}
	if isNumber(a) || isNumber(b) {
		da, errA := AsDecimal(a)
		db, errB := AsDecimal(b)
		if errA != nil || errB != nil {
			return 0, false
		}
		return da.Cmp(db), true
	}
	if ta, isTime := a.(time.Time); isTime {
		tb, err := asTime(b)
		if err != nil {
			return 0, false
		}
		return ta.Compare(tb), true
	}
	if tb, isTime := b.(time.Time); isTime {
		ta, err := asTime(a)
		if err != nil {
			return 0, false
		}
		return ta.Compare(tb), true
	}
	if ba, isBool := a.(bool); isBool {
		bb, err := asBool(b)
		if err != nil {
			return 0, false
		}
		return boolCmp(ba, bb), true
	}
	if bb, isBool := b.(bool); isBool {
		ba, err := asBool(a)
		if err != nil {
			return 0, false
		}
		return boolCmp(ba, bb), true
	}
	sa, errA := asString(a)
	sb, errB := asString(b)
	if errA != nil || errB != nil {
		return 0, false
	}
	return strings.Compare(sa, sb), true
}

func boolCmp(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// Package cast is the built-in library of conversion and validation steps.
// Every function conforms to the construct step contract: it receives the
// live field value, returns the (possibly coerced) value on success, and
// returns failures as values. The engine is agnostic to which of these exist;
// user code can mix them freely with its own StepFuncs.
package cast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	construct "github.com/constructkit/construct"
	"github.com/constructkit/construct/i18n"
)

func fail(code string, data map[string]string) error {
	return construct.FieldError(i18n.T(code, data))
}

// String accepts string values and []byte, coercing the latter.
func String(ctx context.Context, v any) (any, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	}
	return nil, fail(construct.CodeInvalidType, map[string]string{"expected": "string"})
}

// NonBlank rejects strings that are empty or whitespace-only.
func NonBlank(ctx context.Context, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fail(construct.CodeInvalidType, map[string]string{"expected": "string"})
	}
	if strings.TrimSpace(s) == "" {
		return nil, fail(construct.CodeNotBlank, nil)
	}
	return s, nil
}

// Integer coerces integral input (ints, integral floats, json.Number, decimal
// strings) to int64. Idempotent on its own output.
func Integer(ctx context.Context, v any) (any, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return nil, fail(construct.CodeOverflow, nil)
		}
		return int64(n), nil
	case float64:
		return intFromFloat(n)
	case float32:
		return intFromFloat(float64(n))
	case json.Number:
		i, err := n.Int64()
		if err == nil {
			return i, nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return nil, fail(construct.CodeOverflow, nil)
		}
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err == nil {
			return i, nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return nil, fail(construct.CodeOverflow, nil)
		}
	}
	return nil, fail(construct.CodeInvalidType, map[string]string{"expected": "integer"})
}

// intFromFloat rejects fractional values and values outside the int64 range;
// int64(f) on an out-of-range float is implementation-defined.
func intFromFloat(f float64) (any, error) {
	if f != math.Trunc(f) {
		return nil, fail(construct.CodeInvalidType, map[string]string{"expected": "integer"})
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, fail(construct.CodeOverflow, nil)
	}
	return int64(f), nil
}

// Float coerces numeric input (ints, floats, json.Number, decimal strings) to
// float64.
func Float(ctx context.Context, v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, nil
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, nil
		}
	}
	return nil, fail(construct.CodeInvalidType, map[string]string{"expected": "number"})
}

// Bool coerces booleans and the literal strings "true"/"false".
func Bool(ctx context.Context, v any) (any, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return nil, fail(construct.CodeInvalidType, map[string]string{"expected": "boolean"})
}

// OneOf accepts only the listed values, compared with ==.
func OneOf(allowed ...any) construct.StepFunc {
	return func(ctx context.Context, v any) (any, error) {
		for _, a := range allowed {
			if v == a {
				return v, nil
			}
		}
		return nil, fail(construct.CodeInvalidEnum, nil)
	}
}

// MinLen enforces a minimum string length in bytes. Non-string values pass
// through unchanged; type errors are handled by the coercion steps.
func MinLen(n int) construct.StepFunc {
	return func(ctx context.Context, v any) (any, error) {
		if s, ok := v.(string); ok && len(s) < n {
			return nil, fail(construct.CodeTooShort, map[string]string{"min": strconv.Itoa(n)})
		}
		return v, nil
	}
}

// MaxLen enforces a maximum string length in bytes.
func MaxLen(n int) construct.StepFunc {
	return func(ctx context.Context, v any) (any, error) {
		if s, ok := v.(string); ok && len(s) > n {
			return nil, fail(construct.CodeTooLong, map[string]string{"max": strconv.Itoa(n)})
		}
		return v, nil
	}
}

// Min enforces an inclusive numeric lower bound. Non-numeric values pass
// through unchanged.
func Min(n float64) construct.StepFunc {
	return func(ctx context.Context, v any) (any, error) {
		if f, ok := asFloat(v); ok && f < n {
			return nil, fail(construct.CodeTooSmall, map[string]string{"min": formatBound(n)})
		}
		return v, nil
	}
}

// Max enforces an inclusive numeric upper bound.
func Max(n float64) construct.StepFunc {
	return func(ctx context.Context, v any) (any, error) {
		if f, ok := asFloat(v); ok && f > n {
			return nil, fail(construct.CodeTooBig, map[string]string{"max": formatBound(n)})
		}
		return v, nil
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func formatBound(n float64) string {
	if n == math.Trunc(n) {
		return strconv.FormatInt(int64(n), 10)
	}
	return fmt.Sprintf("%g", n)
}

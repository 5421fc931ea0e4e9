package cast

import (
	"context"
	"time"

	construct "github.com/constructkit/construct"
)

// TimeRFC3339 coerces RFC3339/RFC3339Nano strings to time.Time. A value that
// is already a time.Time passes through, keeping the step idempotent.
func TimeRFC3339(ctx context.Context, v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		if parsed, err := parseRFC3339(t); err == nil {
			return parsed, nil
		}
	}
	return nil, fail(construct.CodeInvalidType, map[string]string{"expected": "timestamp"})
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

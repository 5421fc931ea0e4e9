package cast

import (
	"context"

	"github.com/google/uuid"

	construct "github.com/constructkit/construct"
)

// UUID coerces canonical UUID strings (and 16-byte slices) to uuid.UUID.
func UUID(ctx context.Context, v any) (any, error) {
	switch u := v.(type) {
	case uuid.UUID:
		return u, nil
	case string:
		if parsed, err := uuid.Parse(u); err == nil {
			return parsed, nil
		}
	case []byte:
		if parsed, err := uuid.FromBytes(u); err == nil {
			return parsed, nil
		}
	}
	return nil, fail(construct.CodeInvalidType, map[string]string{"expected": "uuid"})
}

package construct

import (
	"bytes"
	"context"
	"fmt"

	json "github.com/goccy/go-json"
)

// MakeJSON decodes a JSON payload and constructs a single record from it.
// Numbers are decoded as json.Number so integer precision survives until a
// conversion step interprets them. A JSON null follows the usual nil-input
// semantics.
func (s *Schema) MakeJSON(ctx context.Context, data []byte, opts ...Option) (*Record, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("construct: decode json for %s: %w", s.name, err)
	}
	return s.Make(ctx, v, opts...)
}

// MakeSliceJSON decodes a JSON array payload and constructs one record per
// element.
func (s *Schema) MakeSliceJSON(ctx context.Context, data []byte, opts ...Option) ([]*Record, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("construct: decode json for %s: %w", s.name, err)
	}
	if v == nil {
		return nil, s.shapeErr(v)
	}
	return s.MakeSlice(ctx, v, opts...)
}

// MakeAnyJSON decodes a JSON payload and dispatches on its shape like
// MakeAny.
func (s *Schema) MakeAnyJSON(ctx context.Context, data []byte, opts ...Option) (any, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("construct: decode json for %s: %w", s.name, err)
	}
	return s.MakeAny(ctx, v, opts...)
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

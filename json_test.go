package construct_test

import (
	"context"
	"testing"

	construct "github.com/constructkit/construct"
)

func TestMakeJSON_DecodesAndConstructs(t *testing.T) {
	ctx := context.Background()
	s := personSchema(t)

	rec, err := s.MakeJSON(ctx, []byte(`{"name":"Alice","age":30}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// numbers arrive as json.Number and coerce without precision loss
	if got := rec.Value("age"); got != int64(30) {
		t.Fatalf("age = %v (%T)", got, got)
	}
}

func TestMakeJSON_NullFollowsNilSemantics(t *testing.T) {
	ctx := context.Background()
	s := personSchema(t)

	rec, err := s.MakeJSON(ctx, []byte(`null`), construct.WithNilToEmpty(false))
	if err != nil || rec != nil {
		t.Fatalf("got (%v, %v)", rec, err)
	}

	_, err = s.MakeJSON(ctx, []byte(`null`))
	if _, ok := construct.AsReport(err); !ok {
		t.Fatalf("expected required-field report, got %v", err)
	}
}

func TestMakeJSON_InvalidPayload(t *testing.T) {
	ctx := context.Background()
	s := personSchema(t)

	if _, err := s.MakeJSON(ctx, []byte(`{"name":`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestMakeSliceJSON(t *testing.T) {
	ctx := context.Background()
	s := personSchema(t)

	recs, err := s.MakeSliceJSON(ctx, []byte(`[{"name":"a"},{"name":"b"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %v", recs)
	}

	recs, err = s.MakeSliceJSON(ctx, []byte(`[]`))
	if err != nil || len(recs) != 0 {
		t.Fatalf("empty array: (%v, %v)", recs, err)
	}
}

func TestMakeAnyJSON_Dispatch(t *testing.T) {
	ctx := context.Background()
	s := personSchema(t)

	v, err := s.MakeAnyJSON(ctx, []byte(`[{"name":"a"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.([]*construct.Record); !ok {
		t.Fatalf("array payload returned %T", v)
	}

	v, err = s.MakeAnyJSON(ctx, []byte(`{"name":"a"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := v.(*construct.Record); !ok {
		t.Fatalf("object payload returned %T", v)
	}
}

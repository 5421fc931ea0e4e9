package construct_test

import (
	"testing"

	construct "github.com/constructkit/construct"
)

func TestBuilder_RejectsDuplicateFields(t *testing.T) {
	_, err := construct.Define("Dup").
		Field("a").
		Field("a").
		Build()
	if err == nil {
		t.Fatalf("expected duplicate-field error")
	}
}

func TestBuilder_RejectsAnonymousSchema(t *testing.T) {
	if _, err := construct.Define("").Field("a").Build(); err == nil {
		t.Fatalf("expected empty-name error")
	}
}

func TestSchema_PreservesDeclarationOrder(t *testing.T) {
	s := construct.Define("Ordered").
		Field("z").
		Field("a").Required().
		Field("m").Default(5).
		MustBuild()

	fields := s.Fields()
	if len(fields) != 3 || fields[0].Name != "z" || fields[1].Name != "a" || fields[2].Name != "m" {
		t.Fatalf("fields = %v", fields)
	}
	if !fields[1].Required {
		t.Fatalf("a should be required")
	}
	if !fields[2].HasDefault || fields[2].Default != 5 {
		t.Fatalf("m default = %+v", fields[2])
	}

	fd, ok := s.Field("a")
	if !ok || fd.Name != "a" {
		t.Fatalf("lookup = (%v, %v)", fd, ok)
	}
	if _, ok := s.Field("missing"); ok {
		t.Fatalf("lookup of unknown field succeeded")
	}
}

func TestNewSchema_Direct(t *testing.T) {
	s, err := construct.NewSchema("Plain", []construct.FieldDescriptor{
		{Name: "x", Required: true},
		{Name: "y", Default: 1, HasDefault: true},
	}, construct.WithCheckKeys(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 || !s.Options().CheckKeys {
		t.Fatalf("schema = %v opts = %+v", s, s.Options())
	}
}

func TestMustBuild_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	construct.Define("").MustBuild()
}

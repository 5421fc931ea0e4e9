package schemayaml_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	construct "github.com/constructkit/construct"
	"github.com/constructkit/construct/schemayaml"
)

const personYAML = `
schema: Person
options:
  check_keys: false
fields:
  - name: name
    required: true
    cast: [string, non_blank]
  - name: age
    default: 0
    cast: [integer, {min: 0}]
  - name: role
    default: member
    cast: [{one_of: [member, admin]}]
`

func TestImport_BuildsWorkingSchema(t *testing.T) {
	s, err := schemayaml.Import([]byte(personYAML), nil)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Person", s.Name())
	assert.Equal(t, 3, s.Len())

	rec, err := s.Make(context.Background(), map[string]any{"name": "Ann", "age": "30"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", rec.Value("name"))
	assert.Equal(t, int64(30), rec.Value("age"))
	assert.Equal(t, "member", rec.Value("role"))
}

func TestImport_StepsEnforceBoundsAndEnums(t *testing.T) {
	s, err := schemayaml.Import([]byte(personYAML), nil)
	require.NoError(t, err)

	_, err = s.Make(context.Background(), map[string]any{
		"name": "  ",
		"age":  -1,
		"role": "owner",
	})
	require.Error(t, err)
	rep, ok := construct.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, "must not be blank", rep.Field("name").Error())
	assert.Equal(t, "must be at least 0", rep.Field("age").Error())
	assert.Equal(t, "is not a valid option", rep.Field("role").Error())
}

func TestImportBundle_ResolvesNestedReferences(t *testing.T) {
	const bundle = `
schema: Team
fields:
  - name: title
    required: true
    cast: [string]
  - name: lead
    schema: Person
---
schema: Person
fields:
  - name: name
    required: true
    cast: [string, non_blank]
`
	schemas, err := schemayaml.ImportBundle([]byte(bundle), nil)
	require.NoError(t, err)
	require.Len(t, schemas, 2)

	team := schemas["Team"]
	require.NotNil(t, team)
	rec, err := team.Make(context.Background(), map[string]any{
		"title": "Platform",
		"lead":  map[string]any{"name": "Kei"},
	})
	require.NoError(t, err)
	leadRec, ok := rec.Value("lead").(*construct.Record)
	require.True(t, ok)
	assert.Equal(t, "Kei", leadRec.Value("name"))
}

func TestImportNamed(t *testing.T) {
	const bundle = `
schema: A
fields:
  - name: x
    cast: [integer]
---
schema: B
fields:
  - name: y
    cast: [integer]
`
	s, err := schemayaml.ImportNamed([]byte(bundle), "B", nil)
	require.NoError(t, err)
	assert.Equal(t, "B", s.Name())

	_, err = schemayaml.ImportNamed([]byte(bundle), "C", nil)
	require.Error(t, err)
}

func TestImport_UnresolvedReference(t *testing.T) {
	const doc = `
schema: Team
fields:
  - name: lead
    schema: Nowhere
`
	_, err := schemayaml.Import([]byte(doc), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unresolved schema reference")
}

func TestImport_RegistrySchemaReference(t *testing.T) {
	person := construct.Define("Person").
		Field("name").Required().
		MustBuild()
	reg := schemayaml.NewRegistry()
	reg.RegisterSchema(person)

	const doc = `
schema: Team
fields:
  - name: lead
    schema: Person
`
	s, err := schemayaml.Import([]byte(doc), reg)
	require.NoError(t, err)

	rec, err := s.Make(context.Background(), map[string]any{
		"lead": map[string]any{"name": "Ray"},
	})
	require.NoError(t, err)
	leadRec, ok := rec.Value("lead").(*construct.Record)
	require.True(t, ok)
	assert.Equal(t, "Ray", leadRec.Value("name"))
}

func TestImport_CustomStepAndFactory(t *testing.T) {
	reg := schemayaml.NewRegistry()
	reg.RegisterStep("double", func(ctx context.Context, v any) (any, error) {
		return v.(int64) * 2, nil
	})

	const doc = `
schema: Pair
fields:
  - name: n
    cast: [integer, double]
`
	s, err := schemayaml.Import([]byte(doc), reg)
	require.NoError(t, err)

	rec, err := s.Make(context.Background(), map[string]any{"n": 21})
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.Value("n"))
}

func TestImport_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"unknown cast", "schema: S\nfields:\n  - name: x\n    cast: [frobnicate]\n"},
		{"missing schema name", "fields:\n  - name: x\n"},
		{"field without name", "schema: S\nfields:\n  - cast: [string]\n"},
		{"cast and schema mixed", "schema: S\nfields:\n  - name: x\n    schema: S\n    cast: [string]\n"},
		{"bad factory arg", "schema: S\nfields:\n  - name: x\n    cast: [{min_len: notanint}]\n"},
		{"empty stream", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schemayaml.Import([]byte(tc.doc), nil)
			require.Error(t, err)
		})
	}
}

func TestImport_OptionsApply(t *testing.T) {
	const doc = `
schema: Strict
options:
  check_keys: true
fields:
  - name: a
    cast: [string]
`
	s, err := schemayaml.Import([]byte(doc), nil)
	require.NoError(t, err)

	_, err = s.Make(context.Background(), map[string]any{"a": "x", "zz": 1})
	require.Error(t, err)
	var keyErr *construct.KeyError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, "zz", keyErr.Key)
}

package construct

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// Pair is one ordered key/value element of an ordered-pairs input. Duplicate
// keys fold last-write-wins.
type Pair struct {
	Key   string
	Value any
}

type normKind uint8

const (
	normFields normKind = iota // canonical field mapping, continue the pipeline
	normNull                   // nil input under NilToEmpty=false
	normEmptyList
	normList
)

// normalized is the canonical form the normalizer hands the rest of the
// pipeline.
type normalized struct {
	kind     normKind
	fields   map[string]any
	presence PresenceMap
	list     []any
}

// normalize classifies and reshapes heterogeneous input into a canonical
// field mapping (or a null/list disposition). Unknown keys are dropped unless
// CheckKeys upgrades them to a hard KeyError.
func (s *Schema) normalize(input any, o Options) (normalized, error) {
	switch in := input.(type) {
	case nil:
		if !o.NilToEmpty {
			return normalized{kind: normNull}, nil
		}
		return s.canonicalize(map[string]any{}, o)
	case []Pair:
		// empty lists take the list disposition before pair folding applies
		if len(in) == 0 {
			return normalized{kind: normEmptyList}, nil
		}
		m := make(map[string]any, len(in))
		for _, p := range in {
			m[p.Key] = p.Value
		}
		return s.canonicalize(m, o)
	case map[string]any:
		return s.canonicalize(in, o)
	case *Record:
		if in == nil {
			if !o.NilToEmpty {
				return normalized{kind: normNull}, nil
			}
			return s.canonicalize(map[string]any{}, o)
		}
		return s.canonicalize(in.Fields(), o)
	case []byte, string:
		// Raw payloads are decoded by MakeJSON, never guessed at here.
		return normalized{}, s.shapeErr(input)
	}

	rv := reflect.ValueOf(input)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return normalized{kind: normEmptyList}, nil
		}
		list := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			list[i] = rv.Index(i).Interface()
		}
		return normalized{kind: normList, list: list}, nil
	case reflect.Map:
		m, ok := stringKeyedMap(rv)
		if !ok {
			return normalized{}, s.shapeErr(input)
		}
		return s.canonicalize(m, o)
	case reflect.Pointer:
		if rv.IsNil() {
			if !o.NilToEmpty {
				return normalized{kind: normNull}, nil
			}
			return s.canonicalize(map[string]any{}, o)
		}
		if rv.Elem().Kind() == reflect.Struct {
			return s.canonicalizeStruct(input, o)
		}
	case reflect.Struct:
		return s.canonicalizeStruct(input, o)
	}
	return normalized{}, s.shapeErr(input)
}

// canonicalize maps input keys through the schema's precomputed name lookup,
// recording presence flags as it goes.
func (s *Schema) canonicalize(m map[string]any, o Options) (normalized, error) {
	fields := make(map[string]any, len(m))
	pm := make(PresenceMap, len(m))
	var unknown []string
	for k, v := range m {
		if _, ok := s.byName[k]; !ok {
			unknown = append(unknown, k)
			continue
		}
		fields[k] = v
		pm[k] = PresenceSeen
		if v == nil {
			pm[k] |= PresenceWasNull
		}
	}
	if o.CheckKeys && len(unknown) > 0 {
		// smallest key for a deterministic failure
		sort.Strings(unknown)
		return normalized{}, &KeyError{Schema: s.name, Key: unknown[0]}
	}
	return normalized{kind: normFields, fields: fields, presence: pm}, nil
}

// canonicalizeStruct extracts a struct's fields into a mapping and continues
// from the mapping path, so structurally related types convert naturally.
func (s *Schema) canonicalizeStruct(input any, o Options) (normalized, error) {
	var m map[string]any
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "construct",
		Result:  &m,
	})
	if err != nil {
		return normalized{}, s.shapeErr(input)
	}
	if err := dec.Decode(input); err != nil {
		return normalized{}, s.shapeErr(input)
	}
	return s.canonicalize(m, o)
}

func (s *Schema) shapeErr(input any) error {
	return &ShapeError{Schema: s.name, Type: fmt.Sprintf("%T", input)}
}

// stringKeyedMap converts map values whose keys are strings (directly or
// through an interface) into a plain map[string]any.
func stringKeyedMap(rv reflect.Value) (map[string]any, bool) {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		if k.Kind() == reflect.Interface {
			k = k.Elem()
		}
		if k.Kind() != reflect.String {
			return nil, false
		}
		out[k.String()] = iter.Value().Interface()
	}
	return out, true
}

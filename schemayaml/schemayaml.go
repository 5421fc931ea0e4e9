// Package schemayaml builds construct schemas from YAML definitions. It is a
// schema provider in the construct sense: evaluated once at initialization,
// it hands the engine frozen Schema values and is never consulted again.
//
// A definition document looks like:
//
//	schema: Person
//	options:
//	  nil_to_empty: true
//	  check_keys: false
//	fields:
//	  - name: name
//	    required: true
//	    cast: [string, non_blank]
//	  - name: age
//	    default: 0
//	    cast: [integer]
//	  - name: lead
//	    schema: Person
//
// Multi-document streams define bundles; a field's `schema` key references
// another document (or a registry-registered schema) by name. Schema graphs
// are assumed acyclic.
package schemayaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	construct "github.com/constructkit/construct"
)

type definition struct {
	Schema  string     `yaml:"schema"`
	Options optionsDef `yaml:"options"`
	Fields  []fieldDef `yaml:"fields"`
}

type optionsDef struct {
	NilToEmpty *bool `yaml:"nil_to_empty"`
	CheckKeys  *bool `yaml:"check_keys"`
}

type fieldDef struct {
	Name     string     `yaml:"name"`
	Required bool       `yaml:"required"`
	Default  yaml.Node  `yaml:"default"`
	Cast     []castDef  `yaml:"cast"`
	Schema   string     `yaml:"schema"`
}

// castDef is either a bare step name or a single-key mapping of step name to
// its bound arguments.
type castDef struct {
	Name string
	Args []any
}

func (c *castDef) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Decode(&c.Name)
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return fmt.Errorf("schemayaml: cast entry must have exactly one key")
		}
		if err := n.Content[0].Decode(&c.Name); err != nil {
			return err
		}
		arg := n.Content[1]
		if arg.Kind == yaml.SequenceNode {
			return arg.Decode(&c.Args)
		}
		var single any
		if err := arg.Decode(&single); err != nil {
			return err
		}
		c.Args = []any{single}
		return nil
	}
	return fmt.Errorf("schemayaml: cast entry must be a name or a name-to-args mapping")
}

// Import builds the schema in the first document of data.
func Import(data []byte, reg *Registry) (*construct.Schema, error) {
	defs, err := decodeAll(data)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, errors.New("schemayaml: no schema definition found")
	}
	schemas, err := buildAll(defs, reg)
	if err != nil {
		return nil, err
	}
	return schemas[defs[0].Schema], nil
}

// ImportBundle builds every schema in a multi-document stream, resolving
// nested references between documents.
func ImportBundle(data []byte, reg *Registry) (map[string]*construct.Schema, error) {
	defs, err := decodeAll(data)
	if err != nil {
		return nil, err
	}
	return buildAll(defs, reg)
}

// ImportNamed scans a multi-document stream and returns the schema with the
// given name, building whatever it references along the way.
func ImportNamed(data []byte, name string, reg *Registry) (*construct.Schema, error) {
	schemas, err := ImportBundle(data, reg)
	if err != nil {
		return nil, err
	}
	s, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("schemayaml: schema %q not found in bundle", name)
	}
	return s, nil
}

func decodeAll(data []byte) ([]definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var defs []definition
	for {
		var d definition
		if err := dec.Decode(&d); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if d.Schema == "" {
			return nil, errors.New("schemayaml: document is missing the schema name")
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// buildAll resolves definitions in passes: a schema builds once every nested
// reference it names is available. Unresolvable names after a full pass with
// no progress indicate a missing or cyclic reference.
func buildAll(defs []definition, reg *Registry) (map[string]*construct.Schema, error) {
	if reg == nil {
		reg = NewRegistry()
	}
	built := make(map[string]*construct.Schema, len(defs))
	pending := make([]definition, len(defs))
	copy(pending, defs)

	lookup := func(name string) (*construct.Schema, bool) {
		if s, ok := built[name]; ok {
			return s, true
		}
		return reg.schema(name)
	}

	for len(pending) > 0 {
		progress := false
		var next []definition
		for _, d := range pending {
			if ready(d, lookup) {
				s, err := build(d, reg, lookup)
				if err != nil {
					return nil, err
				}
				built[d.Schema] = s
				progress = true
				continue
			}
			next = append(next, d)
		}
		if !progress {
			return nil, fmt.Errorf("schemayaml: unresolved schema reference in %q", next[0].Schema)
		}
		pending = next
	}
	return built, nil
}

func ready(d definition, lookup func(string) (*construct.Schema, bool)) bool {
	for _, f := range d.Fields {
		if f.Schema == "" {
			continue
		}
		if _, ok := lookup(f.Schema); !ok {
			return false
		}
	}
	return true
}

func build(d definition, reg *Registry, lookup func(string) (*construct.Schema, bool)) (*construct.Schema, error) {
	fields := make([]construct.FieldDescriptor, 0, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schemayaml: schema %q has a field with no name", d.Schema)
		}
		if f.Schema != "" && len(f.Cast) > 0 {
			return nil, fmt.Errorf("schemayaml: field %q mixes cast and schema", f.Name)
		}
		fd := construct.FieldDescriptor{Name: f.Name, Required: f.Required}
		if !f.Default.IsZero() {
			var v any
			if err := f.Default.Decode(&v); err != nil {
				return nil, fmt.Errorf("schemayaml: field %q default: %w", f.Name, err)
			}
			fd.Default = v
			fd.HasDefault = true
		}
		switch {
		case f.Schema != "":
			nested, _ := lookup(f.Schema)
			fd.Chain = construct.Nested(nested)
		case len(f.Cast) > 0:
			steps := make([]construct.Step, 0, len(f.Cast))
			for _, c := range f.Cast {
				st, err := reg.resolve(c)
				if err != nil {
					return nil, fmt.Errorf("schemayaml: schema %q field %q: %w", d.Schema, f.Name, err)
				}
				steps = append(steps, st)
			}
			fd.Chain = construct.Chain(steps...)
		}
		fields = append(fields, fd)
	}

	var opts []construct.Option
	if d.Options.NilToEmpty != nil {
		opts = append(opts, construct.WithNilToEmpty(*d.Options.NilToEmpty))
	}
	if d.Options.CheckKeys != nil {
		opts = append(opts, construct.WithCheckKeys(*d.Options.CheckKeys))
	}
	return construct.NewSchema(d.Schema, fields, opts...)
}

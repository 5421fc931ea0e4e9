package construct

import "fmt"

// FieldDescriptor describes one field of a Schema: its canonical name, an
// optional default, the required flag, and the conversion chain run against
// its value. Descriptors are immutable once the owning Schema is built.
type FieldDescriptor struct {
	Name       string
	Default    any
	HasDefault bool
	Required   bool
	Chain      Step
}

// Schema is an ordered, immutable set of field descriptors for one record
// type, plus the schema-level option defaults and lifecycle hooks. Build a
// Schema once at process start; reads are safe from any number of goroutines
// and no construction call mutates it.
type Schema struct {
	name   string
	fields []FieldDescriptor
	byName map[string]int // canonical field name -> index into fields
	opts   Options
	before BeforeFunc
	after  AfterFunc
}

// NewSchema builds a Schema directly from descriptors. Field declaration
// order is preserved. Hook-carrying schemas are built with Define.
func NewSchema(name string, fields []FieldDescriptor, opts ...Option) (*Schema, error) {
	return newSchema(name, fields, nil, nil, opts)
}

func newSchema(name string, fields []FieldDescriptor, before BeforeFunc, after AfterFunc, opts []Option) (*Schema, error) {
	if name == "" {
		return nil, fmt.Errorf("construct: schema name must not be empty")
	}
	byName := make(map[string]int, len(fields))
	own := make([]FieldDescriptor, len(fields))
	copy(own, fields)
	for i, fd := range own {
		if fd.Name == "" {
			return nil, fmt.Errorf("construct: schema %q: field %d has no name", name, i)
		}
		if _, dup := byName[fd.Name]; dup {
			return nil, fmt.Errorf("construct: schema %q: duplicate field %q", name, fd.Name)
		}
		byName[fd.Name] = i
	}
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return &Schema{
		name:   name,
		fields: own,
		byName: byName,
		opts:   o,
		before: before,
		after:  after,
	}, nil
}

// Name returns the record type name the schema was registered under.
func (s *Schema) Name() string { return s.name }

// Fields returns a copy of the descriptors in declaration order.
func (s *Schema) Fields() []FieldDescriptor {
	out := make([]FieldDescriptor, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks a descriptor up by its canonical name.
func (s *Schema) Field(name string) (FieldDescriptor, bool) {
	i, ok := s.byName[name]
	if !ok {
		return FieldDescriptor{}, false
	}
	return s.fields[i], true
}

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }

// Options returns the schema-level option defaults.
func (s *Schema) Options() Options { return s.opts }

package construct

// Builder accumulates field descriptors, options, and hooks for one record
// type. It is the explicit, statically evaluated stand-in for a declarative
// schema DSL: call Define at initialization, register fields in order, then
// Build once.
type Builder struct {
	name   string
	fields []FieldDescriptor
	opts   []Option
	before BeforeFunc
	after  AfterFunc
}

// FieldStep scopes builder calls to the most recently added field.
type FieldStep struct {
	b *Builder
	i int
}

// Define starts a builder for the named record type.
func Define(name string) *Builder {
	return &Builder{name: name}
}

// Field appends a field whose chain is the given steps evaluated in order.
// No steps means the field passes its normalized value through unchanged.
func (b *Builder) Field(name string, steps ...Step) *FieldStep {
	fd := FieldDescriptor{Name: name}
	switch len(steps) {
	case 0:
	case 1:
		fd.Chain = steps[0]
	default:
		fd.Chain = Chain(steps...)
	}
	b.fields = append(b.fields, fd)
	return &FieldStep{b: b, i: len(b.fields) - 1}
}

// Required marks the field as required and returns the builder.
func (f *FieldStep) Required() *Builder {
	f.b.fields[f.i].Required = true
	return f.b
}

// Optional marks the field as optional (the default) and returns the builder.
func (f *FieldStep) Optional() *Builder {
	f.b.fields[f.i].Required = false
	return f.b
}

// Default sets the value applied when the field is absent from the input.
func (f *FieldStep) Default(v any) *Builder {
	f.b.fields[f.i].Default = v
	f.b.fields[f.i].HasDefault = true
	return f.b
}

// Field lets field declarations chain without returning to the builder.
func (f *FieldStep) Field(name string, steps ...Step) *FieldStep {
	return f.b.Field(name, steps...)
}

func (f *FieldStep) Options(opts ...Option) *Builder        { return f.b.Options(opts...) }
func (f *FieldStep) BeforeConstruct(fn BeforeFunc) *Builder { return f.b.BeforeConstruct(fn) }
func (f *FieldStep) AfterConstruct(fn AfterFunc) *Builder   { return f.b.AfterConstruct(fn) }
func (f *FieldStep) Build() (*Schema, error)                { return f.b.Build() }
func (f *FieldStep) MustBuild() *Schema                     { return f.b.MustBuild() }

// Options records schema-level option defaults, layered over DefaultOptions.
func (b *Builder) Options(opts ...Option) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// BeforeConstruct installs the before-construct hook for this record type.
func (b *Builder) BeforeConstruct(fn BeforeFunc) *Builder {
	b.before = fn
	return b
}

// AfterConstruct installs the after-construct hook for this record type.
func (b *Builder) AfterConstruct(fn AfterFunc) *Builder {
	b.after = fn
	return b
}

// Build freezes the accumulated definition into an immutable Schema.
func (b *Builder) Build() (*Schema, error) {
	return newSchema(b.name, b.fields, b.before, b.after, b.opts)
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

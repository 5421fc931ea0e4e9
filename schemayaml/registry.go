package schemayaml

import (
	"fmt"

	construct "github.com/constructkit/construct"
	"github.com/constructkit/construct/cast"
)

// StepFactory builds a parameterized step from the arguments declared in the
// YAML definition.
type StepFactory func(args []any) (construct.StepFunc, error)

// Registry maps step names appearing in YAML definitions to step functions
// and factories. NewRegistry preloads the cast built-ins; callers register
// their own names on top. Registries are written during initialization only.
type Registry struct {
	steps     map[string]construct.StepFunc
	factories map[string]StepFactory
	schemas   map[string]*construct.Schema
}

// NewRegistry returns a registry with the cast built-ins registered.
func NewRegistry() *Registry {
	r := &Registry{
		steps:     map[string]construct.StepFunc{},
		factories: map[string]StepFactory{},
		schemas:   map[string]*construct.Schema{},
	}
	r.RegisterStep("string", cast.String)
	r.RegisterStep("non_blank", cast.NonBlank)
	r.RegisterStep("integer", cast.Integer)
	r.RegisterStep("float", cast.Float)
	r.RegisterStep("bool", cast.Bool)
	r.RegisterStep("rfc3339", cast.TimeRFC3339)
	r.RegisterStep("uuid", cast.UUID)
	r.RegisterFactory("min_len", func(args []any) (construct.StepFunc, error) {
		n, err := intArg("min_len", args)
		if err != nil {
			return nil, err
		}
		return cast.MinLen(n), nil
	})
	r.RegisterFactory("max_len", func(args []any) (construct.StepFunc, error) {
		n, err := intArg("max_len", args)
		if err != nil {
			return nil, err
		}
		return cast.MaxLen(n), nil
	})
	r.RegisterFactory("min", func(args []any) (construct.StepFunc, error) {
		n, err := floatArg("min", args)
		if err != nil {
			return nil, err
		}
		return cast.Min(n), nil
	})
	r.RegisterFactory("max", func(args []any) (construct.StepFunc, error) {
		n, err := floatArg("max", args)
		if err != nil {
			return nil, err
		}
		return cast.Max(n), nil
	})
	r.RegisterFactory("one_of", func(args []any) (construct.StepFunc, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("one_of needs at least one value")
		}
		return cast.OneOf(args...), nil
	})
	return r
}

// RegisterStep binds a name to an argument-less step function.
func (r *Registry) RegisterStep(name string, fn construct.StepFunc) {
	r.steps[name] = fn
}

// RegisterFactory binds a name to a parameterized step factory.
func (r *Registry) RegisterFactory(name string, f StepFactory) {
	r.factories[name] = f
}

// RegisterSchema makes an already-built schema referenceable by name from
// YAML definitions, so bundles can nest records defined in code.
func (r *Registry) RegisterSchema(s *construct.Schema) {
	r.schemas[s.Name()] = s
}

func (r *Registry) schema(name string) (*construct.Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

func (r *Registry) resolve(c castDef) (construct.Step, error) {
	if len(c.Args) == 0 {
		if fn, ok := r.steps[c.Name]; ok {
			return construct.Direct(fn), nil
		}
	}
	if f, ok := r.factories[c.Name]; ok {
		fn, err := f(c.Args)
		if err != nil {
			return construct.Step{}, err
		}
		return construct.Direct(fn), nil
	}
	return construct.Step{}, fmt.Errorf("unknown cast %q", c.Name)
}

func intArg(name string, args []any) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s takes exactly one argument", name)
	}
	switch n := args[0].(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	}
	return 0, fmt.Errorf("%s argument must be an integer", name)
}

func floatArg(name string, args []any) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s takes exactly one argument", name)
	}
	switch n := args[0].(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	}
	return 0, fmt.Errorf("%s argument must be numeric", name)
}

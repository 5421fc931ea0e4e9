package construct

import "context"

// StepFunc transforms one field value, returning the new value or a failure.
// Failures must be returned as values (FieldError or ErrorReport); a StepFunc
// that panics is a defect outside the step contract and the panic propagates
// to the Make caller unrecovered.
type StepFunc func(ctx context.Context, v any) (any, error)

// BoundFunc is a StepFunc with schema-declared extra arguments. The live field
// value is always the first argument; args carry the constants bound at schema
// build time.
type BoundFunc func(ctx context.Context, v any, args ...any) (any, error)

type stepKind uint8

const (
	stepDirect stepKind = iota
	stepBound
	stepChain
)

// Step is one element of a field's conversion chain: a direct function, a
// function with bound arguments, or a sub-chain evaluated left to right that
// stops at its first failure. The zero Step passes values through unchanged.
type Step struct {
	kind  stepKind
	fn    StepFunc
	bound BoundFunc
	args  []any
	chain []Step
}

// Direct wraps a plain step function.
func Direct(fn StepFunc) Step { return Step{kind: stepDirect, fn: fn} }

// Bound wraps a step function together with extra arguments declared by the
// schema. Run invokes fn(ctx, value, args...).
func Bound(fn BoundFunc, args ...any) Step {
	return Step{kind: stepBound, bound: fn, args: args}
}

// Chain folds steps left to right, feeding each step's output into the next
// and short-circuiting at the first failure.
func Chain(steps ...Step) Step { return Step{kind: stepChain, chain: steps} }

// Nested returns a step that delegates to another schema's Make, so a field
// can itself be a record. A failing nested construction surfaces its own
// ErrorReport verbatim, preserving structure up the call stack.
func Nested(s *Schema, opts ...Option) Step {
	return Direct(func(ctx context.Context, v any) (any, error) {
		rec, err := s.Make(ctx, v, opts...)
		if err != nil {
			return nil, err
		}
		return rec, nil
	})
}

// Run executes the step against v.
func (s Step) Run(ctx context.Context, v any) (any, error) {
	switch s.kind {
	case stepBound:
		return s.bound(ctx, v, s.args...)
	case stepChain:
		cur := v
		for _, st := range s.chain {
			next, err := st.Run(ctx, cur)
			if err != nil {
				return nil, err
			}
			cur = next
		}
		return cur, nil
	default:
		if s.fn == nil {
			return v, nil
		}
		return s.fn(ctx, v)
	}
}

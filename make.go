package construct

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/constructkit/construct/i18n"
)

// Make constructs a single record from input. It accepts nil, a mapping,
// ordered pairs, a struct, or another record; list input is a shape misuse
// here and belongs to MakeSlice or MakeAny. Field errors are collected across
// every field before returning: the error is an ErrorReport keyed by exactly
// the failing fields, never the first one found. Under NilToEmpty=false a nil
// input short-circuits to (nil, nil).
func (s *Schema) Make(ctx context.Context, input any, opts ...Option) (*Record, error) {
	o := s.resolveOptions(opts)
	n, err := s.normalize(input, o)
	if err != nil {
		return nil, err
	}
	switch n.kind {
	case normNull:
		return nil, nil
	case normEmptyList, normList:
		return nil, s.shapeErr(input)
	}
	return s.makeOne(ctx, n, o)
}

// MakeSlice constructs one record per element of a list input. Every element
// is evaluated even after an earlier one fails; the result is all records or
// an ErrorReport keyed by the decimal index of each failing element. A
// partially successful list is never returned. An empty list yields an empty
// slice. With WithParallelism(n > 1) elements are constructed concurrently;
// index correspondence and the report stay deterministic.
func (s *Schema) MakeSlice(ctx context.Context, input any, opts ...Option) ([]*Record, error) {
	o := s.resolveOptions(opts)
	n, err := s.normalize(input, o)
	if err != nil {
		return nil, err
	}
	switch n.kind {
	case normEmptyList:
		return []*Record{}, nil
	case normList:
		return s.makeList(ctx, n.list, o)
	}
	return nil, s.shapeErr(input)
}

// MakeAny is the shape-dispatching entry point: it returns (*Record, error)
// for mapping-like input, (nil, nil) for nil input under NilToEmpty=false,
// and ([]*Record, error) for list input.
func (s *Schema) MakeAny(ctx context.Context, input any, opts ...Option) (any, error) {
	o := s.resolveOptions(opts)
	n, err := s.normalize(input, o)
	if err != nil {
		return nil, err
	}
	switch n.kind {
	case normNull:
		return nil, nil
	case normEmptyList:
		return []*Record{}, nil
	case normList:
		return s.makeList(ctx, n.list, o)
	}
	return s.makeOne(ctx, n, o)
}

// MustMake is like Make but panics with *ConstructionError on failure. It is
// the only raising surface of the package.
func (s *Schema) MustMake(ctx context.Context, input any, opts ...Option) *Record {
	rec, err := s.Make(ctx, input, opts...)
	if err != nil {
		panic(&ConstructionError{Schema: s.name, Err: err})
	}
	return rec
}

// MustMakeSlice is like MakeSlice but panics with *ConstructionError on
// failure.
func (s *Schema) MustMakeSlice(ctx context.Context, input any, opts ...Option) []*Record {
	recs, err := s.MakeSlice(ctx, input, opts...)
	if err != nil {
		panic(&ConstructionError{Schema: s.name, Err: err})
	}
	return recs
}

// MustMakeAny is like MakeAny but panics with *ConstructionError on failure.
func (s *Schema) MustMakeAny(ctx context.Context, input any, opts ...Option) any {
	v, err := s.MakeAny(ctx, input, opts...)
	if err != nil {
		panic(&ConstructionError{Schema: s.name, Err: err})
	}
	return v
}

// makeOne runs the single-record pipeline: before-construct hook, defaults,
// per-field chains, aggregation, after-construct hook.
func (s *Schema) makeOne(ctx context.Context, n normalized, o Options) (*Record, error) {
	fields := n.fields
	pm := n.presence.clone()

	if s.before != nil {
		reshaped, err := s.before(ctx, fields, identityBefore)
		if err != nil {
			return nil, err
		}
		fields = reshaped
	}

	for i := range s.fields {
		fd := &s.fields[i]
		if _, ok := fields[fd.Name]; ok {
			continue
		}
		if fd.HasDefault {
			fields[fd.Name] = fd.Default
			pm[fd.Name] |= PresenceDefaultApplied
		}
	}

	// Required fields are a hard failure under CheckKeys; the pipeline never
	// runs. Without CheckKeys they aggregate like any other field error.
	if o.CheckKeys {
		for i := range s.fields {
			fd := &s.fields[i]
			if !fd.Required {
				continue
			}
			if _, ok := fields[fd.Name]; !ok {
				return nil, &KeyError{Schema: s.name, Key: fd.Name, Missing: true}
			}
		}
	}

	rec := &Record{
		schema:   s,
		values:   make(map[string]any, len(s.fields)),
		presence: pm,
	}
	report := ErrorReport{}
	for i := range s.fields {
		fd := &s.fields[i]
		raw, ok := fields[fd.Name]
		if !ok {
			if fd.Required {
				report[fd.Name] = FieldError(i18n.T(CodeRequired, nil))
			}
			continue
		}
		// the record holds the normalized raw value until the chain succeeds
		rec.values[fd.Name] = raw
		out, err := fd.Chain.Run(ctx, raw)
		if err != nil {
			report[fd.Name] = fieldErr(err)
			continue
		}
		rec.values[fd.Name] = out
	}
	if len(report) > 0 {
		return nil, report
	}

	if s.after != nil {
		if err := s.after(ctx, rec); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// makeElement constructs one list element. Elements may be nil, mappings,
// pairs, structs, or records; an element that is itself a list is a shape
// failure recorded at its index.
func (s *Schema) makeElement(ctx context.Context, el any, o Options) (*Record, error) {
	n, err := s.normalize(el, o)
	if err != nil {
		return nil, err
	}
	switch n.kind {
	case normNull:
		return nil, nil
	case normEmptyList, normList:
		return nil, s.shapeErr(el)
	}
	return s.makeOne(ctx, n, o)
}

func (s *Schema) makeList(ctx context.Context, items []any, o Options) ([]*Record, error) {
	out := make([]*Record, len(items))
	errs := make([]error, len(items))
	if o.Parallelism > 1 {
		// Each element records its own outcome; the group never cancels early
		// because every index must be evaluated.
		var g errgroup.Group
		g.SetLimit(o.Parallelism)
		for i, el := range items {
			i, el := i, el
			g.Go(func() error {
				out[i], errs[i] = s.makeElement(ctx, el, o)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, el := range items {
			out[i], errs[i] = s.makeElement(ctx, el, o)
		}
	}

	report := ErrorReport{}
	for i, err := range errs {
		if err == nil {
			continue
		}
		if child, ok := AsReport(err); ok {
			report[indexKey(i)] = child
			continue
		}
		report[indexKey(i)] = err
	}
	if len(report) > 0 {
		return nil, report
	}
	return out, nil
}

package construct_test

import (
	"context"
	"errors"
	"testing"

	construct "github.com/constructkit/construct"
	"github.com/constructkit/construct/cast"
)

func TestBeforeConstruct_ReshapesInput(t *testing.T) {
	ctx := context.Background()
	// legacy keys are declared so normalization keeps them for the hook
	s := construct.Define("Legacy").
		Field("full_name", construct.Direct(cast.String)).
		Field("first").
		Field("last").
		BeforeConstruct(func(ctx context.Context, fields map[string]any, def construct.BeforeDefault) (map[string]any, error) {
			// merge a legacy split-name payload; delegate everything else
			first, fok := fields["first"].(string)
			last, lok := fields["last"].(string)
			if fok && lok {
				return def(map[string]any{"full_name": first + " " + last})
			}
			return def(fields)
		}).
		MustBuild()

	rec, err := s.Make(ctx, map[string]any{"first": "Ada", "last": "Lovelace"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Value("full_name"); got != "Ada Lovelace" {
		t.Fatalf("full_name = %v", got)
	}

	// unhandled case delegates to the default pass-through
	rec, err = s.Make(ctx, map[string]any{"full_name": "Grace Hopper"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Value("full_name"); got != "Grace Hopper" {
		t.Fatalf("full_name = %v", got)
	}
}

func TestBeforeConstruct_FailureReport(t *testing.T) {
	ctx := context.Background()
	s := construct.Define("Gate").
		Field("v").
		BeforeConstruct(func(ctx context.Context, fields map[string]any, def construct.BeforeDefault) (map[string]any, error) {
			return nil, construct.ErrorReport{"v": construct.FieldError("rejected early")}
		}).
		MustBuild()

	_, err := s.Make(ctx, map[string]any{"v": 1})
	report, ok := construct.AsReport(err)
	if !ok || report.Field("v").Error() != "rejected early" {
		t.Fatalf("report = %v", err)
	}
}

func TestAfterConstruct_CrossFieldCheck(t *testing.T) {
	ctx := context.Background()
	s := construct.Define("Range").
		Field("lo", construct.Direct(cast.Integer)).Required().
		Field("hi", construct.Direct(cast.Integer)).Required().
		AfterConstruct(func(ctx context.Context, rec *construct.Record) error {
			if rec.Value("lo").(int64) > rec.Value("hi").(int64) {
				return construct.ErrorReport{"lo": construct.FieldError("must not exceed hi")}
			}
			return nil
		}).
		MustBuild()

	if _, err := s.Make(ctx, map[string]any{"lo": 1, "hi": 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := s.Make(ctx, map[string]any{"lo": 3, "hi": 2})
	report, ok := construct.AsReport(err)
	if !ok || report.Field("lo") == nil {
		t.Fatalf("report = %v", err)
	}
}

func TestAfterConstruct_SkippedWhenFieldsFail(t *testing.T) {
	ctx := context.Background()
	ran := false
	s := construct.Define("Skip").
		Field("v", construct.Direct(cast.Integer)).Required().
		AfterConstruct(func(ctx context.Context, rec *construct.Record) error {
			ran = true
			return nil
		}).
		MustBuild()

	_, err := s.Make(ctx, map[string]any{"v": "nope"})
	if _, ok := construct.AsReport(err); !ok {
		t.Fatalf("expected report, got %v", err)
	}
	if ran {
		t.Fatalf("after hook ran despite field failure")
	}
}

// Pinned precedence: an unknown key under CheckKeys fails during
// normalization, before the before-construct hook ever runs.
func TestCheckKeys_UnknownKeyBeatsBeforeHook(t *testing.T) {
	ctx := context.Background()
	ran := false
	s := construct.Define("Strict").
		Field("id").Required().
		Options(construct.WithCheckKeys(true)).
		BeforeConstruct(func(ctx context.Context, fields map[string]any, def construct.BeforeDefault) (map[string]any, error) {
			ran = true
			return def(fields)
		}).
		MustBuild()

	_, err := s.Make(ctx, map[string]any{"id": 1, "bogus": 2})
	var ke *construct.KeyError
	if !errors.As(err, &ke) || ke.Key != "bogus" {
		t.Fatalf("expected unknown-key failure, got %v", err)
	}
	if ran {
		t.Fatalf("before hook ran despite hard key failure")
	}
}

// Pinned precedence: the required-field hard check runs after the hook, so a
// hook may synthesize required fields.
func TestCheckKeys_RequiredSeesHookOutput(t *testing.T) {
	ctx := context.Background()
	s := construct.Define("Strict").
		Field("id").Required().
		Options(construct.WithCheckKeys(true)).
		BeforeConstruct(func(ctx context.Context, fields map[string]any, def construct.BeforeDefault) (map[string]any, error) {
			fields["id"] = "synth"
			return def(fields)
		}).
		MustBuild()

	rec, err := s.Make(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Value("id") != "synth" {
		t.Fatalf("id = %v", rec.Value("id"))
	}
}

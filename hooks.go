package construct

import "context"

// BeforeDefault is the engine's default before-construct behavior: the
// identity pass into defaulting and field-chain execution. It is handed to a
// BeforeFunc override so the override can explicitly delegate unhandled cases.
type BeforeDefault func(fields map[string]any) (map[string]any, error)

// BeforeFunc reshapes the normalized input before defaults are applied and
// field chains run. It may merge, rename, or synthesize fields. Returning an
// ErrorReport fails the construction with that report; any other error is
// returned to the caller unchanged.
type BeforeFunc func(ctx context.Context, fields map[string]any, def BeforeDefault) (map[string]any, error)

// AfterFunc runs only after every field chain and the aggregation succeeded.
// It performs cross-field and whole-record checks; per-field logic belongs in
// conversion chains, not here.
type AfterFunc func(ctx context.Context, rec *Record) error

// identityBefore is the default before-construct hook.
func identityBefore(fields map[string]any) (map[string]any, error) {
	return fields, nil
}

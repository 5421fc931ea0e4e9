// Package construct builds strongly-shaped records from loosely-typed input
// (maps, ordered pairs, other records, or lists of such), running each field's
// conversion chain and collecting every field error in one pass instead of
// failing on the first.
//
// Design policy:
//   - Keep only public APIs in the root package; put the conversion step
//     library under cast/ and the YAML schema provider under schemayaml/.
//   - Schemas are built once (Define / NewSchema), frozen, and safely shared
//     across any number of concurrent Make calls.
//   - Make never returns a partial result: either every field chain succeeded
//     or the error is an ErrorReport keyed by every failing field.
//
// Typical usage:
//
//	person := construct.Define("Person").
//		Field("name", construct.Direct(cast.String), construct.Direct(cast.NonBlank)).Required().
//		Field("age", construct.Direct(cast.Integer)).Default(int64(0)).
//		MustBuild()
//
//	rec, err := person.Make(ctx, map[string]any{"name": "Alice", "age": "30"})
//	rec, err = person.MakeJSON(ctx, payload)
package construct

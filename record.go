package construct

import (
	"bytes"

	"github.com/go-viper/mapstructure/v2"
	json "github.com/goccy/go-json"
)

// Record is a constructed instance of a Schema. Field values are the outputs
// of each field's conversion chain. Records are created only by Make and are
// not mutated afterwards by the engine.
type Record struct {
	schema   *Schema
	values   map[string]any
	presence PresenceMap
}

// Schema returns the schema the record was constructed from.
func (r *Record) Schema() *Schema { return r.schema }

// Get returns the value stored for a field. Optional fields that were absent
// from the input and carry no default report ok=false.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Value returns the field value or nil when absent.
func (r *Record) Value(name string) any { return r.values[name] }

// Fields returns a copy of the field values keyed by canonical name.
func (r *Record) Fields() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Presence returns the per-field presence flags collected while the record
// was constructed.
func (r *Record) Presence() PresenceMap { return r.presence.clone() }

// Bind decodes the record's fields into out, which must be a pointer to a
// struct. Field names are matched through the `construct` struct tag, falling
// back to the Go field name.
func (r *Record) Bind(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "construct",
		Result:  out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(r.values)
}

// MarshalJSON emits the record's fields in schema declaration order. Absent
// optional fields are omitted.
func (r *Record) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	first := true
	for _, fd := range r.schema.fields {
		v, ok := r.values[fd.Name]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		nk, err := json.Marshal(fd.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(nk)
		buf.WriteByte(':')
		nv, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(nv)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

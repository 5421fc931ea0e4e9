package construct

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Message codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidShape  = "invalid_shape"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeNotBlank      = "not_blank"
	CodeOverflow      = "overflow"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
)

// FieldError is a leaf conversion failure message for a single field.
type FieldError string

func (e FieldError) Error() string { return string(e) }

// ErrorReport maps field names (or, for list construction, decimal element
// indices) to the error recorded for each entry. Values are FieldError leaves,
// nested ErrorReport values for nested records and list elements, or the hard
// failure a list element produced. A report is built fresh per Make call and
// never shared.
type ErrorReport map[string]error

// Error summarizes the first few entries in key order.
func (r ErrorReport) Error() string {
	if len(r) == 0 {
		return ""
	}
	const maxShown = 3
	keys := r.sortedKeys()
	b := &strings.Builder{}
	lim := len(keys)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s: %s", keys[i], r[keys[i]].Error())
	}
	if len(keys) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(keys))
	}
	return b.String()
}

// Field returns the error recorded for a field name.
func (r ErrorReport) Field(name string) error { return r[name] }

// Index returns the error recorded for a list element index.
func (r ErrorReport) Index(i int) error { return r[strconv.Itoa(i)] }

// MarshalJSON renders leaves as message strings and nested reports as objects.
func (r ErrorReport) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r))
	for k, err := range r {
		if child, ok := AsReport(err); ok {
			out[k] = child
			continue
		}
		out[k] = err.Error()
	}
	return json.Marshal(out)
}

func (r ErrorReport) sortedKeys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		// numeric index keys sort numerically so list reports read in order
		ni, ei := strconv.Atoi(keys[i])
		nj, ej := strconv.Atoi(keys[j])
		if ei == nil && ej == nil {
			return ni < nj
		}
		return keys[i] < keys[j]
	})
	return keys
}

// AsReport extracts an ErrorReport from an error using errors.As internally.
func AsReport(err error) (ErrorReport, bool) {
	if err == nil {
		return nil, false
	}
	var r ErrorReport
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// indexKey renders a list element index as its report key.
func indexKey(i int) string { return strconv.Itoa(i) }

// fieldErr normalizes a step failure for aggregation: nested reports are
// preserved verbatim, FieldError leaves pass through, and anything else is
// unwrapped to its message.
func fieldErr(err error) error {
	if r, ok := AsReport(err); ok {
		return r
	}
	var fe FieldError
	if errors.As(err, &fe) {
		return fe
	}
	return FieldError(err.Error())
}

// ShapeError reports input whose shape the normalizer does not recognize. It
// bypasses field aggregation entirely.
type ShapeError struct {
	Schema string
	Type   string // Go type of the offending input.
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("construct: schema %q cannot be made from input of type %s", e.Schema, e.Type)
}

// KeyError reports an unknown input key, or a missing required field, under
// the CheckKeys option. It is a hard failure: the field pipeline never runs.
type KeyError struct {
	Schema  string
	Key     string
	Missing bool // true when a required field is absent rather than a key unknown
}

func (e *KeyError) Error() string {
	if e.Missing {
		return fmt.Sprintf("construct: schema %q is missing required key %q", e.Schema, e.Key)
	}
	return fmt.Sprintf("construct: schema %q has no key %q", e.Schema, e.Key)
}

// ConstructionError is the panic payload of the Must variants. It wraps the
// failure of the underlying Make call.
type ConstructionError struct {
	Schema string
	Err    error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construct: make %s: %s", e.Schema, e.Err.Error())
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// Report returns the wrapped ErrorReport when the failure was an aggregated
// one, and nil for hard failures.
func (e *ConstructionError) Report() ErrorReport {
	r, _ := AsReport(e.Err)
	return r
}

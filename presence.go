package construct

// Presence is the bit flag collected for each field while input is
// normalized and defaults are applied.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was nil in the input.
	PresenceDefaultApplied                      // Default value was applied.
)

// PresenceMap maps canonical field names to Presence flags.
type PresenceMap map[string]Presence

// Seen reports whether the field appeared in the input.
func (pm PresenceMap) Seen(name string) bool {
	return pm[name]&PresenceSeen != 0
}

// Defaulted reports whether the field value came from the schema default.
func (pm PresenceMap) Defaulted(name string) bool {
	return pm[name]&PresenceDefaultApplied != 0
}

func (pm PresenceMap) clone() PresenceMap {
	out := make(PresenceMap, len(pm))
	for k, v := range pm {
		out[k] = v
	}
	return out
}

package preset

import "errors"

// Kind tags a persisted record. User presets carry their own identity;
// shadows and tombstones reference a built-in by ID.
type Kind string

const (
	KindUser      Kind = "user"
	KindShadow    Kind = "shadow"
	KindTombstone Kind = "tombstone"
)

// Record is one entry in the persisted collection.
type Record struct {
	Kind   Kind   `json:"kind"`
	ID     string `json:"id,omitempty"`
	Of     string `json:"of,omitempty"`
	Name   string `json:"name,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}

// Preset is a resolved, user-visible rewrite instruction.
type Preset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prompt string `json:"prompt"`

	// BuiltIn marks presets that ship with the app; Edited marks a
	// built-in whose name/prompt come from a shadow record.
	BuiltIn bool `json:"-"`
	Edited  bool `json:"-"`
}

var ErrNotFound = errors.New("preset not found")

// resolve computes the visible preset list from the persisted records:
// tombstoned built-ins are dropped, shadows override the remaining
// built-ins' name and prompt, then user presets follow in insertion
// order. Pure function of its input.
func resolve(records []Record) []Preset {
	shadows := make(map[string]Record)
	dead := make(map[string]bool)
	for _, r := range records {
		switch r.Kind {
		case KindShadow:
			shadows[r.Of] = r
		case KindTombstone:
			dead[r.Of] = true
		}
	}

	out := make([]Preset, 0, len(builtins)+len(records))
	for _, b := range builtins {
		if dead[b.ID] {
			continue
		}
		p := b
		if sh, ok := shadows[b.ID]; ok {
			p.Name = sh.Name
			p.Prompt = sh.Prompt
			p.Edited = true
		}
		out = append(out, p)
	}
	for _, r := range records {
		if r.Kind == KindUser {
			out = append(out, Preset{ID: r.ID, Name: r.Name, Prompt: r.Prompt})
		}
	}
	return out
}

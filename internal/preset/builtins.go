package preset

// Built-in presets ship with the app. Their IDs are stable and their
// templates are never mutated at rest; edits are persisted as shadow
// records and deletions as tombstones.
var builtins = []Preset{
	{
		ID:      "conversational",
		Name:    "Conversational",
		Prompt:  "Rewrite this text to sound natural and conversational, like you're talking to a friend.",
		BuiltIn: true,
	},
	{
		ID:      "formal",
		Name:    "Formal",
		Prompt:  "Rewrite this text in a formal, professional tone suitable for business communication.",
		BuiltIn: true,
	},
	{
		ID:      "concise",
		Name:    "Concise",
		Prompt:  "Rewrite this text to be as concise as possible while keeping all of its meaning.",
		BuiltIn: true,
	},
	{
		ID:      "grammar",
		Name:    "Fix Grammar",
		Prompt:  "Fix the spelling, grammar, and punctuation of this text without changing its meaning or tone.",
		BuiltIn: true,
	},
}

// FallbackPrompt is used when the resolved preset list is empty.
const FallbackPrompt = "Rewrite this text to sound natural and conversational, like you're talking to a friend."

// Builtins returns a copy of the built-in preset list in declaration order.
func Builtins() []Preset {
	out := make([]Preset, len(builtins))
	copy(out, builtins)
	return out
}

// IsBuiltin reports whether id names a built-in preset.
func IsBuiltin(id string) bool {
	for _, b := range builtins {
		if b.ID == id {
			return true
		}
	}
	return false
}

package rewrite

import (
	_ "embed"
	"strings"
)

//go:embed system.md
var systemBase string

const (
	avoidEmDashClause = "Do not use em dashes (—) in your response."
	outputOnlyClause  = "Return only the rewritten text, with no commentary, preamble, or explanation."
)

// BuildSystemPrompt assembles the system instruction for a rewrite
// call. The em-dash clause is included when the formatting toggle asks
// for it.
func BuildSystemPrompt(avoidEmDashes bool) string {
	parts := []string{strings.TrimSpace(systemBase)}
	if avoidEmDashes {
		parts = append(parts, avoidEmDashClause)
	}
	parts = append(parts, outputOnlyClause)
	return strings.Join(parts, " ")
}

// BuildUserPrompt concatenates the active preset's instruction with the
// captured selection.
func BuildUserPrompt(presetPrompt, text string) string {
	return presetPrompt + " Here's the text to rewrite:\n\n" + text
}

package ui

import (
	"fmt"

	"grain-ca/internal/core"
)

// panelLines flattens a parameter snapshot into the text rows the HUD shows:
// a header per group followed by one indented "label: value" row per
// parameter.
func panelLines(snap core.ParameterSnapshot) []string {
	var lines []string
	for i, g := range snap.Groups {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, g.Name)
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("  %s: %s", p.Label, p.Value))
		}
	}
	return lines
}

// keyHints lists the viewer's key bindings.
var keyHints = []string{
	"space pause  n step",
	"r reset  s reseed",
	"v view  b/d overlays",
	"+/- speed  click seed",
}

// maskAlpha converts a mask intensity into the overlay alpha, zero for
// cells that should stay untouched.
func maskAlpha(intensity float64, maxAlpha float64) uint8 {
	if !(intensity > 0) {
		return 0
	}
	if intensity > 1 {
		intensity = 1
	}
	return uint8(maxAlpha*intensity + 0.5)
}

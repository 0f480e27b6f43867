package ui

import (
	"strings"

	"falling-sand/internal/core"
)

// keyHelp is appended below the parameters when the sim accepts brush input.
var keyHelp = []string{
	"LMB paint, RMB erase",
	"1 sand  2 water",
	"[ ] brush size",
	"Space pause  N step",
	"Enter resume  R reset",
	"Q quit",
}

type hudLine struct {
	text   string
	header bool
}

// hudLines flattens a snapshot into the rows drawn on the panel.
func hudLines(title string, snap core.ParameterSnapshot, help bool) []hudLine {
	lines := []hudLine{{text: title, header: true}}
	for _, g := range snap.Groups {
		if len(g.Params) == 0 {
			continue
		}
		lines = append(lines, hudLine{}, hudLine{text: g.Name, header: true})
		for _, p := range g.Params {
			lines = append(lines, hudLine{text: formatParam(p)})
		}
	}
	if help {
		lines = append(lines, hudLine{}, hudLine{text: "Keys", header: true})
		for _, h := range keyHelp {
			lines = append(lines, hudLine{text: h})
		}
	}
	return lines
}

func formatParam(p core.Parameter) string {
	label := p.Label
	if label == "" {
		label = p.Key
	}
	value := p.Value
	if strings.TrimSpace(value) == "" {
		value = "--"
	}
	return label + ": " + value
}

func hudTitle(name string) string {
	if name == "" {
		return "Parameters"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

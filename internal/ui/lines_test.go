package ui

import (
	"testing"

	"falling-sand/internal/core"
)

func TestHUDLinesFlattenGroups(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Grid", Params: []core.Parameter{core.IntParam("size", "Size", 32)}},
		{Name: "Empty"},
		{Name: "Brush", Params: []core.Parameter{
			core.StringParam("material", "Material", "water"),
			core.StringParam("note", "", ""),
		}},
	}}

	lines := hudLines("Sand", snap, false)
	want := []hudLine{
		{text: "Sand", header: true},
		{},
		{text: "Grid", header: true},
		{text: "Size: 32"},
		{},
		{text: "Brush", header: true},
		{text: "Material: water"},
		{text: "note: --"},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %+v, want %+v", i, lines[i], want[i])
		}
	}
}

func TestHUDLinesAppendKeyHelp(t *testing.T) {
	lines := hudLines("Sand", core.ParameterSnapshot{}, true)
	if len(lines) != 3+len(keyHelp) {
		t.Fatalf("got %d lines, want %d", len(lines), 3+len(keyHelp))
	}
	if last := lines[len(lines)-1].text; last != keyHelp[len(keyHelp)-1] {
		t.Fatalf("last line %q", last)
	}
}

func TestHUDTitle(t *testing.T) {
	if got := hudTitle("sand"); got != "Sand" {
		t.Fatalf("hudTitle(sand) = %q", got)
	}
	if got := hudTitle(""); got != "Parameters" {
		t.Fatalf("hudTitle(\"\") = %q", got)
	}
}

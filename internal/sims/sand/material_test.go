package sand

import "testing"

func TestParseMaterial(t *testing.T) {
	for _, m := range []Material{Empty, Sand, Water} {
		got, err := ParseMaterial(" " + m.String() + " ")
		if err != nil {
			t.Fatalf("ParseMaterial(%q): %v", m.String(), err)
		}
		if got != m {
			t.Fatalf("ParseMaterial(%q) = %v", m.String(), got)
		}
	}
	if got, err := ParseMaterial("WATER"); err != nil || got != Water {
		t.Fatalf("ParseMaterial is case sensitive: %v, %v", got, err)
	}
	if _, err := ParseMaterial("lava"); err == nil {
		t.Fatal("expected an error for an unknown material")
	}
}

func TestMaterialValidity(t *testing.T) {
	if Empty.Paintable() {
		t.Fatal("empty must not be paintable")
	}
	if !Sand.Paintable() || !Water.Paintable() {
		t.Fatal("sand and water must be paintable")
	}
	if Material(3).Valid() {
		t.Fatal("material 3 should be invalid")
	}
	if got := Material(3).String(); got != "material(3)" {
		t.Fatalf("String() = %q", got)
	}
}

func TestPaletteColorsDistinct(t *testing.T) {
	if len(Palette) != 3 {
		t.Fatalf("palette has %d entries, want 3", len(Palette))
	}
	seen := map[[3]uint8]Material{}
	for i, c := range Palette {
		key := [3]uint8{c.R, c.G, c.B}
		if prev, ok := seen[key]; ok {
			t.Fatalf("%v and %v share color %v", prev, Material(i), key)
		}
		seen[key] = Material(i)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"size": "64", "seed": "-9"})
	if c.Size != 64 || c.Seed != -9 {
		t.Fatalf("FromMap parsed %+v", c)
	}

	def := DefaultConfig()
	c = FromMap(map[string]string{"size": "0", "seed": "nope"})
	if c != def {
		t.Fatalf("invalid values should keep defaults, got %+v", c)
	}
	if FromMap(nil) != def {
		t.Fatal("nil map should yield defaults")
	}
}

package primitives

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func TestBuildPalette_DepthOneHasEmptyActivation(t *testing.T) {
	p, err := BuildPalette(1, testRand(1))
	if err != nil {
		t.Fatalf("BuildPalette failed: %v", err)
	}
	if p.Len() != 1 {
		t.Fatalf("Len = %d, want 1", p.Len())
	}
	if got := len(p.At(0).Activation); got != 0 {
		t.Errorf("first rule has %d activation colors, want 0 (no prior colors exist)", got)
	}
}

func TestBuildPalette_InvalidDepth(t *testing.T) {
	for _, depth := range []int{0, -1} {
		if _, err := BuildPalette(depth, testRand(1)); !errors.Is(err, ErrConfig) {
			t.Errorf("BuildPalette(%d) error = %v, want ErrConfig", depth, err)
		}
	}
}

func TestBuildPalette_UniqueColors(t *testing.T) {
	p, err := BuildPalette(32, testRand(7))
	if err != nil {
		t.Fatalf("BuildPalette failed: %v", err)
	}
	seen := make(map[RGB]bool)
	for i := 0; i < p.Len(); i++ {
		rgb := p.At(i).RGB
		if seen[rgb] {
			t.Fatalf("duplicate color %s at rule %d", rgb, i)
		}
		seen[rgb] = true
	}
}

func TestBuildPalette_BackwardOnlyActivation(t *testing.T) {
	p, err := BuildPalette(16, testRand(99))
	if err != nil {
		t.Fatalf("BuildPalette failed: %v", err)
	}

	for i := 0; i < p.Len(); i++ {
		rule := p.At(i)
		limit := min(2, i)
		if len(rule.Activation) > limit {
			t.Errorf("rule %d has %d activation colors, max %d", i, len(rule.Activation), limit)
		}
		if i > 0 && len(rule.Activation) == 0 {
			t.Errorf("rule %d has no activation colors despite prior colors existing", i)
		}
		for _, a := range rule.Activation {
			if a == rule.RGB {
				t.Errorf("rule %d activates on its own color", i)
			}
			found := false
			for j := 0; j < i; j++ {
				if p.At(j).RGB == a {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("rule %d activates on %s, which is not an earlier color", i, a)
			}
		}
	}
}

func TestBuildPalette_Reproducible(t *testing.T) {
	a, err := BuildPalette(8, testRand(5))
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildPalette(8, testRand(5))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < a.Len(); i++ {
		ra, rb := a.At(i), b.At(i)
		if ra.RGB != rb.RGB || ra.Direction != rb.Direction || len(ra.Activation) != len(rb.Activation) {
			t.Fatalf("rule %d differs between identically seeded palettes", i)
		}
	}
}

func TestNewPalette_Validation(t *testing.T) {
	a := RGB{1, 0, 0}
	b := RGB{0, 1, 0}
	c := RGB{0, 0, 1}

	tests := []struct {
		name  string
		rules []ColorRule
	}{
		{"empty", nil},
		{"duplicate color", []ColorRule{
			{RGB: a, Direction: Left},
			{RGB: a, Direction: Right, Activation: []RGB{a}},
		}},
		{"bad direction", []ColorRule{
			{RGB: a, Direction: "diagonal"},
		}},
		{"first rule with activation", []ColorRule{
			{RGB: a, Direction: Left, Activation: []RGB{b}},
		}},
		{"oversized activation", []ColorRule{
			{RGB: a, Direction: Left},
			{RGB: b, Direction: Left, Activation: []RGB{a, a}},
		}},
		{"self activation", []ColorRule{
			{RGB: a, Direction: Left},
			{RGB: b, Direction: Left, Activation: []RGB{b}},
		}},
		{"forward reference", []ColorRule{
			{RGB: a, Direction: Left},
			{RGB: b, Direction: Left, Activation: []RGB{c}},
			{RGB: c, Direction: Left, Activation: []RGB{a}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPalette(tt.rules); !errors.Is(err, ErrConfig) {
				t.Errorf("NewPalette error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestNewPalette_AcceptsValidRules(t *testing.T) {
	a := RGB{1, 0, 0}
	b := RGB{0, 1, 0}
	c := RGB{0, 0, 1}
	rules := []ColorRule{
		{RGB: a, Direction: Left},
		{RGB: b, Direction: Right, Activation: []RGB{a}},
		{RGB: c, Direction: Down, Activation: []RGB{a, b}},
	}

	p, err := NewPalette(rules)
	if err != nil {
		t.Fatalf("NewPalette failed: %v", err)
	}

	rule, ok := p.Rule(b)
	if !ok {
		t.Fatal("Rule lookup failed for a palette color")
	}
	if rule.Direction != Right {
		t.Errorf("Rule(%s).Direction = %q, want %q", b, rule.Direction, Right)
	}
	if _, ok := p.Rule(RGB{9, 9, 9}); ok {
		t.Error("Rule lookup succeeded for a non-palette color")
	}
}

func TestPaletteLookup(t *testing.T) {
	a := RGB{1, 0, 0}
	p, err := NewPalette([]ColorRule{{RGB: a, Direction: Left}})
	if err != nil {
		t.Fatal(err)
	}

	rule, err := p.Lookup(a)
	if err != nil {
		t.Fatalf("Lookup(%s) failed: %v", a, err)
	}
	if rule.RGB != a {
		t.Errorf("Lookup returned rule for %s", rule.RGB)
	}
	if _, err := p.Lookup(RGB{9, 9, 9}); !errors.Is(err, ErrColorNotFound) {
		t.Errorf("Lookup error = %v, want ErrColorNotFound", err)
	}
}

func TestPaletteRules_DeepCopy(t *testing.T) {
	a := RGB{1, 0, 0}
	b := RGB{0, 1, 0}
	p, err := NewPalette([]ColorRule{
		{RGB: a, Direction: Left},
		{RGB: b, Direction: Right, Activation: []RGB{a}},
	})
	if err != nil {
		t.Fatal(err)
	}

	rules := p.Rules()
	rules[1].Activation[0] = RGB{9, 9, 9}
	if got := p.At(1).Activation[0]; got != a {
		t.Error("mutating Rules() output changed the palette")
	}
}

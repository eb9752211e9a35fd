package primitives

import (
	"fmt"
	"math/rand/v2"
)

// Palette is the ordered, immutable set of ColorRules for one ADIS instance.
//
// Rules are indexed by generation order. A rule may only activate on colors
// generated strictly before it, so the activation dependency graph is
// backward-only by construction; NewPalette re-checks the same invariant for
// rule sets loaded from external data.
type Palette struct {
	rules []ColorRule
	index map[RGB]int // rgb -> generation index
}

// BuildPalette generates depth unique ColorRules.
//
// Each candidate color is sampled uniformly from the 24-bit space and
// re-sampled until unused. The activation set samples 1 or 2 prior colors
// without replacement (capped by how many exist); the first rule has none.
// Direction is uniform over the four cardinal values.
func BuildPalette(depth int, rng *rand.Rand) (*Palette, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: color depth %d, must be >= 1", ErrConfig, depth)
	}

	p := &Palette{
		rules: make([]ColorRule, 0, depth),
		index: make(map[RGB]int, depth),
	}

	for i := 0; i < depth; i++ {
		var rgb RGB
		for {
			rgb = RGB{uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256))}
			if _, used := p.index[rgb]; !used {
				break
			}
		}

		var activation []RGB
		if i > 0 {
			limit := min(2, i)
			n := 1 + rng.IntN(limit)
			for _, j := range rng.Perm(i)[:n] {
				activation = append(activation, p.rules[j].RGB)
			}
		}

		p.index[rgb] = i
		p.rules = append(p.rules, ColorRule{
			RGB:        rgb,
			Direction:  Directions[rng.IntN(len(Directions))],
			Activation: activation,
		})
	}

	return p, nil
}

// NewPalette builds a Palette from explicit rules, validating the full
// palette invariant: pairwise distinct colors, valid directions, and
// backward-only activation sets of size <= min(2, index).
func NewPalette(rules []ColorRule) (*Palette, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: palette has no rules", ErrConfig)
	}

	p := &Palette{
		rules: make([]ColorRule, 0, len(rules)),
		index: make(map[RGB]int, len(rules)),
	}

	for i, r := range rules {
		if _, dup := p.index[r.RGB]; dup {
			return nil, fmt.Errorf("%w: duplicate color %s at rule %d", ErrConfig, r.RGB, i)
		}
		if err := r.Direction.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if len(r.Activation) > min(2, i) {
			return nil, fmt.Errorf("%w: rule %d has %d activation colors, max %d", ErrConfig, i, len(r.Activation), min(2, i))
		}
		seen := make(map[RGB]bool, len(r.Activation))
		for _, a := range r.Activation {
			if a == r.RGB {
				return nil, fmt.Errorf("%w: rule %d activates on its own color %s", ErrConfig, i, a)
			}
			if seen[a] {
				return nil, fmt.Errorf("%w: rule %d repeats activation color %s", ErrConfig, i, a)
			}
			seen[a] = true
			if j, ok := p.index[a]; !ok || j >= i {
				return nil, fmt.Errorf("%w: rule %d activates on %s, which is not an earlier color", ErrConfig, i, a)
			}
		}

		p.index[r.RGB] = i
		p.rules = append(p.rules, r.Clone())
	}

	return p, nil
}

// Len returns the number of rules (the configured color depth).
func (p *Palette) Len() int {
	return len(p.rules)
}

// Rule returns the rule whose color is rgb. ok is false when rgb is not a
// palette color.
func (p *Palette) Rule(rgb RGB) (ColorRule, bool) {
	i, ok := p.index[rgb]
	if !ok {
		return ColorRule{}, false
	}
	return p.rules[i], true
}

// Lookup returns the rule whose color is rgb, or ErrColorNotFound. The
// automaton engine skips unknown colors on its own; Lookup serves callers
// inspecting externally supplied grid data.
func (p *Palette) Lookup(rgb RGB) (ColorRule, error) {
	rule, ok := p.Rule(rgb)
	if !ok {
		return ColorRule{}, fmt.Errorf("%w: %s", ErrColorNotFound, rgb)
	}
	return rule, nil
}

// At returns the rule at generation index i.
func (p *Palette) At(i int) ColorRule {
	return p.rules[i]
}

// Rules returns a deep copy of all rules in generation order, for
// serialization.
func (p *Palette) Rules() []ColorRule {
	out := make([]ColorRule, len(p.rules))
	for i, r := range p.rules {
		out[i] = r.Clone()
	}
	return out
}

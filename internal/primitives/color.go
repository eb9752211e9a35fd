package primitives

import (
	"errors"
	"fmt"
)

// Error sentinels shared by the engine tiers. Wrapped with fmt.Errorf("%w")
// at the point of failure; callers match with errors.Is.
var (
	// ErrConfig reports an invalid resolution, color depth, or iteration speed.
	ErrConfig = errors.New("invalid configuration")

	// ErrColorNotFound reports a grid cell color with no matching palette rule.
	// The automaton treats it as a per-cell no-op; it only surfaces from
	// explicit palette lookups on externally supplied data.
	ErrColorNotFound = errors.New("color not in palette")
)

// RGB is one cell color: red, green, blue channel values.
// Marshals as a 3-element array in JSON and YAML, matching the on-disk
// document layout.
type RGB [3]uint8

func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c[0], c[1], c[2])
}

// Direction is the cardinal neighbor a rule inspects.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	Up    Direction = "up"
	Down  Direction = "down"
)

// Directions lists all valid directions in a fixed order, used for uniform
// sampling during palette construction.
var Directions = [4]Direction{Left, Right, Up, Down}

// Validate checks that d is one of the four cardinal values.
func (d Direction) Validate() error {
	switch d {
	case Left, Right, Up, Down:
		return nil
	}
	return fmt.Errorf("%w: direction %q", ErrConfig, string(d))
}

// Neighbor resolves the coordinate d points at from (x, y) on a toroidal
// grid of the given resolution. x is the row (outer) index, y the column
// (inner) index; wraparound is modular on both axes.
func (d Direction) Neighbor(x, y, resolution int) (int, int) {
	switch d {
	case Right:
		return x, (y + 1) % resolution
	case Left:
		return x, (y - 1 + resolution) % resolution
	case Up:
		return (x - 1 + resolution) % resolution, y
	default: // Down
		return (x + 1) % resolution, y
	}
}

// ColorRule is one palette entry: the color itself, the neighbor direction it
// inspects, and the activation colors that trigger a swap with that neighbor.
//
// ColorRules are value types; once a Palette is built they must not be
// mutated.
type ColorRule struct {
	RGB        RGB       `json:"rgb" yaml:"rgb"`
	Direction  Direction `json:"direction" yaml:"direction"`
	Activation []RGB     `json:"activation" yaml:"activation"`
}

// Activates reports whether the neighbor color triggers this rule's swap.
func (r ColorRule) Activates(neighbor RGB) bool {
	for _, a := range r.Activation {
		if a == neighbor {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the rule. The activation slice is copied and
// never nil, so an empty set serializes as [] in JSON and YAML alike and a
// rule survives either persistence format unchanged.
func (r ColorRule) Clone() ColorRule {
	out := r
	out.Activation = append([]RGB{}, r.Activation...)
	return out
}

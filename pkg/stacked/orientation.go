package stacked

import (
	"strings"

	errs "github.com/matzehuels/stackviz/pkg/errors"
)

// Orientation selects the time axis and the direction stacks grow in.
type Orientation int

const (
	// BottomTop stacks upward from the bottom edge; time runs left to right.
	BottomTop Orientation = iota
	// TopBottom stacks downward from the top edge; time runs left to right.
	TopBottom
	// LeftRight stacks rightward from the left edge; time runs bottom to top.
	LeftRight
	// RightLeft stacks leftward from the right edge; time runs bottom to top.
	RightLeft
)

var orientationNames = [...]string{
	BottomTop: "bottom-top",
	TopBottom: "top-bottom",
	LeftRight: "left-right",
	RightLeft: "right-left",
}

// Valid reports whether o is one of the four defined orientations.
func (o Orientation) Valid() bool { return o >= BottomTop && o <= RightLeft }

func (o Orientation) String() string {
	if !o.Valid() {
		return "unknown"
	}
	return orientationNames[o]
}

// Horizontal reports whether stacks grow along the x axis.
func (o Orientation) Horizontal() bool { return o == LeftRight || o == RightLeft }

// axes derives the stacking parameters: whether the stack grows along x,
// whether it starts at the min edge, and the sign of growth.
func (o Orientation) axes() (horiz, top bool, mult float64) {
	switch o {
	case TopBottom:
		return false, true, 1
	case LeftRight:
		return true, true, 1
	case RightLeft:
		return true, false, -1
	default:
		return false, false, -1
	}
}

// ParseOrientation parses names such as "bottom-top". Underscores and case
// are ignored, so "BOTTOM_TOP" is accepted too.
func ParseOrientation(s string) (Orientation, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for o, name := range orientationNames {
		if name == norm {
			return Orientation(o), nil
		}
	}
	return 0, errs.New(errs.ErrCodeInvalidOrientation, "invalid orientation %q (want bottom-top, top-bottom, left-right or right-left)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, errs.New(errs.ErrCodeInvalidOrientation, "invalid orientation value: %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

package nav

import "fmt"

type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection accepts left, right, up and down.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return 0, fmt.Errorf("invalid direction %q (expected left|right|up|down)", s)
	}
}

// Offset converts d into a step in view order for a grid of the given width.
func (d Direction) Offset(columns int) (int, Axis) {
	if columns < 1 {
		columns = 1
	}
	switch d {
	case Left:
		return -1, Horizontal
	case Right:
		return 1, Horizontal
	case Up:
		return -columns, Vertical
	default:
		return columns, Vertical
	}
}

// Columns is how many cells of itemWidth fit in width, at least one.
func Columns(width, itemWidth int) int {
	if itemWidth <= 0 {
		return 1
	}
	return max(width/itemWidth, 1)
}

// Step moves current by offset within a view of n items.
//
// Horizontal steps wrap around both ends. Vertical steps clamp to [0, n-1]
// and never wrap, even when a step off one end would land on the other end
// modulo n. With n == 0 current is returned unchanged.
func Step(current, offset, n int, axis Axis) int {
	if n <= 0 {
		return current
	}
	current = clamp(current, 0, n-1)
	if axis == Horizontal {
		return mod(current+offset, n)
	}

	next := current + offset
	if next < 0 || next >= n {
		switch {
		case current == 0 && mod(next, n) == n-1:
			return 0
		case current == n-1 && mod(next, n) == 0:
			return n - 1
		}
	}
	return clamp(next, 0, n-1)
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

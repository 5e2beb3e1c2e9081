package junction

import "strings"

// Direction enumerates the four fixed approaches of a junction.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every direction in display order.
var Directions = [...]Direction{North, South, East, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Label returns the capitalised display name ("North").
func (d Direction) Label() string {
	s := d.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Arrow returns the glyph drawn on the direction card.
func (d Direction) Arrow() string {
	switch d {
	case North:
		return "↑"
	case South:
		return "↓"
	case East:
		return "→"
	case West:
		return "←"
	default:
		return "?"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool { return d >= North && d <= West }

// PerDirection holds one value per direction. The explicit fields keep every
// direction visible at compile time; Get/Set/Each cover the generic paths.
// The zero value is usable.
type PerDirection[T any] struct {
	North T
	South T
	East  T
	West  T
}

// Get returns the value stored for d. Unknown directions return the zero value.
func (p *PerDirection[T]) Get(d Direction) T {
	var zero T
	if p == nil {
		return zero
	}
	switch d {
	case North:
		return p.North
	case South:
		return p.South
	case East:
		return p.East
	case West:
		return p.West
	}
	return zero
}

// Set stores v for d. Unknown directions are ignored.
func (p *PerDirection[T]) Set(d Direction, v T) {
	if p == nil {
		return
	}
	switch d {
	case North:
		p.North = v
	case South:
		p.South = v
	case East:
		p.East = v
	case West:
		p.West = v
	}
}

// Each calls fn for every direction in display order.
func (p *PerDirection[T]) Each(fn func(d Direction, v T)) {
	if p == nil || fn == nil {
		return
	}
	for _, d := range Directions {
		fn(d, p.Get(d))
	}
}

// Durations maps every direction to a green duration in seconds.
type Durations = PerDirection[int]

// Package modes holds the presenter's toggleable features as one value.
package modes

import "strings"

// Flag is a single toggleable mode.
type Flag uint8

const (
	Notes Flag = 1 << iota
	Overview
	Help
	Laser
	Pen
	Autoplay
)

// Set is a combination of flags. The zero value is "Normal".
type Set uint8

// exclusive lists groups in which at most one flag may be set. Turning a
// flag on clears the others in its group.
var exclusive = [][]Flag{
	{Laser, Pen},
}

// labels is the fixed order used by Label.
var labels = []struct {
	flag Flag
	name string
}{
	{Notes, "Notes"},
	{Overview, "Overview"},
	{Laser, "Laser"},
	{Pen, "Pen"},
	{Autoplay, "Auto"},
}

func (s Set) Has(f Flag) bool { return s&Set(f) != 0 }

// With returns s with f switched on or off and the exclusivity rules applied.
func (s Set) With(f Flag, on bool) Set {
	if !on {
		return s &^ Set(f)
	}
	return normalize(s|Set(f), f)
}

func (s Set) Toggle(f Flag) Set { return s.With(f, !s.Has(f)) }

// Valid reports whether no exclusive group has more than one member set.
func (s Set) Valid() bool {
	for _, group := range exclusive {
		n := 0
		for _, f := range group {
			if s.Has(f) {
				n++
			}
		}
		if n > 1 {
			return false
		}
	}
	return true
}

func normalize(s Set, winner Flag) Set {
	for _, group := range exclusive {
		if !inGroup(group, winner) {
			continue
		}
		for _, f := range group {
			if f != winner {
				s &^= Set(f)
			}
		}
	}
	return s
}

func inGroup(group []Flag, f Flag) bool {
	for _, g := range group {
		if g == f {
			return true
		}
	}
	return false
}

// Label joins the names of active modes, plus Dark when the externally owned
// theme flag is set. Help is not shown.
func (s Set) Label(dark bool) string {
	var bits []string
	for _, l := range labels {
		if s.Has(l.flag) {
			bits = append(bits, l.name)
		}
	}
	if dark {
		bits = append(bits, "Dark")
	}
	if len(bits) == 0 {
		return "Normal"
	}
	return strings.Join(bits, " • ")
}

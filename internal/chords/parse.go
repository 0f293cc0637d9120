package chords

import "strings"

// Chord is a chord symbol split into its display parts.
type Chord struct {
	Root string // tone spelling or scale degree; "" for plain annotations
	Type string // opaque type suffix, or the whole string for annotations
	Bass string // bass note after "/", "" when absent
}

// Parse splits a chord symbol into root, type suffix, and bass note for
// display styling. Both tone-name and numeric (scale-degree) roots are
// recognized; anything else comes back with only Type set.
func Parse(chord string) Chord {
	var c Chord
	rest := chord

	if root, r, ok := splitRoot(chord); ok {
		c.Root, rest = root, r
	} else if n := degreeLen(chord); n > 0 {
		c.Root, rest = chord[:n], chord[n:]
	} else {
		return Chord{Type: chord}
	}

	rest = strings.TrimPrefix(rest, ":")
	typ, bass, hasBass := strings.Cut(rest, "/")
	c.Type = typ
	if hasBass {
		c.Bass = bass
	}
	return c
}

// Degree returns the scale degree (1..7) of a numeric-notation chord.
func Degree(chord string) (int, bool) {
	if degreeLen(chord) == 0 {
		return 0, false
	}
	return int(chord[0] - '0'), true
}

// degreeLen returns the length of a leading scale-degree root ("1".."7"
// with an optional "#"/"b" qualifier), or 0 when there is none.
func degreeLen(chord string) int {
	if len(chord) == 0 || chord[0] < '1' || chord[0] > '7' {
		return 0
	}
	if len(chord) > 1 && (chord[1] == '#' || chord[1] == 'b') {
		return 2
	}
	return 1
}

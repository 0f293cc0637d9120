package songview

import "github.com/songiapp/songidb/internal/chords"

// Scale-degree color palettes for numeric-notation chords, one color per
// degree 1..7, with light and dark theme variants.
var (
	degreeColorsLight = [7]string{
		"#1565c0", // 1
		"#2e7d32", // 2
		"#c62828", // 3
		"#6a1b9a", // 4
		"#e65100", // 5
		"#00838f", // 6
		"#4e342e", // 7
	}
	degreeColorsDark = [7]string{
		"#90caf9", // 1
		"#a5d6a7", // 2
		"#ef9a9a", // 3
		"#ce93d8", // 4
		"#ffcc80", // 5
		"#80deea", // 6
		"#bcaaa4", // 7
	}
)

// DegreeColor returns the display color for a numeric-notation chord,
// keyed by its scale degree. ok is false for tone-name chords and plain
// annotations, which use the default text color.
func DegreeColor(chord string, dark bool) (color string, ok bool) {
	degree, ok := chords.Degree(chord)
	if !ok {
		return "", false
	}
	if dark {
		return degreeColorsDark[degree-1], true
	}
	return degreeColorsLight[degree-1], true
}

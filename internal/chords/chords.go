// Package chords implements pitch-class arithmetic over chord symbols:
// parsing, transposition, key detection, and numeric (scale-degree) notation.
//
// Chord symbols have the shape ROOT[:TYPE][/BASS]. The root is the longest
// matching tone spelling; everything after it is the chord type, carried
// through transposition unchanged. Strings that start with no known tone
// spelling are not chords and pass through untouched.
package chords

import (
	"regexp"
	"sort"
	"strings"
)

// toneHeights maps tone spellings to pitch classes (C=0 .. B/H=11),
// including the German H/Es/As variants.
var toneHeights = map[string]int{
	"C":  0,
	"C#": 1,
	"Db": 1,
	"D":  2,
	"D#": 3,
	"Eb": 3,
	"Es": 3,
	"E":  4,
	"F":  5,
	"F#": 6,
	"Gb": 6,
	"G":  7,
	"G#": 8,
	"Ab": 8,
	"As": 8,
	"A":  9,
	"A#": 10,
	"Bb": 10,
	"B":  11,
	"H":  11,
}

// toneNames lists all spellings longest-first so that prefix scanning never
// matches "C" before "C#".
var toneNames = func() []string {
	names := make([]string, 0, len(toneHeights))
	for name := range toneHeights {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}()

// toneBaseNames is the canonical spelling per pitch class used when
// re-rendering a transposed root.
var toneBaseNames = [12]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "Bb", "H",
}

// toneNumberNames renders pitch classes as scale degrees relative to a base
// tone, for the numeric notation mode.
var toneNumberNames = [12]string{
	"1", "1#", "2", "3b", "3", "4", "5b", "5", "5#", "6", "7b", "7",
}

// octaveGuard keeps the modulo operand non-negative for any |d| <= 48.
const octaveGuard = 5 * 12

// Tone returns the pitch class of the chord's root. ok is false when the
// chord starts with no known tone spelling.
func Tone(chord string) (height int, ok bool) {
	for _, tone := range toneNames {
		if strings.HasPrefix(chord, tone) {
			return toneHeights[tone], true
		}
	}
	return 0, false
}

// splitRoot splits a chord into its root spelling and the remaining type
// suffix. ok is false for non-chord strings.
func splitRoot(chord string) (root, rest string, ok bool) {
	for _, tone := range toneNames {
		if strings.HasPrefix(chord, tone) {
			return tone, chord[len(tone):], true
		}
	}
	return "", "", false
}

// Transpose moves the chord root up by d semitones (negative d moves down)
// and re-renders it with the canonical spelling. The type suffix is kept
// verbatim; an explicit ":TYPE/BASS" bass note is transposed independently.
// Non-chord strings are returned unchanged.
func Transpose(chord string, d int) string {
	root, rest, ok := splitRoot(chord)
	if !ok {
		return chord
	}

	newRoot := toneBaseNames[(toneHeights[root]+octaveGuard+d)%12]

	// With the explicit root:type separator a slash introduces a bass note.
	// Without it the slash is part of the opaque type suffix.
	if typePart, found := strings.CutPrefix(rest, ":"); found {
		if typ, bass, hasBass := strings.Cut(typePart, "/"); hasBass {
			return newRoot + ":" + typ + "/" + Transpose(bass, d)
		}
	}

	return newRoot + rest
}

var chordPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// Extract returns all bracketed chord symbols in text, in order.
func Extract(text string) []string {
	matches := chordPattern.FindAllStringSubmatch(text, -1)
	res := make([]string, 0, len(matches))
	for _, m := range matches {
		res = append(res, m[1])
	}
	return res
}

// Remove strips all bracketed chord annotations from text.
func Remove(text string) string {
	return chordPattern.ReplaceAllString(text, "")
}

// BaseTone detects the most likely tonic pitch class of the chords in text.
// Each of the 12 candidates is scored per chord: tonic match 3, fifth 2,
// fourth 1, and relative-minor sixth 3 for minor chords. Ties resolve to the
// first-seen candidate. A text without recognizable chords yields C.
func BaseTone(text string) int {
	chordList := Extract(text)
	maxScore := -1
	best := 0
	for candidate := 0; candidate < 12; candidate++ {
		score := 0
		for _, chord := range chordList {
			height, ok := Tone(chord)
			if !ok {
				continue
			}
			switch (height - candidate + octaveGuard) % 12 {
			case 0:
				score += 3
			case 7:
				score += 2
			case 5:
				score += 1
			case 9:
				if strings.Contains(chord, "m") {
					score += 3
				}
			}
		}
		if score > maxScore {
			maxScore = score
			best = candidate
		}
	}
	return best
}

// TransposeNumber renders the chord as a scale degree relative to baseTone,
// transposed by d. A non-empty type suffix is attached after a colon.
// Non-chord strings are returned unchanged.
func TransposeNumber(chord string, baseTone, d int) string {
	root, rest, ok := splitRoot(chord)
	if !ok {
		return chord
	}
	degree := toneNumberNames[(toneHeights[root]-baseTone+octaveGuard+d)%12]
	rest = strings.TrimPrefix(rest, ":")
	if rest != "" {
		return degree + ":" + rest
	}
	return degree
}

// TransposeText transposes every bracketed chord in text by d semitones.
// With numeric set, chords render as scale degrees relative to the detected
// base tone instead. A transposition that is a whole number of octaves
// returns the text unchanged.
func TransposeText(text string, d int, numeric bool) string {
	if numeric {
		baseTone := BaseTone(text)
		return chordPattern.ReplaceAllStringFunc(text, func(m string) string {
			return "[" + TransposeNumber(m[1:len(m)-1], baseTone, d) + "]"
		})
	}
	if (d+octaveGuard)%12 == 0 {
		return text
	}
	return chordPattern.ReplaceAllStringFunc(text, func(m string) string {
		return "[" + Transpose(m[1:len(m)-1], d) + "]"
	})
}

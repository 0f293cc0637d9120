// Package songview converts a chord-annotated song body into an ordered
// sequence of display line items: section headings, visual breaks, and
// aligned chord/text groups. The formatter is pure; its only state across
// lines is the pending-section-label and blank-line bookkeeping.
//
// Transposition and numeric notation are applied to the text upstream by
// the chords package before formatting.
package songview

import "strings"

// Kind discriminates the rendered line items.
type Kind int

const (
	// KindLine is a content line, possibly with chord groups and possibly
	// carrying a section label prefix.
	KindLine Kind = iota
	// KindHeading is a standalone section heading, emitted when two section
	// labels occur with no content between them.
	KindHeading
	// KindBreak is a visual break produced by a blank line.
	KindBreak
)

// ChordPlaceholder keeps a chord-less group column-aligned with chord
// groups on the same line.
const ChordPlaceholder = " "

// Group is one aligned chord-group + text-group unit within a line.
type Group struct {
	Chords []string
	Text   string
}

// Line is one rendered line item.
type Line struct {
	Kind      Kind
	Label     string  // section label: heading text, or prefix of a content line
	HasChords bool    // content line contains at least one chord
	Groups    []Group // chord/text groups, nil for chord-less content lines
	Text      string  // verbatim text of a chord-less content line
}

// sectionMarker starts a section label line.
const sectionMarker = "#"

// wrapThreshold is the text length after which a plain-text run is split at
// the next space, bounding line width.
const wrapThreshold = 15

// Format renders a song body into display line items.
func Format(text string) []Line {
	var res []Line

	pendingLabel := ""
	hasPending := false

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, sectionMarker) {
			if hasPending {
				res = append(res, Line{Kind: KindHeading, Label: pendingLabel})
			}
			pendingLabel = strings.TrimSpace(strings.TrimPrefix(line, sectionMarker))
			hasPending = true
			continue
		}

		if strings.TrimSpace(line) == "" {
			pendingLabel = ""
			hasPending = false
			res = append(res, Line{Kind: KindBreak})
			continue
		}

		item := formatLine(line)
		if hasPending {
			item.Label = pendingLabel
			pendingLabel = ""
			hasPending = false
		}
		res = append(res, item)
	}

	if hasPending {
		res = append(res, Line{Kind: KindHeading, Label: pendingLabel})
	}

	return res
}

// segment is an alternating text/chord piece of a content line.
type segment struct {
	chord bool
	text  string
}

// splitSegments scans a line into text and chord segments. Text runs are
// soft-wrapped at the first space past the wrap threshold.
func splitSegments(line string) []segment {
	var segs []segment
	var cur []rune

	rs := []rune(line)
	i := 0
	for i < len(rs) {
		if rs[i] == '[' {
			if len(cur) > 0 {
				segs = append(segs, segment{text: string(cur)})
				cur = nil
			}
			i++
			var chord []rune
			for i < len(rs) && rs[i] != ']' {
				chord = append(chord, rs[i])
				i++
			}
			if i < len(rs) {
				i++ // closing bracket
			}
			if len(chord) > 0 {
				segs = append(segs, segment{chord: true, text: string(chord)})
			}
			continue
		}

		if rs[i] == ' ' && len(cur) > wrapThreshold {
			cur = append(cur, rs[i])
			i++
			segs = append(segs, segment{text: string(cur)})
			cur = nil
			continue
		}

		cur = append(cur, rs[i])
		i++
	}
	if len(cur) > 0 {
		segs = append(segs, segment{text: string(cur)})
	}

	return segs
}

// formatLine builds a content line item. Lines without chords carry the
// verbatim text; lines with chords are grouped into aligned chord/text
// units, chord-less groups receiving the alignment placeholder.
func formatLine(line string) Line {
	segs := splitSegments(line)

	hasChords := false
	for _, s := range segs {
		if s.chord {
			hasChords = true
			break
		}
	}
	if !hasChords {
		return Line{Kind: KindLine, Text: line}
	}

	var groups []Group
	var cur Group
	flush := func() {
		if cur.Text != "" || len(cur.Chords) > 0 {
			if len(cur.Chords) == 0 {
				cur.Chords = append(cur.Chords, ChordPlaceholder)
			}
			groups = append(groups, cur)
			cur = Group{}
		}
	}

	for _, s := range segs {
		if s.chord {
			if cur.Text != "" {
				flush()
			}
			cur.Chords = append(cur.Chords, s.text)
			continue
		}
		if cur.Text != "" {
			flush()
		}
		cur.Text = s.text
	}
	flush()

	return Line{Kind: KindLine, HasChords: true, Groups: groups}
}

// DivideText splits a rendered text into n roughly equal column chunks by
// line count, for multi-column layout.
func DivideText(text string, columns int) []string {
	if columns <= 1 {
		return []string{text}
	}

	lines := strings.Split(text, "\n")
	res := make([]string, 0, columns)
	for i := 0; i < columns; i++ {
		from := len(lines) * i / columns
		to := len(lines)
		if i < columns-1 {
			to = len(lines) * (i + 1) / columns
		}
		res = append(res, strings.Join(lines[from:to], "\n"))
	}
	return res
}

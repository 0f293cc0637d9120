// Package songpro parses the SongPro plain-text song format: songs separated
// by "---" lines, "@key=value" / "!key=value" attribute lines, "#" section
// markers, and "[CHORD]" annotations inside lyric lines.
//
// The parser never fails on malformed input; incomplete songs (missing
// title, artist, or body text) are silently dropped and reflected only in
// the result counts.
package songpro

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/songiapp/songidb/internal/textutil"
	"github.com/songiapp/songidb/pkg/types"
)

// Well-known attribute keys.
const (
	AttrTitle  = "title"
	AttrArtist = "artist"
	AttrLang   = "lang"
)

// Sentinel identifier parts for names that kebab-case to nothing.
const (
	noArtistID = "no-artist"
	noTitleID  = "no-title"
)

var (
	// separatorPattern matches a song separator: three or more hyphens,
	// optionally surrounded by whitespace.
	separatorPattern = regexp.MustCompile(`^\s*---+\s*$`)

	// attrPattern matches "@key=value" and "!key=value" attribute lines.
	attrPattern = regexp.MustCompile(`[@!]([^=]+)=(.*)`)
)

// ParseDatabase parses a multi-song SongPro blob into songs, de-duplicated
// artists, and letter buckets, with stable derived identifiers.
func ParseDatabase(data string) *types.SongDatabase {
	var songs []types.Song

	var attrs map[string]string
	var text strings.Builder
	var source strings.Builder

	flush := func() {
		if attrs != nil && strings.TrimSpace(text.String()) != "" &&
			attrs[AttrTitle] != "" && attrs[AttrArtist] != "" {
			songs = append(songs, types.Song{
				Title:  attrs[AttrTitle],
				Artist: attrs[AttrArtist],
				Lang:   attrs[AttrLang],
				Text:   strings.TrimSpace(text.String()),
				Source: strings.TrimSpace(source.String()),
			})
		}
		attrs = nil
		text.Reset()
		source.Reset()
	}

	for _, line := range strings.Split(data, "\n") {
		if separatorPattern.MatchString(line) {
			flush()
			continue
		}

		// The source buffer is the verbatim record; every non-separator
		// line lands in it, attribute lines included.
		source.WriteString(line)
		source.WriteString("\n")

		// Attribute lines are only recognized before body text starts;
		// afterwards they are ordinary body text.
		if text.Len() == 0 {
			if m := attrPattern.FindStringSubmatch(line); m != nil {
				if attrs == nil {
					attrs = make(map[string]string)
				}
				attrs[m[1]] = strings.TrimSpace(m[2])
				continue
			}
		}

		// Leading blank lines are skipped until the body starts.
		if strings.TrimSpace(line) != "" || text.Len() > 0 {
			text.WriteString(line)
			text.WriteString("\n")
		}
	}
	flush()

	// Artists de-duplicated by derived id, first-seen attributes winning.
	var artists []types.Artist
	artistIDByName := make(map[string]string)
	seenArtists := make(map[string]bool)
	for _, song := range songs {
		id := textutil.KebabCase(song.Artist)
		if id == "" {
			id = noArtistID
		}
		artistIDByName[song.Artist] = id
		if seenArtists[id] {
			continue
		}
		seenArtists[id] = true
		artists = append(artists, types.Artist{
			ID:     id,
			Name:   song.Artist,
			Letter: textutil.FirstLetter(song.Artist),
		})
	}

	// Song ids: {artistId}/{kebab(title)}, collisions within this parse
	// disambiguated with -2, -3, ... in first-seen order.
	songIDs := make(map[string]bool)
	for i := range songs {
		title := textutil.KebabCase(songs[i].Title)
		if title == "" {
			title = noTitleID
		}
		artistID := artistIDByName[songs[i].Artist]
		id := artistID + "/" + title
		suffix := ""
		for n := 1; songIDs[id+suffix]; {
			n++
			suffix = "-" + strconv.Itoa(n)
		}
		songIDs[id+suffix] = true

		songs[i].ID = id + suffix
		songs[i].ArtistID = artistID
	}

	// Letter buckets over the de-duplicated artists.
	letterCounts := make(map[string]int)
	var letterOrder []string
	for _, artist := range artists {
		if letterCounts[artist.Letter] == 0 {
			letterOrder = append(letterOrder, artist.Letter)
		}
		letterCounts[artist.Letter]++
	}
	letters := make([]types.Letter, 0, len(letterOrder))
	for _, letter := range letterOrder {
		letters = append(letters, types.Letter{
			Letter:      letter,
			ArtistCount: letterCounts[letter],
		})
	}

	songCounts := make(map[string]int)
	for _, song := range songs {
		songCounts[song.ArtistID]++
	}
	for i := range artists {
		artists[i].SongCount = songCounts[artists[i].ID]
	}

	return &types.SongDatabase{
		Songs:   songs,
		Artists: artists,
		Letters: letters,
	}
}

// ParseParts re-derives the attribute map and the body text from a single
// stored song source. Parsing stops at the first separator line.
func ParseParts(source string) (attrs map[string]string, text string) {
	attrs = make(map[string]string)
	var body strings.Builder

	for _, line := range strings.Split(source, "\n") {
		if separatorPattern.MatchString(line) {
			break
		}

		if body.Len() == 0 {
			if m := attrPattern.FindStringSubmatch(line); m != nil {
				attrs[m[1]] = strings.TrimSpace(m[2])
				continue
			}
		}

		if strings.TrimSpace(line) != "" || body.Len() > 0 {
			body.WriteString(line)
			body.WriteString("\n")
		}
	}

	return attrs, body.String()
}

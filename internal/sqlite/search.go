package sqlite

import (
	"fmt"
	"strings"

	"github.com/songiapp/songidb/internal/textutil"
	"github.com/songiapp/songidb/pkg/types"
)

// searchLimit is the global result budget shared across artists,
// songs-by-title, and songs-by-text.
const searchLimit = 100

// Search runs a multi-token prefix search over the active databases.
// Across tokens the match is AND; per token it is "prefix of some indexed
// word". Artists are tried first, then songs by title, then songs by text,
// each pass consuming the remaining budget. Criteria that tokenize to
// nothing return SearchDone false without scanning.
func (b *Backend) Search(criteria string) (types.SearchResult, error) {
	tokens := textutil.Tokenize(criteria)
	if len(tokens) == 0 {
		return types.SearchResult{}, nil
	}
	seed := textutil.LongestToken(tokens)

	active, err := b.ActiveDatabaseIDs()
	if err != nil {
		return types.SearchResult{}, err
	}
	if len(active) == 0 {
		return types.SearchResult{SearchDone: true}, nil
	}

	artists, err := b.searchArtists(tokens, seed, active, searchLimit)
	if err != nil {
		return types.SearchResult{}, err
	}
	textutil.LocaleSort(artists, func(a types.Artist) string { return a.Name })
	if len(artists) >= searchLimit {
		return types.SearchResult{Artists: artists, SearchDone: true}, nil
	}

	byTitle, err := b.searchSongs("title", tokens, seed, active, searchLimit-len(artists), nil)
	if err != nil {
		return types.SearchResult{}, err
	}
	textutil.LocaleSort(byTitle, func(s types.Song) string { return s.Title })
	if len(artists)+len(byTitle) >= searchLimit {
		return types.SearchResult{Artists: artists, Songs: byTitle, SearchDone: true}, nil
	}

	matched := make(map[string]bool, len(byTitle))
	for _, s := range byTitle {
		matched[s.ID] = true
	}
	byText, err := b.searchSongs("text", tokens, seed, active,
		searchLimit-len(artists)-len(byTitle), matched)
	if err != nil {
		return types.SearchResult{}, err
	}
	textutil.LocaleSort(byText, func(s types.Song) string { return s.Title })

	return types.SearchResult{
		Artists:    artists,
		Songs:      append(byTitle, byText...),
		SearchDone: true,
	}, nil
}

// searchArtists scans the artist name-word index. The prefix scan is seeded
// on the longest token; the all-tokens filter runs over the hydrated word
// sets.
func (b *Backend) searchArtists(tokens []string, seed string, active []string, limit int) ([]types.Artist, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + qualify("a", artistColumns) + `, w.word
        FROM artists a
        JOIN artist_words w ON w.artist_id = a.id
        WHERE a.database_id IN (` + placeholders(len(active)) + `)
          AND a.id IN (SELECT artist_id FROM artist_words WHERE word LIKE ?)
        ORDER BY a.id`
	args := append(stringArgs(active), seed+"%")

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching artists: %w", err)
	}
	defer rows.Close()

	var res []types.Artist
	var cur types.Artist
	var curWords []string
	flush := func() {
		if cur.ID != "" && len(res) < limit && allTokensPrefixMatch(tokens, curWords) {
			res = append(res, cur)
		}
	}
	for rows.Next() {
		var a types.Artist
		var word string
		if err := rows.Scan(&a.ID, &a.Name, &a.Letter, &a.LetterID, &a.SongCount,
			&a.DatabaseID, &a.DatabaseTitle, &word); err != nil {
			return nil, fmt.Errorf("scanning artist match: %w", err)
		}
		if a.ID != cur.ID {
			flush()
			cur = a
			curWords = curWords[:0]
		}
		curWords = append(curWords, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	flush()

	return res, nil
}

// searchSongs scans one song word field. For the text pass the title words
// double as a secondary match surface, so both fields are hydrated and the
// all-tokens filter sees their union. exclude drops songs already matched
// by an earlier pass.
func (b *Backend) searchSongs(field string, tokens []string, seed string, active []string, limit int, exclude map[string]bool) ([]types.Song, error) {
	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	// The title pass matches against title words only; the text pass sees
	// the union of title and text words.
	wordScope := ""
	if field == "title" {
		wordScope = " AND w.field = 'title'"
	}

	query := "SELECT " + qualify("s", songColumns) + `, w.word
        FROM songs s
        JOIN song_words w ON w.song_id = s.id` + wordScope + `
        WHERE s.database_id IN (` + placeholders(len(active)) + `)
          AND s.id IN (SELECT song_id FROM song_words WHERE field = ? AND word LIKE ?)
        ORDER BY s.id`
	args := append(stringArgs(active), field, seed+"%")

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching songs by %s: %w", field, err)
	}
	defer rows.Close()

	var res []types.Song
	var cur types.Song
	var curWords []string
	flush := func() {
		if cur.ID != "" && !exclude[cur.ID] && len(res) < limit &&
			allTokensPrefixMatch(tokens, curWords) {
			res = append(res, cur)
		}
	}
	for rows.Next() {
		var s types.Song
		var word string
		if err := rows.Scan(&s.ID, &s.Title, &s.ArtistID, &s.Artist, &s.Lang,
			&s.Source, &s.Text, &s.DatabaseID, &s.DatabaseTitle, &word); err != nil {
			return nil, fmt.Errorf("scanning song match: %w", err)
		}
		if s.ID != cur.ID {
			flush()
			cur = s
			curWords = curWords[:0]
		}
		curWords = append(curWords, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	flush()

	return res, nil
}

// allTokensPrefixMatch reports whether every token is a prefix of at least
// one word in the set.
func allTokensPrefixMatch(tokens, words []string) bool {
	for _, token := range tokens {
		found := false
		for _, word := range words {
			if strings.HasPrefix(word, token) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// qualify prefixes every column in a comma-separated list with a table alias.
func qualify(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}

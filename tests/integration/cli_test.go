// CLI integration tests for songidb. These run the built binary against an
// isolated data directory and walk the offline file-database workflow:
// create, edit, publish, browse, search, and recents.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain builds the songidb binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "songidb-test-*")
	if err != nil {
		SetBuildErr(err)
		os.Exit(1)
	}
	binPath := filepath.Join(tmpDir, "songidb")
	SetSongidbBin(binPath)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/songidb")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		SetBuildErr(&BuildError{
			Err:    err,
			Output: string(output),
		})
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(tmpDir)

	os.Exit(code)
}

// sampleSongPro holds two songs by two artists.
const sampleSongPro = `@title=First Song
@artist=Alice

Hello [C]world

---
@title=Second Song
@artist=Bob

[Am]Another [F]line
`

// publishSample creates a file database with the sample content and
// publishes it, returning the published database id.
func publishSample(t *testing.T, env *TestEnv) string {
	t.Helper()

	env.MustRunSongidb("filedb", "create", "My songbook")

	srcFile := filepath.Join(env.TempDir, "songs.songpro")
	if err := os.WriteFile(srcFile, []byte(sampleSongPro), 0644); err != nil {
		t.Fatalf("write source file: %v", err)
	}
	env.MustRunSongidb("filedb", "edit", "1", srcFile)
	env.MustRunSongidb("filedb", "publish", "1")

	return "local_1"
}

func TestVersion(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRunSongidb("version")
	if !strings.Contains(result.Stdout, "songidb") {
		t.Errorf("expected version output, got %q", result.Stdout)
	}
}

func TestDatabasesEmpty(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRunSongidb("databases")
	if !strings.Contains(result.Stdout, "No databases installed.") {
		t.Errorf("expected empty database list, got %q", result.Stdout)
	}

	// Attach created the store file.
	if _, err := os.Stat(filepath.Join(env.DataDir, "songidb.db")); err != nil {
		t.Errorf("store file not created: %v", err)
	}
}

func TestFileDatabaseWorkflow(t *testing.T) {
	env := NewTestEnv(t)
	dbID := publishSample(t, env)

	result := env.MustRunSongidb("databases", "--json")
	type database struct {
		ID          string `json:"id"`
		IsActive    bool   `json:"isActive"`
		SongCount   int    `json:"songCount"`
		ArtistCount int    `json:"artistCount"`
	}
	databases := ParseJSON[[]database](t, result.Stdout)
	if len(databases) != 1 {
		t.Fatalf("expected 1 database, got %d", len(databases))
	}
	if databases[0].ID != dbID {
		t.Errorf("expected database id %q, got %q", dbID, databases[0].ID)
	}
	if !databases[0].IsActive {
		t.Error("published database should be active")
	}
	if databases[0].SongCount != 2 || databases[0].ArtistCount != 2 {
		t.Errorf("expected 2 songs and 2 artists, got %d and %d",
			databases[0].SongCount, databases[0].ArtistCount)
	}

	// Non-numeric file database ids are rejected.
	failure := env.RunSongidb("filedb", "show", "abc")
	if failure.ExitCode == 0 {
		t.Error("expected non-zero exit for non-numeric file database id")
	}
	if !strings.Contains(failure.Stderr, "invalid") {
		t.Errorf("expected invalid-id message, got %q", failure.Stderr)
	}
}

func TestBrowseArtistsAndSongs(t *testing.T) {
	env := NewTestEnv(t)
	dbID := publishSample(t, env)

	result := env.MustRunSongidb("artists")
	if !strings.Contains(result.Stdout, "Alice") || !strings.Contains(result.Stdout, "Bob") {
		t.Errorf("expected both artists, got %q", result.Stdout)
	}

	result = env.MustRunSongidb("letters")
	if !strings.Contains(result.Stdout, "A") || !strings.Contains(result.Stdout, "B") {
		t.Errorf("expected letters A and B, got %q", result.Stdout)
	}

	result = env.MustRunSongidb("songs", dbID+"/alice")
	if !strings.Contains(result.Stdout, "First Song") {
		t.Errorf("expected Alice's song, got %q", result.Stdout)
	}
}

func TestShowSong(t *testing.T) {
	env := NewTestEnv(t)
	dbID := publishSample(t, env)

	result := env.MustRunSongidb("show", dbID+"/alice/first-song")
	if !strings.Contains(result.Stdout, "First Song") {
		t.Errorf("expected song title, got %q", result.Stdout)
	}
	if !strings.Contains(result.Stdout, "Hello world") {
		t.Errorf("expected chord-stripped lyric row, got %q", result.Stdout)
	}
	if !strings.Contains(result.Stdout, "C") {
		t.Errorf("expected chord row, got %q", result.Stdout)
	}

	// Transposed rendering shifts the chord.
	result = env.MustRunSongidb("show", dbID+"/alice/first-song", "--transpose", "2")
	if !strings.Contains(result.Stdout, "D") {
		t.Errorf("expected transposed chord D, got %q", result.Stdout)
	}

	// Raw source keeps attribute lines and ignores transposition.
	result = env.MustRunSongidb("show", dbID+"/alice/first-song", "--source", "--transpose", "2")
	if !strings.Contains(result.Stdout, "@title=First Song") {
		t.Errorf("expected attribute lines in raw source, got %q", result.Stdout)
	}
	if !strings.Contains(result.Stdout, "[C]") {
		t.Errorf("expected untransposed chord in raw source, got %q", result.Stdout)
	}

	// Unknown song is a user error.
	failure := env.RunSongidb("show", dbID+"/alice/no-such-song")
	if failure.ExitCode == 0 {
		t.Error("expected non-zero exit for unknown song")
	}
}

func TestSearch(t *testing.T) {
	env := NewTestEnv(t)
	publishSample(t, env)

	result := env.MustRunSongidb("search", "first")
	if !strings.Contains(result.Stdout, "First Song") {
		t.Errorf("expected title match, got %q", result.Stdout)
	}

	result = env.MustRunSongidb("search", "hello")
	if !strings.Contains(result.Stdout, "First Song") {
		t.Errorf("expected text match, got %q", result.Stdout)
	}

	result = env.MustRunSongidb("search", "alice")
	if !strings.Contains(result.Stdout, "Alice") {
		t.Errorf("expected artist match, got %q", result.Stdout)
	}

	result = env.MustRunSongidb("search", "zzzz")
	if !strings.Contains(result.Stdout, "No results.") {
		t.Errorf("expected no results, got %q", result.Stdout)
	}

	// Criteria that tokenize to nothing are distinguished from zero hits.
	result = env.MustRunSongidb("search", "! -")
	if !strings.Contains(result.Stdout, "Nothing to search for.") {
		t.Errorf("expected empty-criteria message, got %q", result.Stdout)
	}
}

func TestDeactivateHidesContent(t *testing.T) {
	env := NewTestEnv(t)
	dbID := publishSample(t, env)

	env.MustRunSongidb("deactivate", dbID)

	result := env.MustRunSongidb("artists")
	if !strings.Contains(result.Stdout, "No artists found.") {
		t.Errorf("expected no artists after deactivation, got %q", result.Stdout)
	}

	result = env.MustRunSongidb("search", "first")
	if !strings.Contains(result.Stdout, "No results.") {
		t.Errorf("expected no search results after deactivation, got %q", result.Stdout)
	}

	env.MustRunSongidb("activate", dbID)
	result = env.MustRunSongidb("artists")
	if !strings.Contains(result.Stdout, "Alice") {
		t.Errorf("expected artists back after activation, got %q", result.Stdout)
	}
}

func TestRecents(t *testing.T) {
	env := NewTestEnv(t)
	dbID := publishSample(t, env)

	env.MustRunSongidb("show", dbID+"/alice/first-song")
	env.MustRunSongidb("songs", dbID+"/bob")

	result := env.MustRunSongidb("recents")
	if !strings.Contains(result.Stdout, "First Song") {
		t.Errorf("expected recent song, got %q", result.Stdout)
	}
	if !strings.Contains(result.Stdout, "Bob") {
		t.Errorf("expected recent artist, got %q", result.Stdout)
	}
}

func TestDeleteDatabase(t *testing.T) {
	env := NewTestEnv(t)
	dbID := publishSample(t, env)

	env.MustRunSongidb("delete", dbID)

	result := env.MustRunSongidb("databases")
	if !strings.Contains(result.Stdout, "No databases installed.") {
		t.Errorf("expected empty database list after delete, got %q", result.Stdout)
	}

	failure := env.RunSongidb("delete", dbID)
	if failure.ExitCode == 0 {
		t.Error("expected non-zero exit for deleting unknown database")
	}
}

// Filedb commands manage user-editable local song databases.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/songiapp/songidb/internal/sqlite"
	"github.com/songiapp/songidb/pkg/types"
)

var filedbCmd = &cobra.Command{
	Use:   "filedb",
	Short: "Manage local editable song databases",
	Long: `Filedb manages local databases whose SongPro source you edit
yourself. A file database is raw text until published; publishing
parses it and indexes the result alongside downloaded databases.

Example:
  songidb filedb create "My songbook"
  songidb filedb add-songs 1 songs.songpro
  songidb filedb publish 1`,
}

func init() {
	filedbCmd.AddCommand(filedbCreateCmd)
	filedbCmd.AddCommand(filedbListCmd)
	filedbCmd.AddCommand(filedbShowCmd)
	filedbCmd.AddCommand(filedbEditCmd)
	filedbCmd.AddCommand(filedbAddSongsCmd)
	filedbCmd.AddCommand(filedbPublishCmd)
	filedbCmd.AddCommand(filedbDeleteCmd)
}

var filedbCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create an empty file database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		id, err := backend.CreateFileDatabase(args[0])
		if err != nil {
			if err == types.ErrEmptyTitle {
				fmt.Fprintln(os.Stderr, "title must not be empty")
				os.Exit(exitUserError)
			}
			return fmt.Errorf("create file database: %w", err)
		}

		fmt.Printf("Created file database %d\n", id)
		return nil
	},
}

var filedbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List file databases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		databases, err := backend.FindFileDatabases()
		if err != nil {
			return fmt.Errorf("list file databases: %w", err)
		}

		if flagJSON {
			return printJSON(databases)
		}

		printFileDatabaseTable(databases)
		return nil
	},
}

var filedbShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a file database's SongPro source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseFileDatabaseID(args[0])
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		fdb, err := getFileDatabase(backend, id)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(fdb)
		}

		fmt.Println(fdb.Data)
		return nil
	},
}

var filedbEditCmd = &cobra.Command{
	Use:   "edit <id> [file]",
	Short: "Replace a file database's source from a file or stdin",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseFileDatabaseID(args[0])
		if err != nil {
			return err
		}

		data, err := readSource(args[1:])
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		parsed, err := backend.SaveFileDatabaseData(id, data)
		if err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "file database %d not found\n", id)
				os.Exit(exitUserError)
			}
			return fmt.Errorf("save file database: %w", err)
		}

		fmt.Printf("Saved: %d song(s), %d artist(s)\n", len(parsed.Songs), len(parsed.Artists))
		return nil
	},
}

var filedbAddSongsCmd = &cobra.Command{
	Use:   "add-songs <id> [file]",
	Short: "Append SongPro songs from a file or stdin",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseFileDatabaseID(args[0])
		if err != nil {
			return err
		}

		source, err := readSource(args[1:])
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		parsed, err := backend.AppendFileDatabaseSongs(id, source)
		if err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "file database %d not found\n", id)
				os.Exit(exitUserError)
			}
			return fmt.Errorf("append songs: %w", err)
		}

		fmt.Printf("Saved: %d song(s), %d artist(s)\n", len(parsed.Songs), len(parsed.Artists))
		return nil
	},
}

var filedbPublishCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Parse a file database and index it locally",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseFileDatabaseID(args[0])
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		parsed, err := backend.PublishFileDatabase(id)
		if err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "file database %d not found\n", id)
				os.Exit(exitUserError)
			}
			return fmt.Errorf("publish file database: %w", err)
		}

		fmt.Printf("Published: %d song(s), %d artist(s)\n", len(parsed.Songs), len(parsed.Artists))
		return nil
	},
}

var filedbDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a file database and its published index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseFileDatabaseID(args[0])
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.DeleteFileDatabase(id); err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "file database %d not found\n", id)
				os.Exit(exitUserError)
			}
			return fmt.Errorf("delete file database: %w", err)
		}

		fmt.Printf("File database %d deleted\n", id)
		return nil
	},
}

// parseFileDatabaseID parses a numeric file database id argument.
func parseFileDatabaseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: file database id %q is not a number", types.ErrInvalidID, arg)
	}
	return id, nil
}

// getFileDatabase loads one file database, exiting with a user error when
// it does not exist.
func getFileDatabase(backend *sqlite.Backend, id int64) (types.FileDatabase, error) {
	fdb, err := backend.GetFileDatabase(id)
	if err != nil {
		if isNotFound(err) {
			fmt.Fprintf(os.Stderr, "file database %d not found\n", id)
			os.Exit(exitUserError)
		}
		return types.FileDatabase{}, fmt.Errorf("get file database: %w", err)
	}
	return fdb, nil
}

// readSource reads SongPro text from the optional file argument, or stdin
// when no file is given.
func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// printFileDatabaseTable prints file databases in a human-readable table format.
func printFileDatabaseTable(databases []types.FileDatabase) {
	if len(databases) == 0 {
		fmt.Println("No file databases.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tTITLE\tSONGS\tARTISTS")
	fmt.Fprintln(w, "--\t-----\t-----\t-------")
	for _, fdb := range databases {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", fdb.ID, fdb.Title, fdb.SongCount, fdb.ArtistCount)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d file database(s)\n", len(databases))
}

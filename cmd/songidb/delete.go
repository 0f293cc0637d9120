// Delete command removes an installed database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/songiapp/songidb/internal/remote"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <database-id>",
	Short: "Remove an installed database and its index",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	databaseID := args[0]

	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	queue := remote.NewQueue(newClient(), backend, newLogger())
	itemID := queue.EnqueueDelete(databaseID)

	var result remote.Event
	for event := range queue.Events() {
		if event.ItemID != itemID || event.State == remote.EventStarted {
			continue
		}
		result = event
		break
	}
	queue.Close()

	if result.State == remote.EventFailed {
		if isNotFound(result.Err) {
			fmt.Fprintf(os.Stderr, "database %q not found\n", databaseID)
			os.Exit(exitUserError)
		}
		return fmt.Errorf("delete %s: %w", databaseID, result.Err)
	}

	fmt.Printf("Database %s deleted\n", databaseID)
	return nil
}

// Activate and deactivate commands toggle a database's active flag.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var activateCmd = &cobra.Command{
	Use:   "activate <database-id>",
	Short: "Include a database in listing and search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setActive(args[0], true)
	},
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate <database-id>",
	Short: "Exclude a database from listing and search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setActive(args[0], false)
	},
}

func setActive(databaseID string, isActive bool) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	if err := backend.SetActive(databaseID, isActive); err != nil {
		if isNotFound(err) {
			fmt.Fprintf(os.Stderr, "database %q not found\n", databaseID)
			os.Exit(exitUserError)
		}
		return fmt.Errorf("set active: %w", err)
	}

	state := "activated"
	if !isActive {
		state = "deactivated"
	}
	fmt.Printf("Database %s %s\n", databaseID, state)
	return nil
}

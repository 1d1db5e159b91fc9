package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwhitt/daybook/internal/client"
)

var rmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a task or note",
	Long: `Delete a task (or, with --note, a note) by id.

Deletion is by identity alone and works for any day. Deleting an id that no
longer exists still succeeds.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		c := client.New(baseURL(cfg))
		id := parseIDArg(args[0])

		isNote, _ := cmd.Flags().GetBool("note")

		var err error
		kind := "task"
		if isNote {
			kind = "note"
			err = c.DeleteNote(context.Background(), id)
		} else {
			err = c.DeleteTask(context.Background(), id)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting %s %d: %v\n", kind, id, err)
			os.Exit(1)
		}

		fmt.Printf("Deleted %s #%d\n", kind, id)
	},
}

func init() {
	rmCmd.Flags().Bool("note", false, "Delete a note instead of a task")

	rootCmd.AddCommand(rmCmd)
}

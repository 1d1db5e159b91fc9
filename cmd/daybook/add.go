package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/jwhitt/daybook/internal/dateutil"
)

// resolveDate turns a user-supplied day into a canonical date string.
// Accepts the canonical YYYY-MM-DD form directly, otherwise tries natural
// language ("tomorrow", "next monday").
func resolveDate(s string) (string, error) {
	if dateutil.Validate(s) == nil {
		return s, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	res, err := w.Parse(s, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	if res == nil {
		return "", fmt.Errorf("unrecognized date %q: use YYYY-MM-DD or e.g. \"tomorrow\"", s)
	}
	return dateutil.Canonical(res.Time), nil
}

var addCmd = &cobra.Command{
	Use:   "add TEXT",
	Short: "Add a task",
	Long: `Add a task for a day.

Example usage:
  daybook add "Buy milk"                # today
  daybook add "5km run" --on tomorrow
  daybook add "Dentist" --on 2026-09-03`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		on, _ := cmd.Flags().GetString("on")
		date, err := resolveDate(on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		session := newSession(cfg)
		task, err := session.AddTask(context.Background(), args[0], date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error adding task: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Added task #%d for %s: %s\n", task.ID, task.Date, task.Text)
	},
}

var noteCmd = &cobra.Command{
	Use:   "note TEXT",
	Short: "Add a note",
	Long: `Add a free-text note for a day. Notes have no completion state;
they are only created and deleted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		on, _ := cmd.Flags().GetString("on")
		date, err := resolveDate(on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		session := newSession(cfg)
		note, err := session.AddNote(context.Background(), args[0], date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error adding note: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Added note #%d for %s: %s\n", note.ID, note.Date, note.Text)
	},
}

func init() {
	addCmd.Flags().String("on", "today", "Day the task belongs to (YYYY-MM-DD or natural language)")
	noteCmd.Flags().String("on", "today", "Day the note belongs to (YYYY-MM-DD or natural language)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(noteCmd)
}

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jwhitt/daybook/internal/client"
)

func parseIDArg(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid id %q\n", arg)
		os.Exit(1)
	}
	return id
}

func toggleTask(id int64, completed bool) {
	cfg := loadConfig()
	c := client.New(baseURL(cfg))

	if err := c.SetTaskCompletion(context.Background(), id, completed); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating task %d: %v\n", id, err)
		os.Exit(1)
	}

	state := "done"
	if !completed {
		state = "not done"
	}
	fmt.Printf("Task #%d marked %s\n", id, state)
}

var doneCmd = &cobra.Command{
	Use:   "done ID",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		toggleTask(parseIDArg(args[0]), true)
	},
}

var undoneCmd = &cobra.Command{
	Use:   "undone ID",
	Short: "Mark a task not completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		toggleTask(parseIDArg(args[0]), false)
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
}

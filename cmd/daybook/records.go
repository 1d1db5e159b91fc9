package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwhitt/daybook/internal/client"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List every task and note across all days",
	Long: `List all records in the store, grouped by kind and ordered by
(date, creation time). This is the reporting view; use "daybook day" for
the day view.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		c := client.New(baseURL(cfg))

		records, err := c.Records(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching records: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(sectionStyle.Render(fmt.Sprintf("TASKS (%d)", len(records.Tasks))))
		for _, t := range records.Tasks {
			mark := "[ ]"
			if t.Completed {
				mark = "[x]"
			}
			fmt.Printf("  %s %s  %s %s\n", t.Date, mark, t.Text, idStyle.Render(fmt.Sprintf("#%d", t.ID)))
		}

		fmt.Println(sectionStyle.Render(fmt.Sprintf("NOTES (%d)", len(records.Notes))))
		for _, n := range records.Notes {
			fmt.Printf("  %s %s %s\n", n.Date, noteStyle.Render(n.Text), idStyle.Render(fmt.Sprintf("#%d", n.ID)))
		}
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)
}

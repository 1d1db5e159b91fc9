package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jwhitt/daybook/internal/dateutil"
)

var (
	dayHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	idStyle        = lipgloss.NewStyle().Faint(true)
	noteStyle      = lipgloss.NewStyle().Italic(true)
	sectionStyle   = lipgloss.NewStyle().Bold(true)
)

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "Show one day's tasks and notes",
	Long: `Show the tasks and notes for a single day.

The date argument accepts the canonical YYYY-MM-DD form or natural language
("today", "tomorrow", "last friday"). Defaults to today.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		date := dateutil.Today()
		if len(args) == 1 {
			var err error
			date, err = resolveDate(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}

		session := newSession(cfg)
		if err := session.Refresh(context.Background(), date); err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", date, err)
			os.Exit(1)
		}

		label, _ := dateutil.DayLabel(date)
		fmt.Println(dayHeaderStyle.Render(fmt.Sprintf("%s — %s", label, date)))

		tasks := session.Tasks(date)
		if len(tasks) == 0 {
			fmt.Println("  no tasks")
		}
		for _, t := range tasks {
			line := fmt.Sprintf("[ ] %s", t.Text)
			if t.Completed {
				line = doneStyle.Render(fmt.Sprintf("[x] %s", t.Text))
			}
			fmt.Printf("  %s %s\n", line, idStyle.Render(fmt.Sprintf("#%d", t.ID)))
		}

		notes := session.Notes(date)
		if len(notes) > 0 {
			fmt.Println(sectionStyle.Render("  notes"))
			for _, n := range notes {
				fmt.Printf("  %s %s\n", noteStyle.Render(n.Text), idStyle.Render(fmt.Sprintf("#%d", n.ID)))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)
}

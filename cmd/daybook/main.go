// Command daybook is a personal task and note tracker organized by
// calendar day.
//
// daybook serve runs the HTTP API over a local SQLite store; the other
// commands are clients of a running server.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwhitt/daybook/internal/client"
	"github.com/jwhitt/daybook/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "Day-scoped task and note tracker",
	Long: `daybook tracks to-do tasks and free-text notes, each scoped to a
calendar day.

Run the server:
  daybook serve

Work with a day:
  daybook day                      # today's tasks and notes
  daybook add "Buy milk"           # add a task for today
  daybook add "Call mom" --on tomorrow
  daybook note "Great weather"     # add a note for today
  daybook done 3                   # mark task 3 completed
  daybook rm 3                     # delete task 3
  daybook records                  # everything, across all days`,
	SilenceUsage: true,
}

var serverURL string

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "daybook server URL (default http://localhost:8080)")
}

// loadConfig loads configuration, exiting on failure. Client commands have
// no use for the config source; serve loads its own so it can watch the
// file.
func loadConfig() *config.Config {
	cfg, _, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newSession builds an API session against the configured server.
func newSession(cfg *config.Config) *client.Session {
	return client.NewSession(client.New(baseURL(cfg)))
}

// baseURL resolves the server URL from the --server flag or config.
func baseURL(cfg *config.Config) string {
	if serverURL != "" {
		return strings.TrimSuffix(serverURL, "/")
	}
	addr := cfg.HTTP.Addr
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

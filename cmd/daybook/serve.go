package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jwhitt/daybook/internal/api"
	"github.com/jwhitt/daybook/internal/config"
	"github.com/jwhitt/daybook/internal/logging"
	"github.com/jwhitt/daybook/internal/store"
	"github.com/jwhitt/daybook/internal/weather"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the daybook API server",
	Long: `Run the daybook HTTP API over the local SQLite store.

The store is created on first use: an absent or empty database file gets the
schema exactly once. The weather endpoint needs a weatherapi.com key in the
config (weather.api_key) or DAYBOOK_WEATHER_API_KEY; without one it reports
a degraded state and everything else keeps working.

Example usage:
  daybook serve                  # Listen on :8080, store in db/daybook.db
  daybook serve --addr :9000
  daybook serve --db /tmp/daybook.db`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, src, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Addr = addr
		}
		if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
			cfg.DB.Path = dbPath
		}

		logger := logging.New("api", cfg.Log.File)

		st, err := store.Open(cfg.DB.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		if err := st.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing store: %v\n", err)
			os.Exit(1)
		}

		var weatherSrc api.WeatherSource
		if cfg.Weather.APIKey != "" {
			weatherSrc = weather.NewClient(cfg.Weather.APIKey, cfg.Weather.City)
		} else {
			logger.Println("No weather API key configured; weather endpoint degraded")
		}

		server := api.NewServer(st, weatherSrc, &api.Config{
			Addr:   cfg.HTTP.Addr,
			Logger: logger,
		})

		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to start server: %v\n", err)
			os.Exit(1)
		}

		src.Watch(func(fresh *config.Config) {
			// Address and store changes need a restart; only note the
			// reload so operators can see edits were picked up.
			logger.Printf("Config reloaded (http.addr=%s db.path=%s)", fresh.HTTP.Addr, fresh.DB.Path)
		}, func(err error) {
			logger.Printf("Config reload failed: %v", err)
		})

		fmt.Printf("daybook server started on http://localhost%s\n", cfg.HTTP.Addr)
		fmt.Printf("Store: %s\n", cfg.DB.Path)
		fmt.Println("\nPress Ctrl+C to stop...")

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		<-ctx.Done()

		fmt.Println("\nShutting down...")
		if err := server.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Address to listen on (overrides config)")
	serveCmd.Flags().String("db", "", "SQLite database path (overrides config)")

	rootCmd.AddCommand(serveCmd)
}

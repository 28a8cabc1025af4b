package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chriserin/specdraw/internal/config"
	"github.com/chriserin/specdraw/internal/prompts"
	"github.com/chriserin/specdraw/internal/server"
)

var portFlag int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if portFlag != 0 {
			c.Port = portFlag
		}
		return RunServe(cmd.Context(), c)
	},
}

func init() {
	serveCmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

// RunServe blocks serving the API until ctx is cancelled.
func RunServe(ctx context.Context, c config.Config) error {
	store, closeStore, err := openStore(c)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := server.New(server.Options{
		Completer: newCompleter(c),
		Prompts:   prompts.NewLoader(c.PromptsDir),
		Store:     store,
		Logger:    slog.Default(),
		Status:    c.Status(),
	})
	return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", c.Port))
}

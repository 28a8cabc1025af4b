package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chriserin/specdraw/internal/config"
	"github.com/chriserin/specdraw/internal/ui"
)

var (
	formatFlag    string
	noHistoryFlag bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Parse markdown design documents into structured specifications",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if noHistoryFlag {
			c.DBPath = ""
		}
		return RunParse(cmd.Context(), cmd.OutOrStdout(), c, args, formatFlag)
	},
}

func init() {
	parseCmd.Flags().StringVar(&formatFlag, "format", "json", "Output format: json, yaml or text")
	parseCmd.Flags().BoolVar(&noHistoryFlag, "no-history", false, "Do not record the parse in the history database")
	rootCmd.AddCommand(parseCmd)
}

// RunParse parses each path and writes the result in format. Every parse is
// recorded in the history store when one is configured.
func RunParse(ctx context.Context, w io.Writer, c config.Config, paths []string, format string) error {
	switch format {
	case "json", "yaml", "text":
	default:
		return fmt.Errorf("unknown format %q (want json, yaml or text)", format)
	}

	store, closeStore, err := openStore(c)
	if err != nil {
		return err
	}
	defer closeStore()

	for i, path := range paths {
		p, err := parseFile(ctx, c, path)
		if err != nil {
			return err
		}
		if store != nil {
			if _, err := store.SaveParse(ctx, string(p.source), p.spec); err != nil {
				return fmt.Errorf("saving %s: %w", path, err)
			}
		}

		switch format {
		case "json":
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(p.spec); err != nil {
				return fmt.Errorf("encoding %s: %w", path, err)
			}
		case "yaml":
			if i > 0 {
				fmt.Fprintln(w, "---")
			}
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(p.spec); err != nil {
				return fmt.Errorf("encoding %s: %w", path, err)
			}
			if err := enc.Close(); err != nil {
				return err
			}
		case "text":
			ui.ParseSummary(w, p.spec, string(p.source), len(p.diags))
			for _, d := range p.diags {
				ui.DiagnosticLine(w, d)
			}
		}
	}
	return nil
}

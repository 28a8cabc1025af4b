package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/specdraw/internal/config"
	"github.com/chriserin/specdraw/internal/ui"
)

var limitFlag int

var historyCmd = &cobra.Command{
	Use:   "history [<id>]",
	Short: "List recorded parses, or show one by ID",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return RunHistoryShow(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
		}
		return RunHistory(cmd.Context(), cmd.OutOrStdout(), cfg, limitFlag)
	},
}

func init() {
	historyCmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum number of entries to list")
	rootCmd.AddCommand(historyCmd)
}

func RunHistory(ctx context.Context, w io.Writer, c config.Config, limit int) error {
	store, closeStore, err := openStore(c)
	if err != nil {
		return err
	}
	defer closeStore()
	if store == nil {
		return fmt.Errorf("history is disabled: db_path is empty")
	}

	records, err := store.ListParses(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	// Compute column widths
	idWidth, titleWidth := 0, 0
	for _, r := range records {
		if n := len(fmt.Sprintf("#%d", r.ID)); n > idWidth {
			idWidth = n
		}
		if len(r.Title) > titleWidth {
			titleWidth = len(r.Title)
		}
	}

	for _, r := range records {
		ui.HistoryRow(w, r, idWidth, titleWidth)
	}
	return nil
}

// RunHistoryShow prints the stored specification of one parse as JSON.
func RunHistoryShow(ctx context.Context, w io.Writer, c config.Config, rawID string) error {
	rawID = strings.TrimPrefix(rawID, "#")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid history ID: %s", rawID)
	}

	store, closeStore, err := openStore(c)
	if err != nil {
		return err
	}
	defer closeStore()
	if store == nil {
		return fmt.Errorf("history is disabled: db_path is empty")
	}

	record, err := store.GetParse(ctx, id)
	if err != nil {
		return err
	}

	ui.HistoryRow(w, *record, 0, 0)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(record.Spec)
}

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/specdraw/internal/config"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence <file> <use-case-id>",
	Short: "Render the Mermaid sequence diagram of one use case",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSequence(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(sequenceCmd)
}

func RunSequence(ctx context.Context, w io.Writer, c config.Config, path, useCaseID string) error {
	p, err := parseFile(ctx, c, path)
	if err != nil {
		return err
	}
	uc := p.spec.UseCaseByID(useCaseID)
	if uc == nil {
		return fmt.Errorf("use case %s not found in %s", useCaseID, path)
	}
	fmt.Fprintln(w, newDiagramGenerator(c).Sequence(ctx, uc, p.spec))
	return nil
}

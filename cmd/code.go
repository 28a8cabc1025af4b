package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chriserin/specdraw/internal/codegen"
	"github.com/chriserin/specdraw/internal/config"
	"github.com/chriserin/specdraw/internal/prompts"
	"github.com/chriserin/specdraw/internal/ui"
)

var outFlag string

var codeCmd = &cobra.Command{
	Use:   "code <file>",
	Short: "Generate a Python project scaffold from a design document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCode(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], outFlag)
	},
}

func init() {
	codeCmd.Flags().StringVar(&outFlag, "out", "", "Write files into this directory instead of printing them")
	rootCmd.AddCommand(codeCmd)
}

func RunCode(ctx context.Context, w io.Writer, c config.Config, path, outDir string) error {
	p, err := parseFile(ctx, c, path)
	if err != nil {
		return err
	}
	diagrams := newDiagramGenerator(c).All(ctx, p.spec)

	g := codegen.NewGenerator(newCompleter(c), prompts.NewLoader(c.PromptsDir), slog.Default())
	files, err := g.Generate(ctx, p.spec, diagrams)
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	if outDir == "" {
		for i, name := range files.Names() {
			if i > 0 {
				fmt.Fprintln(w)
			}
			ui.Header(w, "# "+name)
			fmt.Fprintln(w, files[name])
		}
		return nil
	}

	if err := codegen.WriteFiles(outDir, files); err != nil {
		return err
	}
	for _, name := range files.Names() {
		ui.WrittenLine(w, name)
	}
	ui.SummaryLine(w, len(files), outDir)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/chriserin/specdraw/internal/config"
	"github.com/chriserin/specdraw/internal/diagram"
	"github.com/chriserin/specdraw/internal/prompts"
	"github.com/chriserin/specdraw/internal/ui"
)

var kindFlag string

var diagramsCmd = &cobra.Command{
	Use:   "diagrams <file>",
	Short: "Render Mermaid class, architecture and use case diagrams",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunDiagrams(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], kindFlag)
	},
}

func init() {
	diagramsCmd.Flags().StringVar(&kindFlag, "kind", "all", "Diagram to render: all, class, architecture or use-case")
	rootCmd.AddCommand(diagramsCmd)
}

func newDiagramGenerator(c config.Config) *diagram.Generator {
	return diagram.NewGenerator(newCompleter(c), prompts.NewLoader(c.PromptsDir), slog.Default())
}

func RunDiagrams(ctx context.Context, w io.Writer, c config.Config, path, kind string) error {
	p, err := parseFile(ctx, c, path)
	if err != nil {
		return err
	}
	g := newDiagramGenerator(c)

	switch kind {
	case "class":
		fmt.Fprintln(w, g.Class(ctx, p.spec))
	case "architecture":
		fmt.Fprintln(w, g.Architecture(ctx, p.spec))
	case "use-case":
		fmt.Fprintln(w, diagram.UseCase(p.spec))
	case "all":
		d := g.All(ctx, p.spec)
		for i, section := range []struct{ title, body string }{
			{"Class diagram", d.Class},
			{"Architecture diagram", d.Architecture},
			{"Use case diagram", d.UseCase},
		} {
			if i > 0 {
				fmt.Fprintln(w)
			}
			ui.Header(w, section.title)
			fmt.Fprintln(w, section.body)
		}
	default:
		return fmt.Errorf("unknown diagram kind %q", kind)
	}
	return nil
}

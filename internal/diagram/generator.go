package diagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chriserin/specdraw/internal/llm"
	"github.com/chriserin/specdraw/internal/parser"
	"github.com/chriserin/specdraw/internal/prompts"
)

// Diagrams holds the Mermaid source of every whole-spec diagram.
type Diagrams struct {
	Class        string `json:"class" yaml:"class"`
	Architecture string `json:"architecture" yaml:"architecture"`
	UseCase      string `json:"use_case" yaml:"use_case"`
}

// Generator renders diagrams, asking a Completer first when one is set and
// falling back to the basic renderers on any failure.
type Generator struct {
	completer  llm.Completer
	prompts    *prompts.Loader
	logger     *slog.Logger
	onFallback func(kind string)
}

func NewGenerator(completer llm.Completer, loader *prompts.Loader, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{completer: completer, prompts: loader, logger: logger}
}

// OnFallback registers fn to be called with the diagram kind whenever an
// LLM attempt fails and the basic renderer is used instead.
func (g *Generator) OnFallback(fn func(kind string)) *Generator {
	g.onFallback = fn
	return g
}

// All renders the class, architecture and use case diagrams.
func (g *Generator) All(ctx context.Context, spec *parser.Specification) Diagrams {
	return Diagrams{
		Class:        g.Class(ctx, spec),
		Architecture: g.Architecture(ctx, spec),
		UseCase:      UseCase(spec),
	}
}

func (g *Generator) Class(ctx context.Context, spec *parser.Specification) string {
	out, err := g.fromSpec(ctx, "class_diagram", "classDiagram", spec)
	if err != nil {
		g.fallback("class", err)
		return Class(spec)
	}
	return out
}

func (g *Generator) Architecture(ctx context.Context, spec *parser.Specification) string {
	out, err := g.fromSpec(ctx, "architecture_diagram", "flowchart TD", spec)
	if err != nil {
		g.fallback("architecture", err)
		return Architecture(spec)
	}
	return out
}

// Sequence renders the sequence diagram of one use case. spec may be nil, in
// which case the LLM is not consulted.
func (g *Generator) Sequence(ctx context.Context, uc *parser.UseCase, spec *parser.Specification) string {
	if g.completer == nil || spec == nil {
		return Sequence(uc, spec)
	}

	tmpl, err := g.prompts.Load("diagram_generator", "sequence_diagram")
	if err != nil {
		g.fallback("sequence", err)
		return Sequence(uc, spec)
	}
	prompt := prompts.Render(tmpl, map[string]string{
		"use_case_name":           uc.Name,
		"use_case_description":    uc.Description,
		"actors":                  strings.Join(uc.Actors, ", "),
		"flow":                    toJSON(uc.Flow),
		"classes":                 toJSON(spec.Classes),
		"architecture_components": toJSON(spec.Architecture.Components),
	})
	reply, err := g.complete(ctx, prompt)
	if err != nil {
		g.fallback("sequence", err)
		return Sequence(uc, spec)
	}
	return llm.CleanMermaid(reply, "sequenceDiagram")
}

func (g *Generator) fromSpec(ctx context.Context, name, header string, spec *parser.Specification) (string, error) {
	if g.completer == nil {
		return "", errNoCompleter
	}
	tmpl, err := g.prompts.Load("diagram_generator", name)
	if err != nil {
		return "", err
	}
	reply, err := g.complete(ctx, prompts.Render(tmpl, map[string]string{"spec": toJSON(spec)}))
	if err != nil {
		return "", err
	}
	return llm.CleanMermaid(reply, header), nil
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	reply, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("empty reply")
	}
	return reply, nil
}

func (g *Generator) fallback(kind string, err error) {
	if errors.Is(err, errNoCompleter) {
		return
	}
	g.logger.Error("LLM diagram generation failed, using basic renderer", "diagram", kind, "error", err)
	if g.onFallback != nil {
		g.onFallback(kind)
	}
}

var errNoCompleter = errors.New("no completer configured")

func toJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

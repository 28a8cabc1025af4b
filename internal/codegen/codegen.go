package codegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/chriserin/specdraw/internal/diagram"
	"github.com/chriserin/specdraw/internal/llm"
	"github.com/chriserin/specdraw/internal/parser"
	"github.com/chriserin/specdraw/internal/prompts"
)

// Files maps a relative file name to its content.
type Files map[string]string

// Names returns the file names in sorted order.
func (f Files) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Basic builds a Python scaffold from spec without any LLM: one module per
// named class, main.py, README.md and requirements.txt.
func Basic(spec *parser.Specification) (Files, error) {
	files := Files{}
	for _, cls := range spec.Classes {
		if cls.Name == "" {
			continue
		}
		out, err := render(classTemplate, cls)
		if err != nil {
			return nil, fmt.Errorf("rendering class %s: %w", cls.Name, err)
		}
		files[strings.ToLower(cls.Name)+".py"] = out
	}

	mainPy, err := render(mainTemplate, spec)
	if err != nil {
		return nil, fmt.Errorf("rendering main.py: %w", err)
	}
	files["main.py"] = mainPy

	readme, err := render(readmeTemplate, spec)
	if err != nil {
		return nil, fmt.Errorf("rendering README.md: %w", err)
	}
	files["README.md"] = readme

	files["requirements.txt"] = strings.Join(requirements, "\n")
	return files, nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Generator builds scaffolds, asking a Completer first when one is set.
type Generator struct {
	completer llm.Completer
	prompts   *prompts.Loader
	logger    *slog.Logger

	onFallback func()
}

func NewGenerator(completer llm.Completer, loader *prompts.Loader, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{completer: completer, prompts: loader, logger: logger}
}

// OnFallback registers fn to be called whenever the LLM path fails.
func (g *Generator) OnFallback(fn func()) *Generator {
	g.onFallback = fn
	return g
}

// Generate returns the scaffold for spec. The LLM reply must be a JSON object
// of file name to content; anything else falls back to Basic.
func (g *Generator) Generate(ctx context.Context, spec *parser.Specification, diagrams diagram.Diagrams) (Files, error) {
	if g.completer != nil {
		files, err := g.generateWithLLM(ctx, spec, diagrams)
		if err == nil {
			return files, nil
		}
		g.logger.Error("LLM code generation failed, using basic scaffold", "error", err)
		if g.onFallback != nil {
			g.onFallback()
		}
	}
	return Basic(spec)
}

func (g *Generator) generateWithLLM(ctx context.Context, spec *parser.Specification, diagrams diagram.Diagrams) (Files, error) {
	tmpl, err := g.prompts.Load("code_generator", "generate_code")
	if err != nil {
		return nil, err
	}
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("encoding spec: %w", err)
	}
	diagramsJSON, err := json.Marshal(diagrams)
	if err != nil {
		return nil, fmt.Errorf("encoding diagrams: %w", err)
	}

	reply, err := g.completer.Complete(ctx, prompts.Render(tmpl, map[string]string{
		"spec":     string(specJSON),
		"diagrams": string(diagramsJSON),
	}))
	if err != nil {
		return nil, fmt.Errorf("completing prompt: %w", err)
	}

	var files Files
	if err := json.Unmarshal([]byte(llm.ExtractJSON(reply)), &files); err != nil {
		return nil, fmt.Errorf("decoding reply: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("reply contained no files")
	}
	return files, nil
}

// WriteFiles writes files under dir, creating directories as needed. Names
// that would escape dir are rejected.
func WriteFiles(dir string, files Files) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}
	for _, name := range files.Names() {
		path := filepath.Join(root, filepath.FromSlash(name))
		if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
			return fmt.Errorf("refusing to write %s outside %s", name, dir)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", name, err)
		}
		if err := os.WriteFile(path, []byte(files[name]), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

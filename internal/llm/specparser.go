package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/chriserin/specdraw/internal/parser"
	"github.com/chriserin/specdraw/internal/prompts"
)

// Source names the path that produced a Specification.
type Source string

const (
	SourceLLM   Source = "llm"
	SourceRegex Source = "regex"
)

const specSchema = `{
  "title": "string",
  "description": "string",
  "classes": [
    {
      "name": "string",
      "attributes": [
        {"name": "string", "type": "string", "default": null or "string", "comment": null or "string"}
      ],
      "methods": [
        {
          "name": "string",
          "parameters": [{"name": "string", "type": "string"}],
          "return_type": "string",
          "comment": null or "string"
        }
      ]
    }
  ],
  "architecture": {
    "components": [
      {"name": "string", "description": "string", "responsibilities": ["string"]}
    ],
    "connections": [
      {"source": "string", "target": "string", "description": "string"}
    ]
  },
  "use_cases": [
    {
      "id": "string",
      "name": "string",
      "description": "string",
      "actors": ["string"],
      "preconditions": ["string"],
      "flow": [{"step": 1, "actor": "string", "action": "string", "message": "string"}],
      "postconditions": ["string"]
    }
  ]
}`

// SpecParser asks a Completer to structure a markdown specification and
// falls back to the regex parser whenever that fails. A nil Completer always
// uses the regex parser.
type SpecParser struct {
	completer Completer
	prompts   *prompts.Loader
	logger    *slog.Logger
}

func NewSpecParser(completer Completer, loader *prompts.Loader, logger *slog.Logger) *SpecParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpecParser{completer: completer, prompts: loader, logger: logger}
}

// Parse returns the structured specification, the skipped-line report of the
// regex parser (empty on the LLM path) and the path that produced it.
func (p *SpecParser) Parse(ctx context.Context, markdown string) (*parser.Specification, []parser.ParseError, Source) {
	if p.completer != nil {
		spec, err := p.parseWithLLM(ctx, markdown)
		if err == nil {
			p.logger.Info("parsed specification with LLM",
				"title", spec.Title,
				"classes", len(spec.Classes),
				"components", len(spec.Architecture.Components),
				"use_cases", len(spec.UseCases))
			return spec, nil, SourceLLM
		}
		p.logger.Error("LLM parse failed, falling back to regex parser", "error", err)
	}

	spec, errs := parser.Parse(markdown)
	return spec, errs, SourceRegex
}

func (p *SpecParser) parseWithLLM(ctx context.Context, markdown string) (*parser.Specification, error) {
	tmpl, err := p.prompts.Load("markdown_parser", "parse_markdown")
	if err != nil {
		return nil, fmt.Errorf("loading prompt: %w", err)
	}
	prompt := prompts.Render(tmpl, map[string]string{
		"markdown":    markdown,
		"json_schema": specSchema,
	})

	reply, err := p.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("completing prompt: %w", err)
	}
	if reply == "" {
		return nil, fmt.Errorf("empty reply")
	}

	var spec parser.Specification
	if err := json.Unmarshal([]byte(ExtractJSON(reply)), &spec); err != nil {
		return nil, fmt.Errorf("decoding reply: %w", err)
	}
	parser.Normalize(&spec)
	return &spec, nil
}

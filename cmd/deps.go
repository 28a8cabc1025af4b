package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chriserin/specdraw/internal/config"
	"github.com/chriserin/specdraw/internal/db"
	"github.com/chriserin/specdraw/internal/llm"
	"github.com/chriserin/specdraw/internal/parser"
	"github.com/chriserin/specdraw/internal/prompts"
)

// newCompleter returns the Gemini client for c, or nil without an API key.
// Tests replace it.
var newCompleter = func(c config.Config) llm.Completer {
	if c.GeminiAPIKey == "" {
		return nil
	}
	return llm.NewGeminiClient(c.GeminiAPIKey, c.Model)
}

// openStore opens the history database, or returns a nil store when c has no
// db_path. closeFn is always safe to call.
func openStore(c config.Config) (store *db.Store, closeFn func(), err error) {
	if c.DBPath == "" {
		return nil, func() {}, nil
	}
	sqlDB, err := db.Open(c.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return db.NewStore(sqlDB), func() { sqlDB.Close() }, nil
}

// readMarkdown reads path, or stdin when path is "-".
func readMarkdown(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

type parsed struct {
	spec   *parser.Specification
	diags  []parser.ParseError
	source llm.Source
}

func parseFile(ctx context.Context, c config.Config, path string) (parsed, error) {
	markdown, err := readMarkdown(path)
	if err != nil {
		return parsed{}, err
	}
	sp := llm.NewSpecParser(newCompleter(c), prompts.NewLoader(c.PromptsDir), slog.Default())
	spec, diags, source := sp.Parse(ctx, markdown)
	for _, d := range diags {
		slog.Warn("skipped line", "file", path, "line", d.Line, "message", d.Message)
	}
	return parsed{spec: spec, diags: diags, source: source}, nil
}

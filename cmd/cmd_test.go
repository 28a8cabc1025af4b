package cmd

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chriserin/specdraw/internal/config"
	"github.com/chriserin/specdraw/internal/llm"
)

const shopDoc = `# Shop

## Description

Sells things.

## Classes

### Cart
#### Attributes
- items: list
- owner
#### Methods
- total() -> float
bogus line

## Architecture

### Web
#### Interactions
- Orders -> http: places order

## Use Cases

### Checkout
#### Actors
- Customer
#### Flow
1. Customer -> Web: pay
2. Web -> Orders
`

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

// writeDoc writes shopDoc into the current directory and returns its name.
func writeDoc(t *testing.T) string {
	t.Helper()
	require.NoError(t, os.WriteFile("shop.md", []byte(shopDoc), 0o644))
	return "shop.md"
}

func testConfig() config.Config {
	c := config.Defaults()
	c.DBPath = "history.db"
	return c
}

type stubCompleter func(prompt string) (string, error)

func (f stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	return f(prompt)
}

func withCompleter(t *testing.T, c llm.Completer) {
	t.Helper()
	orig := newCompleter
	newCompleter = func(config.Config) llm.Completer { return c }
	t.Cleanup(func() { newCompleter = orig })
}

func writeFile(name, content string) error {
	return os.WriteFile(name, []byte(content), 0o644)
}

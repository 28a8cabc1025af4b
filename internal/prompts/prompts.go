package prompts

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

//go:embed templates
var embedded embed.FS

// ErrNotFound is returned when no prompt exists for a category and name.
var ErrNotFound = errors.New("prompt not found")

// Loader reads prompt templates stored as <category>/<name>.txt. Files in
// Dir take precedence over the embedded defaults.
type Loader struct {
	Dir string
}

// NewLoader returns a Loader that looks in dir before the embedded prompts.
// An empty dir uses the embedded prompts only.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load returns the template text for category/name.
func (l *Loader) Load(category, name string) (string, error) {
	rel := category + "/" + name + ".txt"

	if l != nil && l.Dir != "" {
		data, err := os.ReadFile(filepath.Join(l.Dir, filepath.FromSlash(rel)))
		if err == nil {
			slog.Debug("loaded prompt", "prompt", rel, "dir", l.Dir)
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("reading prompt %s: %w", rel, err)
		}
	}

	data, err := embedded.ReadFile("templates/" + rel)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s: %w", rel, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading prompt %s: %w", rel, err)
	}
	return string(data), nil
}

// Render replaces each {key} placeholder in tmpl with vars[key]. Braces that
// do not name a var are left alone, so JSON examples survive rendering.
func Render(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

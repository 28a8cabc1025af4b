package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/specdraw/internal/parser"
	"github.com/chriserin/specdraw/internal/prompts"
)

type fakeCompleter struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

const shopDoc = `# Shop

## Classes

### Order
#### Attributes
- id: int
`

func TestSpecParser_NoCompleterUsesRegex(t *testing.T) {
	p := NewSpecParser(nil, prompts.NewLoader(""), nil)
	spec, errs, src := p.Parse(context.Background(), shopDoc)
	assert.Equal(t, SourceRegex, src)
	assert.Empty(t, errs)
	assert.Equal(t, "Shop", spec.Title)
	require.Len(t, spec.Classes, 1)
}

func TestSpecParser_LLMReply(t *testing.T) {
	f := &fakeCompleter{reply: "```json\n" + `{
		"title": "Shop (LLM)",
		"classes": [{"name": "Order", "attributes": [{"name": "id"}]}],
		"use_cases": [{"name": "Checkout"}]
	}` + "\n```"}
	p := NewSpecParser(f, prompts.NewLoader(""), nil)

	spec, errs, src := p.Parse(context.Background(), shopDoc)
	assert.Equal(t, SourceLLM, src)
	assert.Empty(t, errs)
	assert.Equal(t, "Shop (LLM)", spec.Title)
	assert.Equal(t, "str", spec.Classes[0].Attributes[0].Type)
	assert.Equal(t, "UC1", spec.UseCases[0].ID)
	assert.Equal(t, []parser.Connection{}, spec.Architecture.Connections)

	assert.Contains(t, f.prompt, "### Order")
	assert.Contains(t, f.prompt, `"return_type": "string"`)
}

func TestSpecParser_FallsBackOnError(t *testing.T) {
	f := &fakeCompleter{err: errors.New("network down")}
	spec, _, src := NewSpecParser(f, prompts.NewLoader(""), nil).Parse(context.Background(), shopDoc)
	assert.Equal(t, SourceRegex, src)
	assert.Equal(t, "Shop", spec.Title)
}

func TestSpecParser_FallsBackOnBadJSON(t *testing.T) {
	f := &fakeCompleter{reply: "I could not do that."}
	spec, _, src := NewSpecParser(f, prompts.NewLoader(""), nil).Parse(context.Background(), shopDoc)
	assert.Equal(t, SourceRegex, src)
	assert.Equal(t, "Shop", spec.Title)
}

func TestSpecParser_FallsBackOnEmptyReply(t *testing.T) {
	f := &fakeCompleter{}
	_, _, src := NewSpecParser(f, prompts.NewLoader(""), nil).Parse(context.Background(), shopDoc)
	assert.Equal(t, SourceRegex, src)
}

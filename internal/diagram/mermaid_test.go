package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/specdraw/internal/parser"
)

const libraryDoc = `# Library

## Classes

### Book
#### Attributes
- isbn: str
- copies: int = 1
#### Methods
- lend(member: Member, days: int) -> Loan

## Architecture

### Web App
Front end.
#### Interactions
- Catalog Service -> http: looks up books
- Auth -> token

### Catalog Service
Owns the catalogue.

## Use Cases

### Borrow book
#### Actors
- Member
- Librarian
#### Flow
1. Member -> Web App: request book
2. Web App -> Catalog Service
3. Catalog Service

### Return book
#### Actors
- Member
`

func parseDoc(t *testing.T) *parser.Specification {
	t.Helper()
	spec, errs := parser.Parse(libraryDoc)
	require.Empty(t, errs)
	return spec
}

func TestClass(t *testing.T) {
	want := `classDiagram
    class Book {
        +isbn: str
        +copies: int
        +lend(member: Member, days: int): Loan
    }`
	assert.Equal(t, want, Class(parseDoc(t)))
}

func TestClass_Empty(t *testing.T) {
	spec, _ := parser.Parse("")
	assert.Equal(t, "classDiagram", Class(spec))
}

func TestArchitecture(t *testing.T) {
	want := `flowchart TD
    Web_App["Web App"]
    Catalog_Service["Catalog Service"]
    Web_App -->|looks up books| Catalog_Service
    Web_App --> Auth`
	assert.Equal(t, want, Architecture(parseDoc(t)))
}

func TestUseCase(t *testing.T) {
	want := `flowchart LR
    actor1(("Member"))
    actor2(("Librarian"))
    UC1["Borrow book"]
    actor1 --- UC1
    actor2 --- UC1
    UC2["Return book"]
    actor1 --- UC2`
	assert.Equal(t, want, UseCase(parseDoc(t)))
}

func TestSequence(t *testing.T) {
	spec := parseDoc(t)
	want := `sequenceDiagram
    title Borrow book
    participant Member
    participant Librarian
    participant Web_App
    participant Catalog_Service
    Member->>+Web_App: request book
    Web_App->>+Catalog_Service: step 2
    Catalog_Service-->>-Web_App: response`
	assert.Equal(t, want, Sequence(&spec.UseCases[0], spec))
}

func TestSequence_WithoutSpec(t *testing.T) {
	uc := &parser.UseCase{Name: "Ping", Actors: []string{"A"}}
	assert.Equal(t, "sequenceDiagram\n    title Ping\n    participant A", Sequence(uc, nil))
}

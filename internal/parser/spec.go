package parser

// Layer 2: the structured specification extracted from the outline

// Specification is the structured document produced from a markdown design
// document. Field names match the JSON exchange format consumed by the
// diagram and code renderers.
type Specification struct {
	Title        string       `json:"title" yaml:"title"`
	Description  string       `json:"description" yaml:"description"`
	Classes      []ClassDef   `json:"classes" yaml:"classes"`
	Entities     []any        `json:"entities" yaml:"entities"`
	Architecture Architecture `json:"architecture" yaml:"architecture"`
	UseCases     []UseCase    `json:"use_cases" yaml:"use_cases"`
}

type ClassDef struct {
	Name       string      `json:"name" yaml:"name"`
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
	Methods    []Method    `json:"methods" yaml:"methods"`
}

type Attribute struct {
	Name    string  `json:"name" yaml:"name"`
	Type    string  `json:"type" yaml:"type"`
	Default *string `json:"default" yaml:"default"`
	Comment *string `json:"comment" yaml:"comment"`
}

type Method struct {
	Name       string      `json:"name" yaml:"name"`
	Parameters []Parameter `json:"parameters" yaml:"parameters"`
	ReturnType string      `json:"return_type" yaml:"return_type"`
	Comment    *string     `json:"comment" yaml:"comment"`
}

type Parameter struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

type Architecture struct {
	Components  []Component  `json:"components" yaml:"components"`
	Connections []Connection `json:"connections" yaml:"connections"`
}

type Component struct {
	Name             string   `json:"name" yaml:"name"`
	Description      string   `json:"description" yaml:"description"`
	Responsibilities []string `json:"responsibilities" yaml:"responsibilities"`
}

// Connection is a directed edge between two architecture components. Via
// keeps the right-hand side of the interaction arrow, which does not take
// part in source/target attribution and is not part of the exchange format.
type Connection struct {
	Source      string `json:"source" yaml:"source"`
	Target      string `json:"target" yaml:"target"`
	Description string `json:"description" yaml:"description"`
	Via         string `json:"-" yaml:"-"`
}

type UseCase struct {
	ID             string     `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	Description    string     `json:"description" yaml:"description"`
	Actors         []string   `json:"actors" yaml:"actors"`
	Preconditions  []string   `json:"preconditions" yaml:"preconditions"`
	Flow           []FlowStep `json:"flow" yaml:"flow"`
	Postconditions []string   `json:"postconditions" yaml:"postconditions"`
}

// FlowStep is one numbered line of a use case flow. Action is the literal
// text after the arrow; consumers decide whether it names a participant.
type FlowStep struct {
	Step    int    `json:"step" yaml:"step"`
	Actor   string `json:"actor" yaml:"actor"`
	Action  string `json:"action" yaml:"action"`
	Message string `json:"message" yaml:"message"`
}

// ParseError reports a line the parser skipped. It never aborts parsing.
type ParseError struct {
	Line    int    `json:"line" yaml:"line"`
	Message string `json:"message" yaml:"message"`
}

// UseCaseByID returns the use case with the given id, or nil.
func (s *Specification) UseCaseByID(id string) *UseCase {
	for i := range s.UseCases {
		if s.UseCases[i].ID == id {
			return &s.UseCases[i]
		}
	}
	return nil
}

package parser

import (
	"fmt"
	"log/slog"
	"strings"
)

// Parse turns a markdown design document into a Specification. It never
// fails: headings and list lines that do not have the expected shape are
// left out of the result and reported as ParseErrors. Parse holds no state
// between calls and is safe for concurrent use.
func Parse(markdown string) (*Specification, []ParseError) {
	p := &specParser{}
	doc := scan(markdown)

	spec := &Specification{Title: doc.Title()}
	if desc, ok := doc.Section(sectionLevel, "Description"); ok {
		spec.Description = desc.Text()
	}
	if section, ok := doc.Section(sectionLevel, "Classes"); ok {
		spec.Classes = p.classes(section)
	}
	if section, ok := doc.Section(sectionLevel, "Architecture"); ok {
		spec.Architecture = p.architecture(section)
	}
	if section, ok := doc.Section(sectionLevel, "Use Cases"); ok {
		spec.UseCases = p.useCases(section)
	}

	Normalize(spec)

	slog.Debug("parsed specification",
		"title", spec.Title,
		"classes", len(spec.Classes),
		"components", len(spec.Architecture.Components),
		"use_cases", len(spec.UseCases),
		"skipped", len(p.errors))

	return spec, p.errors
}

type specParser struct {
	errors []ParseError
}

func (p *specParser) skip(l Line, format string, args ...any) {
	p.errors = append(p.errors, ParseError{Line: l.Num, Message: fmt.Sprintf(format, args...)})
}

func (p *specParser) classes(section Region) []ClassDef {
	var classes []ClassDef
	for _, b := range section.Blocks(blockLevel) {
		if b.Heading.Name == "" {
			p.skip(b.Heading, "class heading has no name")
			continue
		}
		cls := ClassDef{Name: b.Heading.Name}
		if sub, ok := b.Body.Section(subsectionLevel, "Attributes"); ok {
			p.eachItem(sub, "attribute", func(line string) bool {
				attr, ok := parseAttribute(line)
				if ok {
					cls.Attributes = append(cls.Attributes, attr)
				}
				return ok
			})
		}
		if sub, ok := b.Body.Section(subsectionLevel, "Methods"); ok {
			p.eachItem(sub, "method", func(line string) bool {
				m, ok := parseMethod(line)
				if ok {
					cls.Methods = append(cls.Methods, m)
				}
				return ok
			})
		}
		classes = append(classes, cls)
	}
	return classes
}

func (p *specParser) architecture(section Region) Architecture {
	var arch Architecture
	for _, b := range section.Blocks(blockLevel) {
		comp := Component{
			Name:        b.Heading.Name,
			Description: b.Body.Lead().Text(),
		}
		if sub, ok := b.Body.Section(subsectionLevel, "Responsibilities"); ok {
			comp.Responsibilities = p.items(sub, "responsibility")
		}
		if sub, ok := b.Body.Section(subsectionLevel, "Interactions"); ok {
			p.eachItem(sub, "interaction", func(line string) bool {
				conn, ok := parseInteraction(comp.Name, line)
				if ok {
					arch.Connections = append(arch.Connections, conn)
				}
				return ok
			})
		}
		arch.Components = append(arch.Components, comp)
	}
	return arch
}

func (p *specParser) useCases(section Region) []UseCase {
	var useCases []UseCase
	for i, b := range section.Blocks(blockLevel) {
		uc := UseCase{
			ID:          fmt.Sprintf("UC%d", i+1),
			Name:        b.Heading.Name,
			Description: b.Body.Lead().Text(),
		}
		if sub, ok := b.Body.Section(subsectionLevel, "Actors"); ok {
			uc.Actors = p.items(sub, "actor")
		}
		if sub, ok := b.Body.Section(subsectionLevel, "Preconditions"); ok {
			uc.Preconditions = p.items(sub, "precondition")
		}
		if sub, ok := b.Body.Section(subsectionLevel, "Flow"); ok {
			for _, l := range sub {
				if l.Fenced || strings.TrimSpace(l.Text) == "" {
					continue
				}
				step, ok, err := parseFlowStep(l.Text)
				switch {
				case err != nil:
					p.skip(l, "flow step number out of range: %v", err)
				case !ok:
					p.skip(l, "unmatched flow line")
				default:
					uc.Flow = append(uc.Flow, step)
				}
			}
		}
		if sub, ok := b.Body.Section(subsectionLevel, "Postconditions"); ok {
			uc.Postconditions = p.items(sub, "postcondition")
		}
		useCases = append(useCases, uc)
	}
	return useCases
}

// items collects the text of every list line in a subsection.
func (p *specParser) items(sub Region, kind string) []string {
	var out []string
	p.eachItem(sub, kind, func(line string) bool {
		item, ok := parseListItem(line)
		if ok {
			out = append(out, item)
		}
		return ok
	})
	return out
}

// eachItem feeds every non-blank, unfenced line of a subsection to fn and
// records the lines fn rejects.
func (p *specParser) eachItem(sub Region, kind string, fn func(line string) bool) {
	for _, l := range sub {
		if l.Fenced || strings.TrimSpace(l.Text) == "" {
			continue
		}
		if !fn(l.Text) {
			p.skip(l, "unmatched %s line", kind)
		}
	}
}

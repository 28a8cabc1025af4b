package diagram

import (
	"fmt"
	"strings"

	"github.com/chriserin/specdraw/internal/parser"
)

// Class renders the classes of spec as a Mermaid class diagram.
func Class(spec *parser.Specification) string {
	out := []string{"classDiagram"}
	for _, cls := range spec.Classes {
		out = append(out, fmt.Sprintf("    class %s {", cls.Name))
		for _, a := range cls.Attributes {
			out = append(out, fmt.Sprintf("        +%s: %s", a.Name, a.Type))
		}
		for _, m := range cls.Methods {
			params := make([]string, len(m.Parameters))
			for i, p := range m.Parameters {
				params[i] = p.Name + ": " + p.Type
			}
			out = append(out, fmt.Sprintf("        +%s(%s): %s", m.Name, strings.Join(params, ", "), m.ReturnType))
		}
		out = append(out, "    }")
	}
	return strings.Join(out, "\n")
}

// Architecture renders components and connections as a top-down flowchart.
func Architecture(spec *parser.Specification) string {
	out := []string{"flowchart TD"}
	for _, c := range spec.Architecture.Components {
		out = append(out, fmt.Sprintf("    %s[\"%s\"]", nodeID(c.Name), c.Name))
	}
	for _, c := range spec.Architecture.Connections {
		if c.Description != "" {
			out = append(out, fmt.Sprintf("    %s -->|%s| %s", nodeID(c.Source), c.Description, nodeID(c.Target)))
		} else {
			out = append(out, fmt.Sprintf("    %s --> %s", nodeID(c.Source), nodeID(c.Target)))
		}
	}
	return strings.Join(out, "\n")
}

// UseCase renders actors and use cases as a left-right flowchart. Actors are
// numbered in the order they first appear.
func UseCase(spec *parser.Specification) string {
	out := []string{"flowchart LR"}

	actorIDs := map[string]string{}
	for _, uc := range spec.UseCases {
		for _, a := range uc.Actors {
			if _, ok := actorIDs[a]; ok {
				continue
			}
			id := fmt.Sprintf("actor%d", len(actorIDs)+1)
			actorIDs[a] = id
			out = append(out, fmt.Sprintf("    %s((\"%s\"))", id, a))
		}
	}

	for i, uc := range spec.UseCases {
		id := uc.ID
		if id == "" {
			id = fmt.Sprintf("UC%d", i+1)
		}
		out = append(out, fmt.Sprintf("    %s[\"%s\"]", id, uc.Name))
		for _, a := range uc.Actors {
			out = append(out, fmt.Sprintf("    %s --- %s", actorIDs[a], id))
		}
	}
	return strings.Join(out, "\n")
}

// Sequence renders one use case as a sequence diagram. Each flow step with
// both an actor and an action becomes a message from actor to action; even
// steps also get a response back. spec may be nil.
func Sequence(uc *parser.UseCase, spec *parser.Specification) string {
	out := []string{"sequenceDiagram", "    title " + uc.Name}
	for _, a := range uc.Actors {
		out = append(out, "    participant "+a)
	}
	if spec != nil {
		for _, c := range spec.Architecture.Components {
			out = append(out, "    participant "+nodeID(c.Name))
		}
	}

	for _, step := range uc.Flow {
		src, dst := nodeID(step.Actor), nodeID(step.Action)
		if src == "" || dst == "" {
			continue
		}
		msg := step.Message
		if msg == "" {
			msg = fmt.Sprintf("step %d", step.Step)
		}
		out = append(out, fmt.Sprintf("    %s->>+%s: %s", src, dst, msg))
		if step.Step%2 == 0 {
			out = append(out, fmt.Sprintf("    %s-->>-%s: response", dst, src))
		}
	}
	return strings.Join(out, "\n")
}

func nodeID(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

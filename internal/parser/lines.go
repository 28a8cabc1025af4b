package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	listItemPattern    = regexp.MustCompile(`^[-*]\s+(.+)$`)
	attributePattern   = regexp.MustCompile(`^[-*]\s+(.+?)(?:\s*:\s*(.+?))?(?:\s+=\s+(.+?))?(?:\s+//\s*(.+?))?$`)
	methodPattern      = regexp.MustCompile(`^[-*]\s+(.+?)(?:\((.*?)\))?(?:\s*->\s*(.+?))?(?:\s+//\s*(.+?))?$`)
	interactionPattern = regexp.MustCompile(`^[-*]\s+(.+?)\s*->\s*(.+?)(?:\s*:\s*(.+?))?$`)
	flowPattern        = regexp.MustCompile(`^(\d+)\.\s+(.+?)\s*(?:->\s*(.+?))?(?:\s*:\s*(.+?))?$`)
)

// parseListItem returns the text of a "- item" line.
func parseListItem(line string) (string, bool) {
	m := listItemPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// parseAttribute reads "- name[: type][ = default][ // comment]". Type is left
// empty when absent; defaults are applied by Normalize.
func parseAttribute(line string) (Attribute, bool) {
	m := attributePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Attribute{}, false
	}
	return Attribute{
		Name:    strings.TrimSpace(m[1]),
		Type:    strings.TrimSpace(m[2]),
		Default: optional(m[3]),
		Comment: optional(m[4]),
	}, true
}

// parseMethod reads "- name[(params)][ -> return][ // comment]".
func parseMethod(line string) (Method, bool) {
	m := methodPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Method{}, false
	}
	return Method{
		Name:       strings.TrimSpace(m[1]),
		Parameters: parseParameters(m[2]),
		ReturnType: strings.TrimSpace(m[3]),
		Comment:    optional(m[4]),
	}, true
}

// parseParameters splits "a: int, b" into parameters. Empty tokens are
// dropped.
func parseParameters(params string) []Parameter {
	params = strings.TrimSpace(params)
	if params == "" {
		return nil
	}
	var out []Parameter
	for _, tok := range strings.Split(params, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		name, typ, _ := strings.Cut(tok, ":")
		if strings.Contains(typ, ":") {
			typ, _, _ = strings.Cut(typ, ":")
		}
		out = append(out, Parameter{
			Name: strings.TrimSpace(name),
			Type: strings.TrimSpace(typ),
		})
	}
	return out
}

// parseInteraction reads "- target -> via[: description]" for the component
// named source.
func parseInteraction(source, line string) (Connection, bool) {
	m := interactionPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Connection{}, false
	}
	return Connection{
		Source:      source,
		Target:      strings.TrimSpace(m[1]),
		Via:         strings.TrimSpace(m[2]),
		Description: strings.TrimSpace(m[3]),
	}, true
}

// parseFlowStep reads "N. actor[ -> action][: message]". The step number is
// taken as written, not renumbered.
func parseFlowStep(line string) (FlowStep, bool, error) {
	m := flowPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return FlowStep{}, false, nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return FlowStep{}, false, err
	}
	return FlowStep{
		Step:    n,
		Actor:   strings.TrimSpace(m[2]),
		Action:  strings.TrimSpace(m[3]),
		Message: strings.TrimSpace(m[4]),
	}, true, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

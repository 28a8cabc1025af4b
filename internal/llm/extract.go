package llm

import "strings"

// ExtractJSON pulls a JSON document out of a model reply: the body of a
// ```json fence, else of the first ``` fence, else the text between the first
// '{' and the last '}', else the whole reply.
func ExtractJSON(text string) string {
	text = strings.TrimSpace(text)

	if body, ok := fenced(text, "```json"); ok {
		return body
	}
	if body, ok := fenced(text, "```"); ok {
		return body
	}

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first != -1 && last > first {
		return strings.TrimSpace(text[first : last+1])
	}
	return text
}

// CleanMermaid extracts the body of a ```mermaid fence and makes sure the
// result starts with header (e.g. "classDiagram").
func CleanMermaid(text, header string) string {
	text = strings.TrimSpace(text)
	if body, ok := fenced(text, "```mermaid"); ok {
		text = body
	}
	if !strings.HasPrefix(text, header) {
		text = header + "\n" + text
	}
	return text
}

// fenced returns the trimmed text between opener and the next ``` after it.
func fenced(text, opener string) (string, bool) {
	start := strings.Index(text, opener)
	if start == -1 {
		return "", false
	}
	from := start + len(opener)
	end := strings.Index(text[from:], "```")
	if end == -1 {
		return "", false
	}
	body := text[from : from+end]
	if opener == "```" {
		// drop a language tag on the opening line
		if nl := strings.IndexByte(body, '\n'); nl != -1 && !strings.ContainsAny(body[:nl], "{[") {
			body = body[nl+1:]
		}
	}
	return strings.TrimSpace(body), true
}

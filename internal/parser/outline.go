package parser

import (
	"strings"
)

// Layer 1: heading outline of a markdown document

// Line is one source line with its heading classification.
type Line struct {
	Num    int    // 1-based line number in the parsed document
	Text   string // raw line text without the trailing newline
	Level  int    // ATX heading level 1-6, 0 for body lines
	Name   string // trimmed heading text
	Fenced bool   // inside or delimiting a fenced code block
}

// Region is a contiguous run of lines from a document.
type Region []Line

// Block is a heading together with the lines it governs.
type Block struct {
	Heading Line
	Body    Region
}

// scan splits text into lines and classifies headings. Lines inside fenced
// code blocks are never headings.
func scan(text string) Region {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\n")
	lines := make(Region, 0, len(raw))

	fence := ""
	for i, t := range raw {
		l := Line{Num: i + 1, Text: t}
		trimmed := strings.TrimSpace(t)

		if fence != "" {
			l.Fenced = true
			if strings.HasPrefix(trimmed, fence) && strings.Trim(trimmed, fence[:1]) == "" {
				fence = ""
			}
			lines = append(lines, l)
			continue
		}
		if f := fenceOpener(trimmed); f != "" {
			fence = f
			l.Fenced = true
			lines = append(lines, l)
			continue
		}

		l.Level, l.Name = headingOf(t)
		lines = append(lines, l)
	}
	return lines
}

// fenceOpener returns the delimiter run (``` or ~~~, possibly longer) that
// opens a fenced block, or "" when the line opens none.
func fenceOpener(trimmed string) string {
	for _, c := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == c {
			n++
		}
		if n >= 3 {
			return trimmed[:n]
		}
	}
	return ""
}

// headingOf reports the ATX level and name of a line. The hashes must start
// the line and be followed by whitespace or the end of the line.
func headingOf(t string) (int, string) {
	n := 0
	for n < len(t) && t[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0, ""
	}
	rest := t[n:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, ""
	}
	return n, strings.TrimSpace(rest)
}

// Section returns the body of the first heading at level whose name equals
// name, bounded by the next heading at the same or a higher level.
func (r Region) Section(level int, name string) (Region, bool) {
	for i, l := range r {
		if l.Level != level || l.Name != name {
			continue
		}
		return r[i+1 : r.boundary(i+1, level)], true
	}
	return nil, false
}

// Blocks splits the region at every heading of the given level. Lines before
// the first such heading belong to no block.
func (r Region) Blocks(level int) []Block {
	var blocks []Block
	for i := 0; i < len(r); i++ {
		if r[i].Level != level {
			continue
		}
		end := r.boundary(i+1, level)
		blocks = append(blocks, Block{Heading: r[i], Body: r[i+1 : end]})
		i = end - 1
	}
	return blocks
}

// Lead returns the lines before the first heading of any level.
func (r Region) Lead() Region {
	for i, l := range r {
		if l.Level > 0 {
			return r[:i]
		}
	}
	return r
}

// Text joins the region back into text, trimmed of surrounding whitespace.
func (r Region) Text() string {
	parts := make([]string, len(r))
	for i, l := range r {
		parts[i] = l.Text
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// Title returns the name of the first non-empty level-1 heading.
func (r Region) Title() string {
	for _, l := range r {
		if l.Level == 1 && l.Name != "" {
			return l.Name
		}
	}
	return ""
}

// boundary finds the index of the next heading at level or above, starting
// at from. Returns len(r) when the region runs to its end.
func (r Region) boundary(from, level int) int {
	for j := from; j < len(r); j++ {
		if r[j].Level > 0 && r[j].Level <= level {
			return j
		}
	}
	return len(r)
}

package parser

const (
	sectionLevel    = 2
	blockLevel      = 3
	subsectionLevel = 4
)

// ExtractSection returns the trimmed body of the "## name" section of a
// document, up to the next level-2 (or level-1) heading. The name is matched
// literally and case-sensitively. Returns "" when the section is absent.
func ExtractSection(markdown, name string) string {
	body, ok := scan(markdown).Section(sectionLevel, name)
	if !ok {
		return ""
	}
	return body.Text()
}

// ExtractSubsection returns the trimmed body of the "#### name" subsection of
// a section or block body, up to the next heading at level 4 or above.
func ExtractSubsection(content, name string) string {
	body, ok := scan(content).Section(subsectionLevel, name)
	if !ok {
		return ""
	}
	return body.Text()
}

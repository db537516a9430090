package report

import "strings"

// Settings holds the fixed presentation constants of the console and file
// reports.
type Settings struct {
	Width  int    // banner width in characters
	Fill   string // banner fill
	Indent string // one indentation unit
}

// DefaultSettings returns a 32 column hyphen banner with four-space indents.
func DefaultSettings() Settings {
	return Settings{Width: 32, Fill: "-", Indent: "    "}
}

func (s Settings) indent(n int) string {
	return strings.Repeat(s.Indent, n)
}

// Banner returns title padded with fill to width characters: one fill in
// front, the rest after. A title that already spans width is returned as is.
func Banner(title, fill string, width int) string {
	if len(title) >= width {
		return title
	}
	return fill + title + strings.Repeat(fill, width-1-len(title))
}

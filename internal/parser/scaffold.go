package parser

import (
	"strings"
)

// Scaffold wraps bare statement or method fragments in a minimal enclosing
// declaration so they parse as top-level input. Both sides of a comparison
// receive the same scaffold, so it never contributes to their distance.
type Scaffold struct {
	// Keyword marks snippets that are already top-level declarations
	Keyword string `toml:"declaration_keyword" yaml:"declaration_keyword"`

	// Prefix and Suffix enclose the fragment
	Prefix string `toml:"scaffold_prefix" yaml:"scaffold_prefix"`
	Suffix string `toml:"scaffold_suffix" yaml:"scaffold_suffix"`

	// Indent is prepended to every non-empty fragment line
	Indent string `toml:"scaffold_indent" yaml:"scaffold_indent"`
}

// Wrap trims surrounding whitespace from code and encloses it in the
// scaffold unless it already starts with the declaration keyword.
func (s Scaffold) Wrap(code string) string {
	trimmed := strings.TrimSpace(code)
	if strings.HasPrefix(trimmed, s.Keyword) {
		return trimmed
	}

	body := trimmed
	if s.Indent != "" {
		lines := strings.Split(trimmed, "\n")
		for i, line := range lines {
			if strings.TrimSpace(line) != "" {
				lines[i] = s.Indent + line
			}
		}
		body = strings.Join(lines, "\n")
	}

	return s.Prefix + body + s.Suffix
}

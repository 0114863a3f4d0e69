package parser

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
)

// languageSpec describes a tree-sitter language compiled into the binary
// together with the scaffold used to make bare fragments parse at top level.
type languageSpec struct {
	load     func() *sitter.Language
	scaffold Scaffold
	// stripPatterns replaces DefaultStripPatterns for grammars whose literal
	// categories are not named *_literal
	stripPatterns []string
}

// An empty Keyword means every snippet is accepted as top-level input.
var languages = map[string]languageSpec{
	"java": {
		load:     java.GetLanguage,
		scaffold: Scaffold{Keyword: "class", Prefix: "class A { \n", Suffix: "\n}"},
	},
	"csharp": {
		load:     csharp.GetLanguage,
		scaffold: Scaffold{Keyword: "class", Prefix: "class A { \n", Suffix: "\n}"},
	},
	"cpp": {
		load:     cpp.GetLanguage,
		scaffold: Scaffold{Keyword: "class", Prefix: "class A { \n", Suffix: "\n};"},
	},
	"javascript": {
		load:          javascript.GetLanguage,
		scaffold:      Scaffold{Keyword: "class", Prefix: "class A { \n", Suffix: "\n}"},
		stripPatterns: []string{"identifier", "number", "string_fragment", "regex_pattern"},
	},
	"python": {
		load:          python.GetLanguage,
		scaffold:      Scaffold{Keyword: "class", Prefix: "class A:\n", Suffix: "\n", Indent: "    "},
		stripPatterns: []string{"identifier", "integer", "float", "string"},
	},
	"ruby": {
		load:          ruby.GetLanguage,
		scaffold:      Scaffold{Keyword: "class", Prefix: "class A\n", Suffix: "\nend"},
		stripPatterns: []string{"identifier", "constant", "integer", "float", "string_content", "simple_symbol"},
	},
	"go": {
		load:     golang.GetLanguage,
		scaffold: Scaffold{Keyword: "package", Prefix: "package a\n\n", Suffix: "\n"},
	},
	"rust": {
		load:     rust.GetLanguage,
		scaffold: Scaffold{},
	},
	"c": {
		load:     c.GetLanguage,
		scaffold: Scaffold{},
	},
}

var languageAliases = map[string]string{
	"golang":  "go",
	"c_sharp": "csharp",
	"c#":      "csharp",
	"c++":     "cpp",
	"js":      "javascript",
	"py":      "python",
}

func (s languageSpec) defaultStripPatterns() []string {
	if s.stripPatterns != nil {
		return append([]string(nil), s.stripPatterns...)
	}
	return append([]string(nil), DefaultStripPatterns...)
}

// lookupLanguage resolves a language name or alias, case-insensitively
func lookupLanguage(name string) (string, languageSpec, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := languageAliases[key]; ok {
		key = alias
	}
	spec, ok := languages[key]
	return key, spec, ok
}

// SupportedLanguages returns the names of the built-in languages, sorted
func SupportedLanguages() []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

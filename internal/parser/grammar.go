package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	sitter "github.com/smacker/go-tree-sitter"
	"gopkg.in/yaml.v3"
)

var (
	// ErrGrammarNotFound is returned when the grammar location does not exist
	ErrGrammarNotFound = errors.New("grammar not found")

	// ErrInvalidGrammar is returned when the grammar location cannot be
	// loaded as a grammar descriptor
	ErrInvalidGrammar = errors.New("invalid grammar")
)

// DefaultStripPatterns are the category substrings whose leaves carry
// identifier or literal spellings in the bundled tree-sitter grammars.
var DefaultStripPatterns = []string{"identifier", "literal"}

// Grammar is an immutable, loaded grammar handle. It is safe to share a
// Grammar between goroutines; each goroutine needs its own Parser.
type Grammar struct {
	name               string
	location           string
	language           *sitter.Language
	scaffold           Scaffold
	stripPatterns      []string
	rejectSyntaxErrors bool
}

// Name returns the canonical language name
func (g *Grammar) Name() string {
	return g.name
}

// Location returns the path the grammar was loaded from
func (g *Grammar) Location() string {
	return g.location
}

// Scaffold returns the fragment scaffold of the grammar
func (g *Grammar) Scaffold() Scaffold {
	return g.scaffold
}

// StripPatterns returns a copy of the identifier/literal category patterns
func (g *Grammar) StripPatterns() []string {
	return append([]string(nil), g.stripPatterns...)
}

// RejectSyntaxErrors reports whether trees containing error nodes fail to parse
func (g *Grammar) RejectSyntaxErrors() bool {
	return g.rejectSyntaxErrors
}

// grammarDescriptor is the on-disk representation of a grammar
type grammarDescriptor struct {
	Language           string   `toml:"language" yaml:"language"`
	DeclarationKeyword *string  `toml:"declaration_keyword" yaml:"declaration_keyword"` // pointer to detect unset
	ScaffoldPrefix     *string  `toml:"scaffold_prefix" yaml:"scaffold_prefix"`
	ScaffoldSuffix     *string  `toml:"scaffold_suffix" yaml:"scaffold_suffix"`
	ScaffoldIndent     *string  `toml:"scaffold_indent" yaml:"scaffold_indent"`
	StripPatterns      []string `toml:"strip_patterns" yaml:"strip_patterns"`
	RejectSyntaxErrors bool     `toml:"reject_syntax_errors" yaml:"reject_syntax_errors"`
}

// LoadGrammar loads the grammar descriptor at location. The file format is
// chosen by extension: .yaml and .yml are YAML, everything else is TOML.
// A missing location yields ErrGrammarNotFound; any other failure yields
// ErrInvalidGrammar.
func LoadGrammar(location string) (*Grammar, error) {
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("%w: empty grammar location", ErrGrammarNotFound)
	}

	info, err := os.Stat(location)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist (run `codedist init` to create a grammar descriptor)", ErrGrammarNotFound, location)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidGrammar, location, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidGrammar, location)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInvalidGrammar, location, err)
	}

	var desc grammarDescriptor
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &desc)
	default:
		err = toml.Unmarshal(data, &desc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidGrammar, location, err)
	}

	grammar, err := desc.build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	grammar.location = location
	return grammar, nil
}

// BuiltinGrammar returns the grammar of a built-in language with its
// default scaffold and strip patterns.
func BuiltinGrammar(language string) (*Grammar, error) {
	return (&grammarDescriptor{Language: language}).build()
}

func (d *grammarDescriptor) build() (*Grammar, error) {
	if strings.TrimSpace(d.Language) == "" {
		return nil, fmt.Errorf("%w: language is required", ErrInvalidGrammar)
	}
	name, spec, ok := lookupLanguage(d.Language)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported language %q (supported: %s)",
			ErrInvalidGrammar, d.Language, strings.Join(SupportedLanguages(), ", "))
	}

	language := spec.load()
	if language == nil {
		return nil, fmt.Errorf("%w: language %q failed to load", ErrInvalidGrammar, name)
	}

	scaffold := spec.scaffold
	if d.DeclarationKeyword != nil {
		scaffold.Keyword = *d.DeclarationKeyword
	}
	if d.ScaffoldPrefix != nil {
		scaffold.Prefix = *d.ScaffoldPrefix
	}
	if d.ScaffoldSuffix != nil {
		scaffold.Suffix = *d.ScaffoldSuffix
	}
	if d.ScaffoldIndent != nil {
		scaffold.Indent = *d.ScaffoldIndent
	}

	patterns := spec.defaultStripPatterns()
	if d.StripPatterns != nil {
		patterns = d.StripPatterns
	}
	for _, p := range patterns {
		if p == "" {
			return nil, fmt.Errorf("%w: strip_patterns must not contain empty patterns", ErrInvalidGrammar)
		}
	}

	return &Grammar{
		name:               name,
		language:           language,
		scaffold:           scaffold,
		stripPatterns:      append([]string(nil), patterns...),
		rejectSyntaxErrors: d.RejectSyntaxErrors,
	}, nil
}

// DescriptorTOML renders a complete TOML grammar descriptor for a built-in
// language, with every default spelled out so it can be edited.
func DescriptorTOML(language string) ([]byte, error) {
	name, spec, ok := lookupLanguage(language)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported language %q (supported: %s)",
			ErrInvalidGrammar, language, strings.Join(SupportedLanguages(), ", "))
	}

	scaffold := spec.scaffold
	desc := grammarDescriptor{
		Language:           name,
		DeclarationKeyword: &scaffold.Keyword,
		ScaffoldPrefix:     &scaffold.Prefix,
		ScaffoldSuffix:     &scaffold.Suffix,
		ScaffoldIndent:     &scaffold.Indent,
		StripPatterns:      spec.defaultStripPatterns(),
	}
	return toml.Marshal(desc)
}

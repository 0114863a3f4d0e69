package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGrammarFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGrammar_TOML(t *testing.T) {
	path := writeGrammarFile(t, "java.toml", `
language = "java"
strip_patterns = ["identifier", "literal"]
reject_syntax_errors = true
`)

	grammar, err := LoadGrammar(path)
	require.NoError(t, err)

	assert.Equal(t, "java", grammar.Name())
	assert.Equal(t, path, grammar.Location())
	assert.Equal(t, []string{"identifier", "literal"}, grammar.StripPatterns())
	assert.True(t, grammar.RejectSyntaxErrors())
	assert.Equal(t, Scaffold{Keyword: "class", Prefix: "class A { \n", Suffix: "\n}"}, grammar.Scaffold())
}

func TestLoadGrammar_YAMLOverridesScaffold(t *testing.T) {
	path := writeGrammarFile(t, "python.yaml", `
language: py
declaration_keyword: "class"
scaffold_prefix: "class Wrapper:\n"
scaffold_suffix: ""
strip_patterns: ["identifier", "string", "integer"]
`)

	grammar, err := LoadGrammar(path)
	require.NoError(t, err)

	assert.Equal(t, "python", grammar.Name())
	assert.Equal(t, "class Wrapper:\n", grammar.Scaffold().Prefix)
	assert.Equal(t, "", grammar.Scaffold().Suffix)
	assert.Equal(t, "    ", grammar.Scaffold().Indent, "unset fields keep the language default")
	assert.Equal(t, []string{"identifier", "string", "integer"}, grammar.StripPatterns())
	assert.False(t, grammar.RejectSyntaxErrors())
}

func TestLoadGrammar_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			setup:   func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
			wantErr: ErrGrammarNotFound,
		},
		{
			name:    "empty location",
			setup:   func(t *testing.T) string { return "" },
			wantErr: ErrGrammarNotFound,
		},
		{
			name:    "directory",
			setup:   func(t *testing.T) string { return t.TempDir() },
			wantErr: ErrInvalidGrammar,
		},
		{
			name: "compiled library instead of descriptor",
			setup: func(t *testing.T) string {
				return writeGrammarFile(t, "languages.so", "\x7fELF\x02\x01\x01\x00")
			},
			wantErr: ErrInvalidGrammar,
		},
		{
			name:    "malformed toml",
			setup:   func(t *testing.T) string { return writeGrammarFile(t, "bad.toml", "language = ") },
			wantErr: ErrInvalidGrammar,
		},
		{
			name:    "missing language",
			setup:   func(t *testing.T) string { return writeGrammarFile(t, "empty.toml", "reject_syntax_errors = true\n") },
			wantErr: ErrInvalidGrammar,
		},
		{
			name:    "unknown language",
			setup:   func(t *testing.T) string { return writeGrammarFile(t, "cobol.toml", `language = "cobol"`) },
			wantErr: ErrInvalidGrammar,
		},
		{
			name: "empty strip pattern",
			setup: func(t *testing.T) string {
				return writeGrammarFile(t, "java.toml", "language = \"java\"\nstrip_patterns = [\"\"]\n")
			},
			wantErr: ErrInvalidGrammar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grammar, err := LoadGrammar(tt.setup(t))
			require.Error(t, err)
			assert.Nil(t, grammar)
			assert.True(t, errors.Is(err, tt.wantErr), "error %v should wrap %v", err, tt.wantErr)
		})
	}
}

func TestBuiltinGrammar(t *testing.T) {
	for _, name := range SupportedLanguages() {
		t.Run(name, func(t *testing.T) {
			grammar, err := BuiltinGrammar(name)
			require.NoError(t, err)
			assert.Equal(t, name, grammar.Name())
			assert.Contains(t, grammar.StripPatterns(), "identifier")
		})
	}

	java, err := BuiltinGrammar("java")
	require.NoError(t, err)
	assert.Equal(t, DefaultStripPatterns, java.StripPatterns())

	python, err := BuiltinGrammar("py")
	require.NoError(t, err)
	assert.Equal(t, []string{"identifier", "integer", "float", "string"}, python.StripPatterns())

	grammar, err := BuiltinGrammar("Golang")
	require.NoError(t, err)
	assert.Equal(t, "go", grammar.Name())
}

func TestGrammar_StripPatternsIsCopy(t *testing.T) {
	grammar, err := BuiltinGrammar("java")
	require.NoError(t, err)

	patterns := grammar.StripPatterns()
	patterns[0] = "mutated"
	assert.Equal(t, "identifier", grammar.StripPatterns()[0])
}

func TestDescriptorTOML_RoundTrip(t *testing.T) {
	for _, language := range SupportedLanguages() {
		t.Run(language, func(t *testing.T) {
			data, err := DescriptorTOML(language)
			require.NoError(t, err)

			path := writeGrammarFile(t, "grammar.toml", string(data))
			loaded, err := LoadGrammar(path)
			require.NoError(t, err)

			builtin, err := BuiltinGrammar(language)
			require.NoError(t, err)

			assert.Equal(t, builtin.Name(), loaded.Name())
			assert.Equal(t, builtin.Scaffold(), loaded.Scaffold())
			assert.Equal(t, builtin.StripPatterns(), loaded.StripPatterns())
		})
	}

	_, err := DescriptorTOML("cobol")
	assert.ErrorIs(t, err, ErrInvalidGrammar)
}

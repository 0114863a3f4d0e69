package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/codedist/domain"
	"github.com/ludo-technologies/codedist/internal/parser"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template.
type DefaultConfigValues struct {
	GrammarPath        string
	Language           string
	SupportedLanguages string

	InsertWeight int
	DeleteWeight int
	RenameWeight int
	Strategy     string

	Format      string
	ShowDetails bool

	IncludePatterns string
	ExcludePatterns string
	MaxWorkers      int
	TimeoutSeconds  int
}

// newDefaultConfigValues creates DefaultConfigValues from the default configuration.
func newDefaultConfigValues(grammarPath string) DefaultConfigValues {
	defaults := DefaultConfig()
	return DefaultConfigValues{
		GrammarPath:        grammarPath,
		Language:           defaults.Grammar.Language,
		SupportedLanguages: strings.Join(parser.SupportedLanguages(), ", "),
		InsertWeight:       defaults.Cost.InsertWeight,
		DeleteWeight:       defaults.Cost.DeleteWeight,
		RenameWeight:       defaults.Cost.RenameWeight,
		Strategy:           defaults.Cost.Strategy,
		Format:             defaults.Output.Format,
		ShowDetails:        defaults.Output.ShowDetails,
		IncludePatterns:    quoteList(defaults.Batch.IncludePatterns),
		ExcludePatterns:    quoteList(defaults.Batch.ExcludePatterns),
		MaxWorkers:         defaults.Batch.MaxWorkers,
		TimeoutSeconds:     defaults.Batch.TimeoutSeconds,
	}
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}

// GenerateDefaultConfigTOML renders the default config template and returns
// the resulting TOML string. grammarPath may be empty to use the built-in
// language.
func GenerateDefaultConfigTOML(grammarPath string) (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues(grammarPath)); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	// The rendered file must stay loadable
	var check CodedistTomlConfig
	if err := toml.Unmarshal(buf.Bytes(), &check); err != nil {
		return "", domain.NewConfigError("rendered default config is not valid TOML", err)
	}

	return buf.String(), nil
}

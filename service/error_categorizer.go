package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/codedist/domain"
)

// errorPattern maps message fragments to a category
type errorPattern struct {
	category domain.ErrorCategory
	patterns []string
}

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns []errorPattern
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

// codeCategories maps domain error codes to categories
var codeCategories = map[string]domain.ErrorCategory{
	domain.ErrCodeInvalidInput:      domain.ErrorCategoryInput,
	domain.ErrCodeFileNotFound:      domain.ErrorCategoryInput,
	domain.ErrCodeGrammarNotFound:   domain.ErrorCategoryGrammar,
	domain.ErrCodeInvalidGrammar:    domain.ErrorCategoryGrammar,
	domain.ErrCodeParseError:        domain.ErrorCategoryProcessing,
	domain.ErrCodeConfigError:       domain.ErrorCategoryConfig,
	domain.ErrCodeOutputError:       domain.ErrorCategoryOutput,
	domain.ErrCodeUnsupportedFormat: domain.ErrorCategoryOutput,
}

// initializeErrorPatterns lists fallback patterns in match order
func initializeErrorPatterns() []errorPattern {
	return []errorPattern{
		{domain.ErrorCategoryTimeout, []string{
			"timeout",
			"timed out",
			"deadline",
			"context canceled",
		}},
		{domain.ErrorCategoryGrammar, []string{
			"grammar",
			"language",
		}},
		{domain.ErrorCategoryConfig, []string{
			"config",
			"toml",
			"unknown flag",
		}},
		{domain.ErrorCategoryInput, []string{
			"invalid input",
			"no pair files",
			"no such file",
			"file not found",
			"permission denied",
			"argument",
		}},
		{domain.ErrorCategoryOutput, []string{
			"write",
			"output",
			"format",
		}},
		{domain.ErrorCategoryProcessing, []string{
			"parse",
			"syntax",
			"malformed",
		}},
	}
}

// Categorize determines the category of an error. Domain error codes win
// over message patterns.
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	category := domain.ErrorCategoryUnknown
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		category = domain.ErrorCategoryTimeout
	} else if c, ok := codeCategories[domain.ErrorCode(err)]; ok {
		category = c
	} else {
		errMsg := strings.ToLower(err.Error())
		for _, p := range ec.patterns {
			if containsAnyPattern(errMsg, p.patterns) {
				category = p.category
				break
			}
		}
	}

	message := ec.getCategoryMessage(category)
	if category == domain.ErrorCategoryUnknown {
		message = err.Error()
	}
	return &domain.CategorizedError{
		Category: category,
		Message:  message,
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the snippet and pair files exist and are readable",
			"Use - to read a snippet from standard input",
			"Pair files must be .json, .yaml or .yml with before and after fields",
		},
		domain.ErrorCategoryGrammar: {
			"Check the path given to --grammar",
			"Try: codedist init to write a grammar descriptor",
			"Use --language to pick a built-in grammar instead",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: codedist init to generate a valid config file",
			"Check for syntax errors in .codedist.toml",
		},
		domain.ErrorCategoryTimeout: {
			"Increase the batch timeout with --timeout",
			"Split large pair files into smaller batches",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions and output format validity",
			"Use --format text or check file system permissions",
			"Ensure output directory exists and is writable",
		},
		domain.ErrorCategoryProcessing: {
			"Snippets must be fragments the grammar scaffold can wrap",
			"Set reject_syntax_errors = false in the grammar descriptor to accept partial trees",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
			"Report the issue if it persists",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to read snippets or pair files",
		domain.ErrorCategoryGrammar:    "Grammar could not be loaded",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Comparison timed out",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Snippet could not be parsed",
		domain.ErrorCategoryUnknown:    "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}

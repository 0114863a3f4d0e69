package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/codedist/domain"
)

// FileReaderImpl implements the SnippetReader and PairReader interfaces
type FileReaderImpl struct {
	stdin io.Reader
}

// NewFileReader creates a new file reader service reading "-" from os.Stdin
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{stdin: os.Stdin}
}

// NewFileReaderWithStdin creates a file reader that reads "-" from the given reader
func NewFileReaderWithStdin(stdin io.Reader) *FileReaderImpl {
	return &FileReaderImpl{stdin: stdin}
}

// ReadSnippet reads the snippet at path; "-" reads standard input
func (f *FileReaderImpl) ReadSnippet(path string) (string, error) {
	if path == "-" {
		if f.stdin == nil {
			return "", domain.NewInvalidInputError("standard input is not available", nil)
		}
		content, err := io.ReadAll(f.stdin)
		if err != nil {
			return "", domain.NewInvalidInputError("failed to read standard input", err)
		}
		return string(content), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.NewFileNotFoundError(path, err)
		}
		return "", domain.NewInvalidInputError(fmt.Sprintf("cannot read %s", path), err)
	}
	return string(content), nil
}

// CollectPairFiles expands paths into pair files matching the patterns.
// Files named explicitly are kept as long as no exclude pattern matches;
// directories are walked and filtered by both pattern lists.
func (f *FileReaderImpl) CollectPairFiles(paths []string, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if !info.IsDir() {
			if !matchesAny(path, excludePatterns) {
				add(path)
			}
			continue
		}

		dirFiles, err := f.collectFromDirectory(path, includePatterns, excludePatterns)
		if err != nil {
			return nil, err
		}
		for _, file := range dirFiles {
			add(file)
		}
	}

	return files, nil
}

// collectFromDirectory walks dirPath in lexical order
func (f *FileReaderImpl) collectFromDirectory(dirPath string, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		// Skip hidden directories
		if d.IsDir() {
			if path != dirPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(dirPath, path)
		if relErr != nil {
			rel = path
		}
		if f.shouldIncludeFile(rel, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	sort.Strings(files)
	return files, nil
}

// shouldIncludeFile checks a path relative to the walked directory against the patterns
func (f *FileReaderImpl) shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	if matchesAny(path, excludePatterns) {
		return false
	}
	if len(includePatterns) == 0 {
		return true
	}
	return matchesAny(path, includePatterns)
}

// matchesAny matches the slash-separated path, and its base name, against each pattern
func matchesAny(path string, patterns []string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// ReadPairs reads every record of a pair file. A file holds either a
// single record or a list of records; records without an id are
// numbered from 1 in file order.
func (f *FileReaderImpl) ReadPairs(path string) ([]domain.SnippetPair, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewFileNotFoundError(path, err)
		}
		return nil, domain.NewInvalidInputError(fmt.Sprintf("cannot read %s", path), err)
	}

	var pairs []domain.SnippetPair
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		pairs, err = decodeJSONPairs(content)
	case ".yaml", ".yml":
		pairs, err = decodeYAMLPairs(content)
	default:
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("unsupported pair file %s: expected .json, .yaml or .yml", path), nil)
	}
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("malformed pair file %s", path), err)
	}

	for i := range pairs {
		if pairs[i].ID == "" {
			pairs[i].ID = fmt.Sprintf("%d", i+1)
		}
		pairs[i].Source = path
	}
	return pairs, nil
}

func decodeJSONPairs(content []byte) ([]domain.SnippetPair, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var pairs []domain.SnippetPair
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return nil, err
		}
		return pairs, nil
	}

	var pair domain.SnippetPair
	if err := json.Unmarshal(trimmed, &pair); err != nil {
		return nil, err
	}
	return []domain.SnippetPair{pair}, nil
}

func decodeYAMLPairs(content []byte) ([]domain.SnippetPair, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(content, &document); err != nil {
		return nil, err
	}
	if len(document.Content) == 0 {
		return nil, nil
	}

	root := document.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var pairs []domain.SnippetPair
		if err := root.Decode(&pairs); err != nil {
			return nil, err
		}
		return pairs, nil
	case yaml.MappingNode:
		var pair domain.SnippetPair
		if err := root.Decode(&pair); err != nil {
			return nil, err
		}
		return []domain.SnippetPair{pair}, nil
	default:
		return nil, fmt.Errorf("line %d: expected a pair record or a list of records", root.Line)
	}
}

package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/codedist/domain"
)

// CompareUseCase orchestrates comparing a before and after snippet file
type CompareUseCase struct {
	service      domain.ComparisonService
	reader       domain.SnippetReader
	formatter    domain.OutputFormatter
	reportWriter domain.ReportWriter
}

// NewCompareUseCase creates a new compare use case
func NewCompareUseCase(
	service domain.ComparisonService,
	reader domain.SnippetReader,
	formatter domain.OutputFormatter,
	reportWriter domain.ReportWriter,
) *CompareUseCase {
	return &CompareUseCase{
		service:      service,
		reader:       reader,
		formatter:    formatter,
		reportWriter: reportWriter,
	}
}

// Execute reads both snippets, compares them and writes the report.
// Either path may be "-" for standard input, but not both.
func (uc *CompareUseCase) Execute(ctx context.Context, beforePath, afterPath string, req domain.CompareRequest) (*domain.CompareResponse, error) {
	if err := uc.validatePaths(beforePath, afterPath); err != nil {
		return nil, err
	}

	before, err := uc.reader.ReadSnippet(beforePath)
	if err != nil {
		return nil, err
	}
	after, err := uc.reader.ReadSnippet(afterPath)
	if err != nil {
		return nil, err
	}

	req.Before = before
	req.After = after
	if req.BeforeName == "" {
		req.BeforeName = displayName(beforePath)
	}
	if req.AfterName == "" {
		req.AfterName = displayName(afterPath)
	}

	response, err := uc.service.Compare(ctx, &req)
	if err != nil {
		return nil, err
	}

	if err := uc.write(req, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (uc *CompareUseCase) validatePaths(beforePath, afterPath string) error {
	if beforePath == "" || afterPath == "" {
		return domain.NewInvalidInputError("both a before and an after snippet are required", nil)
	}
	if beforePath == "-" && afterPath == "-" {
		return domain.NewInvalidInputError("only one snippet can be read from standard input", nil)
	}
	return nil
}

func (uc *CompareUseCase) write(req domain.CompareRequest, response *domain.CompareResponse) error {
	if uc.formatter == nil {
		return nil
	}

	writeFunc := func(w io.Writer) error {
		return uc.formatter.WriteComparison(response, req.OutputFormat, w)
	}
	if uc.reportWriter == nil {
		if req.OutputWriter == nil {
			return nil
		}
		return writeFunc(req.OutputWriter)
	}
	return uc.reportWriter.Write(req.OutputWriter, req.OutputPath, req.OutputFormat, writeFunc)
}

func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}

// CompareUseCaseBuilder provides a builder pattern for creating CompareUseCase
type CompareUseCaseBuilder struct {
	service      domain.ComparisonService
	reader       domain.SnippetReader
	formatter    domain.OutputFormatter
	reportWriter domain.ReportWriter
}

// NewCompareUseCaseBuilder creates a new builder
func NewCompareUseCaseBuilder() *CompareUseCaseBuilder {
	return &CompareUseCaseBuilder{}
}

// WithService sets the comparison service
func (b *CompareUseCaseBuilder) WithService(service domain.ComparisonService) *CompareUseCaseBuilder {
	b.service = service
	return b
}

// WithReader sets the snippet reader
func (b *CompareUseCaseBuilder) WithReader(reader domain.SnippetReader) *CompareUseCaseBuilder {
	b.reader = reader
	return b
}

// WithFormatter sets the output formatter
func (b *CompareUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *CompareUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithReportWriter sets the report writer
func (b *CompareUseCaseBuilder) WithReportWriter(reportWriter domain.ReportWriter) *CompareUseCaseBuilder {
	b.reportWriter = reportWriter
	return b
}

// Build creates the CompareUseCase with the configured dependencies
func (b *CompareUseCaseBuilder) Build() (*CompareUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("comparison service is required")
	}
	if b.reader == nil {
		return nil, fmt.Errorf("snippet reader is required")
	}
	// Formatter and report writer are optional; without a formatter nothing is written
	return NewCompareUseCase(b.service, b.reader, b.formatter, b.reportWriter), nil
}

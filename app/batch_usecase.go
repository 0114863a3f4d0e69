package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/codedist/domain"
)

// BatchUseCase orchestrates comparing every pair in a set of pair files
type BatchUseCase struct {
	service      domain.BatchService
	formatter    domain.OutputFormatter
	reportWriter domain.ReportWriter
}

// NewBatchUseCase creates a new batch use case
func NewBatchUseCase(service domain.BatchService, formatter domain.OutputFormatter, reportWriter domain.ReportWriter) *BatchUseCase {
	return &BatchUseCase{
		service:      service,
		formatter:    formatter,
		reportWriter: reportWriter,
	}
}

// Execute runs the batch and writes its report. Failed pairs do not make
// Execute fail; callers inspect the summary.
func (uc *BatchUseCase) Execute(ctx context.Context, req domain.BatchRequest) (*domain.BatchResponse, error) {
	if uc.service == nil {
		return nil, fmt.Errorf("batch service is required")
	}
	if req.OutputFormat != "" && !req.OutputFormat.IsValid() {
		return nil, domain.NewUnsupportedFormatError(string(req.OutputFormat))
	}

	response, err := uc.service.Run(ctx, &req)
	if err != nil {
		return nil, err
	}

	if uc.formatter == nil {
		return response, nil
	}

	writeFunc := func(w io.Writer) error {
		return uc.formatter.WriteBatch(response, req.OutputFormat, w)
	}
	if uc.reportWriter == nil {
		if req.OutputWriter != nil {
			err = writeFunc(req.OutputWriter)
		}
	} else {
		err = uc.reportWriter.Write(req.OutputWriter, req.OutputPath, req.OutputFormat, writeFunc)
	}
	if err != nil {
		return nil, err
	}
	return response, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ludo-technologies/codedist/domain"
	"github.com/ludo-technologies/codedist/internal/log"
)

// BatchServiceImpl implements the BatchService interface
type BatchServiceImpl struct {
	reader     domain.PairReader
	comparison domain.ComparisonService
	executor   domain.ParallelExecutor
	progress   domain.ProgressManager
}

// NewBatchService creates a new batch service implementation
func NewBatchService(reader domain.PairReader, comparison domain.ComparisonService, executor domain.ParallelExecutor, progress domain.ProgressManager) *BatchServiceImpl {
	return &BatchServiceImpl{
		reader:     reader,
		comparison: comparison,
		executor:   executor,
		progress:   progress,
	}
}

// Run compares every pair found under the request paths. A pair that
// fails is reported in its result; only discovery and grammar failures,
// cancellation and timeouts fail the whole batch.
func (s *BatchServiceImpl) Run(ctx context.Context, req *domain.BatchRequest) (*domain.BatchResponse, error) {
	if req == nil {
		return nil, domain.NewValidationError("batch request is required")
	}
	if len(req.Paths) == 0 {
		return nil, domain.NewValidationError("at least one pair file or directory is required")
	}

	// Every pair shares the grammar, so a bad one fails the batch once
	if err := s.comparison.CheckGrammar(req.Grammar); err != nil {
		return nil, err
	}

	files, err := s.reader.CollectPairFiles(req.Paths, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no pair files found in the specified paths", nil)
	}

	var pairs []domain.SnippetPair
	for _, file := range files {
		filePairs, err := s.reader.ReadPairs(file)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, filePairs...)
	}

	slog.InfoContext(ctx, "batch started", "files", len(files), "pairs", len(pairs))

	results := make([]domain.PairResult, len(pairs))
	tasks := make([]domain.ExecutableTask, len(pairs))
	for i, pair := range pairs {
		tasks[i] = s.newPairTask(i, pair, req, results)
	}

	if s.executor != nil {
		s.executor.SetMaxConcurrency(req.MaxWorkers)
		s.executor.SetTimeout(req.Timeout)
	}

	showProgress := req.ShowProgress && s.progress != nil
	if showProgress {
		s.progress.Initialize(len(tasks))
		s.progress.Start()
	}

	err = s.execute(ctx, tasks)
	if showProgress {
		s.progress.Complete(err == nil)
	}
	if err != nil {
		return nil, fmt.Errorf("batch comparison failed: %w", err)
	}

	response := &domain.BatchResponse{
		Grammar: req.Grammar.String(),
		Files:   files,
		Results: results,
		Summary: summarize(results),
	}

	slog.InfoContext(ctx, "batch finished",
		"succeeded", response.Summary.Succeeded,
		"failed", response.Summary.Failed)

	return response, nil
}

// execute runs tasks on the executor, or sequentially without one
func (s *BatchServiceImpl) execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	if s.executor != nil {
		return s.executor.Execute(ctx, tasks)
	}
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := task.Execute(ctx); err != nil {
			return err
		}
	}
	return nil
}

// newPairTask writes its outcome to results[index]; each task owns one slot
func (s *BatchServiceImpl) newPairTask(index int, pair domain.SnippetPair, req *domain.BatchRequest, results []domain.PairResult) domain.ExecutableTask {
	name := fmt.Sprintf("%s#%s", pair.Source, pair.ID)

	return NewSimpleTask(name, true, func(ctx context.Context) (interface{}, error) {
		ctx = log.ContextWithAttrs(ctx, slog.String("pair", name))

		result := domain.PairResult{ID: pair.ID, Source: pair.Source}
		response, err := s.comparison.Compare(ctx, &domain.CompareRequest{
			Before:      pair.Before,
			After:       pair.After,
			BeforeName:  name + ":before",
			AfterName:   name + ":after",
			Grammar:     req.Grammar,
			Cost:        req.Cost,
			Strategy:    req.Strategy,
			ShowDetails: req.ShowDetails,
		})

		// Cancellation aborts the batch instead of failing one pair
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		if err != nil {
			slog.WarnContext(ctx, "pair comparison failed", "error", err)
			result.Error = err.Error()
		} else {
			result.Result = response
		}
		results[index] = result

		if req.ShowProgress && s.progress != nil {
			s.progress.Increment()
		}
		return result, nil
	})
}

// summarize aggregates the successful results
func summarize(results []domain.PairResult) domain.BatchSummary {
	summary := domain.BatchSummary{TotalPairs: len(results)}

	totalDistance := 0
	for _, result := range results {
		if result.Failed() || result.Result == nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		totalDistance += result.Result.TreeEditDistance
		summary.TotalNewIdentifiers += result.Result.NewIdentifierCount
		if result.Result.TreeEditDistance > summary.MaxDistance {
			summary.MaxDistance = result.Result.TreeEditDistance
		}
	}

	if summary.Succeeded > 0 {
		summary.MeanDistance = float64(totalDistance) / float64(summary.Succeeded)
	}
	return summary
}

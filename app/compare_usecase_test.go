package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/codedist/domain"
)

// Mock implementations
type mockComparisonService struct {
	mock.Mock
}

func (m *mockComparisonService) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.CompareResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompareResponse), args.Error(1)
}

func (m *mockComparisonService) TreeEditDistance(ctx context.Context, before, after, grammarLocation string) (int, error) {
	args := m.Called(ctx, before, after, grammarLocation)
	return args.Int(0), args.Error(1)
}

func (m *mockComparisonService) NewIdentifierCount(ctx context.Context, before, after, grammarLocation string) (int, error) {
	args := m.Called(ctx, before, after, grammarLocation)
	return args.Int(0), args.Error(1)
}

func (m *mockComparisonService) CheckGrammar(selector domain.GrammarSelector) error {
	args := m.Called(selector)
	return args.Error(0)
}

type mockSnippetReader struct {
	mock.Mock
}

func (m *mockSnippetReader) ReadSnippet(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

type mockOutputFormatter struct {
	mock.Mock
}

func (m *mockOutputFormatter) WriteComparison(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

func (m *mockOutputFormatter) WriteBatch(response *domain.BatchResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

func TestCompareUseCase_Execute(t *testing.T) {
	service := &mockComparisonService{}
	reader := &mockSnippetReader{}
	formatter := &mockOutputFormatter{}
	var out bytes.Buffer

	expected := &domain.CompareResponse{TreeEditDistance: 4, NewIdentifierCount: 1}
	reader.On("ReadSnippet", "before.java").Return("int i;", nil)
	reader.On("ReadSnippet", "-").Return("int j;", nil)
	service.On("Compare", mock.Anything, mock.MatchedBy(func(req *domain.CompareRequest) bool {
		return req.Before == "int i;" && req.After == "int j;" &&
			req.BeforeName == "before.java" && req.AfterName == "<stdin>"
	})).Return(expected, nil)
	formatter.On("WriteComparison", expected, domain.OutputFormatJSON, &out).Return(nil)

	uc, err := NewCompareUseCaseBuilder().
		WithService(service).
		WithReader(reader).
		WithFormatter(formatter).
		Build()
	require.NoError(t, err)

	response, err := uc.Execute(context.Background(), "before.java", "-", domain.CompareRequest{
		Grammar:      domain.GrammarSelector{Language: "java"},
		OutputFormat: domain.OutputFormatJSON,
		OutputWriter: &out,
	})
	require.NoError(t, err)
	assert.Same(t, expected, response)

	service.AssertExpectations(t)
	reader.AssertExpectations(t)
	formatter.AssertExpectations(t)
}

func TestCompareUseCase_InvalidPaths(t *testing.T) {
	uc := NewCompareUseCase(&mockComparisonService{}, &mockSnippetReader{}, nil, nil)

	_, err := uc.Execute(context.Background(), "-", "-", domain.CompareRequest{})
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))

	_, err = uc.Execute(context.Background(), "", "after.java", domain.CompareRequest{})
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))
}

func TestCompareUseCase_PropagatesErrors(t *testing.T) {
	service := &mockComparisonService{}
	reader := &mockSnippetReader{}

	readErr := domain.NewFileNotFoundError("missing.java", nil)
	reader.On("ReadSnippet", "missing.java").Return("", readErr)

	uc := NewCompareUseCase(service, reader, nil, nil)
	_, err := uc.Execute(context.Background(), "missing.java", "after.java", domain.CompareRequest{})
	assert.Equal(t, readErr, err)
	service.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)

	reader.On("ReadSnippet", "a.java").Return("a", nil)
	reader.On("ReadSnippet", "b.java").Return("b", nil)
	grammarErr := domain.NewGrammarNotFoundError("grammar.toml", errors.New("gone"))
	service.On("Compare", mock.Anything, mock.Anything).Return(nil, grammarErr)

	_, err = uc.Execute(context.Background(), "a.java", "b.java", domain.CompareRequest{})
	assert.True(t, domain.HasCode(err, domain.ErrCodeGrammarNotFound))
}

func TestCompareUseCaseBuilder_RequiresDependencies(t *testing.T) {
	_, err := NewCompareUseCaseBuilder().Build()
	assert.Error(t, err)

	_, err = NewCompareUseCaseBuilder().WithService(&mockComparisonService{}).Build()
	assert.Error(t, err)
}

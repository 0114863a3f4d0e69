package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ludo-technologies/codedist/domain"
	"github.com/ludo-technologies/codedist/internal/constants"
)

// csvHeader is shared by comparison and batch CSV output
var csvHeader = []string{
	"id", "source", "before", "after", "tree_edit_distance", "new_identifier_count",
	"similarity", "before_nodes", "after_nodes", "strategy", "error",
}

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct {
	utils *FormatUtils
}

// NewOutputFormatter creates a new output formatter service
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{utils: NewFormatUtils()}
}

// NewColorOutputFormatter creates an output formatter whose text output uses ANSI colors
func NewColorOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{utils: NewColorFormatUtils()}
}

// WriteComparison writes a single comparison in the given format
func (f *OutputFormatterImpl) WriteComparison(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil {
		return domain.NewOutputError("no comparison to write", nil)
	}

	switch format {
	case domain.OutputFormatText, "":
		return writeString(writer, f.formatComparisonText(response))
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return writeCSV(writer, [][]string{comparisonRecord("", "", response, "")})
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteBatch writes a batch result in the given format
func (f *OutputFormatterImpl) WriteBatch(response *domain.BatchResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil {
		return domain.NewOutputError("no batch result to write", nil)
	}

	switch format {
	case domain.OutputFormatText, "":
		return writeString(writer, f.formatBatchText(response))
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		records := make([][]string, 0, len(response.Results))
		for _, result := range response.Results {
			records = append(records, comparisonRecord(result.ID, result.Source, result.Result, result.Error))
		}
		return writeCSV(writer, records)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// formatComparisonText formats one comparison as human-readable text
func (f *OutputFormatterImpl) formatComparisonText(response *domain.CompareResponse) string {
	var builder strings.Builder
	utils := f.utils

	builder.WriteString(utils.FormatMainHeader("Snippet Comparison"))
	if response.BeforeName != "" || response.AfterName != "" {
		builder.WriteString(utils.FormatLabel("Before", response.BeforeName))
		builder.WriteString(utils.FormatLabel("After", response.AfterName))
	}
	builder.WriteString(utils.FormatLabel("Grammar", response.Grammar))
	builder.WriteString(utils.FormatSectionSeparator())

	builder.WriteString(utils.FormatSectionHeader("Results"))
	builder.WriteString(utils.FormatLabel("Tree edit distance", response.TreeEditDistance))
	builder.WriteString(utils.FormatLabel("New identifiers", response.NewIdentifierCount))
	builder.WriteString(utils.FormatLabel("Similarity", utils.FormatPercentage(response.Similarity)))
	if response.Change != "" {
		builder.WriteString(utils.FormatLabel("Change", fmt.Sprintf("%s (%s)", response.Change, constants.ChangeKindDescriptions[response.Change])))
	}
	builder.WriteString(utils.FormatLabel("Nodes", fmt.Sprintf("%d -> %d", response.BeforeNodes, response.AfterNodes)))
	builder.WriteString(utils.FormatLabel("Strategy", response.Strategy))

	if len(response.NewIdentifiers) > 0 {
		builder.WriteString(utils.FormatSectionSeparator())
		builder.WriteString(utils.FormatSectionHeader("New identifiers"))
		for _, added := range response.NewIdentifiers {
			if added.Nearest == "" {
				builder.WriteString(fmt.Sprintf("%s%q\n", strings.Repeat(" ", SectionPadding), added.Spelling))
				continue
			}
			builder.WriteString(fmt.Sprintf("%s%q (nearest %q, distance %d)\n",
				strings.Repeat(" ", SectionPadding), added.Spelling, added.Nearest, added.Distance))
		}
	}

	return builder.String()
}

// formatBatchText formats a batch as a table followed by its summary
func (f *OutputFormatterImpl) formatBatchText(response *domain.BatchResponse) string {
	var builder strings.Builder
	utils := f.utils

	builder.WriteString(utils.FormatMainHeader("Batch Comparison"))
	builder.WriteString(utils.FormatLabel("Grammar", response.Grammar))
	builder.WriteString(utils.FormatLabel("Pair files", len(response.Files)))
	builder.WriteString(utils.FormatSectionSeparator())

	if len(response.Results) > 0 {
		builder.WriteString(utils.FormatSectionHeader("Pairs"))
		builder.WriteString(utils.FormatTableHeader(
			fmt.Sprintf("%-30s", "Pair"), fmt.Sprintf("%8s", "Distance"), fmt.Sprintf("%8s", "New ids"), "Status"))
		for _, result := range response.Results {
			name := pairLabel(result)
			if result.Failed() {
				builder.WriteString(fmt.Sprintf("%-30s  %8s  %8s  %s: %s\n",
					name, "-", "-", utils.FormatStatus(true), result.Error))
				continue
			}
			builder.WriteString(fmt.Sprintf("%-30s  %8d  %8d  %s\n",
				name, result.Result.TreeEditDistance, result.Result.NewIdentifierCount, utils.FormatStatus(false)))
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	summary := response.Summary
	builder.WriteString(utils.FormatSectionHeader("Summary"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Total pairs", summary.TotalPairs))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Succeeded", summary.Succeeded))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Failed", summary.Failed))
	if summary.Succeeded > 0 {
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Mean distance", fmt.Sprintf("%.2f", summary.MeanDistance)))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Max distance", summary.MaxDistance))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "New identifiers", summary.TotalNewIdentifiers))
	}

	return builder.String()
}

// pairLabel names a pair by source file and id, trimmed to fit the table
func pairLabel(result domain.PairResult) string {
	label := result.ID
	if result.Source != "" {
		label = result.Source + "#" + result.ID
	}
	if len(label) > 30 {
		label = "..." + label[len(label)-27:]
	}
	return label
}

func comparisonRecord(id, source string, response *domain.CompareResponse, errMsg string) []string {
	if response == nil {
		return []string{id, source, "", "", "", "", "", "", "", "", errMsg}
	}
	return []string{
		id,
		source,
		response.BeforeName,
		response.AfterName,
		strconv.Itoa(response.TreeEditDistance),
		strconv.Itoa(response.NewIdentifierCount),
		strconv.FormatFloat(response.Similarity, 'f', 4, 64),
		strconv.Itoa(response.BeforeNodes),
		strconv.Itoa(response.AfterNodes),
		response.Strategy,
		errMsg,
	}
}

func writeCSV(writer io.Writer, records [][]string) error {
	w := csv.NewWriter(writer)
	if err := w.Write(csvHeader); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}
	if err := w.WriteAll(records); err != nil {
		return domain.NewOutputError("failed to write CSV records", err)
	}
	return nil
}

func writeString(writer io.Writer, output string) error {
	if _, err := io.WriteString(writer, output); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

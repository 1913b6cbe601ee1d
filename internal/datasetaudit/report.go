package datasetaudit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
)

const (
	reportRuleConstant                     = "===================="
	reportTaskHeaderTemplateConstant       = "Summary of task: %s\n"
	reportFieldsTemplateConstant           = "- Fields of the dataset: %s\n"
	reportExampleCountTemplateConstant     = "- Number of examples: %d\n"
	reportRepeatedFileTemplateConstant     = "*** Repeated file ID detected: %s (%d times)\n"
	reportInstructionCountTemplateConstant = "- Number of instructions in the dataset: %d\n"
	reportInstructionFloorTemplateConstant = "- The minimum required number of instructions: %s\n"
	reportEnumeratedCountTemplateConstant  = "-- %02d. %s: %d\n"
	reportAudioHeaderTemplateConstant      = "- Statistics of %s (Audio):\n"
	reportTotalDurationTemplateConstant    = "-- The total duration: %.3f minutes.\n"
	reportMeanDurationTemplateConstant     = "-- The average duration: %.3f seconds.\n"
	reportVarianceTemplateConstant         = "-- The variance: %.3f seconds.\n"
	reportMaximumDurationTemplateConstant  = "-- The maximum duration: %s seconds.\n"
	reportMinimumDurationTemplateConstant  = "-- The minimum duration: %s seconds.\n"
	reportNoDurationsLineConstant          = "-- No durations recorded.\n"
	reportTextHeaderTemplateConstant       = "- Statistics of %s (Text):\n"
	reportFieldSeparatorConstant           = ", "
	reportDecimalPointConstant             = "."
	reportWholeNumberSuffixConstant        = ".0"
	reportWriterMissingMessageConstant     = "report writer must be provided"
	reportSummarizeErrorTemplateConstant   = "summarize %s: %w"
	secondsPerMinuteConstant               = 60.0
	instructionFloorConstant               = 10.0
	examplesPerInstructionConstant         = 20.0
)

// ReportInput is everything the report renders.
type ReportInput struct {
	TaskName   string
	FieldNames []string
	Statistics Statistics
}

// DurationSummary aggregates one DurationSeries.
type DurationSummary struct {
	SampleCount     int
	TotalMinutes    float64
	MeanSeconds     float64
	VarianceSeconds float64
	MaximumSeconds  float64
	MinimumSeconds  float64
}

// Summarize aggregates the series. A single sample has zero variance and an
// empty series reports SampleCount zero with every aggregate left at zero.
func (series DurationSeries) Summarize() (DurationSummary, error) {
	if len(series.Durations) == 0 {
		return DurationSummary{}, nil
	}

	data := stats.Float64Data(series.Durations)
	summary := DurationSummary{SampleCount: len(series.Durations)}

	total, sumError := stats.Sum(data)
	if sumError != nil {
		return DurationSummary{}, sumError
	}
	summary.TotalMinutes = total / secondsPerMinuteConstant

	mean, meanError := stats.Mean(data)
	if meanError != nil {
		return DurationSummary{}, meanError
	}
	summary.MeanSeconds = mean

	if len(series.Durations) > 1 {
		variance, varianceError := stats.SampleVariance(data)
		if varianceError != nil {
			return DurationSummary{}, varianceError
		}
		summary.VarianceSeconds = variance
	}

	maximum, maximumError := stats.Max(data)
	if maximumError != nil {
		return DurationSummary{}, maximumError
	}
	summary.MaximumSeconds = maximum

	minimum, minimumError := stats.Min(data)
	if minimumError != nil {
		return DurationSummary{}, minimumError
	}
	summary.MinimumSeconds = minimum

	return summary, nil
}

// MinimumInstructionCount is max(10, exampleCount/20).
func MinimumInstructionCount(exampleCount int) float64 {
	proportional := float64(exampleCount) / examplesPerInstructionConstant
	if proportional > instructionFloorConstant {
		return proportional
	}
	return instructionFloorConstant
}

// WriteReport renders the report and writes it in one call.
func WriteReport(writer io.Writer, input ReportInput) error {
	if writer == nil {
		return errors.New(reportWriterMissingMessageConstant)
	}

	var buffer bytes.Buffer
	if renderError := renderReport(&buffer, input); renderError != nil {
		return renderError
	}

	_, writeError := writer.Write(buffer.Bytes())
	return writeError
}

func renderReport(buffer *bytes.Buffer, input ReportInput) error {
	statistics := input.Statistics

	buffer.WriteString(reportRuleConstant + "\n")
	fmt.Fprintf(buffer, reportTaskHeaderTemplateConstant, input.TaskName)
	buffer.WriteString(reportRuleConstant + "\n")
	fmt.Fprintf(buffer, reportFieldsTemplateConstant, strings.Join(input.FieldNames, reportFieldSeparatorConstant))
	fmt.Fprintf(buffer, reportExampleCountTemplateConstant, statistics.ExampleCount)

	for _, repeatedFile := range statistics.RepeatedFiles() {
		fmt.Fprintf(buffer, reportRepeatedFileTemplateConstant, repeatedFile.Value, repeatedFile.Occurrences)
	}

	fmt.Fprintf(buffer, reportInstructionCountTemplateConstant, len(statistics.Instructions))
	fmt.Fprintf(buffer, reportInstructionFloorTemplateConstant, formatInstructionFloor(statistics.ExampleCount))
	writeEnumeratedCounts(buffer, statistics.Instructions)

	for _, series := range statistics.AudioFields {
		summary, summaryError := series.Summarize()
		if summaryError != nil {
			return fmt.Errorf(reportSummarizeErrorTemplateConstant, series.FieldName, summaryError)
		}

		fmt.Fprintf(buffer, reportAudioHeaderTemplateConstant, series.FieldName)
		if summary.SampleCount == 0 {
			buffer.WriteString(reportNoDurationsLineConstant)
			continue
		}
		fmt.Fprintf(buffer, reportTotalDurationTemplateConstant, summary.TotalMinutes)
		fmt.Fprintf(buffer, reportMeanDurationTemplateConstant, summary.MeanSeconds)
		fmt.Fprintf(buffer, reportVarianceTemplateConstant, summary.VarianceSeconds)
		fmt.Fprintf(buffer, reportMaximumDurationTemplateConstant, formatSeconds(summary.MaximumSeconds))
		fmt.Fprintf(buffer, reportMinimumDurationTemplateConstant, formatSeconds(summary.MinimumSeconds))
	}

	for _, distribution := range statistics.TextLabels {
		fmt.Fprintf(buffer, reportTextHeaderTemplateConstant, distribution.FieldName)
		writeEnumeratedCounts(buffer, distribution.Values)
	}

	return nil
}

// formatInstructionFloor prints the integral floor as "10" and a larger
// proportional threshold as a float, for example "12.5" or "20.0".
func formatInstructionFloor(exampleCount int) string {
	minimum := MinimumInstructionCount(exampleCount)
	if float64(exampleCount)/examplesPerInstructionConstant > instructionFloorConstant {
		return formatSeconds(minimum)
	}
	return strconv.Itoa(int(minimum))
}

// formatSeconds prints the shortest decimal form and keeps a trailing ".0"
// on whole numbers.
func formatSeconds(value float64) string {
	formatted := humanize.Ftoa(value)
	if !strings.Contains(formatted, reportDecimalPointConstant) {
		formatted += reportWholeNumberSuffixConstant
	}
	return formatted
}

func writeEnumeratedCounts(buffer *bytes.Buffer, counts []Count) {
	for countIndex, count := range counts {
		fmt.Fprintf(buffer, reportEnumeratedCountTemplateConstant, countIndex+1, count.Value, count.Occurrences)
	}
}

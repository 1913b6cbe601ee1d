package datasetaudit_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dynamic-superb/taskops/internal/datasetaudit"
)

const expectedReportConstant = `====================
Summary of task: SpeechCommandRecognition
====================
- Fields of the dataset: file, audio, instruction, label
- Number of examples: 4
*** Repeated file ID detected: a.wav (2 times)
- Number of instructions in the dataset: 2
- The minimum required number of instructions: 10
-- 01. What word is spoken?: 3
-- 02. Name the command.: 1
- Statistics of audio (Audio):
-- The total duration: 0.100 minutes.
-- The average duration: 1.500 seconds.
-- The variance: 0.333 seconds.
-- The maximum duration: 2.0 seconds.
-- The minimum duration: 1.0 seconds.
- Statistics of label (Text):
-- 01. yes: 3
-- 02. no: 1
`

func sampleReportInput() datasetaudit.ReportInput {
	return datasetaudit.ReportInput{
		TaskName:   "SpeechCommandRecognition",
		FieldNames: []string{"file", "audio", "instruction", "label"},
		Statistics: datasetaudit.Statistics{
			ExampleCount: 4,
			Files: []datasetaudit.Count{
				{Value: "a.wav", Occurrences: 2},
				{Value: "b.wav", Occurrences: 1},
				{Value: "c.wav", Occurrences: 1},
			},
			Instructions: []datasetaudit.Count{
				{Value: "What word is spoken?", Occurrences: 3},
				{Value: "Name the command.", Occurrences: 1},
			},
			AudioFields: []datasetaudit.DurationSeries{
				{FieldName: "audio", Durations: []float64{1, 2, 1, 2}},
			},
			TextLabels: []datasetaudit.LabelDistribution{
				{FieldName: "label", Values: []datasetaudit.Count{{Value: "yes", Occurrences: 3}, {Value: "no", Occurrences: 1}}},
			},
		},
	}
}

func TestWriteReportLayout(testInstance *testing.T) {
	var output bytes.Buffer
	require.NoError(testInstance, datasetaudit.WriteReport(&output, sampleReportInput()))
	require.Equal(testInstance, expectedReportConstant, output.String())
}

func TestWriteReportIsDeterministic(testInstance *testing.T) {
	var firstOutput bytes.Buffer
	var secondOutput bytes.Buffer
	require.NoError(testInstance, datasetaudit.WriteReport(&firstOutput, sampleReportInput()))
	require.NoError(testInstance, datasetaudit.WriteReport(&secondOutput, sampleReportInput()))
	require.Equal(testInstance, firstOutput.Bytes(), secondOutput.Bytes())
}

func TestWriteReportDegenerateDurations(testInstance *testing.T) {
	testCases := []struct {
		name          string
		durations     []float64
		expectedLines string
	}{
		{
			name:      "single_sample_has_zero_variance",
			durations: []float64{1.5},
			expectedLines: "- Statistics of audio (Audio):\n" +
				"-- The total duration: 0.025 minutes.\n" +
				"-- The average duration: 1.500 seconds.\n" +
				"-- The variance: 0.000 seconds.\n" +
				"-- The maximum duration: 1.5 seconds.\n" +
				"-- The minimum duration: 1.5 seconds.\n",
		},
		{
			name:          "empty_series",
			durations:     nil,
			expectedLines: "- Statistics of audio (Audio):\n-- No durations recorded.\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			input := datasetaudit.ReportInput{
				TaskName:   "task",
				FieldNames: []string{"file", "audio", "instruction", "label"},
				Statistics: datasetaudit.Statistics{
					ExampleCount: len(testCase.durations),
					AudioFields:  []datasetaudit.DurationSeries{{FieldName: "audio", Durations: testCase.durations}},
				},
			}

			var output bytes.Buffer
			require.NoError(subTest, datasetaudit.WriteReport(&output, input))
			require.Contains(subTest, output.String(), testCase.expectedLines)
		})
	}
}

func TestMinimumInstructionCount(testInstance *testing.T) {
	testCases := []struct {
		exampleCount int
		expected     float64
	}{
		{exampleCount: 0, expected: 10},
		{exampleCount: 150, expected: 10},
		{exampleCount: 200, expected: 10},
		{exampleCount: 250, expected: 12.5},
		{exampleCount: 1000, expected: 50},
	}

	for _, testCase := range testCases {
		require.Equal(testInstance, testCase.expected, datasetaudit.MinimumInstructionCount(testCase.exampleCount))
	}
}

func TestWriteReportFormatsNumbers(testInstance *testing.T) {
	testCases := []struct {
		name          string
		exampleCount  int
		durations     []float64
		expectedLines []string
	}{
		{
			name:         "integral_floor",
			exampleCount: 200,
			durations:    []float64{2, 1},
			expectedLines: []string{
				"- The minimum required number of instructions: 10\n",
				"-- The maximum duration: 2.0 seconds.\n",
				"-- The minimum duration: 1.0 seconds.\n",
			},
		},
		{
			name:         "fractional_threshold",
			exampleCount: 250,
			durations:    []float64{0.25},
			expectedLines: []string{
				"- The minimum required number of instructions: 12.5\n",
				"-- The maximum duration: 0.25 seconds.\n",
			},
		},
		{
			name:         "whole_proportional_threshold",
			exampleCount: 400,
			durations:    []float64{3.5, 10},
			expectedLines: []string{
				"- The minimum required number of instructions: 20.0\n",
				"-- The maximum duration: 10.0 seconds.\n",
				"-- The minimum duration: 3.5 seconds.\n",
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			input := datasetaudit.ReportInput{TaskName: "task", Statistics: datasetaudit.Statistics{
				ExampleCount: testCase.exampleCount,
				AudioFields:  []datasetaudit.DurationSeries{{FieldName: "audio", Durations: testCase.durations}},
			}}

			var output bytes.Buffer
			require.NoError(subTest, datasetaudit.WriteReport(&output, input))
			for _, expectedLine := range testCase.expectedLines {
				require.Contains(subTest, output.String(), expectedLine)
			}
		})
	}
}

func TestWriteReportRequiresWriter(testInstance *testing.T) {
	require.Error(testInstance, datasetaudit.WriteReport(nil, sampleReportInput()))
}

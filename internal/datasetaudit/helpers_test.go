package datasetaudit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dynamic-superb/taskops/internal/dataset"
)

const testSamplingRateConstant = 4

func buildFeatures(testInstance *testing.T, declarations ...string) dataset.Features {
	testInstance.Helper()
	require.Zero(testInstance, len(declarations)%2)

	features := make([]dataset.Feature, 0, len(declarations)/2)
	for declarationIndex := 0; declarationIndex < len(declarations); declarationIndex += 2 {
		features = append(features, dataset.NewFeature(declarations[declarationIndex], declarations[declarationIndex+1]))
	}

	table, tableError := dataset.NewFeatures(features...)
	require.NoError(testInstance, tableError)
	return table
}

func inlineAudio(durationSeconds float64) dataset.Value {
	sampleCount := int(durationSeconds * testSamplingRateConstant)
	return dataset.AudioCell(dataset.NewInlineAudio(make([]float64, sampleCount), testSamplingRateConstant))
}

func textExample(fileName string, instruction string, label string, audioSeconds float64) dataset.Example {
	return dataset.Example{
		"file":        dataset.StringValue(fileName),
		"audio":       inlineAudio(audioSeconds),
		"instruction": dataset.StringValue(instruction),
		"label":       dataset.StringValue(label),
	}
}

package datasetaudit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dynamic-superb/taskops/internal/dataset"
	"github.com/dynamic-superb/taskops/internal/datasetaudit"
)

func TestValidateDatasetRules(testInstance *testing.T) {
	testCases := []struct {
		name            string
		splitNames      []string
		declarations    []string
		expectedRule    datasetaudit.ValidationRule
		expectedMessage string
	}{
		{
			name:            "missing_test_split",
			splitNames:      []string{"train"},
			declarations:    []string{"file", "string", "instruction", "string", "label", "string"},
			expectedRule:    datasetaudit.RuleTestSplitPresent,
			expectedMessage: "Test split was not found in the dataset.",
		},
		{
			name:            "multiple_splits",
			splitNames:      []string{"test", "train"},
			declarations:    []string{"file", "string", "instruction", "string", "label", "string"},
			expectedRule:    datasetaudit.RuleSingleSplit,
			expectedMessage: "There are multiple splits in the dataset: [test, train].",
		},
		{
			name:            "missing_file",
			splitNames:      []string{"test"},
			declarations:    []string{"instruction", "string", "label", "string"},
			expectedRule:    datasetaudit.RuleRequiredField,
			expectedMessage: "The file field does not exist in the dataset.",
		},
		{
			name:            "missing_instruction",
			splitNames:      []string{"test"},
			declarations:    []string{"file", "string", "label", "string"},
			expectedRule:    datasetaudit.RuleRequiredField,
			expectedMessage: "The instruction field does not exist in the dataset.",
		},
		{
			name:            "label1_without_label",
			splitNames:      []string{"test"},
			declarations:    []string{"file", "string", "instruction", "string", "label1", "string"},
			expectedRule:    datasetaudit.RuleRequiredField,
			expectedMessage: "The label field does not exist in the dataset.",
		},
		{
			name:            "file_not_string",
			splitNames:      []string{"test"},
			declarations:    []string{"file", "int64", "instruction", "string", "label", "string"},
			expectedRule:    datasetaudit.RuleStringField,
			expectedMessage: "Expected the file to be in string format, but got int64.",
		},
		{
			name:            "instruction_not_string",
			splitNames:      []string{"test"},
			declarations:    []string{"file", "string", "instruction", "audio", "label", "string"},
			expectedRule:    datasetaudit.RuleStringField,
			expectedMessage: "Expected the instruction to be in string format, but got audio.",
		},
		{
			name:            "audio_and_audio1",
			splitNames:      []string{"test"},
			declarations:    []string{"file", "string", "audio", "audio", "audio1", "audio", "instruction", "string", "label", "string"},
			expectedRule:    datasetaudit.RuleExclusiveAudio,
			expectedMessage: "The audio and audio1 fields should not exist at the same time.",
		},
		{
			name:            "text_and_text1",
			splitNames:      []string{"test"},
			declarations:    []string{"file", "string", "text", "string", "text1", "string", "instruction", "string", "label", "string"},
			expectedRule:    datasetaudit.RuleExclusiveText,
			expectedMessage: "The text and text1 fields should not exist at the same time.",
		},
		{
			name:            "label_and_label1",
			splitNames:      []string{"test"},
			declarations:    []string{"file", "string", "instruction", "string", "label", "string", "label1", "string"},
			expectedRule:    datasetaudit.RuleExclusiveLabel,
			expectedMessage: "The label and label1 fields should not exist at the same time.",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			splits := make([]dataset.Split, 0, len(testCase.splitNames))
			for _, splitName := range testCase.splitNames {
				splits = append(splits, dataset.Split{Name: splitName})
			}
			candidate := dataset.Dataset{Features: buildFeatures(subTest, testCase.declarations...), Splits: splits}

			_, validationError := datasetaudit.ValidateDataset(candidate)
			var ruleError datasetaudit.ValidationError
			require.ErrorAs(subTest, validationError, &ruleError)
			require.Equal(subTest, testCase.expectedRule, ruleError.Rule)
			require.Equal(subTest, testCase.expectedMessage, ruleError.Error())
		})
	}
}

func TestValidateDatasetReturnsTestSplit(testInstance *testing.T) {
	features := buildFeatures(testInstance, "file", "string", "audio1", "audio", "instruction", "string", "label", "audio")
	testSplit := dataset.Split{Name: "test", Examples: []dataset.Example{textExample("a", "i", "x", 1)}}

	validatedSplit, validationError := datasetaudit.ValidateDataset(dataset.Dataset{Features: features, Splits: []dataset.Split{testSplit}})
	require.NoError(testInstance, validationError)
	require.Equal(testInstance, testSplit, validatedSplit)
}

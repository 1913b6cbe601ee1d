package datasetaudit

import (
	"fmt"
	"strings"

	"github.com/dynamic-superb/taskops/internal/dataset"
)

// Canonical field and split names of the task convention.
const (
	TestSplitName        = "test"
	FileFieldName        = "file"
	InstructionFieldName = "instruction"
	AudioFieldPrefix     = "audio"
	TextFieldPrefix      = "text"
	LabelFieldPrefix     = "label"
	firstSynonymSuffix   = "1"
)

const (
	missingTestSplitMessageConstant   = "Test split was not found in the dataset."
	multipleSplitsTemplateConstant    = "There are multiple splits in the dataset: [%s]."
	missingFieldTemplateConstant      = "The %s field does not exist in the dataset."
	stringFieldTemplateConstant       = "Expected the %s to be in string format, but got %s."
	conflictingFieldsTemplateConstant = "The %s and %s fields should not exist at the same time."
	missingLabelMessageConstant       = "The label (or label1) field does not exist in the dataset."
	splitNameSeparatorConstant        = ", "
)

// ValidateDataset checks the split layout and feature table and returns the
// test split. Nothing is accumulated unless every rule passes.
func ValidateDataset(loaded dataset.Dataset) (dataset.Split, error) {
	testSplit, found := loaded.Split(TestSplitName)
	if !found {
		return dataset.Split{}, ValidationError{Rule: RuleTestSplitPresent, Message: missingTestSplitMessageConstant}
	}

	if len(loaded.Splits) != 1 {
		return dataset.Split{}, ValidationError{
			Rule:    RuleSingleSplit,
			Message: fmt.Sprintf(multipleSplitsTemplateConstant, strings.Join(loaded.SplitNames(), splitNameSeparatorConstant)),
		}
	}

	if featuresError := ValidateFeatures(loaded.Features); featuresError != nil {
		return dataset.Split{}, featuresError
	}

	return testSplit, nil
}

// ValidateFeatures enforces the required fields, their string types, and the
// mutual exclusion of each base field with its "1"-suffixed synonym.
func ValidateFeatures(features dataset.Features) error {
	for _, requiredField := range []string{FileFieldName, InstructionFieldName, LabelFieldPrefix} {
		if !features.Has(requiredField) {
			return ValidationError{Rule: RuleRequiredField, Message: fmt.Sprintf(missingFieldTemplateConstant, requiredField)}
		}
	}

	for _, stringField := range []string{FileFieldName, InstructionFieldName} {
		feature, _ := features.Lookup(stringField)
		if feature.Kind != dataset.FeatureKindString {
			return ValidationError{Rule: RuleStringField, Message: fmt.Sprintf(stringFieldTemplateConstant, stringField, feature.DeclaredType)}
		}
	}

	if conflictError := checkSynonymConflict(features, AudioFieldPrefix, RuleExclusiveAudio); conflictError != nil {
		return conflictError
	}
	if conflictError := checkSynonymConflict(features, TextFieldPrefix, RuleExclusiveText); conflictError != nil {
		return conflictError
	}

	if !features.Has(LabelFieldPrefix) && !features.Has(LabelFieldPrefix+firstSynonymSuffix) {
		return ValidationError{Rule: RuleLabelPresent, Message: missingLabelMessageConstant}
	}

	return checkSynonymConflict(features, LabelFieldPrefix, RuleExclusiveLabel)
}

func checkSynonymConflict(features dataset.Features, baseName string, rule ValidationRule) error {
	synonym := baseName + firstSynonymSuffix
	if features.Has(baseName) && features.Has(synonym) {
		return ValidationError{Rule: rule, Message: fmt.Sprintf(conflictingFieldsTemplateConstant, baseName, synonym)}
	}
	return nil
}

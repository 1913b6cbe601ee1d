package datasetaudit

import "fmt"

const (
	unsupportedFeatureTypeTemplateConstant = "unknown data type for %s (declared %q)"
	missingValueTemplateConstant           = "example %d has no value for %s"
	valueKindMismatchTemplateConstant      = "example %d field %s holds %s, declared %s"
	invalidDurationTemplateConstant        = "example %d field %s: %v"
)

// ValidationRule names a schema convention the dataset must satisfy.
type ValidationRule string

// Validation rules in the order they are checked.
const (
	RuleTestSplitPresent ValidationRule = "test_split_present"
	RuleSingleSplit      ValidationRule = "single_split"
	RuleRequiredField    ValidationRule = "required_field"
	RuleStringField      ValidationRule = "string_field"
	RuleExclusiveAudio   ValidationRule = "exclusive_audio"
	RuleExclusiveText    ValidationRule = "exclusive_text"
	RuleLabelPresent     ValidationRule = "label_present"
	RuleExclusiveLabel   ValidationRule = "exclusive_label"
)

// ValidationError reports the first violated schema rule.
type ValidationError struct {
	Rule    ValidationRule
	Message string
}

// Error returns the rule-specific message.
func (validationError ValidationError) Error() string {
	return validationError.Message
}

// UnsupportedFeatureTypeError reports a label field whose declared type is
// neither audio nor string.
type UnsupportedFeatureTypeError struct {
	FieldName    string
	DeclaredType string
}

// Error names the offending field.
func (typeError UnsupportedFeatureTypeError) Error() string {
	return fmt.Sprintf(unsupportedFeatureTypeTemplateConstant, typeError.FieldName, typeError.DeclaredType)
}

// ExampleError reports an example whose value cannot feed its accumulator.
type ExampleError struct {
	ExampleIndex int
	FieldName    string
	Message      string
	Cause        error
}

// Error describes the example problem.
func (exampleError ExampleError) Error() string {
	if exampleError.Cause != nil {
		return fmt.Sprintf(invalidDurationTemplateConstant, exampleError.ExampleIndex, exampleError.FieldName, exampleError.Cause)
	}
	return exampleError.Message
}

// Unwrap exposes the underlying cause.
func (exampleError ExampleError) Unwrap() error {
	return exampleError.Cause
}

package dataset

import (
	"fmt"
	"strings"
)

const (
	featureNameMissingMessageConstant         = "feature name must be provided"
	featureDuplicateMessageConstant           = "feature declared more than once"
	invalidFeatureTemplateConstant            = "invalid feature %q: %s"
	invalidFeatureWithoutNameTemplateConstant = "invalid feature: %s"
	invalidDescriptorTemplateConstant         = "invalid dataset descriptor: %s %s"
	revisionMismatchTemplateConstant          = "dataset %s is at version %q, requested %q"
	malformedExampleTemplateConstant          = "split %s line %d: %s"
	malformedExampleWithFieldTemplateConstant = "split %s line %d field %s: %s"
	invalidAudioTemplateConstant              = "invalid audio in field %s: %s"
	operationErrorTemplateConstant            = "%s %s: %v"
)

// InvalidFeatureError reports a malformed feature declaration.
type InvalidFeatureError struct {
	FieldName string
	Message   string
}

// Error describes the invalid declaration.
func (featureError InvalidFeatureError) Error() string {
	if len(featureError.FieldName) == 0 {
		return fmt.Sprintf(invalidFeatureWithoutNameTemplateConstant, featureError.Message)
	}
	return fmt.Sprintf(invalidFeatureTemplateConstant, featureError.FieldName, featureError.Message)
}

// InvalidDescriptorError reports a descriptor key that is missing or malformed.
type InvalidDescriptorError struct {
	Key     string
	Message string
}

// Error describes the descriptor problem.
func (descriptorError InvalidDescriptorError) Error() string {
	return fmt.Sprintf(invalidDescriptorTemplateConstant, descriptorError.Key, descriptorError.Message)
}

// RevisionMismatchError indicates the dataset on disk is not the requested version.
type RevisionMismatchError struct {
	Path              string
	AvailableVersion  string
	RequestedRevision string
}

// Error describes the mismatch.
func (mismatchError RevisionMismatchError) Error() string {
	return fmt.Sprintf(revisionMismatchTemplateConstant, mismatchError.Path, mismatchError.AvailableVersion, mismatchError.RequestedRevision)
}

// MalformedExampleError reports a split row that does not match the feature table.
type MalformedExampleError struct {
	Split     string
	Line      int
	FieldName string
	Message   string
}

// Error describes the malformed row.
func (exampleError MalformedExampleError) Error() string {
	if len(exampleError.FieldName) == 0 {
		return fmt.Sprintf(malformedExampleTemplateConstant, exampleError.Split, exampleError.Line, exampleError.Message)
	}
	return fmt.Sprintf(malformedExampleWithFieldTemplateConstant, exampleError.Split, exampleError.Line, exampleError.FieldName, exampleError.Message)
}

// InvalidAudioError reports audio that cannot yield a duration.
type InvalidAudioError struct {
	FieldName string
	Message   string
}

// Error describes the invalid audio.
func (audioError InvalidAudioError) Error() string {
	return fmt.Sprintf(invalidAudioTemplateConstant, audioError.FieldName, audioError.Message)
}

// OperationError wraps file system and decoding failures with the path involved.
type OperationError struct {
	Operation string
	Path      string
	Cause     error
}

// Error describes the failed operation.
func (operationError OperationError) Error() string {
	return strings.TrimSpace(fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation, operationError.Path, operationError.Cause))
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

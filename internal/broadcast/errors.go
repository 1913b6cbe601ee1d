package broadcast

import "fmt"

const (
	invalidInputTemplateConstant   = "%s %s"
	pageFetchErrorTemplateConstant = "failed to fetch issues page %d (status %d): %v"
)

// InvalidInputError reports a missing or malformed campaign setting.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid field.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputTemplateConstant, inputError.FieldName, inputError.Message)
}

// PageFetchError reports an issues page the tracker could not return.
// Pagination stops at this page.
type PageFetchError struct {
	Page       int
	StatusCode int
	Cause      error
}

// Error includes the page and HTTP status.
func (fetchError PageFetchError) Error() string {
	return fmt.Sprintf(pageFetchErrorTemplateConstant, fetchError.Page, fetchError.StatusCode, fetchError.Cause)
}

// Unwrap exposes the tracker error.
func (fetchError PageFetchError) Unwrap() error {
	return fetchError.Cause
}

package datasetaudit

import (
	"strconv"

	"github.com/dynamic-superb/taskops/internal/dataset"
)

// Bounds on numbered sibling fields such as audio2 ... audio10.
const (
	FirstSiblingIndex          = 2
	DefaultMaximumSiblingIndex = 10
)

// FieldGroup lists the enumerated audio inputs, text inputs and labels in
// enumeration order.
type FieldGroup struct {
	AudioInputs []string
	TextInputs  []string
	Labels      []string
}

// EnumerateFamily returns the members of a numbered field family. The first
// member is baseName when declared, or the "1"-suffixed synonym otherwise.
// Siblings prefix2, prefix3, ... follow until the first gap or maxIndex. A
// family without a first member is empty even when siblings are declared.
func EnumerateFamily(features dataset.Features, prefix string, baseName string, maxIndex int) []string {
	var family []string
	switch {
	case features.Has(baseName):
		family = append(family, baseName)
	case features.Has(prefix + firstSynonymSuffix):
		family = append(family, prefix+firstSynonymSuffix)
	default:
		return nil
	}

	for siblingIndex := FirstSiblingIndex; siblingIndex <= maxIndex; siblingIndex++ {
		siblingName := prefix + strconv.Itoa(siblingIndex)
		if !features.Has(siblingName) {
			break
		}
		family = append(family, siblingName)
	}

	return family
}

// ResolveFieldGroup enumerates every family the audit accumulates.
func ResolveFieldGroup(features dataset.Features, maxIndex int) FieldGroup {
	return FieldGroup{
		AudioInputs: EnumerateFamily(features, AudioFieldPrefix, AudioFieldPrefix, maxIndex),
		TextInputs:  EnumerateFamily(features, TextFieldPrefix, TextFieldPrefix, maxIndex),
		Labels:      EnumerateFamily(features, LabelFieldPrefix, LabelFieldPrefix, maxIndex),
	}
}

package dataset

import "strings"

const (
	declaredTypeStringConstant = "string"
	declaredTypeAudioConstant  = "audio"
)

// FeatureKind is the closed set of field kinds the audit understands.
type FeatureKind int

// Feature kinds. FeatureKindOther covers every declared type that is neither
// a string nor audio (integers, class labels, sequences, ...).
const (
	FeatureKindOther FeatureKind = iota
	FeatureKindString
	FeatureKindAudio
)

// String renders the kind for diagnostics.
func (kind FeatureKind) String() string {
	switch kind {
	case FeatureKindString:
		return declaredTypeStringConstant
	case FeatureKindAudio:
		return declaredTypeAudioConstant
	default:
		return "other"
	}
}

// ParseFeatureKind maps a declared type name onto a FeatureKind.
func ParseFeatureKind(declaredType string) FeatureKind {
	switch strings.ToLower(strings.TrimSpace(declaredType)) {
	case declaredTypeStringConstant:
		return FeatureKindString
	case declaredTypeAudioConstant:
		return FeatureKindAudio
	default:
		return FeatureKindOther
	}
}

// Feature describes one declared dataset field.
type Feature struct {
	Name         string
	Kind         FeatureKind
	DeclaredType string
}

// NewFeature builds a Feature from its declared type name.
func NewFeature(name string, declaredType string) Feature {
	trimmedType := strings.TrimSpace(declaredType)
	return Feature{
		Name:         strings.TrimSpace(name),
		Kind:         ParseFeatureKind(trimmedType),
		DeclaredType: trimmedType,
	}
}

// Features is the read-only feature table of a dataset in declaration order.
type Features struct {
	ordered []Feature
	index   map[string]int
}

// NewFeatures builds a feature table. Duplicate names are rejected.
func NewFeatures(features ...Feature) (Features, error) {
	table := Features{
		ordered: make([]Feature, 0, len(features)),
		index:   make(map[string]int, len(features)),
	}
	for _, feature := range features {
		if len(feature.Name) == 0 {
			return Features{}, InvalidFeatureError{Message: featureNameMissingMessageConstant}
		}
		if _, duplicate := table.index[feature.Name]; duplicate {
			return Features{}, InvalidFeatureError{FieldName: feature.Name, Message: featureDuplicateMessageConstant}
		}
		table.index[feature.Name] = len(table.ordered)
		table.ordered = append(table.ordered, feature)
	}
	return table, nil
}

// MustFeatures is NewFeatures for statically known tables.
func MustFeatures(features ...Feature) Features {
	table, tableError := NewFeatures(features...)
	if tableError != nil {
		panic(tableError)
	}
	return table
}

// Has reports whether the named field is declared.
func (features Features) Has(name string) bool {
	_, found := features.index[name]
	return found
}

// Lookup returns the named feature.
func (features Features) Lookup(name string) (Feature, bool) {
	position, found := features.index[name]
	if !found {
		return Feature{}, false
	}
	return features.ordered[position], true
}

// Names lists field names in declaration order.
func (features Features) Names() []string {
	names := make([]string, 0, len(features.ordered))
	for _, feature := range features.ordered {
		names = append(names, feature.Name)
	}
	return names
}

// All returns a copy of the ordered features.
func (features Features) All() []Feature {
	return append([]Feature(nil), features.ordered...)
}

// Len returns the number of declared fields.
func (features Features) Len() int {
	return len(features.ordered)
}

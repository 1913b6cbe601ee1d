package dataset

import "fmt"

const (
	nonPositiveSamplingRateTemplateConstant = "sampling rate must be positive, got %d"
	negativeSampleCountTemplateConstant     = "sample count must not be negative, got %d"
)

// AudioValue is a decoded audio cell. SampleCount is the per-channel frame
// count; Samples is populated only when the dataset embeds the array.
type AudioValue struct {
	Path         string
	Samples      []float64
	SampleCount  int
	SamplingRate int
}

// NewInlineAudio builds an AudioValue from an embedded sample array.
func NewInlineAudio(samples []float64, samplingRate int) AudioValue {
	return AudioValue{Samples: samples, SampleCount: len(samples), SamplingRate: samplingRate}
}

// Duration returns the clip length in seconds.
func (audio AudioValue) Duration() (float64, error) {
	if audio.SamplingRate <= 0 {
		return 0, fmt.Errorf(nonPositiveSamplingRateTemplateConstant, audio.SamplingRate)
	}
	if audio.SampleCount < 0 {
		return 0, fmt.Errorf(negativeSampleCountTemplateConstant, audio.SampleCount)
	}
	return float64(audio.SampleCount) / float64(audio.SamplingRate), nil
}

// Value is one cell of an Example. Exactly one of the payloads is meaningful,
// selected by Kind.
type Value struct {
	kind  FeatureKind
	text  string
	audio AudioValue
	raw   any
}

// StringValue wraps a string cell.
func StringValue(text string) Value {
	return Value{kind: FeatureKindString, text: text}
}

// AudioCell wraps an audio cell.
func AudioCell(audio AudioValue) Value {
	return Value{kind: FeatureKindAudio, audio: audio}
}

// OtherValue wraps a cell of any other declared type.
func OtherValue(raw any) Value {
	return Value{kind: FeatureKindOther, raw: raw}
}

// Kind reports which payload the value carries.
func (value Value) Kind() FeatureKind {
	return value.kind
}

// Text returns the string payload.
func (value Value) Text() (string, bool) {
	return value.text, value.kind == FeatureKindString
}

// Audio returns the audio payload.
func (value Value) Audio() (AudioValue, bool) {
	return value.audio, value.kind == FeatureKindAudio
}

// Raw returns the payload of an other-kind value.
func (value Value) Raw() any {
	return value.raw
}

// Example is one row of a split keyed by field name.
type Example map[string]Value

// Split is a named partition of a dataset in its native order.
type Split struct {
	Name     string
	Examples []Example
}

// Len returns the number of examples in the split.
func (split Split) Len() int {
	return len(split.Examples)
}

// Info carries the dataset-level metadata from dataset_info.yaml.
type Info struct {
	Name    string
	Version string
}

// Dataset is a loaded dataset: feature table plus splits sorted by name.
type Dataset struct {
	Info     Info
	Features Features
	Splits   []Split
}

// SplitNames lists split names in sorted order.
func (dataset Dataset) SplitNames() []string {
	names := make([]string, 0, len(dataset.Splits))
	for _, split := range dataset.Splits {
		names = append(names, split.Name)
	}
	return names
}

// Split returns the named split.
func (dataset Dataset) Split(name string) (Split, bool) {
	for _, split := range dataset.Splits {
		if split.Name == name {
			return split, true
		}
	}
	return Split{}, false
}

package datasetaudit

import (
	"fmt"

	"github.com/dynamic-superb/taskops/internal/dataset"
)

// DurationSeries holds the per-example durations, in seconds, of one audio
// field.
type DurationSeries struct {
	FieldName string
	Durations []float64
}

// LabelDistribution holds the value counts of one text label field.
type LabelDistribution struct {
	FieldName string
	Values    []Count
}

// Statistics is the finished result of one pass over the test split.
type Statistics struct {
	ExampleCount int
	Files        []Count
	Instructions []Count
	// AudioFields lists audio inputs in enumeration order, then audio labels.
	AudioFields []DurationSeries
	TextLabels  []LabelDistribution
}

// RepeatedFiles returns file identifiers seen more than once, first-seen order.
func (statistics Statistics) RepeatedFiles() []Count {
	var repeated []Count
	for _, fileCount := range statistics.Files {
		if fileCount.Occurrences > 1 {
			repeated = append(repeated, fileCount)
		}
	}
	return repeated
}

// Accumulator folds examples into Statistics in a single pass.
type Accumulator struct {
	features       dataset.Features
	group          FieldGroup
	exampleCount   int
	files          *orderedCounter
	instructions   *orderedCounter
	audioDurations map[string][]float64
	labelDurations map[string][]float64
	labelValues    map[string]*orderedCounter
}

// NewAccumulator prepares an accumulator for the enumerated field group.
func NewAccumulator(features dataset.Features, group FieldGroup) *Accumulator {
	return &Accumulator{
		features:       features,
		group:          group,
		files:          newOrderedCounter(),
		instructions:   newOrderedCounter(),
		audioDurations: make(map[string][]float64, len(group.AudioInputs)),
		labelDurations: make(map[string][]float64),
		labelValues:    make(map[string]*orderedCounter),
	}
}

// Add folds one example. A label whose declared type is neither audio nor
// string fails with UnsupportedFeatureTypeError. A failed example leaves the
// accumulator unchanged.
func (accumulator *Accumulator) Add(example dataset.Example) error {
	exampleIndex := accumulator.exampleCount

	fileName, fileError := textValue(example, exampleIndex, FileFieldName)
	if fileError != nil {
		return fileError
	}
	instruction, instructionError := textValue(example, exampleIndex, InstructionFieldName)
	if instructionError != nil {
		return instructionError
	}

	inputDurations := make([]float64, 0, len(accumulator.group.AudioInputs))
	for _, audioField := range accumulator.group.AudioInputs {
		duration, durationError := audioDuration(example, exampleIndex, audioField)
		if durationError != nil {
			return durationError
		}
		inputDurations = append(inputDurations, duration)
	}

	labelDurations := make(map[string]float64)
	labelTexts := make(map[string]string)
	for _, labelField := range accumulator.group.Labels {
		feature, _ := accumulator.features.Lookup(labelField)
		switch feature.Kind {
		case dataset.FeatureKindAudio:
			duration, durationError := audioDuration(example, exampleIndex, labelField)
			if durationError != nil {
				return durationError
			}
			labelDurations[labelField] = duration
		case dataset.FeatureKindString:
			label, labelError := textValue(example, exampleIndex, labelField)
			if labelError != nil {
				return labelError
			}
			labelTexts[labelField] = label
		default:
			return UnsupportedFeatureTypeError{FieldName: labelField, DeclaredType: feature.DeclaredType}
		}
	}

	for inputIndex, audioField := range accumulator.group.AudioInputs {
		accumulator.audioDurations[audioField] = append(accumulator.audioDurations[audioField], inputDurations[inputIndex])
	}
	for labelField, duration := range labelDurations {
		accumulator.labelDurations[labelField] = append(accumulator.labelDurations[labelField], duration)
	}
	for labelField, label := range labelTexts {
		counter, exists := accumulator.labelValues[labelField]
		if !exists {
			counter = newOrderedCounter()
			accumulator.labelValues[labelField] = counter
		}
		counter.add(label)
	}

	accumulator.files.add(fileName)
	accumulator.instructions.add(instruction)
	accumulator.exampleCount++
	return nil
}

// Result returns the statistics gathered so far.
func (accumulator *Accumulator) Result() Statistics {
	statistics := Statistics{
		ExampleCount: accumulator.exampleCount,
		Files:        accumulator.files.snapshot(),
		Instructions: accumulator.instructions.snapshot(),
	}

	for _, audioField := range accumulator.group.AudioInputs {
		statistics.AudioFields = append(statistics.AudioFields, DurationSeries{
			FieldName: audioField,
			Durations: append([]float64(nil), accumulator.audioDurations[audioField]...),
		})
	}

	for _, labelField := range accumulator.group.Labels {
		if durations, isAudio := accumulator.labelDurations[labelField]; isAudio {
			statistics.AudioFields = append(statistics.AudioFields, DurationSeries{
				FieldName: labelField,
				Durations: append([]float64(nil), durations...),
			})
		}
	}

	for _, labelField := range accumulator.group.Labels {
		if counter, isText := accumulator.labelValues[labelField]; isText {
			statistics.TextLabels = append(statistics.TextLabels, LabelDistribution{
				FieldName: labelField,
				Values:    counter.snapshot(),
			})
		}
	}

	return statistics
}

func textValue(example dataset.Example, exampleIndex int, fieldName string) (string, error) {
	value, present := example[fieldName]
	if !present {
		return "", ExampleError{ExampleIndex: exampleIndex, FieldName: fieldName, Message: fmt.Sprintf(missingValueTemplateConstant, exampleIndex, fieldName)}
	}
	text, isText := value.Text()
	if !isText {
		return "", ExampleError{
			ExampleIndex: exampleIndex,
			FieldName:    fieldName,
			Message:      fmt.Sprintf(valueKindMismatchTemplateConstant, exampleIndex, fieldName, value.Kind(), dataset.FeatureKindString),
		}
	}
	return text, nil
}

func audioDuration(example dataset.Example, exampleIndex int, fieldName string) (float64, error) {
	value, present := example[fieldName]
	if !present {
		return 0, ExampleError{ExampleIndex: exampleIndex, FieldName: fieldName, Message: fmt.Sprintf(missingValueTemplateConstant, exampleIndex, fieldName)}
	}
	audioValue, isAudio := value.Audio()
	if !isAudio {
		return 0, ExampleError{
			ExampleIndex: exampleIndex,
			FieldName:    fieldName,
			Message:      fmt.Sprintf(valueKindMismatchTemplateConstant, exampleIndex, fieldName, value.Kind(), dataset.FeatureKindAudio),
		}
	}
	duration, durationError := audioValue.Duration()
	if durationError != nil {
		return 0, ExampleError{ExampleIndex: exampleIndex, FieldName: fieldName, Cause: durationError}
	}
	return duration, nil
}

package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dynamic-superb/taskops/internal/dataset"
)

func TestParseFeatureKind(testInstance *testing.T) {
	testCases := []struct {
		name         string
		declaredType string
		expectedKind dataset.FeatureKind
	}{
		{name: "string", declaredType: "string", expectedKind: dataset.FeatureKindString},
		{name: "audio", declaredType: "audio", expectedKind: dataset.FeatureKindAudio},
		{name: "case_insensitive", declaredType: " Audio ", expectedKind: dataset.FeatureKindAudio},
		{name: "integer", declaredType: "int64", expectedKind: dataset.FeatureKindOther},
		{name: "class_label", declaredType: "class_label", expectedKind: dataset.FeatureKindOther},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			require.Equal(subTest, testCase.expectedKind, dataset.ParseFeatureKind(testCase.declaredType))
		})
	}
}

func TestFeaturesPreserveDeclarationOrder(testInstance *testing.T) {
	features, featuresError := dataset.NewFeatures(
		dataset.NewFeature("file", "string"),
		dataset.NewFeature("audio", "audio"),
		dataset.NewFeature("instruction", "string"),
		dataset.NewFeature("label", "int64"),
	)
	require.NoError(testInstance, featuresError)

	require.Equal(testInstance, []string{"file", "audio", "instruction", "label"}, features.Names())
	require.True(testInstance, features.Has("audio"))
	require.False(testInstance, features.Has("audio2"))

	labelFeature, found := features.Lookup("label")
	require.True(testInstance, found)
	require.Equal(testInstance, dataset.FeatureKindOther, labelFeature.Kind)
	require.Equal(testInstance, "int64", labelFeature.DeclaredType)
}

func TestFeaturesRejectDuplicatesAndBlankNames(testInstance *testing.T) {
	_, duplicateError := dataset.NewFeatures(dataset.NewFeature("file", "string"), dataset.NewFeature("file", "audio"))
	var featureError dataset.InvalidFeatureError
	require.ErrorAs(testInstance, duplicateError, &featureError)
	require.Equal(testInstance, "file", featureError.FieldName)

	_, blankError := dataset.NewFeatures(dataset.NewFeature(" ", "string"))
	require.ErrorAs(testInstance, blankError, &featureError)
}

func TestAudioValueDuration(testInstance *testing.T) {
	oneSecond := dataset.AudioValue{SampleCount: 16000, SamplingRate: 16000}
	duration, durationError := oneSecond.Duration()
	require.NoError(testInstance, durationError)
	require.Equal(testInstance, 1.0, duration)

	inline := dataset.NewInlineAudio(make([]float64, 8000), 16000)
	duration, durationError = inline.Duration()
	require.NoError(testInstance, durationError)
	require.Equal(testInstance, 0.5, duration)

	_, durationError = dataset.AudioValue{SampleCount: 10}.Duration()
	require.Error(testInstance, durationError)
}

func TestValueAccessors(testInstance *testing.T) {
	text, isText := dataset.StringValue("yes").Text()
	require.True(testInstance, isText)
	require.Equal(testInstance, "yes", text)

	_, isAudio := dataset.StringValue("yes").Audio()
	require.False(testInstance, isAudio)

	audio, isAudio := dataset.AudioCell(dataset.NewInlineAudio([]float64{0, 1}, 2)).Audio()
	require.True(testInstance, isAudio)
	require.Equal(testInstance, 2, audio.SampleCount)

	other := dataset.OtherValue(float64(3))
	require.Equal(testInstance, dataset.FeatureKindOther, other.Kind())
	require.Equal(testInstance, float64(3), other.Raw())
}

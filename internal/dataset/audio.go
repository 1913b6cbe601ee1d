package dataset

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-audio/wav"
	"github.com/go-viper/mapstructure/v2"
)

const (
	audioOpenOperationConstant        = "open audio"
	audioDecodeOperationConstant      = "decode audio"
	audioNotWAVMessageConstant        = "not a valid WAV file"
	audioSourceMissingMessageConstant = "audio cell needs an array or a path"
	audioCellShapeMessageConstant     = "audio cell must be an object or a path string"
)

// AudioDecoder turns an audio file on disk into an AudioValue.
type AudioDecoder interface {
	DecodeAudio(audioPath string) (AudioValue, error)
}

// WAVDecoder decodes PCM WAV files.
type WAVDecoder struct{}

// DecodeAudio reads the whole PCM payload and reports its frame count and rate.
func (WAVDecoder) DecodeAudio(audioPath string) (AudioValue, error) {
	audioFile, openError := os.Open(audioPath)
	if openError != nil {
		return AudioValue{}, OperationError{Operation: audioOpenOperationConstant, Path: audioPath, Cause: openError}
	}
	defer audioFile.Close()

	decoder := wav.NewDecoder(audioFile)
	if !decoder.IsValidFile() {
		return AudioValue{}, OperationError{Operation: audioDecodeOperationConstant, Path: audioPath, Cause: errors.New(audioNotWAVMessageConstant)}
	}

	pcmBuffer, decodeError := decoder.FullPCMBuffer()
	if decodeError != nil {
		return AudioValue{}, OperationError{Operation: audioDecodeOperationConstant, Path: audioPath, Cause: decodeError}
	}

	return AudioValue{
		Path:         audioPath,
		SampleCount:  pcmBuffer.NumFrames(),
		SamplingRate: int(decoder.SampleRate),
	}, nil
}

// audioCell mirrors the JSON shape of an audio column.
type audioCell struct {
	Path         string    `mapstructure:"path"`
	Array        []float64 `mapstructure:"array"`
	SamplingRate int       `mapstructure:"sampling_rate"`
}

type audioCellDecoder struct {
	rootDirectory string
	decoder       AudioDecoder
}

// decode accepts {"array": [...], "sampling_rate": n}, {"path": "..."} or a bare path string.
func (cellDecoder audioCellDecoder) decode(fieldName string, rawCell any) (AudioValue, error) {
	cell := audioCell{}
	switch typedCell := rawCell.(type) {
	case string:
		cell.Path = typedCell
	case map[string]any:
		mapDecoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &cell,
			WeaklyTypedInput: true,
		})
		if decoderError != nil {
			return AudioValue{}, decoderError
		}
		if decodeError := mapDecoder.Decode(typedCell); decodeError != nil {
			return AudioValue{}, InvalidAudioError{FieldName: fieldName, Message: decodeError.Error()}
		}
	default:
		return AudioValue{}, InvalidAudioError{FieldName: fieldName, Message: audioCellShapeMessageConstant}
	}

	// The sampling rate of an inline array is checked when its duration is taken.
	if cell.Array != nil {
		inlineAudio := NewInlineAudio(cell.Array, cell.SamplingRate)
		inlineAudio.Path = cell.Path
		return inlineAudio, nil
	}

	if len(cell.Path) == 0 {
		return AudioValue{}, InvalidAudioError{FieldName: fieldName, Message: audioSourceMissingMessageConstant}
	}

	audioPath := cell.Path
	if !filepath.IsAbs(audioPath) {
		audioPath = filepath.Join(cellDecoder.rootDirectory, audioPath)
	}

	decodedAudio, decodeError := cellDecoder.decoder.DecodeAudio(audioPath)
	if decodeError != nil {
		return AudioValue{}, decodeError
	}
	decodedAudio.Path = cell.Path
	return decodedAudio, nil
}

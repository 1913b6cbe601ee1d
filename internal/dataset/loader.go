package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	pathutils "github.com/dynamic-superb/taskops/internal/utils/path"
)

const (
	datasetInfoFileNameConstant        = "dataset_info.yaml"
	splitFilePatternConstant           = "*.jsonl"
	splitFileExtensionConstant         = ".jsonl"
	maximumExampleLineBytesConstant    = 256 * 1024 * 1024
	initialExampleLineBytesConstant    = 64 * 1024
	datasetRootOperationConstant       = "open dataset"
	datasetInfoReadOperationConstant   = "read dataset info"
	datasetInfoDecodeOperationConstant = "decode dataset info"
	splitListOperationConstant         = "list splits"
	splitReadOperationConstant         = "read split"
	datasetRootNotDirectoryMessage     = "not a directory"
	exampleNotObjectMessageConstant    = "example must be a JSON object"
	valueMissingMessageConstant        = "value missing"
	valueNotStringTemplateConstant     = "expected a string, got %T"
	logMessageDatasetLoadedConstant    = "dataset loaded"
	logMessageSplitLoadedConstant      = "split loaded"
	logFieldDatasetPathConstant        = "dataset_path"
	logFieldDatasetVersionConstant     = "dataset_version"
	logFieldSplitNameConstant          = "split"
	logFieldExampleCountConstant       = "examples"
	logFieldFeatureCountConstant       = "features"
	logFieldSplitCountConstant         = "splits"
)

// Loader returns a structured dataset for a descriptor.
type Loader interface {
	Load(loadContext context.Context, descriptor Descriptor) (Dataset, error)
}

// DirectoryLoader loads datasets laid out as dataset_info.yaml plus
// <split>.jsonl files.
type DirectoryLoader struct {
	logger       *zap.Logger
	audioDecoder AudioDecoder
	homeExpander *pathutils.HomeExpander
}

// NewDirectoryLoader constructs a loader. A nil decoder selects WAVDecoder.
func NewDirectoryLoader(logger *zap.Logger, audioDecoder AudioDecoder) *DirectoryLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if audioDecoder == nil {
		audioDecoder = WAVDecoder{}
	}
	return &DirectoryLoader{
		logger:       logger,
		audioDecoder: audioDecoder,
		homeExpander: pathutils.NewHomeExpander(),
	}
}

type datasetInfoDocument struct {
	Name     string                   `yaml:"name"`
	Version  string                   `yaml:"version"`
	Features []featureDeclarationNode `yaml:"features"`
}

type featureDeclarationNode struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Load reads the feature table and every split held in memory.
func (loader *DirectoryLoader) Load(loadContext context.Context, descriptor Descriptor) (Dataset, error) {
	rootDirectory := loader.homeExpander.Expand(descriptor.Path)

	rootInfo, statError := os.Stat(rootDirectory)
	if statError != nil {
		return Dataset{}, OperationError{Operation: datasetRootOperationConstant, Path: rootDirectory, Cause: statError}
	}
	if !rootInfo.IsDir() {
		return Dataset{}, OperationError{Operation: datasetRootOperationConstant, Path: rootDirectory, Cause: errors.New(datasetRootNotDirectoryMessage)}
	}

	info, features, infoError := loader.readDatasetInfo(rootDirectory)
	if infoError != nil {
		return Dataset{}, infoError
	}

	if len(descriptor.Version) > 0 && descriptor.Version != info.Version {
		return Dataset{}, RevisionMismatchError{Path: rootDirectory, AvailableVersion: info.Version, RequestedRevision: descriptor.Version}
	}

	splitPaths, globError := filepath.Glob(filepath.Join(rootDirectory, splitFilePatternConstant))
	if globError != nil {
		return Dataset{}, OperationError{Operation: splitListOperationConstant, Path: rootDirectory, Cause: globError}
	}
	sort.Strings(splitPaths)

	cellDecoder := audioCellDecoder{rootDirectory: rootDirectory, decoder: loader.audioDecoder}
	splits := make([]Split, 0, len(splitPaths))
	for _, splitPath := range splitPaths {
		split, splitError := loader.readSplit(loadContext, splitPath, features, cellDecoder)
		if splitError != nil {
			return Dataset{}, splitError
		}
		splits = append(splits, split)
	}

	loader.logger.Info(
		logMessageDatasetLoadedConstant,
		zap.String(logFieldDatasetPathConstant, rootDirectory),
		zap.String(logFieldDatasetVersionConstant, info.Version),
		zap.Int(logFieldFeatureCountConstant, features.Len()),
		zap.Int(logFieldSplitCountConstant, len(splits)),
	)

	return Dataset{Info: info, Features: features, Splits: splits}, nil
}

func (loader *DirectoryLoader) readDatasetInfo(rootDirectory string) (Info, Features, error) {
	infoPath := filepath.Join(rootDirectory, datasetInfoFileNameConstant)
	infoContent, readError := os.ReadFile(infoPath)
	if readError != nil {
		return Info{}, Features{}, OperationError{Operation: datasetInfoReadOperationConstant, Path: infoPath, Cause: readError}
	}

	document := datasetInfoDocument{}
	if decodeError := yaml.Unmarshal(infoContent, &document); decodeError != nil {
		return Info{}, Features{}, OperationError{Operation: datasetInfoDecodeOperationConstant, Path: infoPath, Cause: decodeError}
	}

	declaredFeatures := make([]Feature, 0, len(document.Features))
	for _, declaration := range document.Features {
		declaredFeatures = append(declaredFeatures, NewFeature(declaration.Name, declaration.Type))
	}

	features, featuresError := NewFeatures(declaredFeatures...)
	if featuresError != nil {
		return Info{}, Features{}, featuresError
	}

	return Info{Name: strings.TrimSpace(document.Name), Version: strings.TrimSpace(document.Version)}, features, nil
}

func (loader *DirectoryLoader) readSplit(loadContext context.Context, splitPath string, features Features, cellDecoder audioCellDecoder) (Split, error) {
	splitName := strings.TrimSuffix(filepath.Base(splitPath), splitFileExtensionConstant)

	splitFile, openError := os.Open(splitPath)
	if openError != nil {
		return Split{}, OperationError{Operation: splitReadOperationConstant, Path: splitPath, Cause: openError}
	}
	defer splitFile.Close()

	scanner := bufio.NewScanner(splitFile)
	scanner.Buffer(make([]byte, 0, initialExampleLineBytesConstant), maximumExampleLineBytesConstant)

	split := Split{Name: splitName}
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if contextError := loadContext.Err(); contextError != nil {
			return Split{}, contextError
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		example, exampleError := decodeExample(splitName, lineNumber, line, features, cellDecoder)
		if exampleError != nil {
			return Split{}, exampleError
		}
		split.Examples = append(split.Examples, example)
	}
	if scanError := scanner.Err(); scanError != nil {
		return Split{}, OperationError{Operation: splitReadOperationConstant, Path: splitPath, Cause: scanError}
	}

	loader.logger.Debug(
		logMessageSplitLoadedConstant,
		zap.String(logFieldSplitNameConstant, splitName),
		zap.Int(logFieldExampleCountConstant, split.Len()),
	)

	return split, nil
}

func decodeExample(splitName string, lineNumber int, line []byte, features Features, cellDecoder audioCellDecoder) (Example, error) {
	var rawExample map[string]any
	if decodeError := json.Unmarshal(line, &rawExample); decodeError != nil || rawExample == nil {
		return nil, MalformedExampleError{Split: splitName, Line: lineNumber, Message: exampleNotObjectMessageConstant}
	}

	example := make(Example, features.Len())
	for _, feature := range features.All() {
		rawValue, present := rawExample[feature.Name]
		if !present {
			return nil, MalformedExampleError{Split: splitName, Line: lineNumber, FieldName: feature.Name, Message: valueMissingMessageConstant}
		}

		switch feature.Kind {
		case FeatureKindString:
			text, isString := rawValue.(string)
			if !isString {
				return nil, MalformedExampleError{Split: splitName, Line: lineNumber, FieldName: feature.Name, Message: fmt.Sprintf(valueNotStringTemplateConstant, rawValue)}
			}
			example[feature.Name] = StringValue(text)
		case FeatureKindAudio:
			audio, audioError := cellDecoder.decode(feature.Name, rawValue)
			if audioError != nil {
				return nil, MalformedExampleError{Split: splitName, Line: lineNumber, FieldName: feature.Name, Message: audioError.Error()}
			}
			example[feature.Name] = AudioCell(audio)
		case FeatureKindOther:
			example[feature.Name] = OtherValue(rawValue)
		}
	}

	return example, nil
}

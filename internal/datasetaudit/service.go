package datasetaudit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/dynamic-superb/taskops/internal/dataset"
)

const (
	descriptorPathMissingMessageConstant = "dataset descriptor path must be provided"
	reportPathMissingMessageConstant     = "report path must be provided"
	loaderMissingMessageConstant         = "dataset loader must be provided"
	descriptorLoadErrorTemplateConstant  = "unable to load dataset descriptor: %w"
	datasetLoadErrorTemplateConstant     = "unable to load dataset %s: %w"
	accumulationErrorTemplateConstant    = "unable to accumulate statistics: %w"
	reportRenderErrorTemplateConstant    = "unable to render report: %w"
	reportWriteErrorTemplateConstant     = "unable to write report %s: %w"
	progressDescriptionConstant          = "Auditing test split"
	reportFilePermissionsConstant        = 0o644
	logMessageFieldsEnumeratedConstant   = "dataset fields enumerated"
	logMessageReportWrittenConstant      = "dataset audit report written"
	logFieldTaskNameConstant             = "task"
	logFieldAudioInputsConstant          = "audio_inputs"
	logFieldTextInputsConstant           = "text_inputs"
	logFieldLabelsConstant               = "labels"
	logFieldReportPathConstant           = "report_path"
	logFieldExampleCountConstant         = "examples"
	logFieldRepeatedFileCountConstant    = "repeated_files"
	logFieldDistinctInstructionsConstant = "distinct_instructions"
)

// AuditOptions configure a single audit run.
type AuditOptions struct {
	DescriptorPath  string
	ReportPath      string
	MaxSiblingIndex int
	ShowProgress    bool
}

// AuditResult summarizes a completed audit.
type AuditResult struct {
	Descriptor dataset.Descriptor
	FieldGroup FieldGroup
	Statistics Statistics
	ReportPath string
}

// ReportFileWriter persists the rendered report, replacing any prior content.
type ReportFileWriter func(path string, content []byte) error

// Service runs the audit pipeline.
type Service struct {
	logger          *zap.Logger
	loader          dataset.Loader
	progressTracker ProgressTracker
	writeReportFile ReportFileWriter
}

// NewService constructs a Service. A nil progress tracker selects TerminalProgress
// and a nil writer truncates the report file in place.
func NewService(logger *zap.Logger, loader dataset.Loader, progressTracker ProgressTracker, writeReportFile ReportFileWriter) (*Service, error) {
	if loader == nil {
		return nil, errors.New(loaderMissingMessageConstant)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if progressTracker == nil {
		progressTracker = TerminalProgress{}
	}
	if writeReportFile == nil {
		writeReportFile = func(path string, content []byte) error {
			return os.WriteFile(path, content, reportFilePermissionsConstant)
		}
	}

	return &Service{
		logger:          logger,
		loader:          loader,
		progressTracker: progressTracker,
		writeReportFile: writeReportFile,
	}, nil
}

// Run loads, validates and accumulates the dataset, then writes the report.
// No report is written unless every preceding stage succeeds.
func (service *Service) Run(executionContext context.Context, options AuditOptions) (AuditResult, error) {
	descriptorPath := strings.TrimSpace(options.DescriptorPath)
	if len(descriptorPath) == 0 {
		return AuditResult{}, errors.New(descriptorPathMissingMessageConstant)
	}
	reportPath := strings.TrimSpace(options.ReportPath)
	if len(reportPath) == 0 {
		return AuditResult{}, errors.New(reportPathMissingMessageConstant)
	}
	maxSiblingIndex := options.MaxSiblingIndex
	if maxSiblingIndex < FirstSiblingIndex {
		maxSiblingIndex = DefaultMaximumSiblingIndex
	}

	descriptor, descriptorError := dataset.LoadDescriptor(descriptorPath)
	if descriptorError != nil {
		return AuditResult{}, fmt.Errorf(descriptorLoadErrorTemplateConstant, descriptorError)
	}

	loadedDataset, loadError := service.loader.Load(executionContext, descriptor)
	if loadError != nil {
		return AuditResult{}, fmt.Errorf(datasetLoadErrorTemplateConstant, descriptor.Path, loadError)
	}

	testSplit, validationError := ValidateDataset(loadedDataset)
	if validationError != nil {
		return AuditResult{}, validationError
	}

	fieldGroup := ResolveFieldGroup(loadedDataset.Features, maxSiblingIndex)
	service.logger.Debug(
		logMessageFieldsEnumeratedConstant,
		zap.Strings(logFieldAudioInputsConstant, fieldGroup.AudioInputs),
		zap.Strings(logFieldTextInputsConstant, fieldGroup.TextInputs),
		zap.Strings(logFieldLabelsConstant, fieldGroup.Labels),
	)

	var progressTracker ProgressTracker = SilentProgress{}
	if options.ShowProgress {
		progressTracker = service.progressTracker
	}

	accumulator := NewAccumulator(loadedDataset.Features, fieldGroup)
	trackError := progressTracker.Track(testSplit.Len(), progressDescriptionConstant, func(index int) error {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}
		return accumulator.Add(testSplit.Examples[index])
	})
	if trackError != nil {
		return AuditResult{}, fmt.Errorf(accumulationErrorTemplateConstant, trackError)
	}
	statistics := accumulator.Result()

	var reportBuffer bytes.Buffer
	reportInput := ReportInput{TaskName: descriptor.Name, FieldNames: loadedDataset.Features.Names(), Statistics: statistics}
	if renderError := WriteReport(&reportBuffer, reportInput); renderError != nil {
		return AuditResult{}, fmt.Errorf(reportRenderErrorTemplateConstant, renderError)
	}

	if writeError := service.writeReportFile(reportPath, reportBuffer.Bytes()); writeError != nil {
		return AuditResult{}, fmt.Errorf(reportWriteErrorTemplateConstant, reportPath, writeError)
	}

	service.logger.Info(
		logMessageReportWrittenConstant,
		zap.String(logFieldTaskNameConstant, descriptor.Name),
		zap.String(logFieldReportPathConstant, reportPath),
		zap.Int(logFieldExampleCountConstant, statistics.ExampleCount),
		zap.Int(logFieldRepeatedFileCountConstant, len(statistics.RepeatedFiles())),
		zap.Int(logFieldDistinctInstructionsConstant, len(statistics.Instructions)),
	)

	return AuditResult{
		Descriptor: descriptor,
		FieldGroup: fieldGroup,
		Statistics: statistics,
		ReportPath: reportPath,
	}, nil
}

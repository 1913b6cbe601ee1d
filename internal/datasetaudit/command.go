package datasetaudit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dynamic-superb/taskops/internal/dataset"
)

const (
	datasetCommandUseConstant               = "dataset"
	datasetCommandShortDescriptionConstant  = "Inspect task datasets"
	datasetCommandLongDescriptionConstant   = "dataset provides commands that inspect labeled audio/text task datasets."
	auditCommandUseConstant                 = "audit"
	auditCommandShortDescriptionConstant    = "Validate a task dataset and write a summary report"
	auditCommandLongDescriptionConstant     = "audit loads the dataset named by a JSON descriptor, validates its schema, and writes duration and label statistics to a report file."
	unexpectedArgumentsErrorMessageConstant = "dataset audit does not accept positional arguments"
	commandExecutionErrorTemplateConstant   = "dataset audit failed: %w"
	jsonPathFlagNameConstant                = "json-path"
	jsonPathFlagShorthandConstant           = "j"
	jsonPathFlagDescriptionConstant         = "Path to the JSON descriptor with path, version and name"
	savePathFlagNameConstant                = "save-path"
	savePathFlagShorthandConstant           = "s"
	savePathFlagDescriptionConstant         = "Path of the report file to write"
	maxSiblingIndexFlagNameConstant         = "max-sibling-index"
	maxSiblingIndexFlagDescriptionConstant  = "Highest numbered sibling field enumerated (audio2 ... audioN)"
	progressFlagNameConstant                = "progress"
	progressFlagDescriptionConstant         = "Render a progress bar while accumulating"
	jsonPathRequiredMessageConstant         = "--json-path is required"
	savePathRequiredMessageConstant         = "--save-path is required"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current dataset audit configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the dataset command hierarchy.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Loader                dataset.Loader
	ProgressTracker       ProgressTracker
	ReportFileWriter      ReportFileWriter
}

// Build constructs the dataset command with the audit subcommand.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	datasetCommand := &cobra.Command{
		Use:   datasetCommandUseConstant,
		Short: datasetCommandShortDescriptionConstant,
		Long:  datasetCommandLongDescriptionConstant,
	}

	auditCommand := &cobra.Command{
		Use:   auditCommandUseConstant,
		Short: auditCommandShortDescriptionConstant,
		Long:  auditCommandLongDescriptionConstant,
		RunE:  builder.runAudit,
	}

	auditCommand.Flags().StringP(jsonPathFlagNameConstant, jsonPathFlagShorthandConstant, "", jsonPathFlagDescriptionConstant)
	auditCommand.Flags().StringP(savePathFlagNameConstant, savePathFlagShorthandConstant, "", savePathFlagDescriptionConstant)
	auditCommand.Flags().Int(maxSiblingIndexFlagNameConstant, 0, maxSiblingIndexFlagDescriptionConstant)
	auditCommand.Flags().Bool(progressFlagNameConstant, false, progressFlagDescriptionConstant)

	datasetCommand.AddCommand(auditCommand)

	return datasetCommand, nil
}

func (builder *CommandBuilder) runAudit(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	auditOptions, optionsError := builder.parseAuditOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	loader := builder.Loader
	if loader == nil {
		loader = dataset.NewDirectoryLoader(logger, nil)
	}

	auditService, serviceError := NewService(logger, loader, builder.ProgressTracker, builder.ReportFileWriter)
	if serviceError != nil {
		return serviceError
	}

	if _, executionError := auditService.Run(command.Context(), auditOptions); executionError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, executionError)
	}

	return nil
}

func (builder *CommandBuilder) parseAuditOptions(command *cobra.Command) (AuditOptions, error) {
	configuration := builder.resolveConfiguration()

	jsonPathFlagValue, jsonPathFlagError := command.Flags().GetString(jsonPathFlagNameConstant)
	if jsonPathFlagError != nil {
		return AuditOptions{}, jsonPathFlagError
	}
	descriptorPath := selectStringValue(jsonPathFlagValue, configuration.DescriptorPath)
	if len(descriptorPath) == 0 {
		return AuditOptions{}, errors.New(jsonPathRequiredMessageConstant)
	}

	savePathFlagValue, savePathFlagError := command.Flags().GetString(savePathFlagNameConstant)
	if savePathFlagError != nil {
		return AuditOptions{}, savePathFlagError
	}
	reportPath := selectStringValue(savePathFlagValue, configuration.ReportPath)
	if len(reportPath) == 0 {
		return AuditOptions{}, errors.New(savePathRequiredMessageConstant)
	}

	maxSiblingIndex := configuration.MaxSiblingIndex
	if command.Flags().Changed(maxSiblingIndexFlagNameConstant) {
		flagMaxSiblingIndex, maxSiblingIndexFlagError := command.Flags().GetInt(maxSiblingIndexFlagNameConstant)
		if maxSiblingIndexFlagError != nil {
			return AuditOptions{}, maxSiblingIndexFlagError
		}
		maxSiblingIndex = flagMaxSiblingIndex
	}

	showProgress := configuration.ShowProgress
	if command.Flags().Changed(progressFlagNameConstant) {
		flagShowProgress, progressFlagError := command.Flags().GetBool(progressFlagNameConstant)
		if progressFlagError != nil {
			return AuditOptions{}, progressFlagError
		}
		showProgress = flagShowProgress
	}

	return AuditOptions{
		DescriptorPath:  descriptorPath,
		ReportPath:      reportPath,
		MaxSiblingIndex: maxSiblingIndex,
		ShowProgress:    showProgress,
	}, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	return configuration.sanitize()
}

func selectStringValue(flagValue string, configurationValue string) string {
	trimmedFlagValue := strings.TrimSpace(flagValue)
	if len(trimmedFlagValue) > 0 {
		return trimmedFlagValue
	}

	return strings.TrimSpace(configurationValue)
}

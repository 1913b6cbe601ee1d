package cli

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/dynamic-superb/taskops/internal/broadcast"
	"github.com/dynamic-superb/taskops/internal/datasetaudit"
	"github.com/dynamic-superb/taskops/internal/utils"
)

const (
	applicationNameConstant                 = "taskops"
	applicationShortDescriptionConstant     = "Maintenance tools for the Dynamic-SUPERB task repository"
	applicationLongDescriptionConstant      = "taskops reminds proposal authors on GitHub and audits task datasets before they are merged."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "TASKOPS"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	commandBuildErrorTemplateConstant       = "unable to build %s command: %w"
	defaultConfigurationSearchPathConstant  = "."
	userConfigurationSearchPathConstant     = "~/.taskops"
	toolsConfigurationKeyConstant           = "tools"
	broadcastConfigurationKeyConstant       = toolsConfigurationKeyConstant + ".broadcast"
	datasetAuditConfigurationKeyConstant    = toolsConfigurationKeyConstant + ".dataset_audit"
	broadcastCommandNameConstant            = "broadcast"
	datasetCommandNameConstant              = "dataset"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for each tool.
type ApplicationToolsConfiguration struct {
	Broadcast    broadcast.CommandConfiguration    `mapstructure:"broadcast"`
	DatasetAudit datasetaudit.CommandConfiguration `mapstructure:"dataset_audit"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() (*Application, error) {
	return NewApplicationWithLoggerFactory(utils.NewLoggerFactory())
}

// NewApplicationWithLoggerFactory assembles the application with a custom
// logger factory, typically one writing to a test buffer.
func NewApplicationWithLoggerFactory(loggerFactory *utils.LoggerFactory) (*Application, error) {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant, userConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	if loggerFactory == nil {
		loggerFactory = utils.NewLoggerFactory()
	}

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       loggerFactory,
		logger:              zap.NewNop(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	broadcastBuilder := broadcast.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() broadcast.CommandConfiguration {
			return application.configuration.Tools.Broadcast
		},
	}
	broadcastCommand, broadcastBuildError := broadcastBuilder.Build()
	if broadcastBuildError != nil {
		return nil, fmt.Errorf(commandBuildErrorTemplateConstant, broadcastCommandNameConstant, broadcastBuildError)
	}
	cobraCommand.AddCommand(broadcastCommand)

	datasetAuditBuilder := datasetaudit.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() datasetaudit.CommandConfiguration {
			return application.configuration.Tools.DatasetAudit
		},
	}
	datasetCommand, datasetBuildError := datasetAuditBuilder.Build()
	if datasetBuildError != nil {
		return nil, fmt.Errorf(commandBuildErrorTemplateConstant, datasetCommandNameConstant, datasetBuildError)
	}
	cobraCommand.AddCommand(datasetCommand)

	application.rootCommand = cobraCommand

	return application, nil
}

// RootCommand exposes the root command so callers can set arguments and streams.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

// Configuration returns the configuration resolved by the last execution.
func (application *Application) Configuration() ApplicationConfiguration {
	return application.configuration
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	application, applicationError := NewApplication()
	if applicationError != nil {
		return applicationError
	}
	return application.Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range broadcast.DefaultConfigurationValues(broadcastConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range datasetaudit.DefaultConfigurationValues(datasetAuditConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	return nil
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}
		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

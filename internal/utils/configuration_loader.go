package utils

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	pathutils "github.com/dynamic-superb/taskops/internal/utils/path"
)

const (
	environmentKeySeparatorOldConstant              = "."
	environmentKeySeparatorNewConstant              = "_"
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
	configurationTargetMissingMessageConstant       = "configuration target must be provided"
)

// ConfigurationLoader resolves taskops configuration in increasing precedence:
// defaults, embedded configuration, the first configuration file found (or
// the explicit one), then environment variables carrying the prefix.
type ConfigurationLoader struct {
	configurationName         string
	configurationType         string
	environmentPrefix         string
	searchPaths               []string
	embeddedConfiguration     []byte
	embeddedConfigurationType string
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
	SearchPaths    []string
}

// NewConfigurationLoader creates a loader. Search paths may start with "~".
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		configurationName: configurationName,
		configurationType: configurationType,
		environmentPrefix: environmentPrefix,
		searchPaths:       pathutils.NewHomeExpander().ExpandAll(searchPaths),
	}
}

// SetEmbeddedConfiguration stores configuration merged underneath any user-provided file.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	if loader == nil {
		return
	}

	loader.embeddedConfigurationType = strings.TrimSpace(configurationType)
	loader.embeddedConfiguration = append([]byte(nil), configurationData...)
}

// LoadConfiguration populates targetConfiguration and reports which file, if any, was used.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	if targetConfiguration == nil {
		return LoadedConfiguration{}, errors.New(configurationTargetMissingMessageConstant)
	}

	viperInstance := viper.New()
	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	if mergeError := loader.mergeEmbeddedConfiguration(viperInstance); mergeError != nil {
		return LoadedConfiguration{}, mergeError
	}

	viperInstance.SetConfigName(loader.configurationName)
	viperInstance.SetConfigType(loader.configurationType)
	for _, searchPath := range loader.searchPaths {
		viperInstance.AddConfigPath(searchPath)
	}

	trimmedConfigurationFilePath := pathutils.NewHomeExpander().Expand(configurationFilePath)
	if len(trimmedConfigurationFilePath) > 0 {
		viperInstance.SetConfigFile(trimmedConfigurationFilePath)
	}

	if readError := viperInstance.MergeInConfig(); readError != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if !errors.As(readError, &notFoundError) {
			return LoadedConfiguration{}, fmt.Errorf(configurationReadErrorTemplateConstant, readError)
		}
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(environmentKeySeparatorOldConstant, environmentKeySeparatorNewConstant))
	viperInstance.AutomaticEnv()

	if unmarshalError := viperInstance.Unmarshal(targetConfiguration); unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	return LoadedConfiguration{
		ConfigFileUsed: viperInstance.ConfigFileUsed(),
		SearchPaths:    append([]string(nil), loader.searchPaths...),
	}, nil
}

func (loader *ConfigurationLoader) mergeEmbeddedConfiguration(viperInstance *viper.Viper) error {
	if len(loader.embeddedConfiguration) == 0 {
		return nil
	}

	embeddedType := loader.configurationType
	if len(loader.embeddedConfigurationType) > 0 {
		embeddedType = loader.embeddedConfigurationType
	}

	viperInstance.SetConfigType(embeddedType)
	if mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embeddedConfiguration)); mergeError != nil {
		return fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, mergeError)
	}

	return nil
}

package datasetaudit

import "strings"

const (
	configurationDescriptorPathKeyConstant  = "json_path"
	configurationReportPathKeyConstant      = "save_path"
	configurationMaxSiblingIndexKeyConstant = "max_sibling_index"
	configurationProgressKeyConstant        = "progress"
	configurationKeySeparatorConstant       = "."
)

// CommandConfiguration captures configuration values for the dataset audit command.
type CommandConfiguration struct {
	DescriptorPath  string `mapstructure:"json_path"`
	ReportPath      string `mapstructure:"save_path"`
	MaxSiblingIndex int    `mapstructure:"max_sibling_index"`
	ShowProgress    bool   `mapstructure:"progress"`
}

// DefaultCommandConfiguration provides baseline configuration values for the audit.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		DescriptorPath:  "",
		ReportPath:      "",
		MaxSiblingIndex: DefaultMaximumSiblingIndex,
		ShowProgress:    false,
	}
}

// DefaultConfigurationValues produces Viper defaults rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationDescriptorPathKeyConstant:  defaults.DescriptorPath,
		rootKey + configurationKeySeparatorConstant + configurationReportPathKeyConstant:      defaults.ReportPath,
		rootKey + configurationKeySeparatorConstant + configurationMaxSiblingIndexKeyConstant: defaults.MaxSiblingIndex,
		rootKey + configurationKeySeparatorConstant + configurationProgressKeyConstant:        defaults.ShowProgress,
	}
}

// sanitize trims paths and restores the sibling cap when it cannot admit any sibling.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.DescriptorPath = strings.TrimSpace(configuration.DescriptorPath)
	sanitized.ReportPath = strings.TrimSpace(configuration.ReportPath)
	if sanitized.MaxSiblingIndex < FirstSiblingIndex {
		sanitized.MaxSiblingIndex = DefaultMaximumSiblingIndex
	}

	return sanitized
}

package broadcast

import "strings"

// DefaultPageSize is the number of issues requested per page.
const DefaultPageSize = 100

const (
	defaultOwnerConstant                = "dynamic-superb"
	defaultRepositoryConstant           = "dynamic-superb"
	defaultLabelConstant                = "proposal confirmed"
	configurationOwnerKeyConstant       = "owner"
	configurationRepositoryKeyConstant  = "repository"
	configurationLabelKeyConstant       = "label"
	configurationCommentKeyConstant     = "comment"
	configurationPageSizeKeyConstant    = "page_size"
	configurationBaseURLKeyConstant     = "base_url"
	configurationTokenSourceKeyConstant = "token_source"
	configurationDryRunKeyConstant      = "dry_run"
	configurationKeySeparatorConstant   = "."
)

// CommandConfiguration captures configuration values for the broadcast command.
type CommandConfiguration struct {
	Owner       string `mapstructure:"owner"`
	Repository  string `mapstructure:"repository"`
	Label       string `mapstructure:"label"`
	Comment     string `mapstructure:"comment"`
	PageSize    int    `mapstructure:"page_size"`
	BaseURL     string `mapstructure:"base_url"`
	TokenSource string `mapstructure:"token_source"`
	DryRun      bool   `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration targets the dynamic-superb proposal tracker.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Owner:       defaultOwnerConstant,
		Repository:  defaultRepositoryConstant,
		Label:       defaultLabelConstant,
		Comment:     "",
		PageSize:    DefaultPageSize,
		BaseURL:     "",
		TokenSource: "",
		DryRun:      false,
	}
}

// DefaultConfigurationValues produces Viper defaults rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	keyPrefix := rootKey + configurationKeySeparatorConstant
	return map[string]any{
		keyPrefix + configurationOwnerKeyConstant:       defaults.Owner,
		keyPrefix + configurationRepositoryKeyConstant:  defaults.Repository,
		keyPrefix + configurationLabelKeyConstant:       defaults.Label,
		keyPrefix + configurationCommentKeyConstant:     defaults.Comment,
		keyPrefix + configurationPageSizeKeyConstant:    defaults.PageSize,
		keyPrefix + configurationBaseURLKeyConstant:     defaults.BaseURL,
		keyPrefix + configurationTokenSourceKeyConstant: defaults.TokenSource,
		keyPrefix + configurationDryRunKeyConstant:      defaults.DryRun,
	}
}

// sanitize trims configuration values and restores a usable page size.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Owner = strings.TrimSpace(configuration.Owner)
	sanitized.Repository = strings.TrimSpace(configuration.Repository)
	sanitized.Label = strings.TrimSpace(configuration.Label)
	sanitized.Comment = strings.TrimSpace(configuration.Comment)
	sanitized.BaseURL = strings.TrimSpace(configuration.BaseURL)
	sanitized.TokenSource = strings.TrimSpace(configuration.TokenSource)
	if sanitized.PageSize <= 0 {
		sanitized.PageSize = DefaultPageSize
	}

	return sanitized
}

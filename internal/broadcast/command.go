package broadcast

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dynamic-superb/taskops/internal/githubauth"
)

const (
	broadcastCommandUseConstant              = "broadcast"
	broadcastCommandShortDescriptionConstant = "Comment a reminder on every open issue with a label"
	broadcastCommandLongDescriptionConstant  = "broadcast pages through the open issues carrying a label and posts the configured comment on each one, skipping pull requests."
	unexpectedArgumentsErrorMessageConstant  = "broadcast does not accept positional arguments"
	commandExecutionErrorTemplateConstant    = "broadcast failed: %w"
	tokenSourceParseErrorTemplateConstant    = "invalid token source: %w"
	tokenResolutionErrorTemplateConstant     = "unable to resolve GitHub token: %w"
	ownerFlagNameConstant                    = "owner"
	ownerFlagDescriptionConstant             = "Repository owner"
	repositoryFlagNameConstant               = "repository"
	repositoryFlagDescriptionConstant        = "Repository name"
	labelFlagNameConstant                    = "label"
	labelFlagDescriptionConstant             = "Issue label to target"
	commentFlagNameConstant                  = "comment"
	commentFlagDescriptionConstant           = "Comment body to post"
	pageSizeFlagNameConstant                 = "page-size"
	pageSizeFlagDescriptionConstant          = "Issues requested per page"
	baseURLFlagNameConstant                  = "base-url"
	baseURLFlagDescriptionConstant           = "GitHub API base URL (GitHub Enterprise)"
	tokenSourceFlagNameConstant              = "token-source"
	tokenSourceFlagDescriptionConstant       = "Token source (env:NAME or file:/path); defaults to GH_TOKEN, GITHUB_TOKEN, GITHUB_API_TOKEN"
	dryRunFlagNameConstant                   = "dry-run"
	dryRunFlagDescriptionConstant            = "List the issues that would receive a comment without posting"
	logMessageAnonymousDryRunConstant        = "no GitHub token resolved; dry run continues unauthenticated"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current broadcast configuration.
type ConfigurationProvider func() CommandConfiguration

// TrackerFactory creates the issue tracker for a resolved token and base URL.
type TrackerFactory func(factoryContext context.Context, token string, baseURL string) (IssueTracker, error)

// CommandBuilder assembles the broadcast command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	TrackerFactory        TrackerFactory
	EnvironmentLookup     githubauth.EnvironmentLookup
	FileReader            FileReader
}

// Build constructs the broadcast command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   broadcastCommandUseConstant,
		Short: broadcastCommandShortDescriptionConstant,
		Long:  broadcastCommandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(ownerFlagNameConstant, "", ownerFlagDescriptionConstant)
	command.Flags().String(repositoryFlagNameConstant, "", repositoryFlagDescriptionConstant)
	command.Flags().String(labelFlagNameConstant, "", labelFlagDescriptionConstant)
	command.Flags().String(commentFlagNameConstant, "", commentFlagDescriptionConstant)
	command.Flags().Int(pageSizeFlagNameConstant, 0, pageSizeFlagDescriptionConstant)
	command.Flags().String(baseURLFlagNameConstant, "", baseURLFlagDescriptionConstant)
	command.Flags().String(tokenSourceFlagNameConstant, "", tokenSourceFlagDescriptionConstant)
	command.Flags().Bool(dryRunFlagNameConstant, false, dryRunFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	configuration, optionsError := builder.parseConfiguration(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	tokenSource, tokenSourceError := ParseTokenSource(configuration.TokenSource)
	if tokenSourceError != nil {
		return fmt.Errorf(tokenSourceParseErrorTemplateConstant, tokenSourceError)
	}

	token, tokenError := NewTokenResolver(builder.EnvironmentLookup, builder.FileReader).Resolve(tokenSource)
	if tokenError != nil {
		if !configuration.DryRun {
			return fmt.Errorf(tokenResolutionErrorTemplateConstant, tokenError)
		}
		logger.Warn(logMessageAnonymousDryRunConstant, zap.Error(tokenError))
	}

	trackerFactory := builder.TrackerFactory
	if trackerFactory == nil {
		trackerFactory = func(factoryContext context.Context, token string, baseURL string) (IssueTracker, error) {
			return NewGitHubTracker(factoryContext, token, baseURL)
		}
	}

	tracker, trackerError := trackerFactory(command.Context(), token, configuration.BaseURL)
	if trackerError != nil {
		return trackerError
	}

	service, serviceError := NewService(Dependencies{Tracker: tracker, Output: command.OutOrStdout(), Logger: logger})
	if serviceError != nil {
		return serviceError
	}

	campaign := Campaign{
		Owner:      configuration.Owner,
		Repository: configuration.Repository,
		Label:      configuration.Label,
		Comment:    configuration.Comment,
		PageSize:   configuration.PageSize,
		DryRun:     configuration.DryRun,
	}
	if _, runError := service.Run(command.Context(), campaign); runError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, runError)
	}

	return nil
}

func (builder *CommandBuilder) parseConfiguration(command *cobra.Command) (CommandConfiguration, error) {
	configuration := builder.resolveConfiguration()

	stringOverrides := []struct {
		flagName string
		target   *string
	}{
		{flagName: ownerFlagNameConstant, target: &configuration.Owner},
		{flagName: repositoryFlagNameConstant, target: &configuration.Repository},
		{flagName: labelFlagNameConstant, target: &configuration.Label},
		{flagName: commentFlagNameConstant, target: &configuration.Comment},
		{flagName: baseURLFlagNameConstant, target: &configuration.BaseURL},
		{flagName: tokenSourceFlagNameConstant, target: &configuration.TokenSource},
	}
	for _, override := range stringOverrides {
		flagValue, flagError := command.Flags().GetString(override.flagName)
		if flagError != nil {
			return CommandConfiguration{}, flagError
		}
		*override.target = selectStringValue(flagValue, *override.target)
	}

	if command.Flags().Changed(pageSizeFlagNameConstant) {
		pageSizeValue, pageSizeFlagError := command.Flags().GetInt(pageSizeFlagNameConstant)
		if pageSizeFlagError != nil {
			return CommandConfiguration{}, pageSizeFlagError
		}
		configuration.PageSize = pageSizeValue
	}

	if command.Flags().Changed(dryRunFlagNameConstant) {
		dryRunValue, dryRunFlagError := command.Flags().GetBool(dryRunFlagNameConstant)
		if dryRunFlagError != nil {
			return CommandConfiguration{}, dryRunFlagError
		}
		configuration.DryRun = dryRunValue
	}

	return configuration.sanitize(), nil
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

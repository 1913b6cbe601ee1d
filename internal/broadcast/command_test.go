package broadcast_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dynamic-superb/taskops/internal/broadcast"
)

type trackerRequest struct {
	token   string
	baseURL string
}

func configuredCampaign() broadcast.CommandConfiguration {
	configuration := broadcast.DefaultCommandConfiguration()
	configuration.Comment = testCommentConstant
	return configuration
}

func environmentWith(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, found := values[key]
		return value, found
	}
}

func TestCommandBuilderRunsBroadcast(testInstance *testing.T) {
	testCases := []struct {
		name             string
		configuration    broadcast.CommandConfiguration
		environment      map[string]string
		arguments        []string
		expectedRequest  trackerRequest
		expectedOutput   string
		expectedPageSize int
		expectedLabel    string
	}{
		{
			name:             "configuration_drives_campaign",
			configuration:    configuredCampaign(),
			environment:      map[string]string{"GH_TOKEN": "cli-token"},
			expectedRequest:  trackerRequest{token: "cli-token"},
			expectedOutput:   "Commented on issue #1 - Status: 201\nCommented on issue #3 - Status: 201\nCommented on issue #7 - Status: 201\n",
			expectedPageSize: broadcast.DefaultPageSize,
			expectedLabel:    testLabelConstant,
		},
		{
			name:          "flags_override_configuration",
			configuration: configuredCampaign(),
			environment:   map[string]string{"REMINDER_TOKEN": "named-token"},
			arguments: []string{
				"--label", "needs reminder",
				"--page-size", "25",
				"--base-url", "https://github.example.com/api/v3",
				"--token-source", "env:REMINDER_TOKEN",
			},
			expectedRequest:  trackerRequest{token: "named-token", baseURL: "https://github.example.com/api/v3"},
			expectedOutput:   "Commented on issue #1 - Status: 201\nCommented on issue #3 - Status: 201\nCommented on issue #7 - Status: 201\n",
			expectedPageSize: 25,
			expectedLabel:    "needs reminder",
		},
		{
			name:             "dry_run_without_token",
			configuration:    configuredCampaign(),
			arguments:        []string{"--dry-run"},
			expectedRequest:  trackerRequest{},
			expectedOutput:   "Would comment on issue #1 - Task proposal: speech emotion\nWould comment on issue #3 - Task proposal: speaker counting\nWould comment on issue #7 - Task proposal: accent\n",
			expectedPageSize: broadcast.DefaultPageSize,
			expectedLabel:    testLabelConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			tracker := twoPageTracker()
			var requests []trackerRequest
			builder := broadcast.CommandBuilder{
				LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
				ConfigurationProvider: func() broadcast.CommandConfiguration { return testCase.configuration },
				EnvironmentLookup:     environmentWith(testCase.environment),
				TrackerFactory: func(factoryContext context.Context, token string, baseURL string) (broadcast.IssueTracker, error) {
					requests = append(requests, trackerRequest{token: token, baseURL: baseURL})
					return tracker, nil
				},
			}

			command, buildError := builder.Build()
			require.NoError(subTest, buildError)

			var output bytes.Buffer
			command.SetOut(&output)
			command.SetContext(context.Background())
			command.SetArgs(append([]string{}, testCase.arguments...))

			require.NoError(subTest, command.Execute())
			require.Equal(subTest, []trackerRequest{testCase.expectedRequest}, requests)
			require.Equal(subTest, testCase.expectedOutput, output.String())
			require.NotEmpty(subTest, tracker.listCalls)
			for _, call := range tracker.listCalls {
				require.Equal(subTest, testCase.expectedPageSize, call.perPage)
				require.Equal(subTest, testCase.expectedLabel, call.label)
			}
		})
	}
}

func TestCommandBuilderFailures(testInstance *testing.T) {
	testCases := []struct {
		name          string
		configuration broadcast.CommandConfiguration
		environment   map[string]string
		arguments     []string
		factoryError  error
		expectedError string
	}{
		{
			name:          "missing_token",
			configuration: configuredCampaign(),
			expectedError: "unable to resolve GitHub token: no GitHub token found in GH_TOKEN, GITHUB_TOKEN, GITHUB_API_TOKEN",
		},
		{
			name:          "missing_comment",
			configuration: broadcast.DefaultCommandConfiguration(),
			environment:   map[string]string{"GITHUB_TOKEN": "token"},
			expectedError: "broadcast failed: comment must be provided",
		},
		{
			name:          "invalid_token_source",
			configuration: configuredCampaign(),
			arguments:     []string{"--token-source", "vault:secret"},
			expectedError: `invalid token source: unsupported token source type "vault"`,
		},
		{
			name:          "tracker_construction_fails",
			configuration: configuredCampaign(),
			environment:   map[string]string{"GITHUB_TOKEN": "token"},
			factoryError:  errors.New("bad base URL"),
			expectedError: "bad base URL",
		},
		{
			name:          "positional_arguments",
			configuration: configuredCampaign(),
			arguments:     []string{"extra"},
			expectedError: "broadcast does not accept positional arguments",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			builder := broadcast.CommandBuilder{
				ConfigurationProvider: func() broadcast.CommandConfiguration { return testCase.configuration },
				EnvironmentLookup:     environmentWith(testCase.environment),
				TrackerFactory: func(factoryContext context.Context, token string, baseURL string) (broadcast.IssueTracker, error) {
					if testCase.factoryError != nil {
						return nil, testCase.factoryError
					}
					return twoPageTracker(), nil
				},
			}

			command, buildError := builder.Build()
			require.NoError(subTest, buildError)
			command.SetOut(&bytes.Buffer{})
			command.SetContext(context.Background())
			command.SetArgs(append([]string{}, testCase.arguments...))
			command.SilenceUsage = true
			command.SilenceErrors = true

			require.EqualError(subTest, command.Execute(), testCase.expectedError)
		})
	}
}

func TestCommandBuilderReportsFailedPage(testInstance *testing.T) {
	tracker := twoPageTracker()
	tracker.failingPages = map[int]int{1: 401}

	builder := broadcast.CommandBuilder{
		ConfigurationProvider: configuredCampaign,
		EnvironmentLookup:     environmentWith(map[string]string{"GITHUB_TOKEN": "token"}),
		TrackerFactory: func(factoryContext context.Context, token string, baseURL string) (broadcast.IssueTracker, error) {
			return tracker, nil
		},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	var output bytes.Buffer
	command.SetOut(&output)
	command.SetContext(context.Background())
	command.SetArgs([]string{})
	command.SilenceUsage = true
	command.SilenceErrors = true

	executeError := command.Execute()
	var fetchError broadcast.PageFetchError
	require.ErrorAs(testInstance, executeError, &fetchError)
	require.Equal(testInstance, 401, fetchError.StatusCode)
	require.Equal(testInstance, "Failed to fetch issues - Status: 401\n", output.String())
}

func TestDefaultConfigurationValues(testInstance *testing.T) {
	require.Equal(testInstance, map[string]any{
		"tools.broadcast.owner":        "dynamic-superb",
		"tools.broadcast.repository":   "dynamic-superb",
		"tools.broadcast.label":        "proposal confirmed",
		"tools.broadcast.comment":      "",
		"tools.broadcast.page_size":    100,
		"tools.broadcast.base_url":     "",
		"tools.broadcast.token_source": "",
		"tools.broadcast.dry_run":      false,
	}, broadcast.DefaultConfigurationValues("tools.broadcast"))
}

package githubauth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dynamic-superb/taskops/internal/githubauth"
)

func mapLookup(environment map[string]string) githubauth.EnvironmentLookup {
	return func(key string) (string, bool) {
		value, found := environment[key]
		return value, found
	}
}

func TestResolveToken(testInstance *testing.T) {
	testCases := []struct {
		name          string
		environment   map[string]string
		expectedToken string
		expectedFound bool
	}{
		{
			name:          "cli_token_preferred",
			environment:   map[string]string{"GH_TOKEN": "cli", "GITHUB_TOKEN": "actions", "GITHUB_API_TOKEN": "api"},
			expectedToken: "cli",
			expectedFound: true,
		},
		{
			name:          "blank_values_skipped",
			environment:   map[string]string{"GH_TOKEN": "   ", "GITHUB_TOKEN": "", "GITHUB_API_TOKEN": " api "},
			expectedToken: "api",
			expectedFound: true,
		},
		{
			name:          "github_token_fallback",
			environment:   map[string]string{"GITHUB_TOKEN": "actions"},
			expectedToken: "actions",
			expectedFound: true,
		},
		{
			name:        "nothing_set",
			environment: map[string]string{"UNRELATED": "value"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			token, found := githubauth.ResolveToken(mapLookup(testCase.environment))
			require.Equal(subTest, testCase.expectedFound, found)
			require.Equal(subTest, testCase.expectedToken, token)
		})
	}
}

func TestResolveTokenReadsProcessEnvironment(testInstance *testing.T) {
	testInstance.Setenv(githubauth.EnvGitHubCLIToken, "")
	testInstance.Setenv(githubauth.EnvGitHubToken, "from-process")

	token, found := githubauth.ResolveToken(nil)
	require.True(testInstance, found)
	require.Equal(testInstance, "from-process", token)
}

func TestTokenVariablesReturnsCopy(testInstance *testing.T) {
	variables := githubauth.TokenVariables()
	variables[0] = "MUTATED"
	require.Equal(testInstance, []string{"GH_TOKEN", "GITHUB_TOKEN", "GITHUB_API_TOKEN"}, githubauth.TokenVariables())
}

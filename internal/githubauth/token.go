// Package githubauth locates GitHub credentials in the environment.
package githubauth

import (
	"os"
	"strings"
)

// Environment variable names consulted for a GitHub token, in preference order.
const (
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAPIToken = "GITHUB_API_TOKEN"
)

var tokenPreference = []string{
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAPIToken,
}

// EnvironmentLookup obtains an environment variable value.
type EnvironmentLookup func(key string) (string, bool)

// TokenVariables lists the consulted variable names in preference order.
func TokenVariables() []string {
	return append([]string(nil), tokenPreference...)
}

// ResolveToken returns the first non-blank token among the preferred
// variables. A nil lookup reads the process environment.
func ResolveToken(environmentLookup EnvironmentLookup) (string, bool) {
	if environmentLookup == nil {
		environmentLookup = os.LookupEnv
	}

	for _, key := range tokenPreference {
		value, found := environmentLookup(key)
		if !found {
			continue
		}
		trimmedValue := strings.TrimSpace(value)
		if len(trimmedValue) > 0 {
			return trimmedValue, true
		}
	}

	return "", false
}

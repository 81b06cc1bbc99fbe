package githubauth

import (
	"os"
	"strings"
)

// Environment variable names consulted for a GitHub authentication token.
const (
	EnvAuditorToken   = "GHAUDIT_TOKEN"
	EnvGitHubCLIToken = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvGitHubAuthKey  = "GITHUB_AUTH_KEY"
)

// tokenPreference orders the sources from most to least specific: the
// auditor's own variable first, then the conventional GitHub CLI and API
// variables.
var tokenPreference = []string{
	EnvAuditorToken,
	EnvGitHubCLIToken,
	EnvGitHubToken,
	EnvGitHubAuthKey,
}

// ResolveToken returns the first non-empty GitHub authentication token
// observed in the provided environment map or the process environment.
func ResolveToken(environment map[string]string) (string, bool) {
	for _, environmentKey := range tokenPreference {
		if tokenValue, tokenFound := lookup(environment, environmentKey); tokenFound {
			return tokenValue, true
		}
	}
	for _, environmentKey := range tokenPreference {
		if tokenValue, tokenFound := os.LookupEnv(environmentKey); tokenFound {
			tokenValue = strings.TrimSpace(tokenValue)
			if len(tokenValue) > 0 {
				return tokenValue, true
			}
		}
	}
	return "", false
}

func lookup(environment map[string]string, environmentKey string) (string, bool) {
	if environment == nil {
		return "", false
	}
	tokenValue, keyExists := environment[environmentKey]
	if !keyExists {
		return "", false
	}
	tokenValue = strings.TrimSpace(tokenValue)
	if len(tokenValue) == 0 {
		return "", false
	}
	return tokenValue, true
}

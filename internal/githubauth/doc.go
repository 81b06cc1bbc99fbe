// Package githubauth resolves GitHub authentication tokens from the
// environment, preferring the auditor-specific variable over the
// conventional GitHub CLI and API variables.
package githubauth

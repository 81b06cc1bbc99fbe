package audit

import (
	"context"

	"github.com/temirov/ghaudit/internal/githubapi"
)

// OrganisationLoader fetches the organisation snapshot that seeds an audit run.
type OrganisationLoader interface {
	LoadOrganisation(executionContext context.Context, organisationLogin string) (githubapi.Organisation, error)
}

// OrganisationReader exposes the read-only GitHub operations audit checks
// pull data through. *githubapi.Client satisfies it.
type OrganisationReader interface {
	ListMembers(executionContext context.Context, membersURL string) ([]githubapi.Member, error)
	ListRepositories(executionContext context.Context, repositoriesURL string) ([]githubapi.Repository, error)
	FindFirstEvent(executionContext context.Context, eventsURL string, predicate func(githubapi.Event) bool) (githubapi.Event, bool, error)
	GetBranch(executionContext context.Context, branchURL string) (githubapi.Branch, bool, error)
	ListInstallations(executionContext context.Context, installationsURL string) ([]githubapi.AppInstallation, error)
}

// Check is one independent policy evaluation. Evaluate returns the outcome
// for policy decisions and an error only for non-audit problems scoped to
// this check (transport, decoding, missing data).
type Check interface {
	Name() CheckName
	Enabled(configuration Config) bool
	Evaluate(executionContext context.Context, organisation githubapi.Organisation, configuration Config, reader OrganisationReader) (CheckOutcome, error)
}

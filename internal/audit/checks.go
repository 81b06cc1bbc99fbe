package audit

import (
	"context"
	"net/url"

	"github.com/temirov/ghaudit/internal/githubapi"
)

const (
	twoFactorFieldNameConstant     = "two_factor_requirement_enabled"
	membersURLFieldNameConstant    = "members_url"
	reposURLFieldNameConstant      = "repos_url"
	eventsURLFieldNameConstant     = "events_url"
	branchesURLFieldNameConstant   = "branches_url"
	defaultBranchFieldNameConstant = "default_branch"
)

// TwoFactorCheck verifies that the organisation requires two-factor
// authentication for its members.
type TwoFactorCheck struct{}

// Name identifies the check.
func (TwoFactorCheck) Name() CheckName {
	return CheckNameTwoFactorEnforcement
}

// Enabled reports whether configuration selects this check.
func (TwoFactorCheck) Enabled(configuration Config) bool {
	return configuration.EnforceTwoFactor
}

// Evaluate passes iff the organisation's two-factor requirement flag is set.
// An absent flag is missing data, never a silent pass or fail.
func (TwoFactorCheck) Evaluate(executionContext context.Context, organisation githubapi.Organisation, configuration Config, reader OrganisationReader) (CheckOutcome, error) {
	if organisation.TwoFactorRequirementEnabled == nil {
		return CheckOutcome{}, MissingDataError{FieldName: twoFactorFieldNameConstant}
	}
	if !*organisation.TwoFactorRequirementEnabled {
		return FailedOutcome(TwoFactorDisabledDetail{}), nil
	}
	return PassedOutcome(), nil
}

// AdminCommitActivityCheck verifies that no admin-role member has push
// activity in their public event feed. Only existence matters, so each
// admin's feed walk stops at the first push event.
type AdminCommitActivityCheck struct{}

// Name identifies the check.
func (AdminCommitActivityCheck) Name() CheckName {
	return CheckNameAdminCommitActivity
}

// Enabled reports whether configuration selects this check.
func (AdminCommitActivityCheck) Enabled(configuration Config) bool {
	return configuration.AuditAdminActivity
}

// Evaluate enumerates admin-role members and fails with the logins of every
// admin whose public feed contains a push event.
func (AdminCommitActivityCheck) Evaluate(executionContext context.Context, organisation githubapi.Organisation, configuration Config, reader OrganisationReader) (CheckOutcome, error) {
	adminMembers, listError := listAdminMembers(executionContext, organisation, reader)
	if listError != nil {
		return CheckOutcome{}, listError
	}

	var pushingAdminLogins []string
	for _, adminMember := range adminMembers {
		eventsURL, expansionError := githubapi.PublicEventsURL(adminMember.EventsURL)
		if expansionError != nil {
			return CheckOutcome{}, MissingDataError{FieldName: eventsURLFieldNameConstant}
		}

		_, pushEventFound, findError := reader.FindFirstEvent(executionContext, eventsURL, isPushEvent)
		if findError != nil {
			return CheckOutcome{}, findError
		}
		if pushEventFound {
			pushingAdminLogins = append(pushingAdminLogins, adminMember.Login)
		}
	}

	if len(pushingAdminLogins) > 0 {
		return FailedOutcome(AdminCommitActivityDetail{AdminLogins: pushingAdminLogins}), nil
	}
	return PassedOutcome(), nil
}

func isPushEvent(candidateEvent githubapi.Event) bool {
	return candidateEvent.Type == githubapi.PushEventTypeConstant
}

func listAdminMembers(executionContext context.Context, organisation githubapi.Organisation, reader OrganisationReader) ([]githubapi.Member, error) {
	adminMembersURL, expansionError := githubapi.AdminMembersURL(organisation.MembersURL)
	if expansionError != nil {
		return nil, MissingDataError{FieldName: membersURLFieldNameConstant}
	}
	return reader.ListMembers(executionContext, adminMembersURL)
}

// BranchProtectionCheck verifies that every repository's default branch is
// protected. Each default branch is fetched directly by name and its
// protection flag read, so a repository is classified from authoritative
// data; a branch the API cannot find counts as unprotected.
type BranchProtectionCheck struct{}

// Name identifies the check.
func (BranchProtectionCheck) Name() CheckName {
	return CheckNameBranchProtection
}

// Enabled reports whether configuration selects this check.
func (BranchProtectionCheck) Enabled(configuration Config) bool {
	return configuration.AuditBranchProtection
}

// Evaluate enumerates all repositories and fails with the names of every
// repository whose default branch is absent or explicitly unprotected.
func (BranchProtectionCheck) Evaluate(executionContext context.Context, organisation githubapi.Organisation, configuration Config, reader OrganisationReader) (CheckOutcome, error) {
	repositoriesURL, expansionError := githubapi.ExpandHypermediaTemplate(organisation.ReposURL, "")
	if expansionError != nil {
		return CheckOutcome{}, MissingDataError{FieldName: reposURLFieldNameConstant}
	}

	repositories, listError := reader.ListRepositories(executionContext, repositoriesURL)
	if listError != nil {
		return CheckOutcome{}, listError
	}

	var unprotectedRepositoryNames []string
	for _, repository := range repositories {
		if len(repository.DefaultBranch) == 0 {
			return CheckOutcome{}, MissingDataError{FieldName: defaultBranchFieldNameConstant}
		}

		branchURL, branchExpansionError := githubapi.ExpandHypermediaTemplate(repository.BranchesURL, url.PathEscape(repository.DefaultBranch))
		if branchExpansionError != nil {
			return CheckOutcome{}, MissingDataError{FieldName: branchesURLFieldNameConstant}
		}

		defaultBranch, branchFound, branchError := reader.GetBranch(executionContext, branchURL)
		if branchError != nil {
			return CheckOutcome{}, branchError
		}
		if !branchFound || !defaultBranch.Protected {
			unprotectedRepositoryNames = append(unprotectedRepositoryNames, repository.Name)
		}
	}

	if len(unprotectedRepositoryNames) > 0 {
		return FailedOutcome(UnprotectedBranchesDetail{RepositoryNames: unprotectedRepositoryNames}), nil
	}
	return PassedOutcome(), nil
}

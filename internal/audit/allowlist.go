package audit

import (
	"context"
	"sort"

	"github.com/temirov/ghaudit/internal/githubapi"
)

// AdminAllowListCheck compares the organisation's admin-role member logins
// against the configured allow-list. Divergence in either direction fails:
// an unexpected admin and a missing expected admin are both policy drift.
type AdminAllowListCheck struct{}

// Name identifies the check.
func (AdminAllowListCheck) Name() CheckName {
	return CheckNameAdminAllowList
}

// Enabled reports whether an admin allow-list was configured.
func (AdminAllowListCheck) Enabled(configuration Config) bool {
	return configuration.AdminAllowList != nil
}

// Evaluate fails with the logins that differ between the live admin set and the allow-list.
func (AdminAllowListCheck) Evaluate(executionContext context.Context, organisation githubapi.Organisation, configuration Config, reader OrganisationReader) (CheckOutcome, error) {
	adminMembers, listError := listAdminMembers(executionContext, organisation, reader)
	if listError != nil {
		return CheckOutcome{}, listError
	}
	return compareAllowList(CheckNameAdminAllowList, memberLogins(adminMembers), configuration.AdminAllowList), nil
}

// MemberAllowListCheck compares every organisation member login against the
// configured allow-list.
type MemberAllowListCheck struct{}

// Name identifies the check.
func (MemberAllowListCheck) Name() CheckName {
	return CheckNameMemberAllowList
}

// Enabled reports whether a member allow-list was configured.
func (MemberAllowListCheck) Enabled(configuration Config) bool {
	return configuration.MemberAllowList != nil
}

// Evaluate fails with the logins that differ between organisation membership and the allow-list.
func (MemberAllowListCheck) Evaluate(executionContext context.Context, organisation githubapi.Organisation, configuration Config, reader OrganisationReader) (CheckOutcome, error) {
	membersURL, expansionError := githubapi.ExpandHypermediaTemplate(organisation.MembersURL, "")
	if expansionError != nil {
		return CheckOutcome{}, MissingDataError{FieldName: membersURLFieldNameConstant}
	}

	members, listError := reader.ListMembers(executionContext, membersURL)
	if listError != nil {
		return CheckOutcome{}, listError
	}
	return compareAllowList(CheckNameMemberAllowList, memberLogins(members), configuration.MemberAllowList), nil
}

// InstalledAppAllowListCheck compares the organisation's installed GitHub App
// slugs against the configured allow-list.
type InstalledAppAllowListCheck struct{}

// Name identifies the check.
func (InstalledAppAllowListCheck) Name() CheckName {
	return CheckNameInstalledAppAllowList
}

// Enabled reports whether an installed-application allow-list was configured.
func (InstalledAppAllowListCheck) Enabled(configuration Config) bool {
	return configuration.InstalledAppAllowList != nil
}

// Evaluate fails with the app slugs that differ between the installations listing and the allow-list.
func (InstalledAppAllowListCheck) Evaluate(executionContext context.Context, organisation githubapi.Organisation, configuration Config, reader OrganisationReader) (CheckOutcome, error) {
	installations, listError := reader.ListInstallations(executionContext, githubapi.InstallationsPath(organisation.Login))
	if listError != nil {
		return CheckOutcome{}, listError
	}

	installedSlugs := make([]string, 0, len(installations))
	for _, installation := range installations {
		installedSlugs = append(installedSlugs, installation.AppSlug)
	}
	return compareAllowList(CheckNameInstalledAppAllowList, installedSlugs, configuration.InstalledAppAllowList), nil
}

func memberLogins(members []githubapi.Member) []string {
	logins := make([]string, 0, len(members))
	for _, member := range members {
		logins = append(logins, member.Login)
	}
	return logins
}

// compareAllowList reports identifiers observed upstream but not allowed and
// identifiers allowed but not observed. Evidence is sorted for deterministic
// report text.
func compareAllowList(checkName CheckName, observedIdentifiers []string, allowedIdentifiers []string) CheckOutcome {
	allowedSet := make(map[string]struct{}, len(allowedIdentifiers))
	for _, allowedIdentifier := range allowedIdentifiers {
		allowedSet[allowedIdentifier] = struct{}{}
	}

	observedSet := make(map[string]struct{}, len(observedIdentifiers))
	var unexpectedIdentifiers []string
	for _, observedIdentifier := range observedIdentifiers {
		observedSet[observedIdentifier] = struct{}{}
		if _, allowed := allowedSet[observedIdentifier]; !allowed {
			unexpectedIdentifiers = append(unexpectedIdentifiers, observedIdentifier)
		}
	}

	var missingIdentifiers []string
	for _, allowedIdentifier := range allowedIdentifiers {
		if _, observed := observedSet[allowedIdentifier]; !observed {
			missingIdentifiers = append(missingIdentifiers, allowedIdentifier)
		}
	}

	if len(unexpectedIdentifiers) == 0 && len(missingIdentifiers) == 0 {
		return PassedOutcome()
	}

	sort.Strings(unexpectedIdentifiers)
	sort.Strings(missingIdentifiers)
	return FailedOutcome(AllowListMismatchDetail{
		Check:                 checkName,
		UnexpectedIdentifiers: unexpectedIdentifiers,
		MissingIdentifiers:    missingIdentifiers,
	})
}

package audit_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghaudit/internal/audit"
	"github.com/temirov/ghaudit/internal/githubapi"
)

func TestAllowListCheckEnablement(testInstance *testing.T) {
	testCases := []struct {
		name            string
		configuration   audit.Config
		check           audit.Check
		expectedEnabled bool
	}{
		{
			name:            "nil_admin_list_disables_check",
			configuration:   audit.Config{},
			check:           audit.AdminAllowListCheck{},
			expectedEnabled: false,
		},
		{
			name:            "empty_admin_list_enables_check",
			configuration:   audit.Config{AdminAllowList: []string{}},
			check:           audit.AdminAllowListCheck{},
			expectedEnabled: true,
		},
		{
			name:            "nil_member_list_disables_check",
			configuration:   audit.Config{},
			check:           audit.MemberAllowListCheck{},
			expectedEnabled: false,
		},
		{
			name:            "populated_member_list_enables_check",
			configuration:   audit.Config{MemberAllowList: []string{firstAdminLoginConstant}},
			check:           audit.MemberAllowListCheck{},
			expectedEnabled: true,
		},
		{
			name:            "nil_installed_app_list_disables_check",
			configuration:   audit.Config{},
			check:           audit.InstalledAppAllowListCheck{},
			expectedEnabled: false,
		},
		{
			name:            "empty_installed_app_list_enables_check",
			configuration:   audit.Config{InstalledAppAllowList: []string{}},
			check:           audit.InstalledAppAllowListCheck{},
			expectedEnabled: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedEnabled, testCase.check.Enabled(testCase.configuration))
		})
	}
}

func TestAdminAllowListCheckReportsSortedDivergence(testInstance *testing.T) {
	reader := &stubOrganisationReader{
		membersByURL: map[string][]githubapi.Member{
			adminMembersURLConstant: {
				{Login: "zulu-admin"},
				{Login: firstAdminLoginConstant},
				{Login: "alpha-admin"},
			},
		},
	}
	configuration := audit.Config{
		AdminAllowList: []string{firstAdminLoginConstant, "expected-admin"},
	}

	outcome, evaluationError := audit.AdminAllowListCheck{}.Evaluate(
		context.Background(),
		defaultOrganisation(booleanPointer(true)),
		configuration,
		reader,
	)

	require.NoError(testInstance, evaluationError)
	require.False(testInstance, outcome.Passed())
	mismatchDetail, detailIsMismatch := outcome.Detail().(audit.AllowListMismatchDetail)
	require.True(testInstance, detailIsMismatch)
	require.Equal(testInstance, audit.CheckNameAdminAllowList, mismatchDetail.Check)
	require.Equal(testInstance, []string{"alpha-admin", "zulu-admin"}, mismatchDetail.UnexpectedIdentifiers)
	require.Equal(testInstance, []string{"expected-admin"}, mismatchDetail.MissingIdentifiers)
}

func TestMemberAllowListCheckPassesOnExactMatch(testInstance *testing.T) {
	reader := &stubOrganisationReader{
		membersByURL: map[string][]githubapi.Member{
			allMembersURLConstant: {
				{Login: firstAdminLoginConstant},
				{Login: secondAdminLoginConstant},
			},
		},
	}
	configuration := audit.Config{
		MemberAllowList: []string{secondAdminLoginConstant, firstAdminLoginConstant},
	}

	outcome, evaluationError := audit.MemberAllowListCheck{}.Evaluate(
		context.Background(),
		defaultOrganisation(booleanPointer(true)),
		configuration,
		reader,
	)

	require.NoError(testInstance, evaluationError)
	require.True(testInstance, outcome.Passed())
}

func TestInstalledAppAllowListCheckFlagsUnexpectedApplications(testInstance *testing.T) {
	reader := &stubOrganisationReader{
		installationsByURL: map[string][]githubapi.AppInstallation{
			installationsPathConstant: {
				{AppSlug: "dependency-scanner"},
				{AppSlug: "surprise-integration"},
			},
		},
	}
	configuration := audit.Config{
		InstalledAppAllowList: []string{"dependency-scanner"},
	}

	outcome, evaluationError := audit.InstalledAppAllowListCheck{}.Evaluate(
		context.Background(),
		defaultOrganisation(booleanPointer(true)),
		configuration,
		reader,
	)

	require.NoError(testInstance, evaluationError)
	require.False(testInstance, outcome.Passed())
	mismatchDetail, detailIsMismatch := outcome.Detail().(audit.AllowListMismatchDetail)
	require.True(testInstance, detailIsMismatch)
	require.Equal(testInstance, audit.CheckNameInstalledAppAllowList, mismatchDetail.Check)
	require.Equal(testInstance, []string{"surprise-integration"}, mismatchDetail.UnexpectedIdentifiers)
	require.Empty(testInstance, mismatchDetail.MissingIdentifiers)
}

func TestInstalledAppAllowListCheckExpectNoneFailsOnAnyInstallation(testInstance *testing.T) {
	reader := &stubOrganisationReader{
		installationsByURL: map[string][]githubapi.AppInstallation{
			installationsPathConstant: {
				{AppSlug: "surprise-integration"},
			},
		},
	}
	configuration := audit.Config{
		InstalledAppAllowList: []string{},
	}

	outcome, evaluationError := audit.InstalledAppAllowListCheck{}.Evaluate(
		context.Background(),
		defaultOrganisation(booleanPointer(true)),
		configuration,
		reader,
	)

	require.NoError(testInstance, evaluationError)
	require.False(testInstance, outcome.Passed())
}

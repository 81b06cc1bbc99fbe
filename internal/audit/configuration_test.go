package audit_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghaudit/internal/audit"
)

func TestDefaultConfigEnablesCoreChecksOnly(testInstance *testing.T) {
	configuration := audit.DefaultConfig()
	require.True(testInstance, configuration.EnforceTwoFactor)
	require.True(testInstance, configuration.AuditAdminActivity)
	require.True(testInstance, configuration.AuditBranchProtection)
	require.Nil(testInstance, configuration.AdminAllowList)
	require.Nil(testInstance, configuration.MemberAllowList)
	require.Nil(testInstance, configuration.InstalledAppAllowList)
}

func TestDefaultConfigurationValuesCarryPrefix(testInstance *testing.T) {
	configurationValues := audit.DefaultConfigurationValues("audit")
	require.Equal(testInstance, map[string]any{
		"audit.enforce_two_factor":      true,
		"audit.audit_admin_activity":    true,
		"audit.audit_branch_protection": true,
	}, configurationValues)
}

func TestRunConfigSanitizesAllowLists(testInstance *testing.T) {
	testCases := []struct {
		name         string
		rawList      []string
		expectedList []string
	}{
		{
			name:         "nil_list_stays_nil",
			rawList:      nil,
			expectedList: nil,
		},
		{
			name:         "empty_list_stays_empty_but_not_nil",
			rawList:      []string{},
			expectedList: []string{},
		},
		{
			name:         "blank_entries_are_dropped_without_losing_the_list",
			rawList:      []string{"  ", ""},
			expectedList: []string{},
		},
		{
			name:         "entries_are_trimmed",
			rawList:      []string{" octocat ", "hubot"},
			expectedList: []string{"octocat", "hubot"},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			commandConfiguration := audit.DefaultCommandConfiguration()
			commandConfiguration.AdminAllowList = testCase.rawList

			runConfiguration := commandConfiguration.RunConfig()
			if testCase.expectedList == nil {
				require.Nil(testInstance, runConfiguration.AdminAllowList)
				return
			}
			require.NotNil(testInstance, runConfiguration.AdminAllowList)
			require.Equal(testInstance, testCase.expectedList, runConfiguration.AdminAllowList)
		})
	}
}

func TestRunConfigCarriesToggles(testInstance *testing.T) {
	commandConfiguration := audit.DefaultCommandConfiguration()
	commandConfiguration.AuditAdminActivity = false

	runConfiguration := commandConfiguration.RunConfig()
	require.True(testInstance, runConfiguration.EnforceTwoFactor)
	require.False(testInstance, runConfiguration.AuditAdminActivity)
	require.True(testInstance, runConfiguration.AuditBranchProtection)
}

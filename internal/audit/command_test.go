package audit_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/ghaudit/internal/audit"
	"github.com/temirov/ghaudit/internal/githubapi"
	"github.com/temirov/ghaudit/internal/utils"
)

const (
	configuredTokenConstant = "configured-token"
	resolvedTokenConstant   = "environment-token"
)

type stubGitHubAccess struct {
	*stubOrganisationReader
	organisation githubapi.Organisation
	loadError    error
}

func (access *stubGitHubAccess) LoadOrganisation(executionContext context.Context, organisationLogin string) (githubapi.Organisation, error) {
	if access.loadError != nil {
		return githubapi.Organisation{}, access.loadError
	}
	return access.organisation, nil
}

type commandHarness struct {
	builder        *audit.CommandBuilder
	outputBuffer   *bytes.Buffer
	requestedToken string
}

func newCommandHarness(access *stubGitHubAccess, configuration audit.CommandConfiguration) *commandHarness {
	harness := &commandHarness{outputBuffer: &bytes.Buffer{}}
	harness.builder = &audit.CommandBuilder{
		ConfigurationProvider: func() audit.CommandConfiguration {
			return configuration
		},
		AccessProvider: func(authenticationToken string) (audit.GitHubAccess, error) {
			harness.requestedToken = authenticationToken
			return access, nil
		},
		TokenResolver: func() (string, bool) {
			return resolvedTokenConstant, true
		},
	}
	return harness
}

func (harness *commandHarness) execute(testInstance *testing.T, arguments ...string) error {
	command, buildError := harness.builder.Build()
	require.NoError(testInstance, buildError)
	command.SilenceErrors = true
	command.SilenceUsage = true
	command.SetOut(harness.outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs(arguments)
	return command.Execute()
}

func twoFactorOnlyConfiguration() audit.CommandConfiguration {
	configuration := audit.DefaultCommandConfiguration()
	configuration.AuditAdminActivity = false
	configuration.AuditBranchProtection = false
	return configuration
}

func TestAuditCommandRequiresOrganisation(testInstance *testing.T) {
	harness := newCommandHarness(&stubGitHubAccess{stubOrganisationReader: &stubOrganisationReader{}}, audit.DefaultCommandConfiguration())

	executionError := harness.execute(testInstance)

	var configurationError audit.ConfigurationError
	require.ErrorAs(testInstance, executionError, &configurationError)
}

func TestAuditCommandRequiresToken(testInstance *testing.T) {
	harness := newCommandHarness(&stubGitHubAccess{stubOrganisationReader: &stubOrganisationReader{}}, audit.DefaultCommandConfiguration())
	harness.builder.TokenResolver = func() (string, bool) {
		return "", false
	}

	executionError := harness.execute(testInstance, organisationLoginConstant)

	var configurationError audit.ConfigurationError
	require.ErrorAs(testInstance, executionError, &configurationError)
}

func TestAuditCommandPrefersConfiguredToken(testInstance *testing.T) {
	access := &stubGitHubAccess{
		stubOrganisationReader: &stubOrganisationReader{},
		organisation:           defaultOrganisation(booleanPointer(true)),
	}
	configuration := twoFactorOnlyConfiguration()
	configuration.Token = configuredTokenConstant
	harness := newCommandHarness(access, configuration)

	executionError := harness.execute(testInstance, organisationLoginConstant)

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, configuredTokenConstant, harness.requestedToken)
}

func TestAuditCommandFallsBackToResolvedToken(testInstance *testing.T) {
	access := &stubGitHubAccess{
		stubOrganisationReader: &stubOrganisationReader{},
		organisation:           defaultOrganisation(booleanPointer(true)),
	}
	harness := newCommandHarness(access, twoFactorOnlyConfiguration())

	executionError := harness.execute(testInstance, organisationLoginConstant)

	require.NoError(testInstance, executionError)
	require.Equal(testInstance, resolvedTokenConstant, harness.requestedToken)
}

func TestAuditCommandWrapsOrganisationLoadFailures(testInstance *testing.T) {
	loadFailure := errors.New("organisation lookup failed")
	access := &stubGitHubAccess{
		stubOrganisationReader: &stubOrganisationReader{},
		loadError:              loadFailure,
	}
	harness := newCommandHarness(access, twoFactorOnlyConfiguration())

	executionError := harness.execute(testInstance, organisationLoginConstant)

	var configurationError audit.ConfigurationError
	require.ErrorAs(testInstance, executionError, &configurationError)
	require.ErrorIs(testInstance, executionError, loadFailure)
}

func TestAuditCommandCleanRunProducesNoOutput(testInstance *testing.T) {
	access := &stubGitHubAccess{
		stubOrganisationReader: &stubOrganisationReader{},
		organisation:           defaultOrganisation(booleanPointer(true)),
	}
	harness := newCommandHarness(access, twoFactorOnlyConfiguration())

	executionError := harness.execute(testInstance, organisationLoginConstant)

	require.NoError(testInstance, executionError)
	require.Empty(testInstance, harness.outputBuffer.String())
}

func TestAuditCommandRendersFailuresAndReportsFailureCount(testInstance *testing.T) {
	access := &stubGitHubAccess{
		stubOrganisationReader: &stubOrganisationReader{},
		organisation:           defaultOrganisation(booleanPointer(false)),
	}
	harness := newCommandHarness(access, twoFactorOnlyConfiguration())

	executionError := harness.execute(testInstance, organisationLoginConstant)

	var failedError audit.FailedError
	require.ErrorAs(testInstance, executionError, &failedError)
	require.Equal(testInstance, 1, failedError.FailureCount)
	require.Contains(testInstance, harness.outputBuffer.String(), "Two-factor authentication is not required")
	require.Contains(testInstance, harness.outputBuffer.String(), "Enable two-factor authentication as a requirement for members.")
}

func TestAuditCommandToggleFlagsOverrideConfiguration(testInstance *testing.T) {
	access := &stubGitHubAccess{
		stubOrganisationReader: &stubOrganisationReader{},
		organisation:           defaultOrganisation(booleanPointer(false)),
	}
	harness := newCommandHarness(access, audit.DefaultCommandConfiguration())

	executionError := harness.execute(
		testInstance,
		organisationLoginConstant,
		"--two-factor=no",
		"--admin-activity=no",
		"--branch-protection=no",
	)

	var failedError audit.FailedError
	require.ErrorAs(testInstance, executionError, &failedError)
	require.Equal(testInstance, 1, failedError.FailureCount)
	require.Contains(testInstance, harness.outputBuffer.String(), "No audit checks were executed.")
}

func TestAuditCommandAllowListFlagEnablesComparison(testInstance *testing.T) {
	access := &stubGitHubAccess{
		stubOrganisationReader: &stubOrganisationReader{
			membersByURL: map[string][]githubapi.Member{
				adminMembersURLConstant: {
					{Login: firstAdminLoginConstant},
				},
			},
		},
		organisation: defaultOrganisation(booleanPointer(true)),
	}
	configuration := twoFactorOnlyConfiguration()
	harness := newCommandHarness(access, configuration)

	executionError := harness.execute(
		testInstance,
		organisationLoginConstant,
		"--admin-allow-list=expected-admin",
	)

	var failedError audit.FailedError
	require.ErrorAs(testInstance, executionError, &failedError)
	require.Contains(testInstance, harness.outputBuffer.String(), "The admin-allow-list comparison diverged.")
	require.Contains(testInstance, harness.outputBuffer.String(), "Unexpected: first-admin.")
	require.Contains(testInstance, harness.outputBuffer.String(), "Missing: expected-admin.")
}

func TestAuditCommandLogsResolvedConfigurationSource(testInstance *testing.T) {
	access := &stubGitHubAccess{
		stubOrganisationReader: &stubOrganisationReader{},
		organisation:           defaultOrganisation(booleanPointer(true)),
	}
	harness := newCommandHarness(access, twoFactorOnlyConfiguration())

	observedCore, observedEntries := observer.New(zap.DebugLevel)
	harness.builder.LoggerProvider = func() *zap.Logger {
		return zap.New(observedCore)
	}

	command, buildError := harness.builder.Build()
	require.NoError(testInstance, buildError)
	command.SilenceErrors = true
	command.SilenceUsage = true
	command.SetOut(harness.outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs([]string{organisationLoginConstant})

	executionContext := utils.NewCommandContextAccessor().WithConfigurationFilePath(
		context.Background(),
		"/etc/ghaudit/config.yaml",
	)
	require.NoError(testInstance, command.ExecuteContext(executionContext))

	resolvedEntries := observedEntries.FilterMessage("audit configuration resolved").All()
	require.Len(testInstance, resolvedEntries, 1)
	loggedFields := resolvedEntries[0].ContextMap()
	require.Equal(testInstance, "/etc/ghaudit/config.yaml", loggedFields["config_file"])
	require.Equal(testInstance, organisationLoginConstant, loggedFields["organisation"])
}

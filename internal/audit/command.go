package audit

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ghaudit/internal/githubapi"
	"github.com/temirov/ghaudit/internal/githubauth"
	"github.com/temirov/ghaudit/internal/utils"
	"github.com/temirov/ghaudit/internal/utils/flags"
)

const (
	commandNameConstant             = "audit [organisation]"
	commandShortDescriptionConstant = "Audit a GitHub organisation's security posture"
	commandLongDescriptionConstant  = "audit runs the enabled read-only security checks against one GitHub organisation and reports every failing check with remediation guidance."

	flagTokenName        = "token"
	flagTokenDescription = "GitHub authentication token (defaults to the token environment variables)."

	flagTwoFactorName               = "two-factor"
	flagTwoFactorDescription        = "Audit that two-factor authentication is required for members."
	flagAdminActivityName           = "admin-activity"
	flagAdminActivityDescription    = "Audit that admin accounts have no public push activity."
	flagBranchProtectionName        = "branch-protection"
	flagBranchProtectionDescription = "Audit that every repository's default branch is protected."

	flagAdminAllowListName               = "admin-allow-list"
	flagAdminAllowListDescription        = "Expected admin logins; divergence in either direction fails the audit."
	flagMemberAllowListName              = "member-allow-list"
	flagMemberAllowListDescription       = "Expected member logins; divergence in either direction fails the audit."
	flagInstalledAppAllowListName        = "installed-app-allow-list"
	flagInstalledAppAllowListDescription = "Expected installed GitHub App slugs; divergence in either direction fails the audit."

	missingOrganisationMessageConstant = "organisation identifier required"
	missingTokenMessageConstant        = "github authentication token required"

	configurationSourceMessageConstant = "audit configuration resolved"
	logFieldConfigurationFileConstant  = "config_file"
	logFieldOrganisationLoginConstant  = "organisation"
)

var (
	errMissingOrganisation = errors.New(missingOrganisationMessageConstant)
	errMissingToken        = errors.New(missingTokenMessageConstant)
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// GitHubAccess combines the organisation fetch with the read operations
// checks pull data through.
type GitHubAccess interface {
	OrganisationLoader
	OrganisationReader
}

// GitHubAccessProvider builds the GitHub access layer for a resolved token.
type GitHubAccessProvider func(authenticationToken string) (GitHubAccess, error)

// CommandBuilder assembles the audit cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	AccessProvider        GitHubAccessProvider
	TokenResolver         func() (string, bool)
}

// Build constructs the cobra command for the organisation audit workflow.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	var tokenFlagValue string
	var twoFactorFlagValue bool
	var adminActivityFlagValue bool
	var branchProtectionFlagValue bool
	var adminAllowListFlagValue []string
	var memberAllowListFlagValue []string
	var installedAppAllowListFlagValue []string

	defaults := DefaultCommandConfiguration()

	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			options := commandFlagValues{
				Token:                 tokenFlagValue,
				EnforceTwoFactor:      twoFactorFlagValue,
				AuditAdminActivity:    adminActivityFlagValue,
				AuditBranchProtection: branchProtectionFlagValue,
				AdminAllowList:        adminAllowListFlagValue,
				MemberAllowList:       memberAllowListFlagValue,
				InstalledAppAllowList: installedAppAllowListFlagValue,
			}
			return builder.run(command, arguments, options)
		},
	}

	command.Flags().StringVar(&tokenFlagValue, flagTokenName, "", flagTokenDescription)
	flags.AddToggleFlag(command.Flags(), &twoFactorFlagValue, flagTwoFactorName, "", defaults.EnforceTwoFactor, flagTwoFactorDescription)
	flags.AddToggleFlag(command.Flags(), &adminActivityFlagValue, flagAdminActivityName, "", defaults.AuditAdminActivity, flagAdminActivityDescription)
	flags.AddToggleFlag(command.Flags(), &branchProtectionFlagValue, flagBranchProtectionName, "", defaults.AuditBranchProtection, flagBranchProtectionDescription)
	command.Flags().StringSliceVar(&adminAllowListFlagValue, flagAdminAllowListName, nil, flagAdminAllowListDescription)
	command.Flags().StringSliceVar(&memberAllowListFlagValue, flagMemberAllowListName, nil, flagMemberAllowListDescription)
	command.Flags().StringSliceVar(&installedAppAllowListFlagValue, flagInstalledAppAllowListName, nil, flagInstalledAppAllowListDescription)

	return command, nil
}

// commandFlagValues captures flag state at execution time.
type commandFlagValues struct {
	Token                 string
	EnforceTwoFactor      bool
	AuditAdminActivity    bool
	AuditBranchProtection bool
	AdminAllowList        []string
	MemberAllowList       []string
	InstalledAppAllowList []string
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, flagValues commandFlagValues) error {
	configuration := builder.resolveConfiguration()
	mergeChangedFlags(command, &configuration, flagValues)

	organisationLogin := configuration.Organisation
	if len(arguments) > 0 {
		organisationLogin = arguments[0]
	}
	if len(organisationLogin) == 0 {
		return ConfigurationError{Cause: errMissingOrganisation}
	}

	logger := builder.resolveLogger()
	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	logger.Debug(
		configurationSourceMessageConstant,
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
		zap.String(logFieldOrganisationLoginConstant, organisationLogin),
	)

	authenticationToken, tokenError := builder.resolveToken(configuration)
	if tokenError != nil {
		return tokenError
	}

	access, accessError := builder.resolveAccess(authenticationToken)
	if accessError != nil {
		return ConfigurationError{Cause: accessError}
	}

	organisation, loadError := access.LoadOrganisation(command.Context(), organisationLogin)
	if loadError != nil {
		return ConfigurationError{Cause: loadError}
	}

	engine := NewEngine(access, logger)
	report := engine.Run(command.Context(), organisation, configuration.RunConfig())

	outputWriter := command.OutOrStdout()
	for _, failureDetail := range report.Failures {
		if _, writeError := outputWriter.Write([]byte(RenderFailure(failureDetail).String())); writeError != nil {
			return writeError
		}
	}

	if !report.Clean() {
		return FailedError{FailureCount: len(report.Failures)}
	}
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func mergeChangedFlags(command *cobra.Command, configuration *CommandConfiguration, flagValues commandFlagValues) {
	commandFlags := command.Flags()
	if commandFlags.Changed(flagTokenName) {
		configuration.Token = flagValues.Token
	}
	if commandFlags.Changed(flagTwoFactorName) {
		configuration.EnforceTwoFactor = flagValues.EnforceTwoFactor
	}
	if commandFlags.Changed(flagAdminActivityName) {
		configuration.AuditAdminActivity = flagValues.AuditAdminActivity
	}
	if commandFlags.Changed(flagBranchProtectionName) {
		configuration.AuditBranchProtection = flagValues.AuditBranchProtection
	}
	if commandFlags.Changed(flagAdminAllowListName) {
		configuration.AdminAllowList = flagValues.AdminAllowList
	}
	if commandFlags.Changed(flagMemberAllowListName) {
		configuration.MemberAllowList = flagValues.MemberAllowList
	}
	if commandFlags.Changed(flagInstalledAppAllowListName) {
		configuration.InstalledAppAllowList = flagValues.InstalledAppAllowList
	}
}

func (builder *CommandBuilder) resolveToken(configuration CommandConfiguration) (string, error) {
	if len(configuration.Token) > 0 {
		return configuration.Token, nil
	}

	tokenResolver := builder.TokenResolver
	if tokenResolver == nil {
		tokenResolver = func() (string, bool) {
			return githubauth.ResolveToken(nil)
		}
	}

	if resolvedToken, tokenFound := tokenResolver(); tokenFound {
		return resolvedToken, nil
	}
	return "", ConfigurationError{Cause: errMissingToken}
}

func (builder *CommandBuilder) resolveAccess(authenticationToken string) (GitHubAccess, error) {
	if builder.AccessProvider != nil {
		return builder.AccessProvider(authenticationToken)
	}
	return githubapi.NewTokenClient(authenticationToken)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

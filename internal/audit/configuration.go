package audit

import "strings"

// Config selects which checks an audit run executes. Toggles and allow-lists
// are orthogonal: a nil allow-list disables its check entirely, while an
// empty non-nil list means "expect none".
type Config struct {
	EnforceTwoFactor      bool
	AuditAdminActivity    bool
	AuditBranchProtection bool
	AdminAllowList        []string
	MemberAllowList       []string
	InstalledAppAllowList []string
}

// DefaultConfig returns the documented default toggle set: the two-factor,
// admin-activity, and branch-protection checks are all enabled and no
// allow-list is configured.
func DefaultConfig() Config {
	return Config{
		EnforceTwoFactor:      true,
		AuditAdminActivity:    true,
		AuditBranchProtection: true,
	}
}

// CommandConfiguration captures persistent settings for the audit command.
type CommandConfiguration struct {
	Organisation          string   `mapstructure:"organisation"`
	Token                 string   `mapstructure:"token"`
	EnforceTwoFactor      bool     `mapstructure:"enforce_two_factor"`
	AuditAdminActivity    bool     `mapstructure:"audit_admin_activity"`
	AuditBranchProtection bool     `mapstructure:"audit_branch_protection"`
	AdminAllowList        []string `mapstructure:"admin_allow_list"`
	MemberAllowList       []string `mapstructure:"member_allow_list"`
	InstalledAppAllowList []string `mapstructure:"installed_app_allow_list"`
}

// DefaultCommandConfiguration returns baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	defaults := DefaultConfig()
	return CommandConfiguration{
		EnforceTwoFactor:      defaults.EnforceTwoFactor,
		AuditAdminActivity:    defaults.AuditAdminActivity,
		AuditBranchProtection: defaults.AuditBranchProtection,
	}
}

// DefaultConfigurationValues exposes the command defaults keyed for the
// configuration loader at the provided configuration prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + ".enforce_two_factor":      defaults.EnforceTwoFactor,
		configurationKeyPrefix + ".audit_admin_activity":    defaults.AuditAdminActivity,
		configurationKeyPrefix + ".audit_branch_protection": defaults.AuditBranchProtection,
	}
}

// RunConfig converts persisted command settings into the runtime check configuration.
func (configuration CommandConfiguration) RunConfig() Config {
	return Config{
		EnforceTwoFactor:      configuration.EnforceTwoFactor,
		AuditAdminActivity:    configuration.AuditAdminActivity,
		AuditBranchProtection: configuration.AuditBranchProtection,
		AdminAllowList:        sanitizeAllowList(configuration.AdminAllowList),
		MemberAllowList:       sanitizeAllowList(configuration.MemberAllowList),
		InstalledAppAllowList: sanitizeAllowList(configuration.InstalledAppAllowList),
	}
}

// sanitizeAllowList trims entries and drops blanks while preserving the
// nil-versus-empty distinction that decides whether the check runs.
func sanitizeAllowList(rawEntries []string) []string {
	if rawEntries == nil {
		return nil
	}
	sanitizedEntries := make([]string, 0, len(rawEntries))
	for _, rawEntry := range rawEntries {
		trimmedEntry := strings.TrimSpace(rawEntry)
		if len(trimmedEntry) == 0 {
			continue
		}
		sanitizedEntries = append(sanitizedEntries, trimmedEntry)
	}
	return sanitizedEntries
}

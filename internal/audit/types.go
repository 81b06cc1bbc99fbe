package audit

// CheckName identifies one policy check in engine order and report output.
type CheckName string

// Check names in the fixed engine execution order.
const (
	CheckNameTwoFactorEnforcement  CheckName = "two-factor-enforcement"
	CheckNameAdminCommitActivity   CheckName = "admin-commit-activity"
	CheckNameBranchProtection      CheckName = "default-branch-protection"
	CheckNameAdminAllowList        CheckName = "admin-allow-list"
	CheckNameMemberAllowList       CheckName = "member-allow-list"
	CheckNameInstalledAppAllowList CheckName = "installed-app-allow-list"
)

// FailureDetail is one collected audit failure. Each variant carries exactly
// the evidence its remediation text needs.
type FailureDetail interface {
	FailingCheck() CheckName
}

// TwoFactorDisabledDetail reports that the organisation does not require
// two-factor authentication. The check is boolean, so no evidence is carried.
type TwoFactorDisabledDetail struct{}

// FailingCheck names the originating check.
func (TwoFactorDisabledDetail) FailingCheck() CheckName {
	return CheckNameTwoFactorEnforcement
}

// AdminCommitActivityDetail lists the admin accounts with at least one push
// event in their public activity feed.
type AdminCommitActivityDetail struct {
	AdminLogins []string
}

// FailingCheck names the originating check.
func (AdminCommitActivityDetail) FailingCheck() CheckName {
	return CheckNameAdminCommitActivity
}

// UnprotectedBranchesDetail lists the repositories whose default branch is
// not protected.
type UnprotectedBranchesDetail struct {
	RepositoryNames []string
}

// FailingCheck names the originating check.
func (UnprotectedBranchesDetail) FailingCheck() CheckName {
	return CheckNameBranchProtection
}

// AllowListMismatchDetail reports identifiers present upstream but absent
// from the configured allow-list, and allow-listed identifiers missing
// upstream.
type AllowListMismatchDetail struct {
	Check                 CheckName
	UnexpectedIdentifiers []string
	MissingIdentifiers    []string
}

// FailingCheck names the originating allow-list check.
func (detail AllowListMismatchDetail) FailingCheck() CheckName {
	return detail.Check
}

// CheckErrorDetail wraps a non-audit error (transport, decoding, or missing
// data) that aborted one check. It is collected like any other failure so a
// broken check never hides its siblings.
type CheckErrorDetail struct {
	Check CheckName
	Cause error
}

// FailingCheck names the check that could not complete.
func (detail CheckErrorDetail) FailingCheck() CheckName {
	return detail.Check
}

// NoChecksExecutedDetail is synthesized when configuration disabled every
// check, signalling likely misconfiguration rather than a clean pass.
type NoChecksExecutedDetail struct{}

// FailingCheck returns an empty name; the failure belongs to the run itself.
func (NoChecksExecutedDetail) FailingCheck() CheckName {
	return ""
}

// CheckOutcome is the discriminated result of one check evaluation. A nil
// detail means the check passed.
type CheckOutcome struct {
	detail FailureDetail
}

// PassedOutcome reports a clean check.
func PassedOutcome() CheckOutcome {
	return CheckOutcome{}
}

// FailedOutcome reports a failed check carrying its evidence.
func FailedOutcome(detail FailureDetail) CheckOutcome {
	return CheckOutcome{detail: detail}
}

// Passed reports whether the check found no violation.
func (outcome CheckOutcome) Passed() bool {
	return outcome.detail == nil
}

// Detail exposes the failure evidence; nil when the check passed.
func (outcome CheckOutcome) Detail() FailureDetail {
	return outcome.detail
}

// Report is the ordered sequence of failures collected by one audit run.
// Insertion order matches check execution order.
type Report struct {
	Failures []FailureDetail
}

// Clean reports whether the run finished without a single failure.
func (report Report) Clean() bool {
	return len(report.Failures) == 0
}

package audit

import (
	"fmt"
	"strings"
)

const (
	identifierListSeparatorConstant = ", "
	renderedFailureTemplateConstant = "Warning:\n%s\n\nRecommendation:\n%s\n"

	twoFactorObservationConstant    = "Two-factor authentication is not required for members of the organisation."
	twoFactorRecommendationConstant = "Enable two-factor authentication as a requirement for members."

	adminActivityObservationTemplateConstant = "Admin accounts have commit activity: %s. This usually indicates admin accounts are used for purposes other than administration."
	adminActivityRecommendationConstant      = "Create separate accounts for administration access to the organisation."

	branchProtectionObservationTemplateConstant = "Repositories with an unprotected default branch: %s."
	branchProtectionRecommendationConstant      = "Enable branch protection on the default branch of every repository."

	allowListObservationTemplateConstant        = "The %s comparison diverged.%s%s"
	allowListUnexpectedFragmentTemplateConstant = " Unexpected: %s."
	allowListMissingFragmentTemplateConstant    = " Missing: %s."
	allowListRecommendationTemplateConstant     = "Reconcile the organisation with the configured %s or update the list to match the intended state."

	checkErrorObservationTemplateConstant = "The %s check could not complete: %s."
	checkErrorRecommendationConstant      = "Verify the credential's permissions and the organisation's API availability, then rerun the audit."

	noChecksObservationConstant    = "No audit checks were executed."
	noChecksRecommendationConstant = "Adjust the configuration to enable at least one audit check."

	unknownObservationTemplateConstant = "An unrecognized failure was reported by the %s check."
	unknownRecommendationConstant      = "Inspect the audit logs for details."
)

// RenderedFailure is the two-part human message for one failure: what was
// observed and what to do about it.
type RenderedFailure struct {
	Observation    string
	Recommendation string
}

// String renders the failure as a warning paragraph followed by a recommendation paragraph.
func (renderedFailure RenderedFailure) String() string {
	return fmt.Sprintf(renderedFailureTemplateConstant, renderedFailure.Observation, renderedFailure.Recommendation)
}

// RenderFailure maps one failure detail onto its fixed remediation template.
// Pure function: no I/O, no state.
func RenderFailure(detail FailureDetail) RenderedFailure {
	switch typedDetail := detail.(type) {
	case TwoFactorDisabledDetail:
		return RenderedFailure{
			Observation:    twoFactorObservationConstant,
			Recommendation: twoFactorRecommendationConstant,
		}
	case AdminCommitActivityDetail:
		return RenderedFailure{
			Observation:    fmt.Sprintf(adminActivityObservationTemplateConstant, joinIdentifiers(typedDetail.AdminLogins)),
			Recommendation: adminActivityRecommendationConstant,
		}
	case UnprotectedBranchesDetail:
		return RenderedFailure{
			Observation:    fmt.Sprintf(branchProtectionObservationTemplateConstant, joinIdentifiers(typedDetail.RepositoryNames)),
			Recommendation: branchProtectionRecommendationConstant,
		}
	case AllowListMismatchDetail:
		return RenderedFailure{
			Observation:    renderAllowListObservation(typedDetail),
			Recommendation: fmt.Sprintf(allowListRecommendationTemplateConstant, typedDetail.Check),
		}
	case CheckErrorDetail:
		return RenderedFailure{
			Observation:    fmt.Sprintf(checkErrorObservationTemplateConstant, typedDetail.Check, typedDetail.Cause),
			Recommendation: checkErrorRecommendationConstant,
		}
	case NoChecksExecutedDetail:
		return RenderedFailure{
			Observation:    noChecksObservationConstant,
			Recommendation: noChecksRecommendationConstant,
		}
	default:
		return RenderedFailure{
			Observation:    fmt.Sprintf(unknownObservationTemplateConstant, detail.FailingCheck()),
			Recommendation: unknownRecommendationConstant,
		}
	}
}

func renderAllowListObservation(detail AllowListMismatchDetail) string {
	unexpectedFragment := ""
	if len(detail.UnexpectedIdentifiers) > 0 {
		unexpectedFragment = fmt.Sprintf(allowListUnexpectedFragmentTemplateConstant, joinIdentifiers(detail.UnexpectedIdentifiers))
	}
	missingFragment := ""
	if len(detail.MissingIdentifiers) > 0 {
		missingFragment = fmt.Sprintf(allowListMissingFragmentTemplateConstant, joinIdentifiers(detail.MissingIdentifiers))
	}
	return fmt.Sprintf(allowListObservationTemplateConstant, detail.Check, unexpectedFragment, missingFragment)
}

func joinIdentifiers(identifiers []string) string {
	return strings.Join(identifiers, identifierListSeparatorConstant)
}

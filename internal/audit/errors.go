package audit

import "fmt"

const (
	missingDataTemplateConstant        = "required organisation data missing: %s"
	configurationErrorTemplateConstant = "audit configuration invalid: %s"
	auditFailedTemplateConstant        = "audit finished with %d failure(s)"
)

// MissingDataError reports a required field absent from an otherwise
// well-formed response. It aborts only the check that needed the field.
type MissingDataError struct {
	FieldName string
}

// Error names the missing field.
func (missingDataError MissingDataError) Error() string {
	return fmt.Sprintf(missingDataTemplateConstant, missingDataError.FieldName)
}

// ConfigurationError reports a fatal pre-run problem such as an absent
// credential or an unreachable organisation. It aborts before any check runs.
type ConfigurationError struct {
	Cause error
}

// Error describes the configuration failure.
func (configurationError ConfigurationError) Error() string {
	return fmt.Sprintf(configurationErrorTemplateConstant, configurationError.Cause)
}

// Unwrap exposes the underlying cause.
func (configurationError ConfigurationError) Unwrap() error {
	return configurationError.Cause
}

// FailedError signals a completed run whose report is not empty. The caller
// maps it to the audit-failure exit code.
type FailedError struct {
	FailureCount int
}

// Error summarizes the failed run.
func (failedError FailedError) Error() string {
	return fmt.Sprintf(auditFailedTemplateConstant, failedError.FailureCount)
}

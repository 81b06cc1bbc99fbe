package githubapi

import "fmt"

const (
	requestErrorTemplateConstant          = "%s request failed for %s: %s"
	requestErrorWithoutCauseTemplate      = "%s request failed for %s"
	responseDecodingErrorTemplateConstant = "%s response decoding failed for %s: %s"
)

// OperationName identifies a named GitHub REST workflow supported by the client.
type OperationName string

// Operation names reported by client errors.
const (
	loadOrganisationOperationNameConstant  OperationName = "LoadOrganisation"
	listMembersOperationNameConstant       OperationName = "ListMembers"
	listRepositoriesOperationNameConstant  OperationName = "ListRepositories"
	findFirstEventOperationNameConstant    OperationName = "FindFirstEvent"
	getBranchOperationNameConstant         OperationName = "GetBranch"
	listInstallationsOperationNameConstant OperationName = "ListInstallations"
)

// RequestError wraps transport-level failures surfaced by the REST client.
type RequestError struct {
	Operation OperationName
	URL       string
	Cause     error
}

// Error describes the transport failure.
func (requestError RequestError) Error() string {
	if requestError.Cause == nil {
		return fmt.Sprintf(requestErrorWithoutCauseTemplate, requestError.Operation, requestError.URL)
	}
	return fmt.Sprintf(requestErrorTemplateConstant, requestError.Operation, requestError.URL, requestError.Cause)
}

// Unwrap exposes the underlying transport error.
func (requestError RequestError) Unwrap() error {
	return requestError.Cause
}

// ResponseDecodingError indicates a malformed response body.
type ResponseDecodingError struct {
	Operation OperationName
	URL       string
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.URL, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

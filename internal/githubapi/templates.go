package githubapi

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	emptyTemplateMessageConstant       = "hypermedia URL template is empty"
	malformedTemplateTemplateConstant  = "hypermedia URL template %q is malformed"
	pathSegmentSeparatorConstant       = "/"
	templateOpeningBraceConstant       = "{"
	publicEventsSegmentConstant        = "public"
	adminRoleQueryParameterConstant    = "role=admin"
	queryParameterSeparatorConstant    = "?"
	additionalQuerySeparatorConstant   = "&"
	installationsEndpointTemplateConst = "orgs/%s/installations"
)

// ErrEmptyTemplate reports an absent hypermedia URL template.
var ErrEmptyTemplate = errors.New(emptyTemplateMessageConstant)

var hypermediaSegmentPattern = regexp.MustCompile(`\{/[A-Za-z_]+\}`)

// ExpandHypermediaTemplate resolves a GitHub hypermedia URL template of the
// form https://host/path{/segment}. A non-empty segmentValue substitutes the
// optional segment; an empty value removes it. Templates without braces are
// returned unchanged (or with the segment appended) so plain URLs pass
// through. Templates with braces that do not match the optional-segment
// shape are malformed.
func ExpandHypermediaTemplate(rawTemplate string, segmentValue string) (string, error) {
	trimmedTemplate := strings.TrimSpace(rawTemplate)
	if len(trimmedTemplate) == 0 {
		return "", ErrEmptyTemplate
	}

	if !strings.Contains(trimmedTemplate, templateOpeningBraceConstant) {
		if len(segmentValue) == 0 {
			return trimmedTemplate, nil
		}
		return trimmedTemplate + pathSegmentSeparatorConstant + segmentValue, nil
	}

	segmentLocation := hypermediaSegmentPattern.FindStringIndex(trimmedTemplate)
	if segmentLocation == nil {
		return "", fmt.Errorf(malformedTemplateTemplateConstant, rawTemplate)
	}

	replacementSegment := ""
	if len(segmentValue) > 0 {
		replacementSegment = pathSegmentSeparatorConstant + segmentValue
	}

	expandedURL := trimmedTemplate[:segmentLocation[0]] + replacementSegment + trimmedTemplate[segmentLocation[1]:]
	if strings.Contains(expandedURL, templateOpeningBraceConstant) {
		return "", fmt.Errorf(malformedTemplateTemplateConstant, rawTemplate)
	}

	return expandedURL, nil
}

// PublicEventsURL expands a member events_url template to the public feed.
func PublicEventsURL(eventsURLTemplate string) (string, error) {
	return ExpandHypermediaTemplate(eventsURLTemplate, publicEventsSegmentConstant)
}

// AdminMembersURL expands an organisation members_url template and scopes the
// listing to admin-role members.
func AdminMembersURL(membersURLTemplate string) (string, error) {
	expandedURL, expansionError := ExpandHypermediaTemplate(membersURLTemplate, "")
	if expansionError != nil {
		return "", expansionError
	}
	return appendQueryParameter(expandedURL, adminRoleQueryParameterConstant), nil
}

// InstallationsPath builds the REST path listing an organisation's installed applications.
func InstallationsPath(organisationLogin string) string {
	return fmt.Sprintf(installationsEndpointTemplateConst, organisationLogin)
}

func appendQueryParameter(targetURL string, queryParameter string) string {
	if strings.Contains(targetURL, queryParameterSeparatorConstant) {
		return targetURL + additionalQuerySeparatorConstant + queryParameter
	}
	return targetURL + queryParameterSeparatorConstant + queryParameter
}

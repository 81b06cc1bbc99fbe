package githubapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	ghapi "github.com/cli/go-gh/v2/pkg/api"
)

const (
	requesterNotConfiguredMessageConstant = "github REST requester not configured"
	organisationEndpointTemplateConstant  = "orgs/%s"
)

// Requester issues authenticated REST requests. *api.RESTClient from go-gh
// satisfies it; the go-gh client passes absolute URLs through unchanged,
// which the pagination cursor walk relies on.
type Requester interface {
	RequestWithContext(executionContext context.Context, method string, path string, body io.Reader) (*http.Response, error)
}

// PageSource serves one decoded page plus the cursor pointing at the next one.
type PageSource interface {
	FetchPage(executionContext context.Context, operation OperationName, pageURL string, target any) (ListCursor, error)
}

// ErrRequesterNotConfigured indicates the client was constructed without a requester.
var ErrRequesterNotConfigured = errors.New(requesterNotConfiguredMessageConstant)

// Client coordinates the GitHub REST invocations performed by audit checks.
type Client struct {
	requester Requester
}

// NewClient constructs a Client from an existing requester.
func NewClient(requester Requester) (*Client, error) {
	if requester == nil {
		return nil, ErrRequesterNotConfigured
	}
	return &Client{requester: requester}, nil
}

// NewTokenClient builds a Client backed by the go-gh REST client using
// bearer-token authorization.
func NewTokenClient(authenticationToken string) (*Client, error) {
	restClient, clientError := ghapi.NewRESTClient(ghapi.ClientOptions{AuthToken: authenticationToken})
	if clientError != nil {
		return nil, clientError
	}
	return NewClient(restClient)
}

// FetchPage issues one authenticated GET against pageURL, decodes the body
// into target, and extracts the next-page cursor from the response's Link
// header.
func (client *Client) FetchPage(executionContext context.Context, operation OperationName, pageURL string, target any) (ListCursor, error) {
	response, requestError := client.requester.RequestWithContext(executionContext, http.MethodGet, pageURL, nil)
	if requestError != nil {
		return ListCursor{}, RequestError{Operation: operation, URL: pageURL, Cause: requestError}
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if decodingError := json.NewDecoder(response.Body).Decode(target); decodingError != nil {
		return ListCursor{}, ResponseDecodingError{Operation: operation, URL: pageURL, Cause: decodingError}
	}

	return nextCursorFromLinkHeader(response.Header.Get(linkHeaderNameConstant)), nil
}

// LoadOrganisation fetches the organisation metadata snapshot that seeds an audit run.
func (client *Client) LoadOrganisation(executionContext context.Context, organisationLogin string) (Organisation, error) {
	var organisation Organisation
	organisationPath := fmt.Sprintf(organisationEndpointTemplateConstant, organisationLogin)
	if _, fetchError := client.FetchPage(executionContext, loadOrganisationOperationNameConstant, organisationPath, &organisation); fetchError != nil {
		return Organisation{}, fetchError
	}
	return organisation, nil
}

// ListMembers collects every member entry reachable from the provided listing URL.
func (client *Client) ListMembers(executionContext context.Context, membersURL string) ([]Member, error) {
	return FetchAll[Member](executionContext, client, listMembersOperationNameConstant, membersURL)
}

// ListRepositories collects every repository entry reachable from the provided listing URL.
func (client *Client) ListRepositories(executionContext context.Context, repositoriesURL string) ([]Repository, error) {
	return FetchAll[Repository](executionContext, client, listRepositoriesOperationNameConstant, repositoriesURL)
}

// FindFirstEvent walks an activity feed and returns the first event the
// predicate accepts, stopping the page walk at the match.
func (client *Client) FindFirstEvent(executionContext context.Context, eventsURL string, predicate func(Event) bool) (Event, bool, error) {
	return FindFirst[Event](executionContext, client, findFirstEventOperationNameConstant, eventsURL, predicate)
}

// GetBranch fetches a single branch by URL. A not-found response reports
// absence instead of an error so callers can classify missing branches.
func (client *Client) GetBranch(executionContext context.Context, branchURL string) (Branch, bool, error) {
	var branch Branch
	if _, fetchError := client.FetchPage(executionContext, getBranchOperationNameConstant, branchURL, &branch); fetchError != nil {
		var httpError *ghapi.HTTPError
		if errors.As(fetchError, &httpError) && httpError.StatusCode == http.StatusNotFound {
			return Branch{}, false, nil
		}
		return Branch{}, false, fetchError
	}
	return branch, true, nil
}

// ListInstallations collects the installed GitHub Apps for an organisation.
// The endpoint wraps its pages in an object body, so the cursor walk decodes
// a wrapper per page instead of a bare array.
func (client *Client) ListInstallations(executionContext context.Context, installationsURL string) ([]AppInstallation, error) {
	var collectedInstallations []AppInstallation

	cursor := ListCursor{nextURL: installationsURL}
	for !cursor.Exhausted() {
		var page installationListPage
		nextCursor, pageError := client.FetchPage(executionContext, listInstallationsOperationNameConstant, cursor.nextURL, &page)
		if pageError != nil {
			return nil, pageError
		}
		collectedInstallations = append(collectedInstallations, page.Installations...)
		cursor = nextCursor
	}

	return collectedInstallations, nil
}

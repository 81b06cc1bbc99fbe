package githubapi

import (
	"context"
	"regexp"
	"strings"
)

const (
	linkHeaderNameConstant   = "Link"
	nextRelationNameConstant = "next"
)

// linkRelationPattern matches one RFC 5988 web link: a bracketed target
// followed by a rel parameter somewhere before the next comma.
var linkRelationPattern = regexp.MustCompile(`<([^>]+)>[^,]*?rel="([^"]+)"`)

// ListCursor points at the next page of a paginated collection. The zero
// value signals an exhausted sequence.
type ListCursor struct {
	nextURL string
}

// Exhausted reports whether no further page is available.
func (cursor ListCursor) Exhausted() bool {
	return len(cursor.nextURL) == 0
}

// nextCursorFromLinkHeader derives the follow-up cursor from a response's
// Link header. A missing or unparseable header yields an exhausted cursor;
// pagination metadata is a best-effort optimization, a missing link simply
// means the last page was served.
func nextCursorFromLinkHeader(linkHeaderValue string) ListCursor {
	trimmedHeader := strings.TrimSpace(linkHeaderValue)
	if len(trimmedHeader) == 0 {
		return ListCursor{}
	}

	for _, relationMatch := range linkRelationPattern.FindAllStringSubmatch(trimmedHeader, -1) {
		if strings.EqualFold(relationMatch[2], nextRelationNameConstant) {
			return ListCursor{nextURL: relationMatch[1]}
		}
	}

	return ListCursor{}
}

// FetchAll walks every page starting at startURL and concatenates the items
// in server-returned order. Any transport or decoding failure aborts the
// walk; partially fetched pages are discarded.
func FetchAll[Item any](executionContext context.Context, pageSource PageSource, operation OperationName, startURL string) ([]Item, error) {
	var collectedItems []Item

	cursor := ListCursor{nextURL: startURL}
	for !cursor.Exhausted() {
		var pageItems []Item
		nextCursor, pageError := pageSource.FetchPage(executionContext, operation, cursor.nextURL, &pageItems)
		if pageError != nil {
			return nil, pageError
		}
		collectedItems = append(collectedItems, pageItems...)
		cursor = nextCursor
	}

	return collectedItems, nil
}

// FindFirst walks pages starting at startURL and returns the first item the
// predicate accepts, without fetching pages beyond the match. Exhausting the
// sequence without a match is not an error; the boolean result reports it.
func FindFirst[Item any](executionContext context.Context, pageSource PageSource, operation OperationName, startURL string, predicate func(Item) bool) (Item, bool, error) {
	var zeroItem Item

	cursor := ListCursor{nextURL: startURL}
	for !cursor.Exhausted() {
		var pageItems []Item
		nextCursor, pageError := pageSource.FetchPage(executionContext, operation, cursor.nextURL, &pageItems)
		if pageError != nil {
			return zeroItem, false, pageError
		}
		for _, candidateItem := range pageItems {
			if predicate(candidateItem) {
				return candidateItem, true, nil
			}
		}
		cursor = nextCursor
	}

	return zeroItem, false, nil
}

// Package githubapi wraps the GitHub REST API surface used by the auditor.
//
// It exposes a Client backed by the go-gh REST client, typed response
// schemas for the endpoints the audit checks consume, hypermedia URL
// template expansion, and cursor-based pagination helpers that either
// collect every page or stop at the first item matching a predicate.
package githubapi

// Package jira fetches issues from the Jira Cloud REST API (v3).
//
// The [Client] authenticates with basic auth (account email and API token),
// drains search pagination sequentially and converts each result into an
// [issue.Issue] with [ToIssue].
//
//	c := jira.NewClient(creds, jira.Options{FlaggedField: "customfield_10200"})
//	issues, err := c.FetchIssues(ctx, `project = ACME ORDER BY priority DESC`)
//
// Any non-success HTTP status aborts the fetch with a coded error
// (UNAUTHORIZED, FORBIDDEN, NOT_FOUND, RATE_LIMITED or NETWORK_ERROR).
// Only failures without a response, such as refused connections and
// timeouts, are retried.
//
// # Flagged field
//
// Jira exposes the impediment flag as a site-specific custom field. The
// first search page is requested with expand=names, and the client logs
// which field id is named "Flagged" (or "Flaggad", "Impediment"). When none
// matches, it lists candidate fields from /rest/api/3/field; see
// [FlagCandidates].
package jira

package jira

import "encoding/json"

// SearchPage is one page of /rest/api/3/search.
type SearchPage struct {
	StartAt    int               `json:"startAt"`
	MaxResults int               `json:"maxResults"`
	Total      int               `json:"total"`
	Issues     []RawIssue        `json:"issues"`
	Names      map[string]string `json:"names,omitempty"`
}

// RawIssue is an issue as returned by the API. Fields stay undecoded because
// the flagged field id is only known at runtime.
type RawIssue struct {
	ID     string                     `json:"id,omitempty"`
	Key    string                     `json:"key"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// Field describes a system or custom field.
type Field struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

type named struct {
	Name string `json:"name"`
}

type linkRef struct {
	Key string `json:"key"`
}

type rawLink struct {
	Type         named    `json:"type"`
	InwardIssue  *linkRef `json:"inwardIssue,omitempty"`
	OutwardIssue *linkRef `json:"outwardIssue,omitempty"`
}

package jira

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/matzehuels/ticketgraph/pkg/errors"
	"github.com/matzehuels/ticketgraph/pkg/issue"
)

// ToIssue converts a raw search result. flaggedField is the custom field id
// holding the impediment flag; releaseName is matched exactly against the
// names of the issue's fix versions.
func ToIssue(raw RawIssue, flaggedField, releaseName string) (issue.Issue, error) {
	if raw.Key == "" {
		return issue.Issue{}, errors.New(errors.ErrCodeInvalidInput, "issue without key")
	}

	var (
		summary     string
		status      named
		issueType   named
		priority    *named
		fixVersions []named
		links       []rawLink
	)
	for _, f := range []struct {
		name string
		dst  any
	}{
		{"summary", &summary},
		{"status", &status},
		{"issuetype", &issueType},
		{"priority", &priority},
		{"fixVersions", &fixVersions},
		{"issuelinks", &links},
	} {
		if err := decodeField(raw.Fields, f.name, f.dst); err != nil {
			return issue.Issue{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: field %s", raw.Key, f.name)
		}
	}

	it := issue.Issue{
		Key:     raw.Key,
		Summary: summary,
		Status:  strings.TrimSpace(status.Name),
		Type:    issueType.Name,
		Flagged: IsFlagged(raw.Fields[flaggedField]),
	}
	if priority != nil {
		it.Priority = priority.Name
	}
	for _, v := range fixVersions {
		if releaseName != "" && v.Name == releaseName {
			it.InRelease = true
			break
		}
	}
	for _, l := range links {
		link := issue.Link{Type: l.Type.Name}
		if l.InwardIssue != nil {
			link.Inward = l.InwardIssue.Key
		}
		if l.OutwardIssue != nil {
			link.Outward = l.OutwardIssue.Key
		}
		it.Links = append(it.Links, link)
	}
	return it, nil
}

// ToIssues converts a batch, stopping at the first malformed issue.
func ToIssues(raws []RawIssue, flaggedField, releaseName string) ([]issue.Issue, error) {
	out := make([]issue.Issue, 0, len(raws))
	for _, r := range raws {
		it, err := ToIssue(r, flaggedField, releaseName)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

// IsFlagged interprets the flagged field value. Absent, null, false, "",
// 0, [] and {} mean not flagged; anything else (typically a non-empty list
// of options) means flagged.
func IsFlagged(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

func decodeField(fields map[string]json.RawMessage, name string, dst any) error {
	raw, ok := fields[name]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

package jira

import (
	"slices"
	"strings"
)

// flaggedNames are the display names, lower-cased, of the impediment field.
var flaggedNames = []string{"flagged", "flaggad", "impediment"}

// candidateFragments match field names that might hold the impediment flag.
var candidateFragments = []string{"flag", "flagg", "imped", "hinder"}

// FlaggedFieldFromNames finds the field id whose expanded display name is
// one of the impediment names. The lowest id wins when several match.
func FlaggedFieldFromNames(names map[string]string) (string, bool) {
	var hits []string
	for id, name := range names {
		if slices.Contains(flaggedNames, strings.ToLower(strings.TrimSpace(name))) {
			hits = append(hits, id)
		}
	}
	if len(hits) == 0 {
		return "", false
	}
	slices.Sort(hits)
	return hits[0], true
}

// FlagCandidates returns the fields whose names suggest an impediment flag,
// in the order given.
func FlagCandidates(fields []Field) []Field {
	var out []Field
	for _, f := range fields {
		name := strings.ToLower(f.Name)
		for _, frag := range candidateFragments {
			if strings.Contains(name, frag) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

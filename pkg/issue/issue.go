package issue

// Issue is a single ticket with the fields used for layout and rendering.
type Issue struct {
	Key       string // Unique project-prefixed code, e.g. "PROJ-42"
	Summary   string
	Status    string
	Type      string
	Priority  string // Empty when the tracker reports no priority
	Flagged   bool   // Impediment marker, resolved at ingestion
	InRelease bool   // Member of the configured target release
	Links     []Link
}

// Link is a raw link record as reported on one endpoint issue.
// At most one of Inward and Outward is usually set.
type Link struct {
	Type    string // Relationship name, e.g. "Blocks"
	Inward  string // Key of the inward counterpart, if any
	Outward string // Key of the outward counterpart, if any
}

// Edge is a directed, typed relationship between two issues.
type Edge struct {
	From string
	To   string
	Type string
}

// Keys returns the set of issue keys.
func Keys(issues []Issue) map[string]bool {
	keys := make(map[string]bool, len(issues))
	for _, it := range issues {
		keys[it.Key] = true
	}
	return keys
}

// CountFlagged returns how many issues carry the impediment marker.
func CountFlagged(issues []Issue) int {
	n := 0
	for _, it := range issues {
		if it.Flagged {
			n++
		}
	}
	return n
}

// Package roster parses the free-text participant list the user supplies
// before analysis. Each line optionally carries an affiliation tag; lines
// without a recognized tag stay in the raw text but are dropped from the
// derived name lists.
package roster

import "strings"

const (
	// ClientTag marks a participant as client-side.
	ClientTag = "(Client)"
	// InternalTag marks a participant as internal.
	InternalTag = "(iFoundries)"
)

// Roster keeps the raw participant text plus the derived name lists.
type Roster struct {
	Raw      string
	Clients  []string
	Internal []string
}

// Parse derives the client and internal name lists from raw by substring
// matching on the affiliation tags. Duplicate names are kept; untagged
// lines contribute to neither list.
func Parse(raw string) Roster {
	r := Roster{Raw: raw}
	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.Contains(line, ClientTag):
			name := strings.TrimSpace(strings.ReplaceAll(line, ClientTag, ""))
			if name != "" {
				r.Clients = append(r.Clients, name)
			}
		case strings.Contains(line, InternalTag):
			name := strings.TrimSpace(strings.ReplaceAll(line, InternalTag, ""))
			if name != "" {
				r.Internal = append(r.Internal, name)
			}
		}
	}
	return r
}

// ClientReps returns the client-side names one per line, the form the
// minutes header table expects.
func (r Roster) ClientReps() string {
	return strings.Join(r.Clients, "\n")
}

// InternalReps returns the internal names comma-separated.
func (r Roster) InternalReps() string {
	return strings.Join(r.Internal, ", ")
}

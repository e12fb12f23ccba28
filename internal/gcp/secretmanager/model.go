package secretmanager

import (
	"fmt"
	"strings"

	"github.com/jorgeparavicini/lazycloud/internal/search"
)

// Secret is one Secret Manager secret, flattened for display. Name is
// the short resource id, not the full "projects/.../secrets/..." path.
// Timestamps are pre-rendered strings; ExpireTime is empty when the
// secret never expires.
type Secret struct {
	Name        string
	Replication Replication
	CreatedAt   string
	ExpireTime  string
	Labels      map[string]string
}

// Matches implements the list filter. A query containing a colon is
// treated as a label filter: the part before the colon fuzzy-matches
// label keys and the part after fuzzy-matches the value of any matched
// key. An empty value part matches any value. Queries without a colon
// fuzzy-match the name or any label key or value.
func (s Secret) Matches(query string) bool {
	if keyPart, valuePart, ok := strings.Cut(query, ":"); ok {
		for key, value := range s.Labels {
			if !search.Matches(key, keyPart) {
				continue
			}
			if valuePart == "" || search.Matches(value, valuePart) {
				return true
			}
		}
		return false
	}

	if search.Matches(s.Name, query) {
		return true
	}
	for key, value := range s.Labels {
		if search.Matches(key, query) || search.Matches(value, query) {
			return true
		}
	}
	return false
}

// Replication describes where a secret's payloads are stored. Automatic
// secrets carry no locations; user-managed secrets replicate to an
// explicit list of regions.
type Replication struct {
	Automatic bool
	Locations []string
}

// ShortDisplay renders the replication for a table cell: "Automatic",
// the single region, or "N regions".
func (r Replication) ShortDisplay() string {
	switch {
	case r.Automatic:
		return "Automatic"
	case len(r.Locations) == 1:
		return r.Locations[0]
	default:
		return fmt.Sprintf("%d regions", len(r.Locations))
	}
}

// Version is one secret version. State is a display string ("Enabled",
// "Disabled", "Destroyed"); mutations gate on it.
type Version struct {
	VersionID string
	State     string
	CreatedAt string
}

// Matches reports whether the version survives a filter query.
func (v Version) Matches(query string) bool {
	return search.Matches(v.VersionID, query) || search.Matches(v.State, query)
}

// Payload is the decoded data of one secret version. Binary payloads
// have invalid UTF-8 replaced so Data is always printable.
type Payload struct {
	Data     string
	IsBinary bool
}

// IamBinding grants a role to a set of members.
type IamBinding struct {
	Role    string
	Members []string
}

// Matches reports whether the binding survives a filter query.
func (b IamBinding) Matches(query string) bool {
	if search.Matches(b.Role, query) {
		return true
	}
	return search.MatchesAny(b.Members, query)
}

// IamPolicy is the access policy attached to a secret.
type IamPolicy struct {
	Bindings []IamBinding
}

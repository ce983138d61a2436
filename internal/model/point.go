package model

// Point represents a claim node in the argument graph
type Point struct {
	ID             string `json:"id"`                       // Opaque server-assigned identity, stable across refetches
	URL            string `json:"url"`                      // Human-routable identifier, business key for mutations
	Title          string `json:"title"`                    // The claim text itself
	AuthorName     string `json:"authorName,omitempty"`     // Display name of the author
	AuthorURL      string `json:"authorURL,omitempty"`      // Author profile identifier
	ImageURL       string `json:"imageURL,omitempty"`       // Thumbnail image
	FullPointImage string `json:"fullPointImage,omitempty"` // Full-size image
	RootURLsafe    string `json:"rootURLsafe,omitempty"`    // Identity of this point when used as a relevance-vote root

	// Aggregates are server-computed; the client merges but never recomputes them
	UpVotes        int `json:"upVotes"`
	DownVotes      int `json:"downVotes"`
	PointValue     int `json:"pointValue"` // Signed net score
	NumSupporting  int `json:"numSupporting"`
	NumCounter     int `json:"numCounter"`
	NumComments    int `json:"numComments"`
	SupportedCount int `json:"supportedCount"`

	Sources []Source `json:"sources,omitempty"` // Provenance, insertion order preserved

	// CurrentUserVote is -1, 0 or 1; 0 when unauthenticated or unvoted
	CurrentUserVote int `json:"currentUserVote"`

	SupportingPoints EvidenceCollection `json:"supportingPoints"`
	CounterPoints    EvidenceCollection `json:"counterPoints"`
}

// Source is a cited provenance entry on a point
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// EvidenceCollection holds one polarity of a point's evidence edges
type EvidenceCollection struct {
	Edges []Edge `json:"edges"`
}

// Edge joins a point to one piece of evidence. Node may be nil when the
// edge is known but the child point has not been resolved.
type Edge struct {
	Node *Point `json:"node"`
	Link *Link  `json:"link"`
}

// HasEvidence reports whether the point has any attached evidence.
// It is derived from the server counts, not from the fetched edges, so it
// is meaningful even before the subtree is expanded.
func HasEvidence(p *Point) bool {
	if p == nil {
		return false
	}
	return p.NumSupporting > 0 || p.NumCounter > 0
}

// User identifies the authenticated viewer. A nil user means unauthenticated.
type User struct {
	URL string `json:"url"`
}

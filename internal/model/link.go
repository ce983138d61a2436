package model

// LinkType is the wire value of an evidence link's polarity
type LinkType string

const (
	LinkTypeSupporting LinkType = "supporting" // Child supports the parent claim
	LinkTypeCounter    LinkType = "counter"    // Child argues against the parent claim
)

// Link is the typed, graduated-relevance edge joining a parent point to a
// child point as evidence. Relevance is only meaningful on non-root edges;
// a root point has no incoming link.
type Link struct {
	ID            string   `json:"id"`
	Type          LinkType `json:"type"`
	Relevance     int      `json:"relevance"` // Graduated percentage 0-100
	ParentURLsafe string   `json:"parentURLsafe"`
	ChildURLsafe  string   `json:"childURLsafe"`
}

// SameEdge reports whether the link identifies the same parent/child edge.
// Edges are matched by endpoint identity, not by point id, because the same
// child can hang under several parents with distinct links.
func (l *Link) SameEdge(parentURLsafe, childURLsafe string) bool {
	if l == nil {
		return false
	}
	return l.ParentURLsafe == parentURLsafe && l.ChildURLsafe == childURLsafe
}

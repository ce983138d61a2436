package model

// EvidenceType classifies a point's role relative to its parent. It is
// derived from the incoming link, never stored on the point itself: the same
// point can render under different link types in different contexts.
type EvidenceType int

const (
	EvidenceRoot         EvidenceType = iota // No incoming link
	EvidenceSupport                          // Incoming link type "supporting"
	EvidenceCounter                          // Incoming link type "counter"
	EvidenceUnclassified                     // Unknown link type; renders as an empty bucket
)

func (t EvidenceType) String() string {
	switch t {
	case EvidenceRoot:
		return "root"
	case EvidenceSupport:
		return "support"
	case EvidenceCounter:
		return "counter"
	default:
		return ""
	}
}

// LinkType returns the wire value to send when mutating an edge of this
// type. Root has no link type.
func (t EvidenceType) LinkType() (LinkType, bool) {
	switch t {
	case EvidenceSupport:
		return LinkTypeSupporting, true
	case EvidenceCounter:
		return LinkTypeCounter, true
	default:
		return "", false
	}
}

// AddLabel returns the add-evidence affordance text for this slot
func (t EvidenceType) AddLabel() string {
	switch t {
	case EvidenceRoot:
		return "Add Point"
	case EvidenceSupport:
		return "Add Support"
	case EvidenceCounter:
		return "Add Counterpoint"
	default:
		return "Add Evidence"
	}
}

// Classify derives the evidence type from an incoming link. A nil link means
// the point is a root. Unrecognized link types classify as unclassified
// rather than failing.
func Classify(link *Link) EvidenceType {
	if link == nil {
		return EvidenceRoot
	}
	switch link.Type {
	case LinkTypeSupporting:
		return EvidenceSupport
	case LinkTypeCounter:
		return EvidenceCounter
	default:
		return EvidenceUnclassified
	}
}

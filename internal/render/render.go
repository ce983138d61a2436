package render

import (
	"fmt"

	"github.com/claimtree/claimtree/internal/model"
	"github.com/claimtree/claimtree/internal/tree"
)

// Node is the renderable form of one point occurrence. It is a pure
// function of (point subtree, expansion state, parent context) and carries
// no state of its own.
type Node struct {
	Point        *model.Point
	EvidenceType model.EvidenceType
	ClassName    string // Style bucket: "root", "support", "counter" or empty

	// Parent context; Relevance is meaningful only when HasParent
	HasParent bool
	Relevance int

	Score          string // Signed net score, "+" prefixed when positive
	AgreeActive    bool   // Exactly one of these matches currentUserVote
	DisagreeActive bool
	CanEdit        bool

	Expanded   bool
	Affordance string // "See Evidence", "Hide Evidence" or "No Evidence"

	// Placeholder marks an edge whose node has not been resolved; it is
	// keyed by Index instead of point identity
	Placeholder bool
	Index       int

	Supporting []*Node
	Counter    []*Node

	AddSupportLabel string
	AddCounterLabel string
}

const (
	affordanceSee  = "See Evidence"
	affordanceHide = "Hide Evidence"
	affordanceNone = "No Evidence"
)

// Builder derives render trees from fetched points and shared expansion
// state.
type Builder struct {
	store  *tree.ExpansionStore
	viewer *model.User // nil when anonymous
}

// NewBuilder creates a builder over a shared expansion store
func NewBuilder(store *tree.ExpansionStore, viewer *model.User) *Builder {
	return &Builder{store: store, viewer: viewer}
}

// frame is one pending unit of render work
type frame struct {
	point  *model.Point
	link   *model.Link
	parent *Node
	slot   model.EvidenceType
	index  int
}

// Build derives the render tree for a root point. Traversal uses an
// explicit work list, so pathological depth cannot overflow the call
// stack. The shared expansion store is consulted per node and passed down
// unchanged; each expanded node recurses into every supporting and counter
// edge with (node, edge link) as the child's parent context.
func (b *Builder) Build(root *model.Point) *Node {
	if root == nil {
		return nil
	}

	rootNode := &Node{}
	work := []frame{{point: root, parent: nil}}

	for len(work) > 0 {
		f := work[len(work)-1]
		work = work[:len(work)-1]

		node := &Node{}
		if f.parent == nil {
			node = rootNode
		}
		b.fill(node, f)

		if f.parent != nil {
			switch f.slot {
			case model.EvidenceCounter:
				f.parent.Counter = append(f.parent.Counter, node)
			default:
				f.parent.Supporting = append(f.parent.Supporting, node)
			}
		}

		if node.Placeholder || !node.Expanded {
			continue
		}

		// Children are pushed in reverse so siblings build in edge order
		push := func(coll model.EvidenceCollection, slot model.EvidenceType) {
			for i := len(coll.Edges) - 1; i >= 0; i-- {
				edge := coll.Edges[i]
				work = append(work, frame{
					point:  edge.Node,
					link:   edge.Link,
					parent: node,
					slot:   slot,
					index:  i,
				})
			}
		}
		push(f.point.CounterPoints, model.EvidenceCounter)
		push(f.point.SupportingPoints, model.EvidenceSupport)
	}

	return rootNode
}

// fill populates one node from its frame
func (b *Builder) fill(n *Node, f frame) {
	if f.point == nil {
		// Edge present, node unresolved: render an indexed placeholder
		n.Placeholder = true
		n.Index = f.index
		return
	}

	p := f.point
	evidenceType := model.Classify(f.link)

	n.Point = p
	n.EvidenceType = evidenceType
	n.ClassName = evidenceType.String()
	n.Index = f.index
	n.Score = formatScore(p.PointValue)
	n.AgreeActive = p.CurrentUserVote == 1
	n.DisagreeActive = p.CurrentUserVote == -1
	n.CanEdit = b.viewer != nil && b.viewer.URL == p.AuthorURL
	n.AddSupportLabel = model.EvidenceSupport.AddLabel()
	n.AddCounterLabel = model.EvidenceCounter.AddLabel()

	if f.link != nil {
		n.HasParent = true
		n.Relevance = f.link.Relevance
	}

	if !model.HasEvidence(p) {
		n.Affordance = affordanceNone
		n.Expanded = false
		return
	}

	n.Expanded = b.store.IsExpanded(p.ID)
	if n.Expanded {
		n.Affordance = affordanceHide
	} else {
		n.Affordance = affordanceSee
	}
}

// formatScore renders the signed net score the way the card shows it
func formatScore(v int) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}

package tree

import (
	"github.com/claimtree/claimtree/internal/model"
)

// Controller owns the see/hide semantics over an ExpansionStore. The store
// itself is a dumb map; the controller enforces that a point without
// evidence has an inert affordance and can never be marked expanded.
type Controller struct {
	store *ExpansionStore
}

// NewController wraps a shared expansion store
func NewController(store *ExpansionStore) *Controller {
	return &Controller{store: store}
}

// Store exposes the shared store so recursive rendering can pass it down
// unchanged.
func (c *Controller) Store() *ExpansionStore {
	return c.store
}

// See expands the point's evidence subtree. Reports whether the state
// changed; seeing an already-seen point is a no-op.
func (c *Controller) See(p *model.Point) bool {
	if p == nil || !model.HasEvidence(p) {
		return false
	}
	if c.store.IsExpanded(p.ID) {
		return false
	}
	c.store.SetExpanded(p.ID, true)
	return true
}

// Hide collapses the point's evidence subtree. Descendant flags are left
// alone so a later See restores the previous depth.
func (c *Controller) Hide(p *model.Point) bool {
	if p == nil {
		return false
	}
	if !c.store.IsExpanded(p.ID) {
		return false
	}
	c.store.SetExpanded(p.ID, false)
	return true
}

// Toggle flips between See and Hide
func (c *Controller) Toggle(p *model.Point) {
	if p == nil {
		return
	}
	if c.store.IsExpanded(p.ID) {
		c.Hide(p)
	} else {
		c.See(p)
	}
}

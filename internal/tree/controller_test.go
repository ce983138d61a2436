package tree

import (
	"testing"

	"github.com/claimtree/claimtree/internal/model"
)

func TestController_SeeHide(t *testing.T) {
	ctrl := NewController(NewExpansionStore())
	p := &model.Point{ID: "p1", NumSupporting: 2}

	if !ctrl.See(p) {
		t.Errorf("first see should change state")
	}
	if !ctrl.Store().IsExpanded("p1") {
		t.Errorf("point should be expanded after see")
	}

	if ctrl.See(p) {
		t.Errorf("seeing an already-seen point should be a no-op")
	}

	if !ctrl.Hide(p) {
		t.Errorf("hide should change state")
	}
	if ctrl.Store().IsExpanded("p1") {
		t.Errorf("point should be collapsed after hide")
	}

	if ctrl.Hide(p) {
		t.Errorf("hiding a collapsed point should be a no-op")
	}
}

func TestController_NoEvidenceIsInert(t *testing.T) {
	ctrl := NewController(NewExpansionStore())
	leaf := &model.Point{ID: "leaf"}

	if ctrl.See(leaf) {
		t.Errorf("a point without evidence must not expand")
	}
	if ctrl.Store().IsExpanded("leaf") {
		t.Errorf("store must stay clean for evidence-free points")
	}

	ctrl.Toggle(leaf)
	if ctrl.Store().IsExpanded("leaf") {
		t.Errorf("toggle must not expand an evidence-free point")
	}
}

func TestController_NilPoint(t *testing.T) {
	ctrl := NewController(NewExpansionStore())

	if ctrl.See(nil) {
		t.Errorf("see(nil) should be a no-op")
	}
	if ctrl.Hide(nil) {
		t.Errorf("hide(nil) should be a no-op")
	}
	ctrl.Toggle(nil)
}

func TestController_HidePreservesDescendantFlags(t *testing.T) {
	store := NewExpansionStore()
	ctrl := NewController(store)

	parent := &model.Point{ID: "parent", NumSupporting: 1}
	child := &model.Point{ID: "child", NumCounter: 1}

	ctrl.See(parent)
	ctrl.See(child)

	ctrl.Hide(parent)

	if store.IsExpanded("parent") {
		t.Errorf("parent should be collapsed")
	}
	if !store.IsExpanded("child") {
		t.Errorf("collapsing a parent must leave descendant flags intact")
	}

	// Re-expanding the parent restores the prior depth for free
	ctrl.See(parent)
	if !store.IsExpanded("child") {
		t.Errorf("child flag should survive the see/hide/see cycle")
	}
}

func TestController_Toggle(t *testing.T) {
	ctrl := NewController(NewExpansionStore())
	p := &model.Point{ID: "p1", NumCounter: 1}

	ctrl.Toggle(p)
	if !ctrl.Store().IsExpanded("p1") {
		t.Errorf("first toggle should expand")
	}

	ctrl.Toggle(p)
	if ctrl.Store().IsExpanded("p1") {
		t.Errorf("second toggle should collapse")
	}
}

func TestExpansionStore_SharedByReference(t *testing.T) {
	store := NewExpansionStore()

	// Two controllers over the same store see each other's changes, the
	// way sibling renderers share one store.
	a := NewController(store)
	b := NewController(store)

	p := &model.Point{ID: "p1", NumSupporting: 1}
	a.See(p)

	if !b.Store().IsExpanded("p1") {
		t.Errorf("expansion state must be shared, not copied")
	}
}

func TestExpansionStore_Len(t *testing.T) {
	store := NewExpansionStore()
	if store.Len() != 0 {
		t.Errorf("fresh store should be empty")
	}

	store.SetExpanded("a", true)
	store.SetExpanded("b", false)

	if store.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", store.Len())
	}
}

package dispatch

import (
	"context"
	"fmt"

	"github.com/claimtree/claimtree/internal/api"
	"github.com/claimtree/claimtree/internal/model"
	"github.com/claimtree/claimtree/internal/repository"
)

// FlowState is the submission flow's state
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowComposing
)

func (s FlowState) String() string {
	if s == FlowComposing {
		return "composing"
	}
	return "idle"
}

// EvidenceCreator is the slice of the API client the flow uses
type EvidenceCreator interface {
	AddEvidence(ctx context.Context, in api.AddEvidenceInput) (*model.Point, error)
}

// Draft is the user's typed input. It survives a failed submit.
type Draft struct {
	Title       string
	SourceURLs  []string
	SourceNames []string
}

// SubmissionFlow is the two-state add-evidence form controller:
// idle -> (begin, authenticated) -> composing -> (submit ok) -> idle.
// An unauthenticated begin prompts for auth and stays idle. A failed submit
// stays composing and keeps the draft.
type SubmissionFlow struct {
	creator EvidenceCreator
	repo    *repository.Repository
	auth    *Authenticator

	state  FlowState
	parent *model.Point
	slot   model.EvidenceType
	draft  Draft
}

// NewSubmissionFlow wires a flow to its collaborators
func NewSubmissionFlow(creator EvidenceCreator, repo *repository.Repository, auth *Authenticator) *SubmissionFlow {
	return &SubmissionFlow{creator: creator, repo: repo, auth: auth}
}

// State returns the current flow state
func (f *SubmissionFlow) State() FlowState {
	return f.state
}

// Draft returns the current typed input
func (f *SubmissionFlow) Draft() Draft {
	return f.draft
}

// SetDraft replaces the typed input while composing
func (f *SubmissionFlow) SetDraft(d Draft) {
	f.draft = d
}

// Begin starts composing evidence for the given parent slot. Root is not a
// legal slot here; root points are created by a separate unscoped flow.
// Reports whether the auth prompt fired instead of composing.
func (f *SubmissionFlow) Begin(ctx context.Context, parent *model.Point, slot model.EvidenceType) (bool, error) {
	if parent == nil {
		return false, fmt.Errorf("add evidence: no parent point")
	}
	if _, ok := slot.LinkType(); !ok {
		return false, fmt.Errorf("add evidence: %q is not a valid slot", slot)
	}

	_, authed, err := f.auth.Require(ctx)
	if err != nil {
		return false, fmt.Errorf("add evidence: %w", err)
	}
	if !authed {
		return true, nil
	}

	f.state = FlowComposing
	f.parent = parent
	f.slot = slot
	return false, nil
}

// Submit sends the draft as a new point under the parent. On success the
// new point is spliced into the parent's evidence collection, the draft is
// cleared and the flow returns to idle. On failure the flow stays composing
// with the draft intact.
func (f *SubmissionFlow) Submit(ctx context.Context) (*model.Point, error) {
	if f.state != FlowComposing {
		return nil, fmt.Errorf("add evidence: not composing")
	}
	if f.draft.Title == "" {
		return nil, fmt.Errorf("add evidence: title is required")
	}

	linkType, _ := f.slot.LinkType()

	point, err := f.creator.AddEvidence(ctx, api.AddEvidenceInput{
		Title:       f.draft.Title,
		LinkType:    linkType,
		ParentURL:   f.parent.URL,
		SourceURLs:  f.draft.SourceURLs,
		SourceNames: f.draft.SourceNames,
	})
	if err != nil {
		return nil, err
	}

	f.repo.SpliceEvidence(f.parent.URL, linkType, point)

	f.state = FlowIdle
	f.parent = nil
	f.draft = Draft{}
	return point, nil
}

// Cancel abandons the draft and returns to idle
func (f *SubmissionFlow) Cancel() {
	f.state = FlowIdle
	f.parent = nil
	f.draft = Draft{}
}

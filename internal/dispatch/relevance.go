package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/claimtree/claimtree/internal/api"
	"github.com/claimtree/claimtree/internal/model"
	"github.com/claimtree/claimtree/internal/repository"
)

// RelevanceBuckets are the only legal graduated relevance votes
var RelevanceBuckets = []int{0, 33, 66, 100}

// ErrNoParentContext rejects a relevance vote outside a nested evidence
// context. Relevance is a property of an edge; a root point has none.
var ErrNoParentContext = errors.New("relevance vote requires a parent point")

// RelevanceSender is the slice of the API client the dispatcher uses
type RelevanceSender interface {
	RelevanceVote(ctx context.Context, linkType model.LinkType, rootURLsafe, parentRootURLsafe, url string, vote int) (*api.RelevanceResult, error)
}

// RelevanceOutcome reports what a dispatch did
type RelevanceOutcome struct {
	Prompted bool
	Updated  int // Edges updated by the merge
	Result   *api.RelevanceResult
}

// RelevanceDispatcher sends graduated relevance votes on parent/child edges
// and reconciles the returned link by edge identity. Same pessimistic,
// no-retry semantics as the vote dispatcher.
type RelevanceDispatcher struct {
	sender RelevanceSender
	repo   *repository.Repository
	auth   *Authenticator
}

// NewRelevanceDispatcher wires a dispatcher to its collaborators
func NewRelevanceDispatcher(sender RelevanceSender, repo *repository.Repository, auth *Authenticator) *RelevanceDispatcher {
	return &RelevanceDispatcher{sender: sender, repo: repo, auth: auth}
}

// Dispatch casts a relevance vote for point as evidence under parent. The
// link type is derived from the edge's incoming link, never guessed.
func (d *RelevanceDispatcher) Dispatch(ctx context.Context, point *model.Point, parent *model.Point, link *model.Link, vote int) (RelevanceOutcome, error) {
	if point == nil {
		return RelevanceOutcome{}, fmt.Errorf("relevance vote: no point")
	}
	if parent == nil {
		return RelevanceOutcome{}, ErrNoParentContext
	}
	if !validBucket(vote) {
		return RelevanceOutcome{}, fmt.Errorf("relevance vote: %d is not one of 0/33/66/100", vote)
	}

	linkType, ok := model.Classify(link).LinkType()
	if !ok {
		return RelevanceOutcome{}, ErrNoParentContext
	}

	_, authed, err := d.auth.Require(ctx)
	if err != nil {
		return RelevanceOutcome{}, fmt.Errorf("relevance vote: %w", err)
	}
	if !authed {
		return RelevanceOutcome{Prompted: true}, nil
	}

	res, err := d.sender.RelevanceVote(ctx, linkType, point.RootURLsafe, parent.RootURLsafe, point.URL, vote)
	if err != nil {
		return RelevanceOutcome{}, err
	}

	updated := d.repo.ApplyRelevanceResult(res)
	return RelevanceOutcome{Updated: updated, Result: res}, nil
}

func validBucket(vote int) bool {
	for _, b := range RelevanceBuckets {
		if vote == b {
			return true
		}
	}
	return false
}

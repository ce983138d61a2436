package dispatch

import (
	"context"
	"fmt"

	"github.com/claimtree/claimtree/internal/api"
	"github.com/claimtree/claimtree/internal/model"
	"github.com/claimtree/claimtree/internal/repository"
)

// Agree and Disagree are the two legal binary votes
const (
	Agree    = 1
	Disagree = -1
)

// VoteSender is the slice of the API client the vote dispatcher uses
type VoteSender interface {
	Vote(ctx context.Context, url string, vote int, parentURL string) (*api.VoteResult, error)
}

// VoteOutcome reports what a dispatch did
type VoteOutcome struct {
	Prompted bool            // Auth prompt fired; no network call was made
	Updated  int             // Live occurrences updated by the merge
	Result   *api.VoteResult // Raw server result, nil when Prompted
}

// VoteDispatcher sends binary agree/disagree votes and reconciles the
// returned tallies into the repository. It is pessimistic: displayed state
// changes only after the server confirms. Failures are not retried and
// leave prior state untouched. Repeat votes are not locally suppressed; the
// server decides toggle semantics.
type VoteDispatcher struct {
	sender VoteSender
	repo   *repository.Repository
	auth   *Authenticator
}

// NewVoteDispatcher wires a dispatcher to its collaborators
func NewVoteDispatcher(sender VoteSender, repo *repository.Repository, auth *Authenticator) *VoteDispatcher {
	return &VoteDispatcher{sender: sender, repo: repo, auth: auth}
}

// Dispatch casts a vote on point. parent is non-nil only when voting in a
// nested evidence context; it scopes the vote for weighted relevance and
// makes the server return the parent's updated score.
func (d *VoteDispatcher) Dispatch(ctx context.Context, point *model.Point, vote int, parent *model.Point) (VoteOutcome, error) {
	if point == nil {
		return VoteOutcome{}, fmt.Errorf("vote: no point")
	}
	if vote != Agree && vote != Disagree {
		return VoteOutcome{}, fmt.Errorf("vote: invalid value %d", vote)
	}

	_, ok, err := d.auth.Require(ctx)
	if err != nil {
		return VoteOutcome{}, fmt.Errorf("vote: %w", err)
	}
	if !ok {
		return VoteOutcome{Prompted: true}, nil
	}

	parentURL := ""
	if parent != nil {
		parentURL = parent.URL
	}

	res, err := d.sender.Vote(ctx, point.URL, vote, parentURL)
	if err != nil {
		// Pessimistic UI: prior vote state stays displayed
		return VoteOutcome{}, err
	}

	updated := d.repo.ApplyVoteResult(res)
	return VoteOutcome{Updated: updated, Result: res}, nil
}

package repository

import (
	"github.com/claimtree/claimtree/internal/api"
	"github.com/claimtree/claimtree/internal/model"
)

// ApplyVoteResult merges the tallies returned by a vote mutation into every
// live occurrence of the voted point, and of its parent when the server
// returned one. Occurrences are matched by point id, so a point rendered
// under several parents updates everywhere at once. Returns the number of
// point occurrences updated.
//
// The merge is all-or-nothing by construction: the result is a fully
// decoded server response, never a partial one.
func (r *Repository) ApplyVoteResult(res *api.VoteResult) int {
	if res == nil {
		return 0
	}

	updated := 0
	staleURLs := make(map[string]struct{})

	r.forEach(func(occ Occurrence) {
		if occ.Point.ID == res.Point.ID {
			occ.Point.PointValue = res.Point.PointValue
			occ.Point.UpVotes = res.Point.UpVotes
			occ.Point.DownVotes = res.Point.DownVotes
			occ.Point.CurrentUserVote = res.Point.CurrentUserVote
			staleURLs[occ.Point.URL] = struct{}{}
			updated++
		}
		if res.ParentPoint != nil && occ.Point.ID == res.ParentPoint.ID {
			occ.Point.PointValue = res.ParentPoint.PointValue
			staleURLs[occ.Point.URL] = struct{}{}
		}
	})

	for url := range staleURLs {
		r.Invalidate(url)
	}
	return updated
}

// ApplyRelevanceResult merges the link returned by a relevance vote into
// every edge with the same parent/child identity. Matching is by edge
// endpoints, not point id: the same child under a different parent keeps
// its own relevance. Returns the number of edges updated.
func (r *Repository) ApplyRelevanceResult(res *api.RelevanceResult) int {
	if res == nil || res.Link == nil {
		return 0
	}

	updated := 0
	r.forEach(func(occ Occurrence) {
		if occ.Link != nil && occ.Link.SameEdge(res.Link.ParentURLsafe, res.Link.ChildURLsafe) {
			*occ.Link = *res.Link
			updated++
		}
	})
	return updated
}

// SpliceEvidence attaches a newly created point under every live occurrence
// of its parent so it appears without a full refetch. The cached entry for
// the parent is invalidated; the next fetch reconciles the synthesized link
// with the server's. Returns the number of parents spliced into.
func (r *Repository) SpliceEvidence(parentURL string, linkType model.LinkType, child *model.Point) int {
	if child == nil {
		return 0
	}

	updated := 0
	for _, occ := range r.FindByURL(parentURL) {
		parent := occ.Point
		edge := model.Edge{
			Node: child,
			// The server assigns the real link id; new evidence starts at
			// full relevance until a requery says otherwise.
			Link: &model.Link{
				Type:          linkType,
				Relevance:     100,
				ParentURLsafe: parent.RootURLsafe,
				ChildURLsafe:  child.RootURLsafe,
			},
		}

		switch linkType {
		case model.LinkTypeCounter:
			parent.CounterPoints.Edges = append(parent.CounterPoints.Edges, edge)
			parent.NumCounter++
		default:
			parent.SupportingPoints.Edges = append(parent.SupportingPoints.Edges, edge)
			parent.NumSupporting++
		}
		updated++
	}

	r.Invalidate(parentURL)
	return updated
}

// ApplyEditResult merges an updated title into every occurrence of the
// edited point.
func (r *Repository) ApplyEditResult(res *api.EditResult) int {
	if res == nil {
		return 0
	}

	updated := 0
	r.forEach(func(occ Occurrence) {
		if occ.Point.ID == res.ID {
			occ.Point.Title = res.Title
			occ.Point.URL = res.URL
			updated++
		}
	})

	r.Invalidate(res.URL)
	return updated
}

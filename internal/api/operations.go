package api

import (
	"context"
	"fmt"

	"github.com/claimtree/claimtree/internal/model"
)

// pointFields is the field set fetched for every point occurrence
const pointFields = `
fragment pointFields on Point {
  id,
  url,
  title,
  authorName,
  authorURL,
  imageURL,
  fullPointImage,
  upVotes,
  downVotes,
  pointValue,
  numSupporting,
  numCounter,
  numComments,
  supportedCount,
  sources {url, name},
  rootURLsafe,
  currentUserVote
}
`

// evidenceFields adds one level of supporting/counter edges
const evidenceFields = pointFields + `
fragment evidenceFields on Point {
  supportingPoints { edges { node { ...pointFields }, link { id, type, relevance, parentURLsafe, childURLsafe }} },
  counterPoints { edges { node { ...pointFields }, link { id, type, relevance, parentURLsafe, childURLsafe }} }
}
`

const getPointQuery = evidenceFields + `
query Point($url: String) {
  point(url: $url) {
    ...pointFields,
    ...evidenceFields
  }
}`

const currentUserQuery = `
query CurrentUser {
  currentUser { url }
}`

const voteMutation = `
mutation Vote($url: String!, $vote: Int!, $parentURL: String) {
  vote(url: $url, vote: $vote, parentURL: $parentURL) {
    point {
      id
      pointValue
      upVotes
      downVotes
      currentUserVote
    }
    parentPoint {
      id
      pointValue
    }
  }
}`

const relevanceVoteMutation = `
mutation RelevanceVote($linkType: String!, $parentRootURLsafe: String!, $rootURLsafe: String!, $url: String!, $vote: Int!) {
  relevanceVote(linkType: $linkType, rootURLsafe: $rootURLsafe, parentRootURLsafe: $parentRootURLsafe, url: $url, vote: $vote) {
    point {
      id
    }
    link {
      id,
      type,
      relevance,
      parentURLsafe,
      childURLsafe
    }
  }
}`

const addEvidenceMutation = evidenceFields + `
mutation AddEvidence($title: String!, $linkType: String, $parentURL: String, $imageURL: String, $imageAuthor: String, $imageDescription: String, $sourceURLs: [String], $sourceNames: [String]) {
  addEvidence(pointData: {title: $title, content: $title, summaryText: $title, imageURL: $imageURL, imageAuthor: $imageAuthor, imageDescription: $imageDescription, sourceURLs: $sourceURLs, sourceNames: $sourceNames, linkType: $linkType, parentURL: $parentURL}) {
    point {
      ...pointFields,
      ...evidenceFields
    }
  }
}`

const editPointMutation = `
mutation EditPoint($url: String!, $title: String) {
  editPoint(pointData: {url: $url, title: $title}) {
    point {
      id,
      title,
      url
    }
  }
}`

// GetPoint fetches a point and one level of its evidence edges
func (c *Client) GetPoint(ctx context.Context, url string) (*model.Point, error) {
	var data struct {
		Point *model.Point `json:"point"`
	}
	if err := c.do(ctx, getPointQuery, map[string]any{"url": url}, &data); err != nil {
		return nil, fmt.Errorf("get point %q: %w", url, err)
	}
	if data.Point == nil {
		return nil, fmt.Errorf("get point %q: %w", url, ErrNotFound)
	}
	return data.Point, nil
}

// CurrentUser returns the authenticated viewer, or nil when the session is
// anonymous. An anonymous session is not an error.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var data struct {
		CurrentUser *model.User `json:"currentUser"`
	}
	if err := c.do(ctx, currentUserQuery, nil, &data); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return data.CurrentUser, nil
}

// VoteResult carries the updated tallies returned by a vote mutation
type VoteResult struct {
	Point struct {
		ID              string `json:"id"`
		PointValue      int    `json:"pointValue"`
		UpVotes         int    `json:"upVotes"`
		DownVotes       int    `json:"downVotes"`
		CurrentUserVote int    `json:"currentUserVote"`
	} `json:"point"`
	// ParentPoint is present only when the vote was cast in a nested
	// evidence context
	ParentPoint *struct {
		ID         string `json:"id"`
		PointValue int    `json:"pointValue"`
	} `json:"parentPoint"`
}

// Vote casts a binary agree/disagree vote. parentURL is empty for a root
// point. Re-submitting the vote the user already holds is legal; the server
// decides the outcome.
func (c *Client) Vote(ctx context.Context, url string, vote int, parentURL string) (*VoteResult, error) {
	vars := map[string]any{"url": url, "vote": vote}
	if parentURL != "" {
		vars["parentURL"] = parentURL
	}

	var data struct {
		Vote *VoteResult `json:"vote"`
	}
	if err := c.do(ctx, voteMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("vote on %q: %w", url, err)
	}
	if data.Vote == nil {
		return nil, fmt.Errorf("vote on %q: empty result", url)
	}
	return data.Vote, nil
}

// RelevanceResult carries the updated link returned by a relevance vote
type RelevanceResult struct {
	Point struct {
		ID string `json:"id"`
	} `json:"point"`
	Link *model.Link `json:"link"`
}

// RelevanceVote casts a graduated relevance vote on a parent/child edge
func (c *Client) RelevanceVote(ctx context.Context, linkType model.LinkType, rootURLsafe, parentRootURLsafe, url string, vote int) (*RelevanceResult, error) {
	vars := map[string]any{
		"linkType":          string(linkType),
		"rootURLsafe":       rootURLsafe,
		"parentRootURLsafe": parentRootURLsafe,
		"url":               url,
		"vote":              vote,
	}

	var data struct {
		RelevanceVote *RelevanceResult `json:"relevanceVote"`
	}
	if err := c.do(ctx, relevanceVoteMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("relevance vote on %q: %w", url, err)
	}
	if data.RelevanceVote == nil || data.RelevanceVote.Link == nil {
		return nil, fmt.Errorf("relevance vote on %q: empty result", url)
	}
	return data.RelevanceVote, nil
}

// AddEvidenceInput describes a new point to attach under a parent
type AddEvidenceInput struct {
	Title            string
	LinkType         model.LinkType
	ParentURL        string
	ImageURL         string
	ImageAuthor      string
	ImageDescription string
	SourceURLs       []string
	SourceNames      []string
}

// AddEvidence creates a new point linked under the parent. The response
// point carries its own (empty) evidence fragment so it can be spliced into
// the parent's collection directly.
func (c *Client) AddEvidence(ctx context.Context, in AddEvidenceInput) (*model.Point, error) {
	vars := map[string]any{
		"title": in.Title,
	}
	if in.LinkType != "" {
		vars["linkType"] = string(in.LinkType)
	}
	if in.ParentURL != "" {
		vars["parentURL"] = in.ParentURL
	}
	if in.ImageURL != "" {
		vars["imageURL"] = in.ImageURL
	}
	if in.ImageAuthor != "" {
		vars["imageAuthor"] = in.ImageAuthor
	}
	if in.ImageDescription != "" {
		vars["imageDescription"] = in.ImageDescription
	}
	if len(in.SourceURLs) > 0 {
		vars["sourceURLs"] = in.SourceURLs
		vars["sourceNames"] = in.SourceNames
	}

	var data struct {
		AddEvidence *struct {
			Point *model.Point `json:"point"`
		} `json:"addEvidence"`
	}
	if err := c.do(ctx, addEvidenceMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("add evidence under %q: %w", in.ParentURL, err)
	}
	if data.AddEvidence == nil || data.AddEvidence.Point == nil {
		return nil, fmt.Errorf("add evidence under %q: empty result", in.ParentURL)
	}
	return data.AddEvidence.Point, nil
}

// EditResult carries the fields returned by an edit mutation
type EditResult struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// EditPoint updates a point's title
func (c *Client) EditPoint(ctx context.Context, url, title string) (*EditResult, error) {
	var data struct {
		EditPoint *struct {
			Point *EditResult `json:"point"`
		} `json:"editPoint"`
	}
	vars := map[string]any{"url": url, "title": title}
	if err := c.do(ctx, editPointMutation, vars, &data); err != nil {
		return nil, fmt.Errorf("edit point %q: %w", url, err)
	}
	if data.EditPoint == nil || data.EditPoint.Point == nil {
		return nil, fmt.Errorf("edit point %q: empty result", url)
	}
	return data.EditPoint.Point, nil
}

package dispatch

import (
	"context"
	"fmt"

	"github.com/claimtree/claimtree/internal/api"
	"github.com/claimtree/claimtree/internal/model"
	"github.com/claimtree/claimtree/internal/repository"
)

// PointEditor is the slice of the API client the edit dispatcher uses
type PointEditor interface {
	EditPoint(ctx context.Context, url, title string) (*api.EditResult, error)
}

// EditOutcome reports what a dispatch did
type EditOutcome struct {
	Prompted bool
	Updated  int
	Result   *api.EditResult
}

// EditDispatcher updates a point's title. Only the author may edit; the
// render contract hides the affordance from everyone else, and the server
// enforces it regardless.
type EditDispatcher struct {
	editor PointEditor
	repo   *repository.Repository
	auth   *Authenticator
}

// NewEditDispatcher wires a dispatcher to its collaborators
func NewEditDispatcher(editor PointEditor, repo *repository.Repository, auth *Authenticator) *EditDispatcher {
	return &EditDispatcher{editor: editor, repo: repo, auth: auth}
}

// Dispatch sends the new title and merges the result into every live
// occurrence of the point.
func (d *EditDispatcher) Dispatch(ctx context.Context, point *model.Point, title string) (EditOutcome, error) {
	if point == nil {
		return EditOutcome{}, fmt.Errorf("edit: no point")
	}
	if title == "" {
		return EditOutcome{}, fmt.Errorf("edit: title is required")
	}

	_, authed, err := d.auth.Require(ctx)
	if err != nil {
		return EditOutcome{}, fmt.Errorf("edit: %w", err)
	}
	if !authed {
		return EditOutcome{Prompted: true}, nil
	}

	res, err := d.editor.EditPoint(ctx, point.URL, title)
	if err != nil {
		return EditOutcome{}, err
	}

	updated := d.repo.ApplyEditResult(res)
	return EditOutcome{Updated: updated, Result: res}, nil
}

// CanEdit reports whether the viewer may edit the point
func CanEdit(viewer *model.User, point *model.Point) bool {
	if viewer == nil || point == nil {
		return false
	}
	return viewer.URL == point.AuthorURL
}

package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/claimtree/claimtree/internal/api"
	"github.com/claimtree/claimtree/internal/model"
)

// fakeCreator records the last input and serves a canned result
type fakeCreator struct {
	point *model.Point
	err   error
	calls int
	got   api.AddEvidenceInput
}

func (f *fakeCreator) AddEvidence(ctx context.Context, in api.AddEvidenceInput) (*model.Point, error) {
	f.calls++
	f.got = in
	return f.point, f.err
}

func TestSubmissionFlow_HappyPath(t *testing.T) {
	parent := &model.Point{ID: "p1", URL: "/point/1", RootURLsafe: "parent-1"}
	repo := newTestRepo(t, map[string]*model.Point{"/point/1": parent})

	created := &model.Point{ID: "p9", URL: "/point/9", RootURLsafe: "new-claim", Title: "fresh counterpoint"}
	creator := &fakeCreator{point: created}
	flow := NewSubmissionFlow(creator, repo, authedAs("/user/amira"))

	prompted, err := flow.Begin(context.Background(), parent, model.EvidenceCounter)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if prompted {
		t.Fatalf("authenticated begin must not prompt")
	}
	if flow.State() != FlowComposing {
		t.Errorf("expected composing state, got %v", flow.State())
	}

	flow.SetDraft(Draft{Title: "fresh counterpoint", SourceURLs: []string{"https://example.org"}, SourceNames: []string{"example"}})

	point, err := flow.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if point.URL != "/point/9" {
		t.Errorf("unexpected created point: %+v", point)
	}

	if creator.got.LinkType != model.LinkTypeCounter || creator.got.ParentURL != "/point/1" {
		t.Errorf("unexpected wire input: %+v", creator.got)
	}

	// Success splices the child into the live parent and resets the flow
	if parent.NumCounter != 1 || len(parent.CounterPoints.Edges) != 1 {
		t.Errorf("child not spliced into parent: %+v", parent)
	}
	if flow.State() != FlowIdle {
		t.Errorf("expected idle after submit, got %v", flow.State())
	}
	if flow.Draft().Title != "" {
		t.Errorf("draft should be cleared after submit")
	}
}

func TestSubmissionFlow_AnonymousBeginPromptsAndStaysIdle(t *testing.T) {
	parent := &model.Point{ID: "p1", URL: "/point/1"}
	repo := newTestRepo(t, nil)

	prompts := 0
	creator := &fakeCreator{}
	flow := NewSubmissionFlow(creator, repo, anonymous(&prompts))

	prompted, err := flow.Begin(context.Background(), parent, model.EvidenceSupport)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if !prompted || prompts != 1 {
		t.Errorf("expected a single prompt, got prompted=%v prompts=%d", prompted, prompts)
	}
	if flow.State() != FlowIdle {
		t.Errorf("flow must stay idle while anonymous, got %v", flow.State())
	}
	if creator.calls != 0 {
		t.Errorf("no mutation may be sent while anonymous")
	}
}

func TestSubmissionFlow_RootSlotRejected(t *testing.T) {
	parent := &model.Point{ID: "p1", URL: "/point/1"}
	repo := newTestRepo(t, nil)
	flow := NewSubmissionFlow(&fakeCreator{}, repo, authedAs("/user/amira"))

	if _, err := flow.Begin(context.Background(), parent, model.EvidenceRoot); err == nil {
		t.Errorf("root is not a legal slot for scoped evidence")
	}
	if _, err := flow.Begin(context.Background(), nil, model.EvidenceSupport); err == nil {
		t.Errorf("nil parent must be rejected")
	}
}

func TestSubmissionFlow_FailedSubmitKeepsDraft(t *testing.T) {
	parent := &model.Point{ID: "p1", URL: "/point/1", RootURLsafe: "parent-1"}
	repo := newTestRepo(t, map[string]*model.Point{"/point/1": parent})

	creator := &fakeCreator{err: errors.New("server exploded")}
	flow := NewSubmissionFlow(creator, repo, authedAs("/user/amira"))

	flow.Begin(context.Background(), parent, model.EvidenceSupport)
	flow.SetDraft(Draft{Title: "hard-won paragraph"})

	if _, err := flow.Submit(context.Background()); err == nil {
		t.Fatal("expected submit error")
	}

	if flow.State() != FlowComposing {
		t.Errorf("failed submit must stay composing, got %v", flow.State())
	}
	if flow.Draft().Title != "hard-won paragraph" {
		t.Errorf("failed submit must keep the draft, got %q", flow.Draft().Title)
	}
	if parent.NumSupporting != 0 {
		t.Errorf("failed submit must not splice")
	}

	// Fixing the server lets the same draft go through
	creator.err = nil
	creator.point = &model.Point{ID: "p9", URL: "/point/9", RootURLsafe: "new-claim"}
	if _, err := flow.Submit(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if parent.NumSupporting != 1 {
		t.Errorf("retried submit should splice")
	}
}

func TestSubmissionFlow_SubmitGuards(t *testing.T) {
	repo := newTestRepo(t, nil)
	flow := NewSubmissionFlow(&fakeCreator{}, repo, authedAs("/user/amira"))

	if _, err := flow.Submit(context.Background()); err == nil {
		t.Errorf("submit while idle must fail")
	}

	parent := &model.Point{ID: "p1", URL: "/point/1"}
	flow.Begin(context.Background(), parent, model.EvidenceSupport)
	if _, err := flow.Submit(context.Background()); err == nil {
		t.Errorf("submit without a title must fail")
	}
}

func TestSubmissionFlow_Cancel(t *testing.T) {
	repo := newTestRepo(t, nil)
	flow := NewSubmissionFlow(&fakeCreator{}, repo, authedAs("/user/amira"))

	parent := &model.Point{ID: "p1", URL: "/point/1"}
	flow.Begin(context.Background(), parent, model.EvidenceSupport)
	flow.SetDraft(Draft{Title: "abandoned"})

	flow.Cancel()

	if flow.State() != FlowIdle {
		t.Errorf("expected idle after cancel, got %v", flow.State())
	}
	if flow.Draft().Title != "" {
		t.Errorf("cancel should drop the draft")
	}
}

func TestFlowState_String(t *testing.T) {
	if FlowIdle.String() != "idle" || FlowComposing.String() != "composing" {
		t.Errorf("unexpected state names: %q %q", FlowIdle, FlowComposing)
	}
}

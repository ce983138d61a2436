package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/claimtree/claimtree/internal/model"
)

// fakeUserSource serves a fixed viewer and counts lookups
type fakeUserSource struct {
	user  *model.User
	err   error
	calls int
}

func (f *fakeUserSource) CurrentUser(ctx context.Context) (*model.User, error) {
	f.calls++
	return f.user, f.err
}

func TestAuthenticator_CurrentCachesViewer(t *testing.T) {
	source := &fakeUserSource{user: &model.User{URL: "/user/amira"}}
	auth := NewAuthenticator(source, nil)

	u1, err := auth.Current(context.Background())
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	u2, err := auth.Current(context.Background())
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}

	if u1 == nil || u2 == nil || u1.URL != "/user/amira" {
		t.Errorf("unexpected viewer: %+v %+v", u1, u2)
	}
	if source.calls != 1 {
		t.Errorf("expected 1 lookup, got %d", source.calls)
	}
}

func TestAuthenticator_CurrentCachesAnonymous(t *testing.T) {
	source := &fakeUserSource{}
	auth := NewAuthenticator(source, nil)

	if u, err := auth.Current(context.Background()); err != nil || u != nil {
		t.Fatalf("expected cached anonymous, got %+v err=%v", u, err)
	}
	auth.Current(context.Background())

	if source.calls != 1 {
		t.Errorf("anonymous result should be cached too, got %d lookups", source.calls)
	}
}

func TestAuthenticator_RequireAuthenticated(t *testing.T) {
	prompted := 0
	source := &fakeUserSource{user: &model.User{URL: "/user/amira"}}
	auth := NewAuthenticator(source, func(ctx context.Context) { prompted++ })

	user, ok, err := auth.Require(context.Background())
	if err != nil {
		t.Fatalf("require failed: %v", err)
	}
	if !ok || user == nil {
		t.Errorf("expected authenticated viewer")
	}
	if prompted != 0 {
		t.Errorf("prompt must not fire for an authenticated viewer")
	}
}

func TestAuthenticator_RequireAnonymousPromptsAndResets(t *testing.T) {
	prompted := 0
	source := &fakeUserSource{}
	auth := NewAuthenticator(source, func(ctx context.Context) { prompted++ })

	user, ok, err := auth.Require(context.Background())
	if err != nil {
		t.Fatalf("require failed: %v", err)
	}
	if ok || user != nil {
		t.Errorf("expected anonymous outcome")
	}
	if prompted != 1 {
		t.Errorf("expected prompt to fire once, got %d", prompted)
	}

	// The reset means a later attempt re-checks, e.g. after sign-in
	source.user = &model.User{URL: "/user/amira"}
	_, ok, err = auth.Require(context.Background())
	if err != nil {
		t.Fatalf("require failed: %v", err)
	}
	if !ok {
		t.Errorf("expected re-check to find the signed-in viewer")
	}
}

func TestAuthenticator_RequireErrorPropagates(t *testing.T) {
	source := &fakeUserSource{err: errors.New("network down")}
	auth := NewAuthenticator(source, nil)

	if _, _, err := auth.Require(context.Background()); err == nil {
		t.Errorf("expected lookup error to propagate")
	}
}

func TestAuthenticator_NilPrompt(t *testing.T) {
	auth := NewAuthenticator(&fakeUserSource{}, nil)

	// Must not panic without an interactive surface
	_, ok, err := auth.Require(context.Background())
	if err != nil || ok {
		t.Errorf("expected quiet anonymous outcome, got ok=%v err=%v", ok, err)
	}
}

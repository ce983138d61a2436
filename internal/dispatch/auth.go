package dispatch

import (
	"context"
	"sync"

	"github.com/claimtree/claimtree/internal/model"
)

// AuthPrompt is the injected side effect that asks the user to sign in. It
// replaces a shared login-modal widget so the gate stays testable without a
// rendering environment. The prompt does not report whether sign-in
// happened; the user re-triggers their action afterwards.
type AuthPrompt func(ctx context.Context)

// UserSource resolves the authenticated viewer
type UserSource interface {
	CurrentUser(ctx context.Context) (*model.User, error)
}

// Authenticator caches the current viewer and gates mutating actions.
// Unauthenticated attempts trigger the prompt and stop; no mutation call is
// issued.
type Authenticator struct {
	source UserSource
	prompt AuthPrompt

	mu      sync.Mutex
	user    *model.User
	checked bool
}

// NewAuthenticator creates an authenticator. prompt may be nil when the
// caller has no interactive surface.
func NewAuthenticator(source UserSource, prompt AuthPrompt) *Authenticator {
	return &Authenticator{source: source, prompt: prompt}
}

// Current returns the cached viewer, resolving it on first use. A nil user
// with nil error means anonymous.
func (a *Authenticator) Current(ctx context.Context) (*model.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.checked {
		return a.user, nil
	}

	user, err := a.source.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	a.user = user
	a.checked = true
	return user, nil
}

// Require returns the viewer when authenticated. When anonymous it fires
// the prompt side effect, resets the cached state so a later attempt
// re-checks, and reports false.
func (a *Authenticator) Require(ctx context.Context) (*model.User, bool, error) {
	user, err := a.Current(ctx)
	if err != nil {
		return nil, false, err
	}

	if user == nil {
		if a.prompt != nil {
			a.prompt(ctx)
		}
		a.Reset()
		return nil, false, nil
	}

	return user, true, nil
}

// Reset drops the cached viewer so the next check queries again, e.g. after
// the prompt completed a sign-in.
func (a *Authenticator) Reset() {
	a.mu.Lock()
	a.user = nil
	a.checked = false
	a.mu.Unlock()
}

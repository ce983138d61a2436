package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/claimtree/claimtree/internal/cache"
	"github.com/claimtree/claimtree/internal/model"
)

// PointSource is the slice of the API client the repository depends on
type PointSource interface {
	GetPoint(ctx context.Context, url string) (*model.Point, error)
}

// Repository resolves points by url and keeps every materialized tree
// registered so mutation results can be merged into all live occurrences.
// It performs no retries; a failed fetch is returned to the caller as-is.
type Repository struct {
	source PointSource
	cache  cache.Cache // nil when caching is disabled
	ttl    time.Duration

	mu    sync.RWMutex
	roots map[string]*model.Point // materialized trees keyed by root url
}

// New creates a repository over the given source. c may be nil to disable
// caching.
func New(source PointSource, c cache.Cache, ttl time.Duration) *Repository {
	return &Repository{
		source: source,
		cache:  c,
		ttl:    ttl,
		roots:  make(map[string]*model.Point),
	}
}

// Get resolves a point and one level of its evidence edges, serving from
// cache when possible. The returned tree stays registered for merge
// reconciliation until Release is called for its url.
func (r *Repository) Get(ctx context.Context, url string) (*model.Point, error) {
	if r.cache != nil {
		if raw, ok := r.cache.Get(cache.Key(url)); ok {
			var p model.Point
			if err := json.Unmarshal(raw, &p); err == nil {
				r.register(url, &p)
				return &p, nil
			}
			// Corrupt entry: drop it and fall through to a fresh fetch
			_ = r.cache.Delete(cache.Key(url))
		}
	}

	return r.Refresh(ctx, url)
}

// Refresh fetches the point from the server unconditionally and replaces
// the cached entry.
func (r *Repository) Refresh(ctx context.Context, url string) (*model.Point, error) {
	p, err := r.source.GetPoint(ctx, url)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if raw, err := json.Marshal(p); err == nil {
			_ = r.cache.Set(cache.Key(url), raw, r.ttl)
		}
	}

	r.register(url, p)
	return p, nil
}

// Invalidate drops the cached entry for a url. Live trees are untouched.
func (r *Repository) Invalidate(url string) {
	if r.cache != nil {
		_ = r.cache.Delete(cache.Key(url))
	}
}

// Release unregisters the materialized tree for a root url. Late mutation
// results for released trees are silently dropped, matching the accepted
// fire-and-forget race of the UI loop.
func (r *Repository) Release(url string) {
	r.mu.Lock()
	delete(r.roots, url)
	r.mu.Unlock()
}

func (r *Repository) register(url string, p *model.Point) {
	r.mu.Lock()
	r.roots[url] = p
	r.mu.Unlock()
}

// Occurrence is one rendered position of a point inside a materialized tree
type Occurrence struct {
	Point  *model.Point
	Link   *model.Link  // nil at the root
	Parent *model.Point // nil at the root
}

// forEach walks every registered tree with an explicit work list, visiting
// each occurrence exactly once per position. The underlying structure is a
// graph rendered as a tree, so the same point id can be visited more than
// once; that is intended.
func (r *Repository) forEach(visit func(Occurrence)) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, root := range r.roots {
		walkTree(root, visit)
	}
}

// walkTree visits root and every resolved descendant occurrence
func walkTree(root *model.Point, visit func(Occurrence)) {
	if root == nil {
		return
	}

	work := []Occurrence{{Point: root}}
	for len(work) > 0 {
		occ := work[len(work)-1]
		work = work[:len(work)-1]
		visit(occ)

		for _, coll := range []model.EvidenceCollection{occ.Point.SupportingPoints, occ.Point.CounterPoints} {
			for _, edge := range coll.Edges {
				if edge.Node == nil {
					continue
				}
				work = append(work, Occurrence{Point: edge.Node, Link: edge.Link, Parent: occ.Point})
			}
		}
	}
}

// FindByURL returns every live occurrence of a point url across registered
// trees.
func (r *Repository) FindByURL(url string) []Occurrence {
	var out []Occurrence
	r.forEach(func(occ Occurrence) {
		if occ.Point.URL == url {
			out = append(out, occ)
		}
	})
	return out
}

// Root returns the registered tree for a url, if any
func (r *Repository) Root(url string) (*model.Point, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.roots[url]
	return p, ok
}

func (r *Repository) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fmt.Sprintf("repository(%d roots)", len(r.roots))
}

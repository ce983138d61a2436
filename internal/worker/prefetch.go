package worker

import (
	"context"
	"fmt"

	"github.com/claimtree/claimtree/internal/model"
)

// PointFetcher is the slice of the repository the prefetcher uses
type PointFetcher interface {
	Get(ctx context.Context, url string) (*model.Point, error)
}

// Prefetcher walks the evidence graph breadth-first, fetching each level
// through the worker pool to warm the cache for offline viewing. Each url
// is visited at most once per run; the underlying structure is a graph, so
// the same point can hang under several parents.
type Prefetcher struct {
	fetcher  PointFetcher
	limiter  *Limiter
	workers  int
	endpoint string // API endpoint, used as the rate-limit key
}

// NewPrefetcher wires a prefetcher to its collaborators
func NewPrefetcher(fetcher PointFetcher, limiter *Limiter, workers int, endpoint string) *Prefetcher {
	return &Prefetcher{
		fetcher:  fetcher,
		limiter:  limiter,
		workers:  workers,
		endpoint: endpoint,
	}
}

// PrefetchStats summarizes one prefetch run
type PrefetchStats struct {
	Visited int // URLs attempted
	Fetched int // Successful fetches
	Failed  int // Fetch errors (not retried)
}

type fetchJob struct {
	prefetcher *Prefetcher
	url        string
}

type fetchResult struct {
	url   string
	point *model.Point
	err   error
}

func (r *fetchResult) GetError() error {
	return r.err
}

func (j *fetchJob) Execute(ctx context.Context) Result {
	if err := j.prefetcher.limiter.Wait(ctx, j.prefetcher.endpoint); err != nil {
		return &fetchResult{url: j.url, err: err}
	}

	point, err := j.prefetcher.fetcher.Get(ctx, j.url)
	return &fetchResult{url: j.url, point: point, err: err}
}

// Prefetch fetches the tree rooted at rootURL down to the given depth.
// Depth 0 fetches only the root. Individual fetch failures are counted,
// not fatal; their subtrees are simply not descended into.
func (p *Prefetcher) Prefetch(ctx context.Context, rootURL string, depth int) (PrefetchStats, error) {
	if depth < 0 {
		return PrefetchStats{}, fmt.Errorf("prefetch: negative depth %d", depth)
	}

	stats := PrefetchStats{}
	visited := make(map[string]struct{})
	frontier := []string{rootURL}

	for level := 0; level <= depth && len(frontier) > 0; level++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		pool := NewPool(p.workers)
		pool.Start()

		submitted := 0
		for _, url := range frontier {
			if _, seen := visited[url]; seen {
				continue
			}
			visited[url] = struct{}{}
			pool.Submit(&fetchJob{prefetcher: p, url: url})
			submitted++
		}
		stats.Visited += submitted

		var next []string
		for _, res := range pool.Wait() {
			fr := res.(*fetchResult)
			if fr.err != nil {
				stats.Failed++
				continue
			}
			stats.Fetched++
			next = append(next, childURLs(fr.point)...)
		}

		frontier = next
	}

	return stats, nil
}

// childURLs collects the urls of a point's resolved evidence nodes
func childURLs(p *model.Point) []string {
	if p == nil {
		return nil
	}

	var urls []string
	for _, coll := range []model.EvidenceCollection{p.SupportingPoints, p.CounterPoints} {
		for _, edge := range coll.Edges {
			if edge.Node != nil && edge.Node.URL != "" {
				urls = append(urls, edge.Node.URL)
			}
		}
	}
	return urls
}

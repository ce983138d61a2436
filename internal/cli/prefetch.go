package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimtree/claimtree/internal/worker"
)

var (
	prefetchDepth   int
	prefetchWorkers int
	prefetchTimeout time.Duration
)

// prefetchCmd represents the prefetch command
var prefetchCmd = &cobra.Command{
	Use:   "prefetch <url>",
	Short: "Warm the cache for a point's evidence tree",
	Long: `Prefetch walks the evidence graph breadth-first from a root point,
fetching each level in parallel and caching every point for later offline
viewing. Traffic against the API host is rate limited.

Example:
  claimtree prefetch /point/5
  claimtree prefetch /point/5 --depth 4 --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runPrefetch,
}

func init() {
	rootCmd.AddCommand(prefetchCmd)

	prefetchCmd.Flags().IntVar(&prefetchDepth, "depth", 2, "evidence levels to fetch below the root")
	prefetchCmd.Flags().IntVar(&prefetchWorkers, "workers", 0, "concurrent fetch workers (default from config)")
	prefetchCmd.Flags().DurationVar(&prefetchTimeout, "timeout", 5*time.Minute, "total prefetch timeout")
}

func runPrefetch(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), prefetchTimeout)
	defer cancel()

	cfg := loadConfig()
	workers := prefetchWorkers
	if workers <= 0 {
		workers = cfg.Concurrency.PrefetchWorkers
	}

	s := newStack(cfg)

	fmt.Fprintf(os.Stderr, "Prefetching %s to depth %d with %d workers\n", url, prefetchDepth, workers)

	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)
	prefetcher := worker.NewPrefetcher(s.repo, limiter, workers, cfg.API.Endpoint)

	stats, err := prefetcher.Prefetch(ctx, url, prefetchDepth)
	if err != nil {
		return fmt.Errorf("prefetch: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Visited %d urls: %d fetched, %d failed\n", stats.Visited, stats.Fetched, stats.Failed)
	if stats.Failed > 0 {
		fmt.Fprintln(os.Stderr, "Failed fetches are not retried; re-run to fill gaps.")
	}

	return nil
}

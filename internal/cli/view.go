package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimtree/claimtree/internal/api"
	"github.com/claimtree/claimtree/internal/llm"
	"github.com/claimtree/claimtree/internal/model"
	"github.com/claimtree/claimtree/internal/render"
	"github.com/claimtree/claimtree/internal/repository"
	"github.com/claimtree/claimtree/internal/tree"
)

var (
	viewDepth   int
	viewJSON    string
	viewTimeout time.Duration
	endpoint    string
	noCache     bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view <url>",
	Short: "Fetch a point and render its evidence tree",
	Long: `View fetches a point and renders it with its supporting and counter
claims. Depth controls how many evidence levels are expanded; each extra
level issues one fetch per expanded node, the same way interactive
"See Evidence" does.

Example:
  claimtree view /point/5
  claimtree view /point/5 --depth 3
  claimtree view /point/5 --json tree.json
  claimtree view /point/5 --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().IntVar(&viewDepth, "depth", 1, "evidence levels to expand (0 shows the point alone)")
	viewCmd.Flags().StringVar(&viewJSON, "json", "", "write the fetched tree as JSON to this path")
	viewCmd.Flags().DurationVar(&viewTimeout, "timeout", 2*time.Minute, "overall timeout")
	viewCmd.Flags().StringVar(&endpoint, "endpoint", "", "API endpoint (overrides config)")
	viewCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")

	// LLM flags
	viewCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an LLM summary of the tree")
	viewCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	viewCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runView(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), viewTimeout)
	defer cancel()

	cfg := loadConfig()
	if endpoint != "" {
		cfg.API.Endpoint = endpoint
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	s := newStack(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "Fetching: %s\n", url)
		fmt.Fprintf(os.Stderr, "Endpoint: %s\n", cfg.API.Endpoint)
	}

	root, err := s.repo.Get(ctx, url)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("no point at %q", url)
		}
		return fmt.Errorf("fetch failed: %w", err)
	}

	store := tree.NewExpansionStore()
	ctrl := tree.NewController(store)
	if err := materialize(ctx, s.repo, ctrl, root, viewDepth); err != nil {
		return fmt.Errorf("expand failed: %w", err)
	}

	if viewJSON != "" {
		raw, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal tree: %w", err)
		}
		if err := os.WriteFile(viewJSON, raw, 0644); err != nil {
			return fmt.Errorf("write JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", viewJSON)
		}
	}

	viewer, err := s.auth.Current(ctx)
	if err != nil {
		// Anonymous rendering still works; just note the failure
		if verbose {
			fmt.Fprintf(os.Stderr, "current user check failed: %v\n", err)
		}
	}

	builder := render.NewBuilder(store, viewer)
	if err := render.WriteText(os.Stdout, builder.Build(root), cfg.Output.MaxWidth); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if llmEnabled {
		return summarizeTree(ctx, cfg, root)
	}

	return nil
}

// materialize expands the tree to the requested depth. Levels past the
// first fetch each expanded node's own subtree, mirroring what interactive
// expansion does.
func materialize(ctx context.Context, repo *repository.Repository, ctrl *tree.Controller, root *model.Point, depth int) error {
	current := []*model.Point{root}

	for level := 0; level < depth && len(current) > 0; level++ {
		var next []*model.Point

		for _, p := range current {
			if !ctrl.See(p) && !ctrl.Store().IsExpanded(p.ID) {
				continue
			}

			for _, coll := range []*model.EvidenceCollection{&p.SupportingPoints, &p.CounterPoints} {
				for i := range coll.Edges {
					node := coll.Edges[i].Node
					if node == nil {
						continue
					}
					if level+1 < depth && model.HasEvidence(node) {
						full, err := repo.Get(ctx, node.URL)
						if err != nil {
							return err
						}
						*node = *full
					}
					next = append(next, node)
				}
			}
		}

		current = next
	}

	return nil
}

// summarizeTree prints an LLM summary of the fetched tree
func summarizeTree(ctx context.Context, cfg *model.Config, root *model.Point) error {
	cfg.LLM.Provider = llmProvider
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("initialize LLM provider: %w", err)
	}

	res, err := summarizer.Summarize(ctx, root)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	fmt.Println()
	fmt.Println("── Summary ──")
	fmt.Println(res.Summary)
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Summary generated by %s (%d tokens)\n", res.Model, res.TokensUsed)
	}

	return nil
}

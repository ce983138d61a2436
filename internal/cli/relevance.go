package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimtree/claimtree/internal/dispatch"
	"github.com/claimtree/claimtree/internal/model"
)

var (
	relevanceParent  string
	relevanceVote    int
	relevanceTimeout time.Duration
)

// relevanceCmd represents the relevance command
var relevanceCmd = &cobra.Command{
	Use:   "relevance <url>",
	Short: "Cast a graduated relevance vote on an evidence edge",
	Long: `Relevance votes judge how pertinent a piece of evidence is to its
parent claim, independent of agreeing with it. Votes are graduated: 0, 33,
66 or 100 percent. A relevance vote always targets the edge between a
parent and a child, so --parent is required.

Example:
  claimtree relevance /point/12 --parent /point/5 --vote 66`,
	Args: cobra.ExactArgs(1),
	RunE: runRelevance,
}

func init() {
	rootCmd.AddCommand(relevanceCmd)

	relevanceCmd.Flags().StringVar(&relevanceParent, "parent", "", "parent point url (required)")
	relevanceCmd.Flags().IntVar(&relevanceVote, "vote", -1, "relevance bucket: 0, 33, 66 or 100")
	relevanceCmd.Flags().DurationVar(&relevanceTimeout, "timeout", 30*time.Second, "overall timeout")
	_ = relevanceCmd.MarkFlagRequired("parent")
	_ = relevanceCmd.MarkFlagRequired("vote")
}

func runRelevance(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), relevanceTimeout)
	defer cancel()

	cfg := loadConfig()
	s := newStack(cfg)

	parent, err := s.repo.Get(ctx, relevanceParent)
	if err != nil {
		return fmt.Errorf("fetch parent: %w", err)
	}

	point, link := findEdge(parent, url)
	if point == nil {
		return fmt.Errorf("%q is not evidence under %q", url, relevanceParent)
	}

	dispatcher := dispatch.NewRelevanceDispatcher(s.client, s.repo, s.auth)
	outcome, err := dispatcher.Dispatch(ctx, point, parent, link, relevanceVote)
	if err != nil {
		return fmt.Errorf("relevance vote failed: %w", err)
	}
	if outcome.Prompted {
		os.Exit(1)
	}

	fmt.Printf("✓ Relevance %d%% on %s (under %s)\n", outcome.Result.Link.Relevance, url, relevanceParent)
	return nil
}

// findEdge locates the child point and its link inside the parent's
// fetched evidence collections.
func findEdge(parent *model.Point, childURL string) (*model.Point, *model.Link) {
	for _, coll := range []model.EvidenceCollection{parent.SupportingPoints, parent.CounterPoints} {
		for _, edge := range coll.Edges {
			if edge.Node != nil && edge.Node.URL == childURL {
				return edge.Node, edge.Link
			}
		}
	}
	return nil, nil
}

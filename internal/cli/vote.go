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
	voteAgree    bool
	voteDisagree bool
	voteParent   string
	voteTimeout  time.Duration
)

// voteCmd represents the vote command
var voteCmd = &cobra.Command{
	Use:   "vote <url>",
	Short: "Cast an agree or disagree vote on a point",
	Long: `Vote casts a binary agree/disagree vote. When the point is being
judged as evidence under a parent, pass --parent so the vote is scoped and
the parent's score updates too.

Votes are pessimistic: nothing changes until the server confirms. Casting
the vote you already hold is legal; the server decides toggle semantics.

Example:
  claimtree vote /point/5 --agree
  claimtree vote /point/12 --disagree --parent /point/5`,
	Args: cobra.ExactArgs(1),
	RunE: runVote,
}

func init() {
	rootCmd.AddCommand(voteCmd)

	voteCmd.Flags().BoolVar(&voteAgree, "agree", false, "vote agree (+1)")
	voteCmd.Flags().BoolVar(&voteDisagree, "disagree", false, "vote disagree (-1)")
	voteCmd.Flags().StringVar(&voteParent, "parent", "", "parent point url when voting in an evidence context")
	voteCmd.Flags().DurationVar(&voteTimeout, "timeout", 30*time.Second, "overall timeout")
}

func runVote(cmd *cobra.Command, args []string) error {
	url := args[0]
	if voteAgree == voteDisagree {
		return fmt.Errorf("pass exactly one of --agree or --disagree")
	}

	ctx, cancel := context.WithTimeout(context.Background(), voteTimeout)
	defer cancel()

	cfg := loadConfig()
	s := newStack(cfg)

	point, err := s.repo.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch point: %w", err)
	}

	var parent *model.Point
	if voteParent != "" {
		parent, err = s.repo.Get(ctx, voteParent)
		if err != nil {
			return fmt.Errorf("fetch parent: %w", err)
		}
	}

	vote := dispatch.Agree
	if voteDisagree {
		vote = dispatch.Disagree
	}

	dispatcher := dispatch.NewVoteDispatcher(s.client, s.repo, s.auth)
	outcome, err := dispatcher.Dispatch(ctx, point, vote, parent)
	if err != nil {
		return fmt.Errorf("vote failed: %w", err)
	}
	if outcome.Prompted {
		os.Exit(1)
	}

	fmt.Printf("✓ Voted on %s\n", url)
	fmt.Printf("  score %+d · agreed %d · disagreed %d\n",
		outcome.Result.Point.PointValue, outcome.Result.Point.UpVotes, outcome.Result.Point.DownVotes)
	if outcome.Result.ParentPoint != nil {
		fmt.Printf("  parent score %+d\n", outcome.Result.ParentPoint.PointValue)
	}

	return nil
}

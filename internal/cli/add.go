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
	addType        string
	addTitle       string
	addSourceURLs  []string
	addSourceNames []string
	addTimeout     time.Duration
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <parent-url>",
	Short: "Attach a new supporting or counter claim under a point",
	Long: `Add creates a new point and links it as evidence under the parent.
The link type is "supporting" or "counter"; root points are created through
the service's own unscoped flow, not here.

Example:
  claimtree add /point/5 --type counter --title "The dish predates the claim"
  claimtree add /point/5 --type supporting --title "Archival menu from 1897" \
      --source-url https://archive.example/menu --source-name "1897 menu"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addType, "type", "supporting", `link type: "supporting" or "counter"`)
	addCmd.Flags().StringVar(&addTitle, "title", "", "title of the new claim (required)")
	addCmd.Flags().StringArrayVar(&addSourceURLs, "source-url", nil, "source url (repeatable)")
	addCmd.Flags().StringArrayVar(&addSourceNames, "source-name", nil, "source name, paired by position with --source-url")
	addCmd.Flags().DurationVar(&addTimeout, "timeout", 30*time.Second, "overall timeout")
	_ = addCmd.MarkFlagRequired("title")
}

func runAdd(cmd *cobra.Command, args []string) error {
	parentURL := args[0]

	var slot model.EvidenceType
	switch model.LinkType(addType) {
	case model.LinkTypeSupporting:
		slot = model.EvidenceSupport
	case model.LinkTypeCounter:
		slot = model.EvidenceCounter
	default:
		return fmt.Errorf("--type must be %q or %q", model.LinkTypeSupporting, model.LinkTypeCounter)
	}

	if len(addSourceNames) > 0 && len(addSourceNames) != len(addSourceURLs) {
		return fmt.Errorf("--source-name count must match --source-url count")
	}

	ctx, cancel := context.WithTimeout(context.Background(), addTimeout)
	defer cancel()

	cfg := loadConfig()
	s := newStack(cfg)

	parent, err := s.repo.Get(ctx, parentURL)
	if err != nil {
		return fmt.Errorf("fetch parent: %w", err)
	}

	flow := dispatch.NewSubmissionFlow(s.client, s.repo, s.auth)
	prompted, err := flow.Begin(ctx, parent, slot)
	if err != nil {
		return err
	}
	if prompted {
		os.Exit(1)
	}

	flow.SetDraft(dispatch.Draft{
		Title:       addTitle,
		SourceURLs:  addSourceURLs,
		SourceNames: addSourceNames,
	})

	point, err := flow.Submit(ctx)
	if err != nil {
		return fmt.Errorf("add evidence failed: %w", err)
	}

	fmt.Printf("✓ Added %s claim %s under %s\n", addType, point.URL, parentURL)
	return nil
}

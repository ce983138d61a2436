package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimtree/claimtree/internal/dispatch"
)

var (
	editTitle   string
	editTimeout time.Duration
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <url>",
	Short: "Edit the title of a point you authored",
	Long: `Edit updates a point's title. Only the author may edit; the server
rejects anyone else.

Example:
  claimtree edit /point/5 --title "Laksa originated in Johor"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editTitle, "title", "", "new title (required)")
	editCmd.Flags().DurationVar(&editTimeout, "timeout", 30*time.Second, "overall timeout")
	_ = editCmd.MarkFlagRequired("title")
}

func runEdit(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), editTimeout)
	defer cancel()

	cfg := loadConfig()
	s := newStack(cfg)

	point, err := s.repo.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch point: %w", err)
	}

	viewer, err := s.auth.Current(ctx)
	if err != nil {
		return fmt.Errorf("current user: %w", err)
	}
	if !dispatch.CanEdit(viewer, point) {
		return fmt.Errorf("only the author (@%s) can edit %s", point.AuthorName, url)
	}

	dispatcher := dispatch.NewEditDispatcher(s.client, s.repo, s.auth)
	outcome, err := dispatcher.Dispatch(ctx, point, editTitle)
	if err != nil {
		return fmt.Errorf("edit failed: %w", err)
	}
	if outcome.Prompted {
		os.Exit(1)
	}

	fmt.Printf("✓ Updated title of %s\n", outcome.Result.URL)
	return nil
}

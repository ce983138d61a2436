package llm

import (
	"context"
	"fmt"

	"github.com/claimtree/claimtree/internal/model"
)

// Summarizer wraps a provider with tree-specific plumbing: collecting the
// source allowlist and building the request.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration. Returns an error
// when the configured provider cannot be constructed.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// Summarize generates a summary of the fetched tree. The tree is never
// mutated.
func (s *Summarizer) Summarize(ctx context.Context, root *model.Point) (*SummarizeResponse, error) {
	if !s.IsEnabled() {
		return nil, fmt.Errorf("no LLM provider configured")
	}
	if root == nil {
		return nil, fmt.Errorf("no tree to summarize")
	}

	return s.provider.Summarize(ctx, SummarizeRequest{
		Root:       root,
		SourceURLs: CollectSourceURLs(root),
		MaxTokens:  s.config.MaxTokens,
	})
}

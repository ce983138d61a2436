package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/claimtree/claimtree/internal/model"
)

// Provider generates summaries of fetched argument trees. Summaries are a
// read-only convenience: they never mutate tree state and never affect any
// score the server computes.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a summary of the tree with strict source mode
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is the input for tree summarization
type SummarizeRequest struct {
	// Root is the fetched argument tree to summarize
	Root *model.Point

	// SourceURLs is the strict allowlist of URLs the LLM may cite,
	// collected from the tree's provenance entries
	SourceURLs []string

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model overrides the configured model when non-empty
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse is the LLM's output
type SummarizeResponse struct {
	Summary    string
	CitedURLs  []string // URLs the LLM actually cited, for verification
	Model      string
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	Provider  string // "openai", "ollama", ""
	Model     string
	APIKey    string
	BaseURL   string // Custom endpoint, e.g. an Ollama-compatible server
	Timeout   int    // seconds
	MaxTokens int

	// StrictSources enforces the URL allowlist on the response
	StrictSources bool
}

// DefaultConfig returns sensible defaults (provider disabled)
func DefaultConfig() Config {
	return Config{
		Timeout:       30,
		MaxTokens:     1000,
		StrictSources: true,
	}
}

// BuildPrompt constructs the default summarization prompt. The tree is
// flattened into an indented outline so the model sees polarity, score and
// relevance per claim.
func BuildPrompt(root *model.Point, sourceURLs []string) string {
	prompt := fmt.Sprintf(`You are summarizing a debate tree from an argument-mapping service. Each claim has a net score (community agreement) and evidence claims supporting or countering it.

CRITICAL RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT infer, speculate, or cite external sources beyond this list.
3. Describe the state of the debate, not the truth of the claims. Use phrases like:
   - "The claim is supported by N community-scored points..."
   - "The strongest counterargument is..."
4. Mention relevance percentages when an evidence claim is weakly relevant.

Debate tree:
%s
Provide a 3-5 sentence summary of the debate's shape: the main claim, the strongest support, the strongest counter, and overall community sentiment.`,
		joinURLs(sourceURLs), Outline(root))

	return prompt
}

// Outline flattens a tree into an indented text outline
func Outline(root *model.Point) string {
	var b strings.Builder
	type item struct {
		point  *model.Point
		link   *model.Link
		indent int
	}

	work := []item{{point: root}}
	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]
		if it.point == nil {
			continue
		}

		tag := "claim"
		switch model.Classify(it.link) {
		case model.EvidenceSupport:
			tag = "supports"
		case model.EvidenceCounter:
			tag = "counters"
		}

		b.WriteString(strings.Repeat("  ", it.indent))
		b.WriteString(fmt.Sprintf("- [%s, score %+d", tag, it.point.PointValue))
		if it.link != nil {
			b.WriteString(fmt.Sprintf(", relevance %d%%", it.link.Relevance))
		}
		b.WriteString("] " + it.point.Title + "\n")

		for _, coll := range []model.EvidenceCollection{it.point.CounterPoints, it.point.SupportingPoints} {
			for i := len(coll.Edges) - 1; i >= 0; i-- {
				edge := coll.Edges[i]
				if edge.Node != nil {
					work = append(work, item{point: edge.Node, link: edge.Link, indent: it.indent + 1})
				}
			}
		}
	}

	return b.String()
}

// CollectSourceURLs gathers the provenance URLs of every point in the tree
func CollectSourceURLs(root *model.Point) []string {
	seen := make(map[string]bool)
	var urls []string

	work := []*model.Point{root}
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]
		if p == nil {
			continue
		}

		for _, s := range p.Sources {
			if s.URL != "" && !seen[s.URL] {
				seen[s.URL] = true
				urls = append(urls, s.URL)
			}
		}

		for _, coll := range []model.EvidenceCollection{p.SupportingPoints, p.CounterPoints} {
			for _, edge := range coll.Edges {
				if edge.Node != nil {
					work = append(work, edge.Node)
				}
			}
		}
	}

	return urls
}

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "(No source URLs available)"
	}

	result := ""
	for i, url := range urls {
		if i >= 20 { // Cap the allowlist to avoid token bloat
			result += fmt.Sprintf("\n... and %d more URLs", len(urls)-20)
			break
		}
		result += fmt.Sprintf("\n- %s", url)
	}
	return result
}

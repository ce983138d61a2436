package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// WriteText renders a node tree as indented terminal output. maxWidth
// truncates titles; <= 0 disables truncation.
func WriteText(w io.Writer, root *Node, maxWidth int) error {
	if root == nil {
		_, err := fmt.Fprintln(w, "(no point)")
		return err
	}
	return writeNode(w, root, 0, maxWidth)
}

func writeNode(w io.Writer, n *Node, depth, maxWidth int) error {
	indent := strings.Repeat("  ", depth)

	if n.Placeholder {
		_, err := fmt.Fprintf(w, "%s[%d] (unresolved)\n", indent, n.Index)
		return err
	}

	p := n.Point

	marker := ""
	if n.ClassName != "" {
		marker = "[" + n.ClassName + "] "
	}

	title := StripMarkup(p.Title)
	if maxWidth > 0 {
		// Truncate by runes so a multibyte title is never cut mid-character
		if runes := []rune(title); len(runes) > maxWidth {
			title = string(runes[:maxWidth-1]) + "…"
		}
	}

	if _, err := fmt.Fprintf(w, "%s%s%s  %s\n", indent, marker, title, n.Score); err != nil {
		return err
	}

	// Byline row: author, agree/disagree tallies, comment and support counts
	voteState := ""
	switch {
	case n.AgreeActive:
		voteState = "  [you agree]"
	case n.DisagreeActive:
		voteState = "  [you disagree]"
	}
	edit := ""
	if n.CanEdit {
		edit = "  (editable)"
	}
	if _, err := fmt.Fprintf(w, "%s  by @%s · agreed %d · disagreed %d · comments %d · supports %d%s%s\n",
		indent, p.AuthorName, p.UpVotes, p.DownVotes, p.NumComments, p.SupportedCount, voteState, edit); err != nil {
		return err
	}

	if n.HasParent {
		if _, err := fmt.Fprintf(w, "%s  Relevance %d%%\n", indent, n.Relevance); err != nil {
			return err
		}
	}

	for _, s := range p.Sources {
		name := s.Name
		if name == "" {
			name = s.URL
		}
		if _, err := fmt.Fprintf(w, "%s  source: %s <%s>\n", indent, StripMarkup(name), s.URL); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%s  %s\n", indent, n.Affordance); err != nil {
		return err
	}

	if !n.Expanded {
		return nil
	}

	if len(n.Supporting) > 0 {
		if _, err := fmt.Fprintf(w, "%s  Supporting Claims\n", indent); err != nil {
			return err
		}
	}
	for _, child := range n.Supporting {
		if err := writeNode(w, child, depth+1, maxWidth); err != nil {
			return err
		}
	}

	if len(n.Counter) > 0 {
		if _, err := fmt.Fprintf(w, "%s  Counter Claims\n", indent); err != nil {
			return err
		}
	}
	for _, child := range n.Counter {
		if err := writeNode(w, child, depth+1, maxWidth); err != nil {
			return err
		}
	}

	return nil
}

// StripMarkup flattens any embedded markup to plain text. Titles come from
// a rich-text editor upstream, so stray tags and entities show up in
// otherwise plain fields.
func StripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(b.String())
}

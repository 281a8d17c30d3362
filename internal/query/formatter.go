package query

import (
	"fmt"
	"strings"
)

// FormatResults renders both result sets for terminal display.
func FormatResults(results *Results) string {
	var b strings.Builder

	b.WriteString("Vector search results:\n")
	switch {
	case results.VectorErr != nil:
		fmt.Fprintf(&b, "Search failed: %v\n", results.VectorErr)
	case len(results.Vector) == 0:
		b.WriteString("No results.\n")
	default:
		for _, r := range results.Vector {
			fmt.Fprintf(&b, "ID: %s, Score: %.4f\n", r.Hit.Key, r.Hit.Score)
			if r.Document != nil {
				fmt.Fprintf(&b, "Title: %s\n", r.Document.Title)
				fmt.Fprintf(&b, "Date: %s\n", r.Document.PublishedAt)
				fmt.Fprintf(&b, "Url: %s\n", r.Document.SourceURL)
			}
			b.WriteString("--------\n")
		}
	}

	b.WriteString("\nHybrid search results:\n")
	switch {
	case results.HybridErr != nil:
		fmt.Fprintf(&b, "Search failed: %v\n", results.HybridErr)
	case len(results.Hybrid) == 0:
		b.WriteString("No results.\n")
	default:
		for _, hit := range results.Hybrid {
			fmt.Fprintf(&b, "Score: %.4f\n", hit.Score)
			fmt.Fprintf(&b, "Title: %s\n", hit.Title)
			fmt.Fprintf(&b, "Date: %s\n", hit.PublishedAt)
			fmt.Fprintf(&b, "Author: %s\n", hit.Author)
			if hit.ReactionCount.Known() {
				fmt.Fprintf(&b, "Reactions: %d\n", hit.ReactionCount)
			} else {
				b.WriteString("Reactions: unavailable\n")
			}
			fmt.Fprintf(&b, "Url: %s\n", hit.SourceURL)
			b.WriteString("--------\n")
		}
	}

	return b.String()
}

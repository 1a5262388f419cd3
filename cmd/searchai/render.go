package main

import (
	"fmt"
	"io"
	"strings"

	searchai "github.com/nitinanarwal/Search-AI"
)

const noResultsMessage = "No results. Try widening the radius or different keywords."

// printCards renders results as plain-text cards, one blank line apart.
func printCards(w io.Writer, results []searchai.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, noResultsMessage)
		return
	}
	for i := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printCard(w, &results[i])
	}
}

func printCard(w io.Writer, r *searchai.Result) {
	fmt.Fprintf(w, "%s  ★ %s\n", r.Name, r.RatingLabel)
	fmt.Fprintf(w, "  %s\n", r.Description)

	loc := "  📍 " + r.Location
	if r.Explanation != "" {
		loc += " • " + r.Explanation
	}
	fmt.Fprintln(w, loc)

	if len(r.Causes) > 0 {
		fmt.Fprintf(w, "  Causes: %s\n", strings.Join(r.Causes, ", "))
	}

	var badges []string
	if r.Verified {
		badges = append(badges, "✓ Verified")
	}
	if r.ScoreLabel != "" {
		badges = append(badges, r.ScoreLabel)
	}
	if len(badges) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(badges, "  "))
	}
}

package model

import (
	"fmt"
	"io"
)

// Coverage summarizes how well the two name spaces reconciled in one run.
// Gaps here are the signal for extending the override table, so the report is
// printed, not merely logged.
type Coverage struct {
	TotalBoundaries     int
	MatchedBoundaries   int
	MalformedRows       int
	DegenerateRows      int
	UnmatchedSources    []string
	UnmatchedBoundaries []string
	SkippedAggregations []string
}

// Write renders the coverage report in a human-readable form.
func (c Coverage) Write(w io.Writer) {
	fmt.Fprintf(w, "Matched municipalities: %d / %d\n", c.MatchedBoundaries, c.TotalBoundaries)
	if c.MalformedRows > 0 {
		fmt.Fprintf(w, "Malformed census rows excluded: %d\n", c.MalformedRows)
	}
	if c.DegenerateRows > 0 {
		fmt.Fprintf(w, "Degenerate-ratio rows excluded: %d\n", c.DegenerateRows)
	}
	fmt.Fprintf(w, "Unmatched census names (%d): %v\n", len(c.UnmatchedSources), c.UnmatchedSources)
	fmt.Fprintf(w, "Unmatched boundary names (%d): %v\n", len(c.UnmatchedBoundaries), c.UnmatchedBoundaries)
	for _, s := range c.SkippedAggregations {
		fmt.Fprintf(w, "Warning: aggregation %q skipped (empty subset or zero total)\n", s)
	}
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/raulmeloferreira/maven-mapper/pkg/aggregate"
)

// Style selects how a count line is rendered.
type Style int

const (
	// Labelled renders "LABEL: value, LABEL: value - Count: N".
	Labelled Style = iota
	// Coordinates renders "group:artifact[:version] -> N occurrences".
	Coordinates
)

// CountOptions configures WriteCounts.
type CountOptions struct {
	Style      Style
	Labels     []string // column labels for Labelled
	Title      string   // optional first line
	TotalLabel string   // e.g. "Total count"
	Unknown    string   // rendering of unknown values
}

// WriteCounts prints every entry of t in table order and a total line.
func WriteCounts(w io.Writer, t *aggregate.Table, opts CountOptions) error {
	if opts.Style == Labelled && len(opts.Labels) != t.Arity() {
		return fmt.Errorf("%d labels for tuples of arity %d", len(opts.Labels), t.Arity())
	}

	if opts.Title != "" {
		if _, err := fmt.Fprintln(w, opts.Title); err != nil {
			return err
		}
	}

	for _, e := range t.Entries() {
		if _, err := fmt.Fprintln(w, countLine(e, opts)); err != nil {
			return err
		}
	}

	label := opts.TotalLabel
	if label == "" {
		label = "Total"
	}
	_, err := fmt.Fprintf(w, "%s: %d\n", label, t.Total())
	return err
}

func countLine(e aggregate.Entry, opts CountOptions) string {
	values := make([]string, len(e.Tuple))
	for i, v := range e.Tuple {
		values[i] = v.Or(opts.Unknown)
	}

	if opts.Style == Coordinates {
		return fmt.Sprintf("%s -> %d occurrences", strings.Join(values, ":"), e.Count)
	}

	pairs := make([]string, len(values))
	for i, v := range values {
		pairs[i] = opts.Labels[i] + ": " + v
	}
	return fmt.Sprintf("%s - Count: %d", strings.Join(pairs, ", "), e.Count)
}

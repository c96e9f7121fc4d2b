// Package aggregate counts occurrences of field tuples.
//
// A Table keeps one count per distinct tuple and the order in which tuples
// were first seen. Entries come back sorted by descending count, ties in
// first-seen order, so identical input always produces identical reports.
package aggregate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/raulmeloferreira/maven-mapper/pkg/field"
)

// Tuple is an ordered key of field values. Unknown values are part of the
// key: two tuples both missing a field match on it.
type Tuple []field.Value

// key encodes t unambiguously for map lookups.
func (t Tuple) key() string {
	var b strings.Builder
	for _, v := range t {
		text, ok := v.Get()
		if !ok {
			b.WriteString("u;")
			continue
		}
		b.WriteByte('k')
		b.WriteString(strconv.Itoa(len(text)))
		b.WriteByte(':')
		b.WriteString(text)
	}
	return b.String()
}

// Entry is one distinct tuple and how often it was observed.
type Entry struct {
	Tuple Tuple
	Count int
}

// Table is a frequency table over tuples of a fixed arity.
type Table struct {
	arity   int
	index   map[string]int
	entries []Entry
	total   int
}

// NewTable creates an empty table for tuples of the given arity.
func NewTable(arity int) *Table {
	return &Table{
		arity: arity,
		index: make(map[string]int),
	}
}

// Add records one observation of tuple. It panics if the tuple's arity
// differs from the table's.
func (t *Table) Add(tuple Tuple) {
	if len(tuple) != t.arity {
		panic(fmt.Sprintf("aggregate: tuple of arity %d added to table of arity %d", len(tuple), t.arity))
	}

	t.total++
	k := tuple.key()
	if i, ok := t.index[k]; ok {
		t.entries[i].Count++
		return
	}
	t.index[k] = len(t.entries)
	t.entries = append(t.entries, Entry{Tuple: slices.Clone(tuple), Count: 1})
}

// Count returns how often tuple was observed.
func (t *Table) Count(tuple Tuple) int {
	if i, ok := t.index[tuple.key()]; ok {
		return t.entries[i].Count
	}
	return 0
}

// Arity returns the tuple width of the table.
func (t *Table) Arity() int { return t.arity }

// Len returns the number of distinct tuples.
func (t *Table) Len() int { return len(t.entries) }

// Total returns the number of observations, duplicates included.
func (t *Table) Total() int { return t.total }

// Entries returns the table sorted by descending count. Equal counts keep
// first-seen order.
func (t *Table) Entries() []Entry {
	out := slices.Clone(t.entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return b.Count - a.Count
	})
	return out
}

package catalog

import (
	"sort"
	"strings"

	"github.com/convergencelab/sabius/internal/knowledge"
)

// DefaultSearchLimit caps search results when the caller does not ask
// for a specific limit.
const DefaultSearchLimit = 10

// Catalog is an ordered, immutable sequence of records of one kind,
// with search tokens derived from the record fields at construction.
type Catalog[T Record] struct {
	records []T
	tokens  [][]string // per record, normalized words of its fields
	groups  map[string][]int
}

// New builds a catalog over the given records, preserving their order.
func New[T Record](records []T) *Catalog[T] {
	c := &Catalog[T]{
		records: records,
		tokens:  make([][]string, len(records)),
		groups:  make(map[string][]int),
	}
	for i, r := range records {
		c.tokens[i] = searchTokens(r)
		if key := r.GroupKey(); key != "" {
			c.groups[key] = append(c.groups[key], i)
		}
	}
	return c
}

// searchTokens derives the normalized token set of a record. A
// deterministic function of the field values.
func searchTokens(r Record) []string {
	var tokens []string
	for _, f := range r.SearchFields() {
		tokens = append(tokens, knowledge.Tokenize(f)...)
	}
	return tokens
}

// Len returns the number of records.
func (c *Catalog[T]) Len() int { return len(c.records) }

// All returns the records in catalog order. Callers must not mutate
// the returned slice.
func (c *Catalog[T]) All() []T { return c.records }

// Search matches query tokens against record tokens with a
// case-insensitive substring test in both directions, so "gloria"
// finds "CARVAJAL CARRASCAL GLORIA" and a typed full name still finds
// its partial tokens. Results are ranked by the number of matching
// query tokens, catalog order breaking ties. No match yields an empty
// result, never an error. limit <= 0 applies DefaultSearchLimit.
func (c *Catalog[T]) Search(query string, limit int) []T {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	queryTokens := knowledge.Tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	type scored struct {
		index int
		hits  int
	}
	var matches []scored

	for i := range c.records {
		hits := 0
		for _, qt := range queryTokens {
			if tokenMatches(qt, c.tokens[i]) {
				hits++
			}
		}
		if hits > 0 {
			matches = append(matches, scored{index: i, hits: hits})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].hits != matches[j].hits {
			return matches[i].hits > matches[j].hits
		}
		return matches[i].index < matches[j].index
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]T, len(matches))
	for i, m := range matches {
		results[i] = c.records[m.index]
	}
	return results
}

// tokenMatches reports whether the query token matches any record
// token: either can be a substring of the other.
func tokenMatches(queryToken string, recordTokens []string) bool {
	for _, rt := range recordTokens {
		if strings.Contains(rt, queryToken) || strings.Contains(queryToken, rt) {
			return true
		}
	}
	return false
}

// ByGroup returns the records whose grouping field equals key exactly,
// in catalog order. Unknown keys yield an empty result.
func (c *Catalog[T]) ByGroup(key string) []T {
	indices := c.groups[key]
	results := make([]T, len(indices))
	for i, idx := range indices {
		results[i] = c.records[idx]
	}
	return results
}

// Groups returns the distinct grouping keys in sorted order.
func (c *Catalog[T]) Groups() []string {
	keys := make([]string, 0, len(c.groups))
	for k := range c.groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package knowledge

// Index is the inverted keyword index derived from a Store. It is an
// exact derived structure: rebuilding from the same store always
// yields an identical index, and it is never persisted on its own.
type Index struct {
	entries map[string][]string // normalized keyword -> module ids, load order
}

// BuildIndex derives the inverted index from the store. Pure function
// of the store content.
func BuildIndex(store *Store) *Index {
	idx := &Index{entries: make(map[string][]string)}
	for _, m := range store.All() {
		for _, k := range m.Keywords {
			idx.entries[k] = append(idx.entries[k], m.ID)
		}
	}
	return idx
}

// Lookup returns the ids of the modules carrying the given term as a
// keyword, in store load order. An unknown term yields an empty
// result, never an error.
func (idx *Index) Lookup(term string) []string {
	return idx.entries[Normalize(term)]
}

// Terms returns the number of distinct indexed keywords.
func (idx *Index) Terms() int {
	return len(idx.entries)
}

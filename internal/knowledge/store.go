package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Store is the immutable catalog of knowledge modules. It is built
// once by LoadStore and read-only afterwards.
type Store struct {
	modules []*Module
	byID    map[string]*Module
}

// moduleSource mirrors the on-disk JSON schema of one module file.
type moduleSource struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Keywords     []string `json:"keywords"`
	Content      string   `json:"content"`
	SizeEstimate int      `json:"size_estimate,omitempty"`
}

// LoadStore reads every *.json file in dir and builds the store.
// Files are loaded in lexical order, which defines the stable load
// order used for selection tie-breaks.
//
// Any malformed source fails the entire load with a *LoadError naming
// the offending file — there is no partial store. The module with id
// "core" must exist.
func LoadStore(dir string) (*Store, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scanning knowledge dir: %w", err)
	}
	if len(paths) == 0 {
		return nil, &LoadError{Source: dir, Reason: "no knowledge module files found"}
	}
	sort.Strings(paths)

	s := &Store{byID: make(map[string]*Module, len(paths))}

	for _, path := range paths {
		m, err := loadModule(path)
		if err != nil {
			return nil, err
		}
		if _, dup := s.byID[m.ID]; dup {
			return nil, &LoadError{Source: path, Reason: fmt.Sprintf("duplicate module id %q", m.ID)}
		}
		m.loadOrder = len(s.modules)
		s.modules = append(s.modules, m)
		s.byID[m.ID] = m
	}

	if _, ok := s.byID[CoreModuleID]; !ok {
		return nil, &LoadError{Source: dir, Reason: `mandatory "core" module is missing`}
	}

	return s, nil
}

func loadModule(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Reason: err.Error()}
	}

	var src moduleSource
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, &LoadError{Source: path, Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	switch {
	case src.ID == "":
		return nil, &LoadError{Source: path, Reason: "missing required field 'id'"}
	case src.Title == "":
		return nil, &LoadError{Source: path, Reason: "missing required field 'title'"}
	case src.Content == "":
		return nil, &LoadError{Source: path, Reason: "missing required field 'content'"}
	case len(src.Keywords) == 0 && src.ID != CoreModuleID:
		return nil, &LoadError{Source: path, Reason: "missing required field 'keywords'"}
	}

	keywords := make([]string, 0, len(src.Keywords))
	seen := make(map[string]bool, len(src.Keywords))
	for _, k := range src.Keywords {
		k = Normalize(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keywords = append(keywords, k)
	}
	if len(keywords) == 0 && src.ID != CoreModuleID {
		return nil, &LoadError{Source: path, Reason: "keywords normalize to an empty set"}
	}

	size := src.SizeEstimate
	if size <= 0 {
		// Same heuristic the assembler uses: ~4 characters per token.
		size = len(src.Content) / 4
	}

	return &Module{
		ID:           src.ID,
		Title:        src.Title,
		Keywords:     keywords,
		Content:      src.Content,
		SizeEstimate: size,
	}, nil
}

// Get returns the module with the given id, or nil if unknown.
func (s *Store) Get(id string) *Module {
	return s.byID[id]
}

// All returns the modules in load order. The returned slice is shared;
// callers must not mutate it.
func (s *Store) All() []*Module {
	return s.modules
}

// Core returns the mandatory core module. LoadStore guarantees it exists.
func (s *Store) Core() *Module {
	return s.byID[CoreModuleID]
}

// Len returns the number of loaded modules.
func (s *Store) Len() int {
	return len(s.modules)
}

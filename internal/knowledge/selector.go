package knowledge

import (
	"sort"

	"github.com/convergencelab/sabius/internal/logging"
	"go.uber.org/zap"
)

// SelectConfig holds the two selection tunables.
type SelectConfig struct {
	// MaxBudget is the maximum total size estimate of a selection,
	// in the same units as Module.SizeEstimate.
	MaxBudget int

	// MaxModules caps how many modules beyond core are accepted.
	MaxModules int
}

// Select picks the modules to inject for a query. It is a pure
// function of (query, index, store, cfg): identical inputs always
// produce the identical ordered result.
//
// The core module is always first and always counted against the
// budget; if core alone exceeds the budget it is accepted anyway.
// Every other module is scored by the number of query tokens found in
// its keyword set, ranked score-descending with load order as the
// tie-break, and accepted greedily while it fits the remaining budget
// and the module cap. A module that would overflow the budget is
// skipped — never substituted, never truncated.
func Select(query string, idx *Index, store *Store, cfg SelectConfig) []*Module {
	core := store.Core()
	selected := []*Module{core}
	running := core.SizeEstimate

	if running > cfg.MaxBudget {
		logging.L().Warn("core module alone exceeds the context budget",
			zap.Int("core_size", core.SizeEstimate),
			zap.Int("max_budget", cfg.MaxBudget))
	}

	scores := make(map[string]int)
	for _, token := range Tokenize(query) {
		for _, id := range idx.Lookup(token) {
			if id == CoreModuleID {
				continue
			}
			scores[id]++
		}
	}
	if len(scores) == 0 {
		return selected
	}

	candidates := make([]*Module, 0, len(scores))
	for id := range scores {
		candidates = append(candidates, store.Get(id))
	}
	sort.Slice(candidates, func(i, j int) bool {
		si, sj := scores[candidates[i].ID], scores[candidates[j].ID]
		if si != sj {
			return si > sj
		}
		return candidates[i].loadOrder < candidates[j].loadOrder
	})

	accepted := 0
	for _, m := range candidates {
		if accepted >= cfg.MaxModules {
			break
		}
		if running+m.SizeEstimate > cfg.MaxBudget {
			logging.L().Debug("module skipped: over budget",
				zap.String("module", m.ID),
				zap.Int("size", m.SizeEstimate),
				zap.Int("remaining", cfg.MaxBudget-running))
			continue
		}
		selected = append(selected, m)
		running += m.SizeEstimate
		accepted++
	}

	return selected
}

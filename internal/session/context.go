// Package session owns the per-dialogue state (conversation window)
// and the shared immutable context every session reads from.
package session

import (
	"github.com/convergencelab/sabius/internal/catalog"
	"github.com/convergencelab/sabius/internal/config"
	"github.com/convergencelab/sabius/internal/knowledge"
	"github.com/convergencelab/sabius/internal/logging"
	"github.com/convergencelab/sabius/internal/prompt"
	"go.uber.org/zap"
)

// Context bundles everything built at startup: the knowledge store,
// its derived index, the entity catalogs, and the assembler. It is
// constructed once, never mutated afterwards, and shared by every
// session — there is no ambient global state.
type Context struct {
	Store     *knowledge.Store
	Index     *knowledge.Index
	Catalogs  *catalog.Catalogs
	Assembler *prompt.Assembler

	selectCfg knowledge.SelectConfig
	windowMax int
}

// NewContext performs the whole synchronous startup load. Any failure
// here is fatal: the process must not come up with a partial
// knowledge base.
func NewContext(cfg config.Config) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := knowledge.LoadStore(cfg.KnowledgeDir)
	if err != nil {
		return nil, err
	}

	catalogs, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		Store:     store,
		Index:     knowledge.BuildIndex(store),
		Catalogs:  catalogs,
		Assembler: prompt.NewAssembler(),
		selectCfg: knowledge.SelectConfig{
			MaxBudget:  cfg.MaxBudget,
			MaxModules: cfg.MaxModules,
		},
		windowMax: cfg.WindowMaxSize,
	}

	logging.L().Info("knowledge context loaded",
		zap.Int("modules", store.Len()),
		zap.Int("keywords", ctx.Index.Terms()),
		zap.Int("professors", catalogs.Professors.Len()),
		zap.Int("publications", catalogs.Publications.Len()),
		zap.Int("units", catalogs.Units.Len()))

	return ctx, nil
}

// Stats summarizes the loaded knowledge base.
type Stats struct {
	Modules              int      `json:"modules"`
	Keywords             int      `json:"keywords"`
	Professors           int      `json:"professors"`
	Publications         int      `json:"publications"`
	Units                int      `json:"units"`
	EstimatedTotalTokens int      `json:"estimated_total_tokens"`
	ModuleIDs            []string `json:"module_ids"`
}

// Stats returns aggregate counts over the loaded context.
func (c *Context) Stats() Stats {
	s := Stats{
		Modules:      c.Store.Len(),
		Keywords:     c.Index.Terms(),
		Professors:   c.Catalogs.Professors.Len(),
		Publications: c.Catalogs.Publications.Len(),
		Units:        c.Catalogs.Units.Len(),
	}
	for _, m := range c.Store.All() {
		s.EstimatedTotalTokens += m.SizeEstimate
		s.ModuleIDs = append(s.ModuleIDs, m.ID)
	}
	return s
}

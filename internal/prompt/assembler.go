// Package prompt renders the final instruction text handed to the
// dialogue engine: a fixed base template followed by the selected
// knowledge modules.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/convergencelab/sabius/internal/knowledge"
)

//go:embed template.md
var baseTemplate string

// sectionDelimiter separates the base template and each module section.
const sectionDelimiter = "\n\n---\n\n"

// Assembler concatenates the base template with selected module
// content. It carries no mutable state and is safe to share.
type Assembler struct {
	base         string
	baseEstimate int
}

// NewAssembler returns an assembler over the embedded Sabius base
// template.
func NewAssembler() *Assembler {
	return NewAssemblerWithTemplate(baseTemplate)
}

// NewAssemblerWithTemplate returns an assembler over a custom base
// template. Used by tests and by deployments that override the
// embedded persona.
func NewAssemblerWithTemplate(base string) *Assembler {
	return &Assembler{
		base:         strings.TrimRight(base, "\n"),
		baseEstimate: EstimateTokens(base),
	}
}

// BaseEstimate returns the size estimate of the base template alone.
func (a *Assembler) BaseEstimate() int {
	return a.baseEstimate
}

// Assemble renders the instruction text for the given modules, in
// selection order, and returns it together with the total size
// estimate (base estimate plus each module's estimate). Module content
// is never truncated here: a module that does not fit the budget is
// excluded entirely by the selector, not partially included.
func (a *Assembler) Assemble(modules []*knowledge.Module) (string, int) {
	sections := make([]string, 0, len(modules)+1)
	sections = append(sections, a.base)

	size := a.baseEstimate
	for _, m := range modules {
		sections = append(sections, fmt.Sprintf("## %s\n\n%s", m.Title, strings.TrimRight(m.Content, "\n")))
		size += m.SizeEstimate
	}

	return strings.Join(sections, sectionDelimiter), size
}

// EstimateTokens approximates the token cost of a block of text at
// four characters per token, the same heuristic the module loader
// applies to sources without an explicit size estimate.
func EstimateTokens(s string) int {
	return len(s) / 4
}

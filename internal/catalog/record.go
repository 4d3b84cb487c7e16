// Package catalog implements the structured entity catalogs: people,
// publications, and research units scraped from the university's PURE
// portal. Catalogs are loaded once at startup, immutable afterwards,
// and searched with a literal bidirectional substring match — the
// testable baseline, not a semantic ranking.
package catalog

import (
	"fmt"
	"strings"
)

// Record is one entry of a catalog. Implementations expose the field
// values that search tokens are derived from, an optional grouping
// key, and a markdown rendering for tool results.
type Record interface {
	// SearchFields returns the field values indexed for search.
	SearchFields() []string

	// GroupKey returns the categorical grouping value, or "" for
	// ungrouped catalogs.
	GroupKey() string

	// Markdown renders the record as a result line block.
	Markdown() string
}

// Person is a faculty member record (faculty_professors.json).
type Person struct {
	Nombre    string `json:"nombre"`
	Titulo    string `json:"titulo,omitempty"`
	Categoria string `json:"categoria_institucional,omitempty"`
	Pais      string `json:"pais,omitempty"`
	Pregrado  string `json:"pregrado,omitempty"`
	Grupo     string `json:"grupo,omitempty"`
}

func (p Person) SearchFields() []string {
	return []string{p.Nombre, p.Titulo, p.Categoria, p.Grupo}
}

func (p Person) GroupKey() string { return p.Grupo }

func (p Person) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "- **%s**\n", p.Nombre)
	if p.Titulo != "" {
		fmt.Fprintf(&b, "  - Título: %s\n", p.Titulo)
	}
	if p.Categoria != "" {
		fmt.Fprintf(&b, "  - Categoría: %s\n", p.Categoria)
	}
	if p.Grupo != "" {
		fmt.Fprintf(&b, "  - Grupo: %s\n", p.Grupo)
	}
	return b.String()
}

// Publication is one research product (research_publications.json).
// Unidad is the organizational unit it was published under.
type Publication struct {
	Titulo  string `json:"titulo"`
	Revista string `json:"revista,omitempty"`
	Grupo   string `json:"grupo,omitempty"`
	Unidad  string `json:"unidad,omitempty"`
}

func (p Publication) SearchFields() []string {
	return []string{p.Titulo, p.Revista, p.Grupo, p.Unidad}
}

func (p Publication) GroupKey() string { return p.Unidad }

func (p Publication) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "- **%s**\n", p.Titulo)
	if p.Revista != "" {
		fmt.Fprintf(&b, "  - Revista: %s\n", p.Revista)
	}
	if p.Grupo != "" {
		fmt.Fprintf(&b, "  - Grupo: %s\n", p.Grupo)
	}
	if p.Unidad != "" {
		fmt.Fprintf(&b, "  - Unidad: %s\n", p.Unidad)
	}
	return b.String()
}

// ResearchUnit is a research group or organizational unit
// (research_units.json).
type ResearchUnit struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Faculty  string `json:"faculty,omitempty"`
}

func (u ResearchUnit) SearchFields() []string {
	return []string{u.Name, u.Category, u.Faculty}
}

func (u ResearchUnit) GroupKey() string { return u.Faculty }

func (u ResearchUnit) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "- **%s**\n", u.Name)
	if u.Category != "" {
		fmt.Fprintf(&b, "  - Categoría: %s\n", u.Category)
	}
	if u.Faculty != "" {
		fmt.Fprintf(&b, "  - Facultad: %s\n", u.Faculty)
	}
	return b.String()
}

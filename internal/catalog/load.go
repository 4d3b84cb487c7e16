package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// File names the loader expects inside the catalog directory. They
// match the files the PURE scraper produces.
const (
	professorsFile   = "faculty_professors.json"
	publicationsFile = "research_publications.json"
	unitsFile        = "research_units.json"
)

// LoadError reports a malformed or missing catalog source. Fatal at
// startup, same as a knowledge module load failure.
type LoadError struct {
	Source string
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog load %s: %s", e.Source, e.Reason)
}

// Catalogs bundles the three entity catalogs built at startup.
type Catalogs struct {
	Professors   *Catalog[Person]
	Publications *Catalog[Publication]
	Units        *Catalog[ResearchUnit]
}

// Load reads the three catalog files from dir. All three are required
// startup inputs; any missing file or schema violation fails the whole
// load with a *LoadError naming the source.
func Load(dir string) (*Catalogs, error) {
	professors, err := loadProfessors(filepath.Join(dir, professorsFile))
	if err != nil {
		return nil, err
	}

	publications, err := loadPublications(filepath.Join(dir, publicationsFile))
	if err != nil {
		return nil, err
	}

	units, err := loadUnits(filepath.Join(dir, unitsFile))
	if err != nil {
		return nil, err
	}

	return &Catalogs{
		Professors:   New(professors),
		Publications: New(publications),
		Units:        New(units),
	}, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Source: path, Reason: err.Error()}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &LoadError{Source: path, Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return nil
}

func loadProfessors(path string) ([]Person, error) {
	var src struct {
		Professors []Person `json:"professors"`
	}
	if err := readJSON(path, &src); err != nil {
		return nil, err
	}
	if len(src.Professors) == 0 {
		return nil, &LoadError{Source: path, Reason: "no professors found"}
	}
	for i, p := range src.Professors {
		if p.Nombre == "" {
			return nil, &LoadError{Source: path, Reason: fmt.Sprintf("professor %d: missing required field 'nombre'", i)}
		}
	}
	return src.Professors, nil
}

// loadPublications flattens the scraper's by_unit grouping into an
// ordered record sequence. Unit names are visited in sorted order so
// the catalog order — and with it every search tie-break — is stable
// across runs.
func loadPublications(path string) ([]Publication, error) {
	var src struct {
		ByUnit map[string][]Publication `json:"by_unit"`
	}
	if err := readJSON(path, &src); err != nil {
		return nil, err
	}
	if len(src.ByUnit) == 0 {
		return nil, &LoadError{Source: path, Reason: "no publications found"}
	}

	unitNames := make([]string, 0, len(src.ByUnit))
	for name := range src.ByUnit {
		unitNames = append(unitNames, name)
	}
	sort.Strings(unitNames)

	var publications []Publication
	for _, unit := range unitNames {
		for i, pub := range src.ByUnit[unit] {
			if pub.Titulo == "" {
				return nil, &LoadError{Source: path, Reason: fmt.Sprintf("unit %q publication %d: missing required field 'titulo'", unit, i)}
			}
			pub.Unidad = unit
			publications = append(publications, pub)
		}
	}
	return publications, nil
}

func loadUnits(path string) ([]ResearchUnit, error) {
	var src struct {
		Units []ResearchUnit `json:"units"`
	}
	if err := readJSON(path, &src); err != nil {
		return nil, err
	}
	if len(src.Units) == 0 {
		return nil, &LoadError{Source: path, Reason: "no research units found"}
	}
	for i, u := range src.Units {
		if u.Name == "" {
			return nil, &LoadError{Source: path, Reason: fmt.Sprintf("unit %d: missing required field 'name'", i)}
		}
	}
	return src.Units, nil
}

package material

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/materials.yaml
var defaultData []byte

// coefficientKeys are the Sellmeier coefficient names in order.
const coefficientKeys = "ABCDEF"

// Table is a read-only set of named materials. It is safe for concurrent use.
type Table struct {
	materials map[string]Properties
}

type entry struct {
	Coefficients map[string]float64 `yaml:"sellmeier_coefficients"`
}

// Default returns the table built from the embedded dataset.
func Default() (*Table, error) {
	return Load(bytes.NewReader(defaultData))
}

// LoadFile reads a material table from a YAML file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open material file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a material table from a YAML document mapping material names
// to their sellmeier_coefficients.
func Load(r io.Reader) (*Table, error) {
	var doc map[string]entry
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode material table: %w", err)
	}
	t := &Table{materials: make(map[string]Properties, len(doc))}
	for name, e := range doc {
		p, err := FromCoefficients(name, e.Coefficients)
		if err != nil {
			return nil, err
		}
		t.materials[name] = p
	}
	return t, nil
}

// FromCoefficients builds Properties from a map keyed like "Ae", "Ao", "Be"...
// Coefficients are taken in alphabetical order until the first missing pair.
func FromCoefficients(name string, coefs map[string]float64) (Properties, error) {
	var e, o []float64
	for _, k := range coefficientKeys {
		ce, okE := coefs[string(k)+"e"]
		co, okO := coefs[string(k)+"o"]
		if !okE || !okO {
			break
		}
		e = append(e, ce)
		o = append(o, co)
	}
	return NewProperties(name, e, o)
}

// Properties returns the material with the given name.
func (t *Table) Properties(name string) (Properties, error) {
	p, ok := t.materials[name]
	if !ok {
		return Properties{}, fmt.Errorf("%w: %q", ErrMaterialNotFound, name)
	}
	return p, nil
}

// Names lists the materials in the table, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.materials))
	for name := range t.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package catalog

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a vendor catalog from a YAML file. The file holds a
// top-level "vendors" list.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Vendors []Vendor `yaml:"vendors"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "catalog: parse yaml")
	}
	if len(doc.Vendors) == 0 {
		return nil, eris.New("catalog: no vendors defined")
	}
	return New(doc.Vendors...)
}

// Resolve returns the catalog at path, or the built-in catalog when path
// is empty.
func Resolve(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

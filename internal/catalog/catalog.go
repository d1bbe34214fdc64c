package catalog

import (
	"sort"

	"github.com/rotisserie/eris"
)

// Lookup resolves vendor ids. The pricing engines depend on this rather
// than on Catalog so tests can supply synthetic vendors.
type Lookup interface {
	Vendor(id string) (Vendor, bool)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(id string) (Vendor, bool)

// Vendor implements Lookup.
func (f LookupFunc) Vendor(id string) (Vendor, bool) { return f(id) }

// Catalog is an immutable id-indexed set of vendors. It is safe for
// concurrent use.
type Catalog struct {
	vendors map[string]Vendor
	order   []string
}

// New builds a catalog from vendors. Ids must be unique and non-empty,
// categories known, and each vendor may flag at most one lowest tier.
func New(vendors ...Vendor) (*Catalog, error) {
	c := &Catalog{vendors: make(map[string]Vendor, len(vendors))}
	for _, v := range vendors {
		if v.ID == "" {
			return nil, eris.New("catalog: vendor id is required")
		}
		if _, dup := c.vendors[v.ID]; dup {
			return nil, eris.Errorf("catalog: duplicate vendor id %q", v.ID)
		}
		if !v.Category.Valid() {
			return nil, eris.Errorf("catalog: vendor %q has unknown category %q", v.ID, v.Category)
		}
		lowest := 0
		for _, t := range v.Tiers {
			if t.Lowest {
				lowest++
			}
		}
		if lowest > 1 {
			return nil, eris.Errorf("catalog: vendor %q flags %d lowest tiers", v.ID, lowest)
		}
		c.vendors[v.ID] = v.clone()
		c.order = append(c.order, v.ID)
	}
	return c, nil
}

// Vendor returns a copy of the vendor with the given id.
func (c *Catalog) Vendor(id string) (Vendor, bool) {
	v, ok := c.vendors[id]
	if !ok {
		return Vendor{}, false
	}
	return v.clone(), true
}

// Vendors returns all vendors in insertion order.
func (c *Catalog) Vendors() []Vendor {
	out := make([]Vendor, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.vendors[id].clone())
	}
	return out
}

// ByCategory returns the vendors in category cat, in insertion order.
func (c *Catalog) ByCategory(cat Category) []Vendor {
	var out []Vendor
	for _, id := range c.order {
		if v := c.vendors[id]; v.Category == cat {
			out = append(out, v.clone())
		}
	}
	return out
}

// IDs returns the sorted vendor ids.
func (c *Catalog) IDs() []string {
	ids := append([]string(nil), c.order...)
	sort.Strings(ids)
	return ids
}

// Len returns the number of vendors.
func (c *Catalog) Len() int {
	return len(c.order)
}

// TierForVolume picks the cheapest-ceiling tier of v that covers volume in
// dimension dim. Tiers are ordered by their ceiling in dim; when none
// covers the volume the largest tier is returned. ok is false only when
// the vendor has no tiers.
func TierForVolume(v Vendor, volume int, dim Capacity) (Tier, bool) {
	if len(v.Tiers) == 0 {
		return Tier{}, false
	}
	sorted := append([]Tier(nil), v.Tiers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Ceiling(dim) < sorted[j].Ceiling(dim)
	})
	for _, t := range sorted {
		if volume <= t.Ceiling(dim) {
			return t, true
		}
	}
	return sorted[len(sorted)-1], true
}

// Package ratecatalog scopes subsidy-rate reference data per campaign year
// and answers practice-code lookups and mutual-exclusion queries.
package ratecatalog

import (
	"sort"

	"github.com/KDZFoundation/agrooptima/internal/model"
)

// Catalog immutable view over the subsidy-rate reference data.
// The conflictsWith relation in stored rates is not guaranteed to be declared
// on both sides, so it is normalized into a symmetric adjacency set at load.
type Catalog struct {
	byYear    map[int][]model.SubsidyRate
	byCode    map[int]map[string]model.SubsidyRate
	conflicts map[int]map[string]map[string]bool
}

// New builds a catalog from raw rate rows.
func New(rates []model.SubsidyRate) *Catalog {
	c := &Catalog{
		byYear:    make(map[int][]model.SubsidyRate),
		byCode:    make(map[int]map[string]model.SubsidyRate),
		conflicts: make(map[int]map[string]map[string]bool),
	}

	for _, r := range rates {
		c.byYear[r.Year] = append(c.byYear[r.Year], r)

		if c.byCode[r.Year] == nil {
			c.byCode[r.Year] = make(map[string]model.SubsidyRate)
		}
		if r.ShortName != "" {
			c.byCode[r.Year][r.ShortName] = r
		}
	}

	// Symmetric closure of the declared exclusions.
	for _, r := range rates {
		for _, other := range r.ConflictsWith {
			c.addConflict(r.Year, r.ShortName, other)
			c.addConflict(r.Year, other, r.ShortName)
		}
	}

	for year := range c.byYear {
		rows := c.byYear[year]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	}

	return c
}

func (c *Catalog) addConflict(year int, a, b string) {
	if a == "" || b == "" {
		return
	}
	if c.conflicts[year] == nil {
		c.conflicts[year] = make(map[string]map[string]bool)
	}
	if c.conflicts[year][a] == nil {
		c.conflicts[year][a] = make(map[string]bool)
	}
	c.conflicts[year][a][b] = true
}

// ForYear returns the rate rows of one campaign year, ordered by ID.
func (c *Catalog) ForYear(year int) []model.SubsidyRate {
	return c.byYear[year]
}

// Years returns the campaign years present in the catalog, ascending.
func (c *Catalog) Years() []int {
	years := make([]int, 0, len(c.byYear))
	for y := range c.byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Lookup resolves a practice code by exact ShortName match within one year.
func (c *Catalog) Lookup(year int, code string) (model.SubsidyRate, bool) {
	rates, ok := c.byCode[year]
	if !ok {
		return model.SubsidyRate{}, false
	}
	r, ok := rates[code]
	return r, ok
}

// InConflict reports whether two practice codes exclude each other in the
// given year. Symmetric by construction.
func (c *Catalog) InConflict(year int, a, b string) bool {
	return c.conflicts[year][a][b]
}

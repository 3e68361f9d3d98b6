// Package catalog provides the immutable jurisdiction lookup: region →
// sub-region → per-chamber district sets. The dataset is embedded at build
// time, loaded once at process start, and never mutated afterwards, so all
// methods are safe for concurrent use.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/jurisdictions.json
var rawData []byte

// Chamber identifies which legislative body a district set belongs to.
type Chamber string

const (
	ChamberNational Chamber = "national"
	ChamberRegion   Chamber = "region"
	ChamberLocal    Chamber = "local"
)

type subRegion struct {
	Name      string               `json:"name"`
	Districts map[Chamber][]string `json:"districts"`
}

type region struct {
	Name       string      `json:"name"`
	SubRegions []subRegion `json:"subRegions"`
}

type dataset struct {
	Regions []region `json:"regions"`
}

// Catalog is the read-only jurisdiction hierarchy.
type Catalog struct {
	regions []region
	index   map[string]map[string]subRegion
}

// Load parses the embedded dataset. Call once at startup.
func Load() (*Catalog, error) {
	return Parse(rawData)
}

// Parse builds a catalog from raw JSON. Exposed so tests can supply fixtures.
func Parse(data []byte) (*Catalog, error) {
	var ds dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse jurisdiction dataset: %w", err)
	}
	if len(ds.Regions) == 0 {
		return nil, fmt.Errorf("jurisdiction dataset is empty")
	}

	index := make(map[string]map[string]subRegion, len(ds.Regions))
	for _, r := range ds.Regions {
		subs := make(map[string]subRegion, len(r.SubRegions))
		for _, s := range r.SubRegions {
			subs[s.Name] = s
		}
		index[r.Name] = subs
	}
	return &Catalog{regions: ds.Regions, index: index}, nil
}

// Regions lists all region names in dataset order.
func (c *Catalog) Regions() []string {
	names := make([]string, 0, len(c.regions))
	for _, r := range c.regions {
		names = append(names, r.Name)
	}
	return names
}

// SubRegions lists the sub-regions of a region in dataset order. Unknown or
// empty input yields an empty slice, not an error.
func (c *Catalog) SubRegions(region string) []string {
	for _, r := range c.regions {
		if r.Name == region {
			names := make([]string, 0, len(r.SubRegions))
			for _, s := range r.SubRegions {
				names = append(names, s.Name)
			}
			return names
		}
	}
	return []string{}
}

// Districts lists the districts of a (region, subRegion, chamber) triple in
// dataset order. Any missing input yields an empty slice, not an error.
func (c *Catalog) Districts(region, subRegionName string, chamber Chamber) []string {
	subs, ok := c.index[region]
	if !ok {
		return []string{}
	}
	sub, ok := subs[subRegionName]
	if !ok {
		return []string{}
	}
	districts, ok := sub.Districts[chamber]
	if !ok {
		return []string{}
	}
	out := make([]string, len(districts))
	copy(out, districts)
	return out
}

// HasRegion reports whether the region exists.
func (c *Catalog) HasRegion(region string) bool {
	_, ok := c.index[region]
	return ok
}

// HasSubRegion reports whether subRegion is a child of region.
func (c *Catalog) HasSubRegion(region, subRegionName string) bool {
	subs, ok := c.index[region]
	if !ok {
		return false
	}
	_, ok = subs[subRegionName]
	return ok
}

// HasDistrict reports whether district belongs to (region, subRegion, chamber).
func (c *Catalog) HasDistrict(region, subRegionName string, chamber Chamber, district string) bool {
	subs, ok := c.index[region]
	if !ok {
		return false
	}
	sub, ok := subs[subRegionName]
	if !ok {
		return false
	}
	for _, d := range sub.Districts[chamber] {
		if d == district {
			return true
		}
	}
	return false
}

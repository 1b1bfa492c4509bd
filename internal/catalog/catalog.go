// Package catalog bundles the static instrument reference catalog and the
// read-only lookups over it. The data was scraped from supplier catalogues;
// rows that are really category headers rather than instruments are filtered
// out at load time.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed catalog.json
var rawCatalog []byte

// Item is one reference catalog entry, used to pre-fill new inventory rows.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image,omitempty"`
	Source      *Source `json:"source,omitempty"`
}

// Source records where an entry was scraped from.
type Source struct {
	Catalogue string `json:"catalogue"`
	Page      int    `json:"page"`
}

// Category headers that slipped through the scrape as instrument rows.
var headerBlocklist = map[string]bool{
	"Thumb Forceps":                   true,
	"Dissectors & Elevators":          true,
	"Nasal Speculums":                 true,
	"Nasal Forceps - Rongeurs":        true,
	"Endoscopic Face & Forehead Lift": true,
	"Micro Vascular Clamps":           true,
	"Ring Forceps - Clamps":           true,
	"Mallets & Cartilage Instruments": true,
	"Measuring & Marking Instruments": true,
	"Skin Graft Instruments":          true,
	"Chisels - Osteotomes - Gouges":   true,
}

// Generic plural names that mark a group header, not an instrument.
var genericTerms = map[string]bool{
	"forceps":     true,
	"scissors":    true,
	"cannulas":    true,
	"instruments": true,
	"speculums":   true,
	"clamps":      true,
	"elevators":   true,
	"dissectors":  true,
}

var items = mustLoad()

func mustLoad() []Item {
	var raw []Item
	if err := json.Unmarshal(rawCatalog, &raw); err != nil {
		panic(fmt.Sprintf("malformed embedded catalog: %v", err))
	}

	out := make([]Item, 0, len(raw))
	for _, item := range raw {
		if isHeader(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// isHeader reports whether a scraped row is a category header rather than an
// actual instrument.
func isHeader(item Item) bool {
	name := strings.TrimSpace(item.Name)
	lower := strings.ToLower(name)

	switch {
	case headerBlocklist[name]:
		return true
	case strings.Contains(lower, " - "):
		// A dash-joined name is a category range or group header.
		return true
	case genericTerms[lower]:
		return true
	case strings.HasSuffix(lower, " instruments"):
		return true
	case lower == strings.ToLower(item.Description):
		// Name identical to its description is usually a header row.
		return true
	}
	return false
}

// Search returns up to limit items whose name, description, or source
// catalogue label contains the query, case-insensitively. An empty query
// returns the first limit items unfiltered.
func Search(query string, limit int) []Item {
	if limit <= 0 {
		return nil
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		if limit > len(items) {
			limit = len(items)
		}
		return append([]Item{}, items[:limit]...)
	}

	var results []Item
	for _, item := range items {
		if len(results) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(item.Name), term) ||
			strings.Contains(strings.ToLower(item.Description), term) ||
			(item.Source != nil && strings.Contains(strings.ToLower(item.Source.Catalogue), term)) {
			results = append(results, item)
		}
	}
	return results
}

// ByID returns the catalog entry with the given ID.
func ByID(id string) (Item, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Descriptions returns the distinct item descriptions, sorted.
func Descriptions() []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		if !seen[item.Description] {
			seen[item.Description] = true
			out = append(out, item.Description)
		}
	}
	sort.Strings(out)
	return out
}

// ByDescription returns a page of items sharing the given description.
func ByDescription(description string, offset, limit int) []Item {
	if offset < 0 || limit <= 0 {
		return nil
	}
	var filtered []Item
	for _, item := range items {
		if item.Description == description {
			filtered = append(filtered, item)
		}
	}
	if offset >= len(filtered) {
		return nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end]
}

// Stats summarizes the catalog contents.
type Stats struct {
	TotalInstruments int            `json:"totalInstruments"`
	Descriptions     map[string]int `json:"descriptions"`
}

// Summary returns counts of catalog items per description.
func Summary() Stats {
	stats := Stats{
		TotalInstruments: len(items),
		Descriptions:     make(map[string]int),
	}
	for _, item := range items {
		stats.Descriptions[item.Description]++
	}
	return stats
}

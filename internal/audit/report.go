// Package audit renders the printable checklist document over the inventory
// and sets. Building a report is a pure projection: the inputs are never
// mutated and the same inputs always produce the same report.
package audit

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/matejv/surgiset/internal/model"
)

// CheckColumns is the number of blank date/check columns per row.
const CheckColumns = 5

// UnknownInstrumentName is the display fallback for an allocation whose
// instrument row no longer exists.
const UnknownInstrumentName = "Unknown Instrument"

// Row is one physical unit on the checklist. An allocation of quantity N
// expands to N rows, each counting a single unit.
type Row struct {
	Name        string
	Description string
	Wishlist    bool
	Unknown     bool
}

// Section is one printable page: a set, or the trailing miscellaneous list.
type Section struct {
	Title         string
	Miscellaneous bool
	Rows          []Row
}

// Report is the full audit document.
type Report struct {
	Filename  string
	Generated time.Time
	Sections  []Section
}

// BuildReport projects the inventory and sets into an audit report: one
// section per set with at least one allocation, one row per unit, plus a
// trailing Miscellaneous section for inventory never allocated to any set.
func BuildReport(inventory []model.Instrument, sets []model.Set, now time.Time) Report {
	byID := make(map[string]model.Instrument, len(inventory))
	for _, inst := range inventory {
		byID[inst.ID] = inst
	}

	report := Report{
		Filename:  Filename(now),
		Generated: now,
	}

	used := make(map[string]bool)
	for _, set := range sets {
		for _, alloc := range set.Instruments {
			used[alloc.InstrumentID] = true
		}
		if len(set.Instruments) == 0 {
			continue
		}

		section := Section{Title: SetTitle(set.Name)}
		for _, alloc := range set.Instruments {
			row := Row{Name: UnknownInstrumentName, Unknown: true}
			if inst, ok := byID[alloc.InstrumentID]; ok {
				row = Row{
					Name:        inst.Name,
					Description: inst.Description,
					Wishlist:    inst.IsWishlist,
				}
			}
			for i := 0; i < alloc.Quantity; i++ {
				section.Rows = append(section.Rows, row)
			}
		}
		report.Sections = append(report.Sections, section)
	}

	var misc []model.Instrument
	for _, inst := range inventory {
		if !used[inst.ID] && inst.Quantity > 0 {
			misc = append(misc, inst)
		}
	}
	sort.SliceStable(misc, func(i, j int) bool { return misc[i].Name < misc[j].Name })

	if len(misc) > 0 {
		section := Section{Title: "Miscellaneous Instruments", Miscellaneous: true}
		for _, inst := range misc {
			row := Row{
				Name:        inst.Name,
				Description: inst.Description,
				Wishlist:    inst.IsWishlist,
			}
			for i := 0; i < inst.Quantity; i++ {
				section.Rows = append(section.Rows, row)
			}
		}
		report.Sections = append(report.Sections, section)
	}

	return report
}

// SetTitle normalizes a set name for the section header: "Basic Suturing"
// becomes "Basic Suturing Set", names already ending in "set" pass through.
func SetTitle(name string) string {
	trimmed := strings.TrimSpace(name)
	if strings.HasSuffix(strings.ToLower(trimmed), "set") {
		return trimmed
	}
	return trimmed + " Set"
}

// Filename returns the document filename stem: SurgSet_Audit_yymmddhhmmss.
func Filename(now time.Time) string {
	return fmt.Sprintf("SurgSet_Audit_%s", now.Format("060102150405"))
}

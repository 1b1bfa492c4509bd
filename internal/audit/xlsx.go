package audit

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes the report as a spreadsheet, one sheet per section with
// the same one-row-per-unit layout as the printable document.
func WriteXLSX(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, section := range report.Sections {
		sheet := sheetName(section.Title, i)
		if i == 0 {
			// Rename the default sheet instead of leaving an empty Sheet1.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("naming sheet %q: %w", sheet, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("creating sheet %q: %w", sheet, err)
			}
		}

		headers := []string{"Instrument", "Description", "Qty"}
		for c := 1; c <= CheckColumns; c++ {
			headers = append(headers, fmt.Sprintf("Check %d", c))
		}
		for c, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for r, row := range section.Rows {
			name := row.Name
			if row.Wishlist {
				name += " (wishlist)"
			}
			nameCell, _ := excelize.CoordinatesToCellName(1, r+2)
			descCell, _ := excelize.CoordinatesToCellName(2, r+2)
			qtyCell, _ := excelize.CoordinatesToCellName(3, r+2)
			f.SetCellValue(sheet, nameCell, name)
			f.SetCellValue(sheet, descCell, row.Description)
			f.SetCellValue(sheet, qtyCell, 1)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing spreadsheet: %w", err)
	}
	return nil
}

// sheetName trims a section title to Excel's 31-character sheet name limit
// and strips the characters Excel forbids, keeping names unique by index.
func sheetName(title string, index int) string {
	name := strings.NewReplacer(
		":", "", "\\", "", "/", "", "?", "", "*", "", "[", "", "]", "",
	).Replace(title)
	suffix := fmt.Sprintf(" (%d)", index+1)
	if len(name)+len(suffix) > 31 {
		name = name[:31-len(suffix)]
	}
	return name + suffix
}

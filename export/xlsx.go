package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/poiesic/servit/core"
)

// sheetName is the single worksheet in an exported workbook.
const sheetName = "Services"

// WriteXLSX writes the export for a query's results as a single-sheet
// workbook: a header row, then one row per service.
func WriteXLSX(w io.Writer, query string, results []*core.SearchResult) error {
	envelope := NewEnvelope(query, results)

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	// Stream writer keeps large exports cheap
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}

	headers := []interface{}{
		"Name", "Category", "Address", "Phone", "Rating", "Price",
		"Location", "Distance (km)", "Distance",
	}
	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}

	for i, service := range envelope.Services {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			service.Name, service.Category, service.Address, service.Phone,
			service.Rating, service.Price, service.Location,
		}
		if service.Distance != nil {
			row = append(row, *service.Distance, service.DistanceText)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.Write(w)
}

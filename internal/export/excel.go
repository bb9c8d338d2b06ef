package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"stalltrack/m/domain"
	"stalltrack/m/internal/store"
)

// Workbook renders the catalog as a single-sheet xlsx snapshot with the same
// column set as the persisted catalog file. The returned file name carries
// the generation timestamp.
func Workbook(rows []domain.Product, generatedAt time.Time) (string, []byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]any, len(store.CatalogHeader))
	for i, col := range store.CatalogHeader {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", nil, fmt.Errorf("write export header: %w", err)
	}

	for i, p := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", nil, fmt.Errorf("write export row %d: %w", i+1, err)
		}
		row := []any{p.Name, p.TotalQuantity, p.SoldQuantity, p.RemainingQuantity, p.Price, p.Revenue}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", nil, fmt.Errorf("write export row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, fmt.Errorf("encode export workbook: %w", err)
	}
	name := fmt.Sprintf("sales_data_%s.xlsx", generatedAt.Format("20060102_150405"))
	return name, buf.Bytes(), nil
}

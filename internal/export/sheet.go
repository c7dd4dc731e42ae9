package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tamrudu/studio/internal/model"
	"github.com/tamrudu/studio/internal/render"
)

// ExportPlacementSheet writes the production placement sheet: one row
// per placed item with its side, position, and rotation, preceded by
// the order header. The print shop works from this sheet when setting
// up the transfer press.
func ExportPlacementSheet(path string, snap render.Snapshot, catalog *model.Catalog) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Placements"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := [][]interface{}{
		{"Order ticket", snap.TicketRef},
		{"Date", snap.When.Format("2006-01-02")},
		{"Size", string(snap.Garment.Size)},
		{"Color", string(snap.Garment.Color)},
	}
	for i, row := range header {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write header row %d: %w", i+1, err)
		}
	}

	columns := []interface{}{"#", "Motif", "Side", "X (%)", "Y (%)", "Rotation (deg)"}
	if err := f.SetSheetRow(sheet, "A6", &columns); err != nil {
		return fmt.Errorf("write column header: %w", err)
	}

	for i, it := range snap.Items {
		name := it.MotifID
		if m, ok := catalog.Get(it.MotifID); ok {
			name = m.DisplayName
		}
		row := []interface{}{i + 1, name, string(it.Side), it.X, it.Y, it.Rotation}
		cell, err := excelize.CoordinatesToCellName(1, 7+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write item row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheet, "B", "B", 16); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save placement sheet: %w", err)
	}
	return nil
}

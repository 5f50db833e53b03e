package export

import (
	"fmt"
	"io"

	"github.com/AdamBeresnev/poule-board/internal/viewmodel"
	"github.com/xuri/excelize/v2"
)

const overallSheet = "Overall"

// OverallColumns are the header cells of the export. Organizer columns are
// only written when the view shows them.
func OverallColumns(view viewmodel.Overall) []string {
	cols := []string{"Rank", "Team"}
	if view.ShowPoints {
		cols = append(cols, "Progression", "Points")
	}
	return append(cols, "Played", "Balance")
}

// WriteOverall writes the overall ranking as a single sheet workbook.
func WriteOverall(w io.Writer, title string, view viewmodel.Overall) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), overallSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: title, Creator: "poule-board"}); err != nil {
		return fmt.Errorf("failed to set properties: %w", err)
	}

	if err := setRow(f, 1, toCells(OverallColumns(view))); err != nil {
		return err
	}
	if view.IsEmpty() {
		if err := setRow(f, 2, []interface{}{view.EmptyMessage}); err != nil {
			return err
		}
	}

	for i, row := range view.Rows {
		cells := []interface{}{row.Rank, row.Team}
		if view.ShowPoints {
			points := interface{}("")
			if row.Points != nil {
				points = *row.Points
			}
			cells = append(cells, row.Badge, points)
		}
		cells = append(cells, row.Played, row.Balance)
		if err := setRow(f, i+2, cells); err != nil {
			return err
		}
	}

	if err := f.SetPanes(overallSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, cells []interface{}) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(overallSheet, axis, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

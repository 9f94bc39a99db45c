package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/zoeyai/relicscan/pkg/relic"
)

const (
	sheetName    = "Relics"
	nameColWidth = 40
)

var xlsxHeaders = []string{"Name", "Set", "Slot", "Main Stat", "Main Value"}

func writeXLSX(w io.Writer, relics []relic.Relic) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	headers := append([]string{}, xlsxHeaders...)
	for i := 1; i <= relic.MaxSubStats; i++ {
		headers = append(headers, fmt.Sprintf("Sub %d", i), fmt.Sprintf("Sub %d Value", i))
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyleID); err != nil {
		return err
	}

	for i, r := range relics {
		row := []interface{}{r.Name, r.Set.String(), r.Slot.String(), r.MainStat.Kind.String(), r.MainStat.Value}
		for _, sub := range r.SubStats {
			row = append(row, sub.Kind.String(), sub.Value)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", nameColWidth); err != nil {
		return err
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

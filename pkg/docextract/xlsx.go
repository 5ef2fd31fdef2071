package docextract

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

func extractXlsx(path string) (string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer wb.Close()

	var parts []string
	for _, sheetName := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheetName)
		if err != nil {
			return "", fmt.Errorf("read sheet %s: %w", sheetName, err)
		}

		sheetLines := []string{fmt.Sprintf("[Sheet: %s]", sheetName)}
		for _, row := range rows {
			var values []string
			for _, cell := range row {
				if cell != "" {
					values = append(values, cell)
				}
			}
			if len(values) > 0 {
				sheetLines = append(sheetLines, strings.Join(values, " | "))
			}
		}
		if len(sheetLines) > 1 {
			parts = append(parts, strings.Join(sheetLines, "\n"))
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

package docextract

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExtractTable reads an Excel or CSV file into pipe-delimited rows suitable
// for feeding to a model as table data. Output is capped at limit bytes.
func ExtractTable(path, filename string, limit int) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return extractCSVTable(path, limit)
	case ".xlsx":
		return extractXlsxTable(path, limit)
	default:
		return "", fmt.Errorf("unsupported table format: %s", filepath.Ext(filename))
	}
}

func extractCSVTable(path string, limit int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows []string
	size := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read csv: %w", err)
		}

		empty := true
		for _, cell := range record {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		line := strings.Join(record, " | ")
		rows = append(rows, line)
		size += len(line) + 1
		if size > limit {
			break
		}
	}

	result, _ := Truncate(strings.Join(rows, "\n"), limit)
	return result, nil
}

func extractXlsxTable(path string, limit int) (string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	var tables []string
	total := 0

	for _, sheetName := range sheets {
		if total > limit {
			break
		}
		rows, err := wb.GetRows(sheetName)
		if err != nil {
			return "", fmt.Errorf("read sheet %s: %w", sheetName, err)
		}

		var tableRows []string
		size := 0
		for _, row := range rows {
			empty := true
			for _, cell := range row {
				if strings.TrimSpace(cell) != "" {
					empty = false
					break
				}
			}
			if empty {
				continue
			}

			line := strings.Join(row, " | ")
			tableRows = append(tableRows, line)
			size += len(line) + 1
			if size > limit {
				break
			}
		}

		if len(tableRows) > 0 {
			if len(sheets) > 1 {
				tables = append(tables, fmt.Sprintf("[%s]\n%s", sheetName, strings.Join(tableRows, "\n")))
			} else {
				tables = append(tables, strings.Join(tableRows, "\n"))
			}
			total += size
		}
	}

	result, _ := Truncate(strings.Join(tables, "\n\n"), limit)
	return result, nil
}

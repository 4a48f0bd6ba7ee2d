package render

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dgallion1/doctrans/internal/document"
)

// sheetRows reverses the pipe-delimited wire convention back into rows
// grouped by worksheet, in encounter order. Text before any sheet header
// lands in an implicit first sheet.
func sheetRows(markdown string) ([]string, map[string][][]string) {
	var order []string
	rows := make(map[string][][]string)
	current := ""

	ensure := func(name string) {
		if _, ok := rows[name]; !ok {
			order = append(order, name)
			rows[name] = nil
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(markdown))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == document.PageBreakMarker {
			continue
		}
		if name, ok := document.ParseSheetHeader(line); ok {
			current = name
			ensure(current)
			continue
		}
		if current == "" {
			current = "Sheet1"
			ensure(current)
		}
		cells := strings.Split(line, "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows[current] = append(rows[current], cells)
	}
	return order, rows
}

// renderCSV emits data rows only; sheet headers are structural markers and
// are dropped, as the original convention requires.
func renderCSV(markdown string) ([]byte, error) {
	order, rows := sheetRows(markdown)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, sheet := range order {
		for _, row := range rows[sheet] {
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// renderXLSX restores one worksheet per sheet header encountered.
func renderXLSX(markdown string) ([]byte, error) {
	order, rows := sheetRows(markdown)

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range order {
		if i == 0 {
			// Rename the default first sheet.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("create sheet %q: %w", sheet, err)
			}
		}
		for r, row := range rows[sheet] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			cells := make([]interface{}, len(row))
			for c, v := range row {
				cells[c] = v
			}
			if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
				return nil, fmt.Errorf("write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

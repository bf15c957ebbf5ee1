package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates a pricing workbook for a quotation and returns
// the file contents as a byte slice.
func GenerateExcel(pm PreviewModel) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Pricing"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through D).
	columns := []string{"A", "B", "C", "D"}
	lastCol := columns[len(columns)-1] // "D"

	// Set column widths.
	widths := []float64{40, 18, 18, 22}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	naItemStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size:   10,
			Italic: true,
			Color:  "#888888",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create na item style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", "Quotation Pricing")
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if pm.QuoteNumber != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge ref: %w", err)
		}
		f.SetCellValue(sheetName, "A2", "Quote Ref: "+sanitizeExcelCell(pm.QuoteNumber))
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Date: "+sanitizeExcelCell(pm.QuoteDate))
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: Column Headers ───────────────────────────────────────────

	headers := []string{"Description", "Standard", "Launch Offer", "Remarks"}
	for i, h := range headers {
		cell := fmt.Sprintf("%s5", columns[i])
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName, "A5", lastCol+"5", headerStyle)

	// ── Data Rows (starting row 6) ──────────────────────────────────────

	row := 6
	for _, item := range pm.PricingItems {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(item.Label))

		standard := FormatINR(item.Standard)
		launch := FormatINR(item.Launch)
		remarks := ""
		switch {
		case item.IsNA:
			standard, launch = "N.A.", "N.A."
			remarks = "Not applicable"
		case item.IsComplimentary:
			launch = "Complimentary"
			remarks = "Waived under launch offer"
		}
		f.SetCellValue(sheetName, "B"+rowStr, standard)
		f.SetCellValue(sheetName, "C"+rowStr, launch)
		f.SetCellValue(sheetName, "D"+rowStr, remarks)

		style := itemStyle
		if item.IsNA {
			style = naItemStyle
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, style)

		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	// Skip a blank row.
	row++

	summaries := []struct {
		label            string
		standard, launch float64
	}{
		{"Subtotal:", pm.Totals.StandardSubtotal, pm.Totals.LaunchSubtotal},
		{fmt.Sprintf("GST (%.0f%%):", pm.GSTRate), pm.Totals.StandardTax, pm.Totals.LaunchTax},
		{"Grand Total:", pm.Totals.StandardGrandTotal, pm.Totals.LaunchGrandTotal},
	}
	for _, s := range summaries {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, s.label)
		f.SetCellStyle(sheetName, "A"+rowStr, "A"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "B"+rowStr, FormatINR(s.standard))
		f.SetCellValue(sheetName, "C"+rowStr, FormatINR(s.launch))
		f.SetCellStyle(sheetName, "B"+rowStr, "C"+rowStr, summaryValueStyle)
		row++
	}

	// Amount in words under the totals.
	row++
	wordsRow := fmt.Sprintf("%d", row)
	if err := f.MergeCell(sheetName, "A"+wordsRow, lastCol+wordsRow); err != nil {
		return nil, fmt.Errorf("merge words: %w", err)
	}
	f.SetCellValue(sheetName, "A"+wordsRow, pm.AmountInWords)
	f.SetCellStyle(sheetName, "A"+wordsRow, lastCol+wordsRow, subtitleStyle)

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}

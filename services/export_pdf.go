package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateAnnexurePDF creates the standalone pricing annexure using
// maroto/v2: the full pricing table with both tracks, the aggregate
// figures, the amount in words and the payment schedule. Unlike the
// template-based document it needs no static asset, so it always works.
func GenerateAnnexurePDF(pm PreviewModel) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addAnnexureHeader(m, pm)
	addPricingTableHeader(m)
	for _, item := range pm.PricingItems {
		addPricingTableRow(m, item)
	}
	addAnnexureSummary(m, pm)
	addPaymentSchedule(m, pm)
	addBankDetails(m, pm)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate annexure PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addAnnexureHeader adds the title, quote reference and date rows.
func addAnnexureHeader(m core.Maroto, pm PreviewModel) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Price Annexure", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	ref := pm.QuoteNumber
	if ref == "" {
		ref = "Official"
	}
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Quote Ref: %s", ref), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", pm.QuoteDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// addPricingTableHeader adds the column header row for the pricing table.
func addPricingTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(3).Add(
				text.New("Standard", headerText),
			).WithStyle(&headerCell),
			col.New(3).Add(
				text.New("Launch Offer", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addPricingTableRow adds one pricing row, rendering NA and
// complimentary states as text instead of amounts.
func addPricingTableRow(m core.Maroto, item PricingLineItem) {
	baseText := props.Text{
		Size:  8,
		Align: align.Left,
	}
	rightText := baseText
	rightText.Align = align.Right

	standard := FormatINR(item.Standard)
	launch := FormatINR(item.Launch)
	if item.IsNA {
		standard, launch = "N.A.", "N.A."
	} else if item.IsComplimentary {
		launch = "Complimentary"
	}

	var cellStyle *props.Cell
	if item.IsNA {
		cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	}

	colDesc := col.New(6).Add(text.New(item.Label, baseText))
	colStandard := col.New(3).Add(text.New(standard, rightText))
	colLaunch := col.New(3).Add(text.New(launch, rightText))

	if cellStyle != nil {
		colDesc = colDesc.WithStyle(cellStyle)
		colStandard = colStandard.WithStyle(cellStyle)
		colLaunch = colLaunch.WithStyle(cellStyle)
	}

	m.AddRows(row.New(7).Add(colDesc, colStandard, colLaunch))
}

// addAnnexureSummary adds the subtotal, tax and grand total rows for
// both tracks plus the amount in words.
func addAnnexureSummary(m core.Maroto, pm PreviewModel) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
	}
	valueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	rows := []struct {
		label            string
		standard, launch float64
	}{
		{"Subtotal", pm.Totals.StandardSubtotal, pm.Totals.LaunchSubtotal},
		{fmt.Sprintf("GST (%.0f%%)", pm.GSTRate), pm.Totals.StandardTax, pm.Totals.LaunchTax},
		{"Grand Total", pm.Totals.StandardGrandTotal, pm.Totals.LaunchGrandTotal},
	}
	for _, r := range rows {
		m.AddRows(
			row.New(8).Add(
				col.New(6).Add(
					text.New(r.label, labelStyle),
				).WithStyle(summaryCell),
				col.New(3).Add(
					text.New(FormatINR(r.standard), valueStyle),
				).WithStyle(summaryCell),
				col.New(3).Add(
					text.New(FormatINR(r.launch), valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}

	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(pm.AmountInWords, props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Left,
				}),
			),
		),
	)
}

// addPaymentSchedule adds the payment-term rows.
func addPaymentSchedule(m core.Maroto, pm PreviewModel) {
	if len(pm.PaymentTerms) == 0 {
		return
	}

	m.AddRows(row.New(6))
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New("Payment Schedule", props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)

	for _, term := range pm.PaymentTerms {
		m.AddRows(
			row.New(6).Add(
				col.New(9).Add(
					text.New(term.Stage, props.Text{Size: 8, Align: align.Left}),
				),
				col.New(3).Add(
					text.New(fmt.Sprintf("%.0f%%", term.Percent), props.Text{Size: 8, Align: align.Right}),
				),
			),
		)
	}
}

// addBankDetails adds the remittance block at the bottom.
func addBankDetails(m core.Maroto, pm PreviewModel) {
	if pm.Bank.AccountNumber == "" && pm.Bank.BankName == "" {
		return
	}

	m.AddRows(row.New(6))
	lines := []string{
		"Bank Details",
		fmt.Sprintf("%s, %s", pm.Bank.BankName, pm.Bank.Branch),
		fmt.Sprintf("A/C: %s (%s)", pm.Bank.AccountNumber, pm.Bank.AccountName),
		fmt.Sprintf("IFSC: %s", pm.Bank.IFSC),
	}
	for i, line := range lines {
		style := props.Text{Size: 8, Align: align.Left, Color: &props.Color{Red: 80, Green: 80, Blue: 80}}
		if i == 0 {
			style = props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}
		}
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New(line, style)),
			),
		)
	}
}

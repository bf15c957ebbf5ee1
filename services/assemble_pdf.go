package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/phpdave11/gofpdf"
)

// Template page positions (1-indexed) for variable content. The fixed
// template is expected to carry at least pricingPage pages; shorter
// templates skip the injections they cannot host.
const (
	coverPage   = 1
	specPage    = 4
	pricingPage = 9
)

const a4HeightPts = 842.0

// Cover page layout, in points. X offsets run from the left edge,
// *Top values are distances from the top edge and get converted against
// the actual template page height.
const (
	coverLeftX        = 46.0
	coverRightX       = 396.0
	coverCustomerTop  = 252.0
	coverAddressTop   = 330.0
	coverRefTop       = 252.0
	coverLineGap      = 16.0
	coverFontPts      = 11.0
	coverAddressWidth = 215.0
)

// Pricing fallback layout: rows are stamped at a constant vertical
// interval starting below the page header band.
const (
	pricingTop       = 150.0
	pricingRowGap    = 18.0
	pricingLabelX    = 50.0
	pricingStandardX = 330.0
	pricingLaunchX   = 450.0
	pricingFontPts   = 10.0
)

// PageImages holds captured raster replacements for the variable pages.
// A nil entry means no capture was supplied for that page.
type PageImages struct {
	SpecPage    []byte
	PricingPage []byte
}

// AssembleQuotationPDF produces the final document bytes from the fixed
// template, the preview model and any captured page images. The
// template must parse; everything past that degrades per page: a failed
// text or image stamp is logged and leaves that page as the template
// shipped it.
func AssembleQuotationPDF(ctx context.Context, template []byte, pm PreviewModel, images PageImages) ([]byte, error) {
	conf := model.NewDefaultConfiguration()

	rctx, err := api.ReadContext(bytes.NewReader(template), conf)
	if err != nil {
		return nil, fmt.Errorf("parse quotation template: %w", err)
	}
	if err := rctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("parse quotation template: %w", err)
	}
	pageCount := rctx.PageCount

	pageH := a4HeightPts
	if dims, err := rctx.PageDims(); err == nil && len(dims) > 0 {
		pageH = dims[0].Height
	}

	doc := template
	if pageCount >= coverPage {
		doc = stampCoverPage(doc, pm, pageH, conf)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pageCount >= specPage {
		doc = stampPageImage(doc, specPage, images.SpecPage, conf)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pageCount >= pricingPage {
		if len(images.PricingPage) > 0 {
			doc = stampPageImage(doc, pricingPage, images.PricingPage, conf)
		} else {
			doc = stampPricingFallback(doc, pm, pageH, conf)
		}
	}

	return doc, nil
}

// stampCoverPage injects the customer block and wrapped site address on
// the left, and the quote reference fields on the right, at fixed
// coordinates converted against the template page height.
func stampCoverPage(doc []byte, pm PreviewModel, pageH float64, conf *model.Configuration) []byte {
	type field struct {
		text string
		x, y float64
		bold bool
	}

	var fields []field
	leftY := pageH - coverCustomerTop
	for i, line := range []string{
		pm.Customer.Name,
		pm.Customer.Company,
		pm.Customer.Email,
		pm.Customer.Phone,
	} {
		if line == "" {
			continue
		}
		fields = append(fields, field{line, coverLeftX, leftY, i == 0})
		leftY -= coverLineGap
	}

	if addr := wrapToWidth(pm.Customer.SiteAddress, coverAddressWidth, coverFontPts); len(addr) > 0 {
		y := pageH - coverAddressTop
		for _, line := range addr {
			fields = append(fields, field{line, coverLeftX, y, false})
			y -= coverLineGap
		}
	}

	rightY := pageH - coverRefTop
	ref := pm.QuoteNumber
	if ref == "" {
		ref = "Official"
	}
	for _, line := range []string{
		"Quote Ref: " + ref,
		"Date: " + pm.QuoteDate,
		"Valid Until: " + pm.ValidUntil,
	} {
		fields = append(fields, field{line, coverRightX, rightY, false})
		rightY -= coverLineGap
	}

	for _, f := range fields {
		stamped, err := stampText(doc, coverPage, f.text, f.x, f.y, coverFontPts, f.bold, conf)
		if err != nil {
			log.Printf("assemble: cover field %q not stamped: %v", f.text, err)
			continue
		}
		doc = stamped
	}
	return doc
}

// stampPricingFallback draws the pricing table, totals, amount in words
// and a spec summary directly onto the pricing page. Used when no
// capture was supplied for that page; the result is functionally
// equivalent to the rasterized preview, just less polished.
func stampPricingFallback(doc []byte, pm PreviewModel, pageH float64, conf *model.Configuration) []byte {
	type cell struct {
		text string
		x, y float64
		bold bool
	}

	var cells []cell
	y := pageH - pricingTop

	cells = append(cells,
		cell{"Description", pricingLabelX, y, true},
		cell{"Standard", pricingStandardX, y, true},
		cell{"Launch Offer", pricingLaunchX, y, true},
	)
	y -= pricingRowGap

	for _, item := range pm.PricingItems {
		standard := FormatRupees(item.Standard)
		launch := FormatRupees(item.Launch)
		if item.IsNA {
			standard, launch = "N.A.", "N.A."
		} else if item.IsComplimentary {
			launch = "Complimentary"
		}
		cells = append(cells,
			cell{item.Label, pricingLabelX, y, false},
			cell{standard, pricingStandardX, y, false},
			cell{launch, pricingLaunchX, y, false},
		)
		y -= pricingRowGap
	}

	y -= pricingRowGap / 2
	totals := []struct {
		label            string
		standard, launch float64
	}{
		{"Subtotal", pm.Totals.StandardSubtotal, pm.Totals.LaunchSubtotal},
		{fmt.Sprintf("GST (%.0f%%)", pm.GSTRate), pm.Totals.StandardTax, pm.Totals.LaunchTax},
		{"Grand Total", pm.Totals.StandardGrandTotal, pm.Totals.LaunchGrandTotal},
	}
	for _, row := range totals {
		cells = append(cells,
			cell{row.label, pricingLabelX, y, true},
			cell{FormatRupees(row.standard), pricingStandardX, y, true},
			cell{FormatRupees(row.launch), pricingLaunchX, y, true},
		)
		y -= pricingRowGap
	}

	y -= pricingRowGap / 2
	for _, line := range wrapToWidth(pm.AmountInWords, pricingLaunchX+60-pricingLabelX, pricingFontPts) {
		cells = append(cells, cell{line, pricingLabelX, y, false})
		y -= pricingRowGap
	}

	summary := specSummary(pm.Spec)
	if summary != "" {
		y -= pricingRowGap / 2
		cells = append(cells, cell{summary, pricingLabelX, y, false})
	}

	for _, c := range cells {
		stamped, err := stampText(doc, pricingPage, c.text, c.x, c.y, pricingFontPts, c.bold, conf)
		if err != nil {
			log.Printf("assemble: pricing cell %q not stamped: %v", c.text, err)
			continue
		}
		doc = stamped
	}
	return doc
}

// specSummary condenses the technical spec into a single display line.
func specSummary(s TechnicalSpec) string {
	var parts []string
	for _, p := range []string{s.Model, s.Capacity, s.Speed, s.DriveSystem} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "  |  ")
}

// stampText stamps a single positioned text field onto one page.
// Coordinates are points from the bottom-left corner.
func stampText(doc []byte, page int, text string, x, y, pts float64, bold bool, conf *model.Configuration) ([]byte, error) {
	font := "Helvetica"
	if bold {
		font = "Helvetica-Bold"
	}
	desc := fmt.Sprintf("font:%s, points:%d, scale:1 abs, pos:bl, off:%.1f %.1f, fillcol:#1A1A1A, rot:0, op:1",
		font, int(pts), x, y)

	wm, err := api.TextWatermark(text, desc, true, false, types.POINTS)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(doc), &out, []string{strconv.Itoa(page)}, wm, conf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// stampPageImage replaces a page's visible content with a full-bleed
// captured image. Embedding failures degrade that page only: the
// template's static content stays and assembly continues.
func stampPageImage(doc []byte, page int, img []byte, conf *model.Configuration) []byte {
	if len(img) == 0 {
		return doc
	}

	wm, err := api.ImageWatermarkForReader(bytes.NewReader(img), "pos:c, scale:1 rel, rot:0, op:1", true, false, types.POINTS)
	if err != nil {
		log.Printf("assemble: page %d image watermark: %v", page, err)
		return doc
	}

	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(doc), &out, []string{strconv.Itoa(page)}, wm, conf); err != nil {
		log.Printf("assemble: page %d image embed failed, keeping template page: %v", page, err)
		return doc
	}
	return out.Bytes()
}

// wrapToWidth word-wraps s so no line exceeds maxWidth points at the
// given size, measuring each candidate line incrementally with
// Helvetica metrics. Single words wider than the limit get their own
// line rather than being split.
func wrapToWidth(s string, maxWidth, pts float64) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	meter := gofpdf.New("P", "pt", "A4", "")
	meter.SetFont("Helvetica", "", pts)

	var lines []string
	cur := ""
	for _, word := range words {
		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}
		if cur != "" && meter.GetStringWidth(candidate) > maxWidth {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur = candidate
	}
	lines = append(lines, cur)
	return lines
}

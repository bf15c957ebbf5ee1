package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// LineItemView is a pre-formatted quotation line item.
type LineItemView struct {
	Description string
	Qty         string
	UnitPrice   string
	Total       string
}

// PricingRowView is a pre-formatted pricing table row.
type PricingRowView struct {
	ID       string
	Label    string
	Standard string
	Launch   string
}

// PaymentTermView is a pre-formatted payment schedule row.
type PaymentTermView struct {
	Stage   string
	Percent string
}

// PreviewData feeds the on-screen document preview. All amounts arrive
// pre-formatted; the view does no computation.
type PreviewData struct {
	ID          string
	QuoteNumber string
	QuoteDate   string
	ValidUntil  string

	CustomerName    string
	CustomerCompany string
	CustomerEmail   string
	CustomerPhone   string
	SiteAddress     string

	Items       []LineItemView
	PricingRows []PricingRowView

	StandardSubtotal   string
	LaunchSubtotal     string
	StandardTax        string
	LaunchTax          string
	StandardGrandTotal string
	LaunchGrandTotal   string
	GSTRate            string
	AmountInWords      string

	Model         string
	Capacity      string
	Speed         string
	Stops         string
	DriveSystem   string
	CabinMaterial string
	DoorType      string

	BankLines    []string
	PaymentTerms []PaymentTermView
}

// QuotationPreviewPage renders the document preview with the two
// capturable page regions. The capture script rasterizes each region at
// 3x and uploads it before requesting the PDF, so the assembler can use
// the exact on-screen rendering as the page content.
func QuotationPreviewPage(data PreviewData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div class="page-header">
<h1>Quotation %s</h1>
<div class="actions">
<button class="btn btn-primary" id="download-pdf">Download PDF</button>
<a class="btn" href="/quotations/%s/export/annexure">Price Annexure</a>
<a class="btn" href="/quotations/%s/export/excel">Excel</a>
<a class="btn" href="/quotations/%s/edit">Edit</a>
</div>
</div>
`, esc(data.QuoteNumber), esc(data.ID), esc(data.ID), esc(data.ID)); err != nil {
			return err
		}

		if err := renderSpecPage(w, data); err != nil {
			return err
		}
		if err := renderPricingPage(w, data); err != nil {
			return err
		}

		_, err := fmt.Fprintf(w, `<script>
document.getElementById("download-pdf").addEventListener("click", async function () {
  var regions = ["spec-page", "pricing-page"];
  for (var i = 0; i < regions.length; i++) {
    var el = document.getElementById(regions[i]);
    if (!el) continue;
    try {
      var canvas = await html2canvas(el, { scale: 3 });
      var blob = await new Promise(function (resolve) { canvas.toBlob(resolve, "image/png"); });
      await fetch("/quotations/%s/capture/" + regions[i], { method: "POST", body: blob });
    } catch (e) {
      // Capture failure is non-fatal: the server draws the page itself.
      console.warn("capture failed for " + regions[i], e);
    }
  }
  window.location = "/quotations/%s/export/pdf";
});
</script>
`, esc(data.ID), esc(data.ID))
		return err
	})
	return PageLayout("Quotation Preview", body)
}

// renderSpecPage writes the technical-specification page region.
func renderSpecPage(w io.Writer, data PreviewData) error {
	specRows := []struct{ label, value string }{
		{"Model", data.Model},
		{"Capacity", data.Capacity},
		{"Speed", data.Speed},
		{"Stops", data.Stops},
		{"Drive System", data.DriveSystem},
		{"Cabin Material", data.CabinMaterial},
		{"Door Type", data.DoorType},
	}

	if _, err := fmt.Fprintf(w, `<section id="spec-page" class="doc-page">
<h2>Technical Specification</h2>
<div class="customer-block">
<p><strong>%s</strong><br>%s<br>%s · %s</p>
<p class="address">%s</p>
</div>
<table class="spec-table">
<tbody>
`, esc(data.CustomerName), esc(data.CustomerCompany), esc(data.CustomerEmail), esc(data.CustomerPhone), esc(data.SiteAddress)); err != nil {
		return err
	}
	for _, row := range specRows {
		if _, err := fmt.Fprintf(w, "<tr><th>%s</th><td>%s</td></tr>\n", esc(row.label), esc(row.value)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</tbody>\n</table>\n<table class=\"items-table\">\n<thead><tr><th>Description</th><th class=\"num\">Qty</th><th class=\"num\">Unit Price</th><th class=\"num\">Total</th></tr></thead>\n<tbody>\n"); err != nil {
		return err
	}
	for _, it := range data.Items {
		if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td class="num">%s</td><td class="num">%s</td><td class="num">%s</td></tr>
`, esc(it.Description), esc(it.Qty), esc(it.UnitPrice), esc(it.Total)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</tbody>\n</table>\n</section>\n")
	return err
}

// renderPricingPage writes the pricing-table page region.
func renderPricingPage(w io.Writer, data PreviewData) error {
	if _, err := io.WriteString(w, `<section id="pricing-page" class="doc-page">
<h2>Pricing</h2>
<table class="pricing-table">
<thead><tr><th>Description</th><th class="num">Standard</th><th class="num">Launch Offer</th></tr></thead>
<tbody>
`); err != nil {
		return err
	}
	for _, row := range data.PricingRows {
		if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td class="num">%s</td><td class="num">%s</td></tr>
`, esc(row.Label), esc(row.Standard), esc(row.Launch)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, `</tbody>
<tfoot>
<tr><th>Subtotal</th><td class="num">%s</td><td class="num">%s</td></tr>
<tr><th>GST (%s%%)</th><td class="num">%s</td><td class="num">%s</td></tr>
<tr class="grand"><th>Grand Total</th><td class="num">%s</td><td class="num">%s</td></tr>
</tfoot>
</table>
<p class="words">%s</p>
`, esc(data.StandardSubtotal), esc(data.LaunchSubtotal),
		esc(data.GSTRate), esc(data.StandardTax), esc(data.LaunchTax),
		esc(data.StandardGrandTotal), esc(data.LaunchGrandTotal),
		esc(data.AmountInWords)); err != nil {
		return err
	}

	if len(data.PaymentTerms) > 0 {
		if _, err := io.WriteString(w, "<h3>Payment Schedule</h3>\n<table class=\"terms-table\">\n<tbody>\n"); err != nil {
			return err
		}
		for _, term := range data.PaymentTerms {
			if _, err := fmt.Fprintf(w, "<tr><td>%s</td><td class=\"num\">%s</td></tr>\n", esc(term.Stage), esc(term.Percent)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</tbody>\n</table>\n"); err != nil {
			return err
		}
	}

	if len(data.BankLines) > 0 {
		if _, err := io.WriteString(w, "<h3>Bank Details</h3>\n<p class=\"bank\">"); err != nil {
			return err
		}
		for i, line := range data.BankLines {
			if i > 0 {
				if _, err := io.WriteString(w, "<br>"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, esc(line)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</p>\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</section>\n")
	return err
}

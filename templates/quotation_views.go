package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// QuotationRow is one row of the quotation list.
type QuotationRow struct {
	ID               string
	QuoteNumber      string
	CustomerName     string
	Status           string
	QuoteDate        string
	LaunchGrandTotal string
}

// QuotationListData feeds the quotation list page.
type QuotationListData struct {
	Rows []QuotationRow
}

// QuotationFormData feeds the create/edit form.
type QuotationFormData struct {
	ID     string
	IsEdit bool

	QuoteNumber     string
	Status          string
	CustomerName    string
	CustomerCompany string
	CustomerEmail   string
	CustomerPhone   string
	SiteAddress     string
	QuoteDate       string
	ValidUntil      string
	GSTRate         string

	Model         string
	Capacity      string
	Speed         string
	Stops         string
	DriveSystem   string
	CabinMaterial string
	DoorType      string
}

// QuotationListPage renders the quotation list.
func QuotationListPage(data QuotationListData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="page-header">
<h1>Quotations</h1>
<a class="btn btn-primary" href="/quotations/create">New Quotation</a>
</div>
<table class="table">
<thead><tr><th>Quote No</th><th>Customer</th><th>Status</th><th>Date</th><th class="num">Launch Total</th><th></th></tr></thead>
<tbody>
`); err != nil {
			return err
		}
		if len(data.Rows) == 0 {
			if _, err := io.WriteString(w, `<tr><td colspan="6" class="empty">No quotations yet.</td></tr>`); err != nil {
				return err
			}
		}
		for _, r := range data.Rows {
			if _, err := fmt.Fprintf(w, `<tr>
<td><a href="/quotations/%s/preview">%s</a></td>
<td>%s</td>
<td><span class="status status-%s">%s</span></td>
<td>%s</td>
<td class="num">%s</td>
<td class="actions">
<a class="btn btn-sm" href="/quotations/%s/edit">Edit</a>
<button class="btn btn-sm btn-danger" hx-delete="/quotations/%s" hx-confirm="Delete this quotation?" hx-target="closest tr" hx-swap="outerHTML">Delete</button>
</td>
</tr>
`, esc(r.ID), esc(r.QuoteNumber), esc(r.CustomerName), esc(r.Status), esc(r.Status), esc(r.QuoteDate), esc(r.LaunchGrandTotal), esc(r.ID), esc(r.ID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n")
		return err
	})
	return PageLayout("Quotations", body)
}

// QuotationFormPage renders the create/edit form.
func QuotationFormPage(data QuotationFormData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		action := "/quotations"
		title := "New Quotation"
		if data.IsEdit {
			action = "/quotations/" + data.ID + "/save"
			title = "Edit Quotation " + data.QuoteNumber
		}

		if _, err := fmt.Fprintf(w, `<h1>%s</h1>
<form method="post" action="%s" class="form">
<fieldset>
<legend>Reference</legend>
%s%s%s
</fieldset>
<fieldset>
<legend>Customer</legend>
%s%s%s%s%s
</fieldset>
<fieldset>
<legend>Technical Specification</legend>
%s%s%s%s%s%s%s
</fieldset>
<fieldset>
<legend>Pricing</legend>
%s
</fieldset>
<div class="form-actions">
<button type="submit" class="btn btn-primary">Save</button>
<a class="btn" href="/quotations">Cancel</a>
</div>
</form>
`,
			esc(title), esc(action),
			formField("quote_number", "Quote Number", data.QuoteNumber, true),
			formField("quote_date", "Quote Date", data.QuoteDate, false),
			formField("valid_until", "Valid Until", data.ValidUntil, false),
			formField("customer_name", "Name", data.CustomerName, true),
			formField("customer_company", "Company", data.CustomerCompany, false),
			formField("customer_email", "Email", data.CustomerEmail, false),
			formField("customer_phone", "Phone", data.CustomerPhone, false),
			formField("site_address", "Site Address", data.SiteAddress, false),
			formField("model", "Model", data.Model, false),
			formField("capacity", "Capacity", data.Capacity, false),
			formField("speed", "Speed", data.Speed, false),
			formField("stops", "Stops", data.Stops, false),
			formField("drive_system", "Drive System", data.DriveSystem, false),
			formField("cabin_material", "Cabin Material", data.CabinMaterial, false),
			formField("door_type", "Door Type", data.DoorType, false),
			formField("gst_rate", "GST Rate (%)", data.GSTRate, false),
		); err != nil {
			return err
		}
		return nil
	})
	return PageLayout("Quotation Form", body)
}

// formField renders a labeled text input.
func formField(name, label, value string, required bool) string {
	req := ""
	if required {
		req = " required"
	}
	return fmt.Sprintf(`<label class="field"><span>%s</span><input type="text" name="%s" value="%s"%s></label>
`, esc(label), esc(name), esc(value), req)
}

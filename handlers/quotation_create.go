package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
	"quotationdesk/templates"
)

// HandleQuotationCreate returns a handler that renders the blank
// quotation form.
func HandleQuotationCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.QuotationFormData{
			GSTRate: strconv.FormatFloat(services.DefaultGSTRate, 'f', -1, 64),
		}
		component := templates.QuotationFormPage(data)
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleQuotationSave returns a handler that creates a quotation from
// the submitted form and seeds its pricing table with the full fixed
// label set so every row exists from the start.
func HandleQuotationSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		quoteNumber := e.Request.FormValue("quote_number")
		customerName := e.Request.FormValue("customer_name")
		if quoteNumber == "" || customerName == "" {
			return e.String(http.StatusBadRequest, "Quote number and customer name are required")
		}

		col, err := app.FindCollectionByNameOrId("quotations")
		if err != nil {
			log.Printf("quotation_create: could not find quotations collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("status", "draft")
		applyQuotationForm(record, e.Request.FormValue)
		if err := app.Save(record); err != nil {
			log.Printf("quotation_create: could not save quotation: %v", err)
			return e.String(http.StatusBadRequest, "Could not save quotation")
		}

		if err := seedPricingRows(app, record.Id); err != nil {
			log.Printf("quotation_create: could not seed pricing rows for %s: %v", record.Id, err)
		}

		SetToast(e, "success", "Quotation created")
		return e.Redirect(http.StatusFound, "/quotations/"+record.Id+"/preview")
	}
}

// applyQuotationForm copies the shared form fields onto a record.
func applyQuotationForm(record *core.Record, formValue func(string) string) {
	for _, name := range []string{
		"quote_number", "customer_name", "customer_company", "customer_email",
		"customer_phone", "site_address", "quote_date", "valid_until",
		"model", "capacity", "speed", "stops", "drive_system",
		"cabin_material", "door_type",
	} {
		record.Set(name, formValue(name))
	}

	gstRate := services.DefaultGSTRate
	if v, err := strconv.ParseFloat(formValue("gst_rate"), 64); err == nil && v > 0 {
		gstRate = v
	}
	record.Set("gst_rate", gstRate)
}

// seedPricingRows creates a zero-valued pricing row for every canonical
// label, with its default NA/complimentary flags.
func seedPricingRows(app *pocketbase.PocketBase, quotationID string) error {
	col, err := app.FindCollectionByNameOrId("pricing_items")
	if err != nil {
		return err
	}

	for i, label := range services.QuotationPricingLabels {
		isNA, isComp := services.DefaultPricingFlags(label)
		record := core.NewRecord(col)
		record.Set("quotation", quotationID)
		record.Set("sort_order", i+1)
		record.Set("label", label)
		record.Set("standard", 0)
		record.Set("launch", 0)
		record.Set("is_na", isNA)
		record.Set("is_complimentary", isComp)
		if err := app.Save(record); err != nil {
			return err
		}
	}
	return nil
}

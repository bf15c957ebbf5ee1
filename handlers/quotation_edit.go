package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/templates"
)

// HandleQuotationEdit returns a handler that renders the edit form for
// an existing quotation.
func HandleQuotationEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return e.String(http.StatusBadRequest, "Missing quotation ID")
		}

		record, err := app.FindRecordById("quotations", quotationID)
		if err != nil {
			log.Printf("quotation_edit: could not find quotation %s: %v", quotationID, err)
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		data := templates.QuotationFormData{
			ID:              record.Id,
			IsEdit:          true,
			QuoteNumber:     record.GetString("quote_number"),
			Status:          record.GetString("status"),
			CustomerName:    record.GetString("customer_name"),
			CustomerCompany: record.GetString("customer_company"),
			CustomerEmail:   record.GetString("customer_email"),
			CustomerPhone:   record.GetString("customer_phone"),
			SiteAddress:     record.GetString("site_address"),
			QuoteDate:       record.GetString("quote_date"),
			ValidUntil:      record.GetString("valid_until"),
			GSTRate:         strconv.FormatFloat(record.GetFloat("gst_rate"), 'f', -1, 64),
			Model:           record.GetString("model"),
			Capacity:        record.GetString("capacity"),
			Speed:           record.GetString("speed"),
			Stops:           record.GetString("stops"),
			DriveSystem:     record.GetString("drive_system"),
			CabinMaterial:   record.GetString("cabin_material"),
			DoorType:        record.GetString("door_type"),
		}

		component := templates.QuotationFormPage(data)
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleQuotationUpdate returns a handler that applies the submitted
// form to an existing quotation.
func HandleQuotationUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return e.String(http.StatusBadRequest, "Missing quotation ID")
		}

		record, err := app.FindRecordById("quotations", quotationID)
		if err != nil {
			log.Printf("quotation_edit: could not find quotation %s: %v", quotationID, err)
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		applyQuotationForm(record, e.Request.FormValue)
		if status := e.Request.FormValue("status"); status != "" {
			record.Set("status", status)
		}

		if err := app.Save(record); err != nil {
			log.Printf("quotation_edit: could not save quotation %s: %v", quotationID, err)
			return e.String(http.StatusBadRequest, "Could not save quotation")
		}

		SetToast(e, "success", "Quotation updated")
		return e.Redirect(http.StatusFound, "/quotations/"+record.Id+"/preview")
	}
}

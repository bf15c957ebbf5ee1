package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleQuotationDelete returns a handler that deletes a quotation.
// Line items, pricing rows and page captures cascade with it.
func HandleQuotationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return e.String(http.StatusBadRequest, "Missing quotation ID")
		}

		record, err := app.FindRecordById("quotations", quotationID)
		if err != nil {
			log.Printf("quotation_delete: could not find quotation %s: %v", quotationID, err)
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quotation_delete: could not delete quotation %s: %v", quotationID, err)
			return e.String(http.StatusInternalServerError, "Could not delete quotation")
		}

		SetToast(e, "success", "Quotation deleted")
		return e.NoContent(http.StatusOK)
	}
}

package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandlePricingItemPatch returns a handler that updates individual
// cells of a pricing row: prices and the NA/complimentary flags. Only
// submitted fields change.
func HandlePricingItemPatch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")
		if quotationID == "" || itemID == "" {
			return e.String(http.StatusBadRequest, "Missing quotation or item ID")
		}

		record, err := app.FindRecordById("pricing_items", itemID)
		if err != nil {
			log.Printf("pricing_items: could not find pricing item %s: %v", itemID, err)
			return e.String(http.StatusNotFound, "Pricing item not found")
		}
		if record.GetString("quotation") != quotationID {
			return e.String(http.StatusNotFound, "Pricing item not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		for _, name := range []string{"standard", "launch"} {
			if !e.Request.Form.Has(name) {
				continue
			}
			value, err := strconv.ParseFloat(e.Request.FormValue(name), 64)
			if err != nil {
				return e.String(http.StatusBadRequest, "Invalid "+name+" price")
			}
			record.Set(name, value)
		}
		for _, name := range []string{"is_na", "is_complimentary"} {
			if !e.Request.Form.Has(name) {
				continue
			}
			record.Set(name, e.Request.FormValue(name) == "true" || e.Request.FormValue(name) == "on")
		}

		if err := app.Save(record); err != nil {
			log.Printf("pricing_items: could not save pricing item %s: %v", itemID, err)
			return e.String(http.StatusBadRequest, "Could not save pricing item")
		}

		return e.NoContent(http.StatusOK)
	}
}

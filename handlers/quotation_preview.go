package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
	"quotationdesk/templates"
)

// HandleQuotationPreview returns a handler that renders the on-screen
// document preview with the capturable spec and pricing page regions.
func HandleQuotationPreview(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return e.String(http.StatusBadRequest, "Missing quotation ID")
		}

		raw, err := buildQuotationRaw(app, quotationID)
		if err != nil {
			log.Printf("quotation_preview: %v", err)
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		pm, err := services.BuildPreviewModel(raw, loadPreviewDefaults(app))
		if err != nil {
			log.Printf("quotation_preview: could not map quotation %s: %v", quotationID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		component := templates.QuotationPreviewPage(buildPreviewData(quotationID, pm))
		return component.Render(e.Request.Context(), e.Response)
	}
}

// buildQuotationRaw assembles the mapper input for one quotation from
// its record, line items and pricing rows. The keys are the stored
// snake_case names; the field mapper's fallback chains normalize them,
// same as they would a payload cached by the browser.
func buildQuotationRaw(app *pocketbase.PocketBase, quotationID string) (map[string]any, error) {
	record, err := app.FindRecordById("quotations", quotationID)
	if err != nil {
		return nil, fmt.Errorf("quotation %s not found: %w", quotationID, err)
	}

	raw := map[string]any{
		"quote_number":     record.GetString("quote_number"),
		"quote_date":       record.GetString("quote_date"),
		"valid_until":      record.GetString("valid_until"),
		"customer_name":    record.GetString("customer_name"),
		"customer_company": record.GetString("customer_company"),
		"customer_email":   record.GetString("customer_email"),
		"customer_phone":   record.GetString("customer_phone"),
		"site_address":     record.GetString("site_address"),
		"gst_rate":         record.GetFloat("gst_rate"),
		"total_amount":     record.GetFloat("total_amount"),
		"model":            record.GetString("model"),
		"capacity":         record.GetString("capacity"),
		"speed":            record.GetString("speed"),
		"stops":            record.GetString("stops"),
		"drive_system":     record.GetString("drive_system"),
		"cabin_material":   record.GetString("cabin_material"),
		"door_type":        record.GetString("door_type"),
	}

	itemsCol, err := app.FindCollectionByNameOrId("quotation_items")
	if err != nil {
		return nil, fmt.Errorf("quotation_items collection: %w", err)
	}
	itemRecords, err := app.FindRecordsByFilter(itemsCol, "quotation = {:q}", "sort_order", 0, 0, map[string]any{"q": quotationID})
	if err != nil {
		itemRecords = nil
	}
	items := make([]any, 0, len(itemRecords))
	for _, it := range itemRecords {
		items = append(items, map[string]any{
			"description": it.GetString("description"),
			"qty":         it.GetFloat("qty"),
			"unit_price":  it.GetFloat("unit_price"),
		})
	}
	raw["items"] = items

	pricing := make([]any, 0, len(services.QuotationPricingLabels))
	for _, item := range fetchPricingItems(app, quotationID) {
		pricing = append(pricing, map[string]any{
			"label":            item.Label,
			"standard":         item.Standard,
			"launch":           item.Launch,
			"is_na":            item.IsNA,
			"is_complimentary": item.IsComplimentary,
		})
	}
	raw["pricing_items"] = pricing

	return raw, nil
}

// loadPreviewDefaults reads the settings singleton. A missing or broken
// settings record degrades to built-in defaults rather than failing the
// document.
func loadPreviewDefaults(app *pocketbase.PocketBase) services.PreviewDefaults {
	defaults := services.PreviewDefaults{GSTRate: services.DefaultGSTRate}

	col, err := app.FindCollectionByNameOrId("quotation_settings")
	if err != nil {
		log.Printf("quotation_preview: could not find quotation_settings collection: %v", err)
		return defaults
	}
	records, err := app.FindAllRecords(col)
	if err != nil || len(records) == 0 {
		return defaults
	}

	rec := records[0]
	if rate := rec.GetFloat("default_gst_rate"); rate > 0 {
		defaults.GSTRate = rate
	}
	defaults.Bank = services.BankDetails{
		BankName:      rec.GetString("bank_name"),
		AccountName:   rec.GetString("account_name"),
		AccountNumber: rec.GetString("account_number"),
		IFSC:          rec.GetString("ifsc"),
		Branch:        rec.GetString("branch"),
	}

	if raw := rec.GetString("payment_terms"); raw != "" {
		var terms []services.PaymentTerm
		if err := json.Unmarshal([]byte(raw), &terms); err != nil {
			log.Printf("quotation_preview: invalid payment_terms JSON: %v", err)
		} else {
			defaults.PaymentTerms = terms
		}
	}
	return defaults
}

// buildPreviewData formats a PreviewModel for the preview templates.
func buildPreviewData(quotationID string, pm services.PreviewModel) templates.PreviewData {
	items := make([]templates.LineItemView, 0, len(pm.Items))
	for _, it := range pm.Items {
		items = append(items, templates.LineItemView{
			Description: it.Description,
			Qty:         formatQty(it.Qty),
			UnitPrice:   services.FormatINR(it.UnitPrice),
			Total:       services.FormatINR(it.Total),
		})
	}

	pricingRows := make([]templates.PricingRowView, 0, len(pm.PricingItems))
	for _, item := range pm.PricingItems {
		standard := services.FormatINR(item.Standard)
		launch := services.FormatINR(item.Launch)
		if item.IsNA {
			standard, launch = "N.A.", "N.A."
		} else if item.IsComplimentary {
			launch = "Complimentary"
		}
		pricingRows = append(pricingRows, templates.PricingRowView{
			Label:    item.Label,
			Standard: standard,
			Launch:   launch,
		})
	}

	terms := make([]templates.PaymentTermView, 0, len(pm.PaymentTerms))
	for _, term := range pm.PaymentTerms {
		terms = append(terms, templates.PaymentTermView{
			Stage:   term.Stage,
			Percent: fmt.Sprintf("%.0f%%", term.Percent),
		})
	}

	var bankLines []string
	if pm.Bank.BankName != "" || pm.Bank.AccountNumber != "" {
		bankLines = []string{
			pm.Bank.BankName + ", " + pm.Bank.Branch,
			"A/C: " + pm.Bank.AccountNumber + " (" + pm.Bank.AccountName + ")",
			"IFSC: " + pm.Bank.IFSC,
		}
	}

	return templates.PreviewData{
		ID:                 quotationID,
		QuoteNumber:        pm.QuoteNumber,
		QuoteDate:          pm.QuoteDate,
		ValidUntil:         pm.ValidUntil,
		CustomerName:       pm.Customer.Name,
		CustomerCompany:    pm.Customer.Company,
		CustomerEmail:      pm.Customer.Email,
		CustomerPhone:      pm.Customer.Phone,
		SiteAddress:        pm.Customer.SiteAddress,
		Items:              items,
		PricingRows:        pricingRows,
		StandardSubtotal:   services.FormatINR(pm.Totals.StandardSubtotal),
		LaunchSubtotal:     services.FormatINR(pm.Totals.LaunchSubtotal),
		StandardTax:        services.FormatINR(pm.Totals.StandardTax),
		LaunchTax:          services.FormatINR(pm.Totals.LaunchTax),
		StandardGrandTotal: services.FormatINR(pm.Totals.StandardGrandTotal),
		LaunchGrandTotal:   services.FormatINR(pm.Totals.LaunchGrandTotal),
		GSTRate:            strconv.FormatFloat(pm.GSTRate, 'f', -1, 64),
		AmountInWords:      pm.AmountInWords,
		Model:              pm.Spec.Model,
		Capacity:           pm.Spec.Capacity,
		Speed:              pm.Spec.Speed,
		Stops:              pm.Spec.Stops,
		DriveSystem:        pm.Spec.DriveSystem,
		CabinMaterial:      pm.Spec.CabinMaterial,
		DoorType:           pm.Spec.DoorType,
		BankLines:          bankLines,
		PaymentTerms:       terms,
	}
}

// formatQty formats a quantity value: whole numbers without decimals,
// others with 2 decimals.
func formatQty(val float64) string {
	if val == math.Trunc(val) {
		return fmt.Sprintf("%.0f", val)
	}
	return fmt.Sprintf("%.2f", val)
}

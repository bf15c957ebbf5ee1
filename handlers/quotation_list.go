package handlers

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
	"quotationdesk/templates"
)

// HandleQuotationList returns a handler that renders the quotation list.
func HandleQuotationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("quotations")
		if err != nil {
			log.Printf("quotation_list: could not find quotations collection: %v", err)
			return e.String(500, "Internal error")
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("quotation_list: could not query quotations: %v", err)
			records = nil
		}

		defaults := loadPreviewDefaults(app)
		rows := make([]templates.QuotationRow, 0, len(records))
		for _, rec := range records {
			totals := quotationTotals(app, rec, defaults.GSTRate)
			rows = append(rows, templates.QuotationRow{
				ID:               rec.Id,
				QuoteNumber:      rec.GetString("quote_number"),
				CustomerName:     rec.GetString("customer_name"),
				Status:           rec.GetString("status"),
				QuoteDate:        rec.GetString("quote_date"),
				LaunchGrandTotal: services.FormatINR(totals.LaunchGrandTotal),
			})
		}

		component := templates.QuotationListPage(templates.QuotationListData{Rows: rows})
		return component.Render(e.Request.Context(), e.Response)
	}
}

// quotationTotals computes the pricing totals for one quotation record,
// applying the upstream total fallback for records without pricing rows.
func quotationTotals(app *pocketbase.PocketBase, rec *core.Record, defaultGST float64) services.PricingTotals {
	gstRate := rec.GetFloat("gst_rate")
	if gstRate <= 0 {
		gstRate = defaultGST
	}

	items := fetchPricingItems(app, rec.Id)
	totals := services.CalcPricingTotals(items, gstRate)
	return services.ApplySubtotalFallback(totals, rec.GetFloat("total_amount"), gstRate)
}

// fetchPricingItems loads a quotation's pricing rows in display order.
func fetchPricingItems(app *pocketbase.PocketBase, quotationID string) []services.PricingLineItem {
	col, err := app.FindCollectionByNameOrId("pricing_items")
	if err != nil {
		log.Printf("quotation_list: could not find pricing_items collection: %v", err)
		return nil
	}

	records, err := app.FindRecordsByFilter(col, "quotation = {:q}", "sort_order", 0, 0, map[string]any{"q": quotationID})
	if err != nil {
		log.Printf("quotation_list: could not query pricing items for %s: %v", quotationID, err)
		return nil
	}

	items := make([]services.PricingLineItem, 0, len(records))
	for _, rec := range records {
		items = append(items, services.PricingLineItem{
			Label:           rec.GetString("label"),
			Standard:        rec.GetFloat("standard"),
			Launch:          rec.GetFloat("launch"),
			IsNA:            rec.GetBool("is_na"),
			IsComplimentary: rec.GetBool("is_complimentary"),
		})
	}
	return items
}

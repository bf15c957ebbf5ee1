package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type pricingDef struct {
	sortOrder       int
	label           string
	standard        float64
	launch          float64
	isNA            bool
	isComplimentary bool
}

type itemDef struct {
	sortOrder   int
	description string
	qty         float64
	unitPrice   float64
}

// Seed inserts the default quotation settings and a demo quotation so a
// fresh install produces a document end to end. It is idempotent: each
// part is skipped when its collection already has records.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedSettings(app); err != nil {
		return err
	}
	return seedDemoQuotation(app)
}

// seedSettings creates the singleton settings record with the company
// bank details and the standard payment schedule. These used to be
// compiled-in literals; keeping them in one seeded record lets call
// sites share a single source.
func seedSettings(app *pocketbase.PocketBase) error {
	settingsCol, err := app.FindCollectionByNameOrId("quotation_settings")
	if err != nil {
		return fmt.Errorf("seed: could not find quotation_settings collection: %w", err)
	}
	existing, err := app.FindAllRecords(settingsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query quotation_settings: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	terms, err := json.Marshal([]services.PaymentTerm{
		{Stage: "Advance with order confirmation", Percent: 30},
		{Stage: "Against material delivery at site", Percent: 50},
		{Stage: "On completion of installation", Percent: 15},
		{Stage: "On handover after inspection", Percent: 5},
	})
	if err != nil {
		return fmt.Errorf("seed: marshal payment terms: %w", err)
	}

	record := core.NewRecord(settingsCol)
	record.Set("bank_name", "State Bank of India")
	record.Set("account_name", "Capricorn Elevators Pvt Ltd")
	record.Set("account_number", "38127465920")
	record.Set("ifsc", "SBIN0004321")
	record.Set("branch", "Hyderabad Industrial Estate")
	record.Set("payment_terms", string(terms))
	record.Set("default_gst_rate", services.DefaultGSTRate)

	if err := app.Save(record); err != nil {
		return fmt.Errorf("seed: save quotation_settings: %w", err)
	}
	log.Println("seed: created default quotation settings")
	return nil
}

// seedDemoQuotation inserts one complete quotation with the full fixed
// pricing-label set and a couple of line items.
func seedDemoQuotation(app *pocketbase.PocketBase) error {
	quotationsCol, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		return fmt.Errorf("seed: could not find quotations collection: %w", err)
	}
	existing, err := app.FindAllRecords(quotationsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query quotations: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: quotations collection is empty – inserting demo quotation …")

	itemsCol, err := app.FindCollectionByNameOrId("quotation_items")
	if err != nil {
		return fmt.Errorf("seed: could not find quotation_items collection: %w", err)
	}
	pricingCol, err := app.FindCollectionByNameOrId("pricing_items")
	if err != nil {
		return fmt.Errorf("seed: could not find pricing_items collection: %w", err)
	}

	quotation := core.NewRecord(quotationsCol)
	quotation.Set("quote_number", "CAP-2025-0001")
	quotation.Set("status", "draft")
	quotation.Set("customer_name", "Rajesh Kumar")
	quotation.Set("customer_company", "Sunrise Constructions")
	quotation.Set("customer_email", "rajesh@sunriseconstructions.in")
	quotation.Set("customer_phone", "9876543210")
	quotation.Set("site_address", "Plot 42, Jubilee Hills, Road No 36, Hyderabad, Telangana 500033")
	quotation.Set("quote_date", "15 Jan 2025")
	quotation.Set("valid_until", "15 Mar 2025")
	quotation.Set("gst_rate", services.DefaultGSTRate)
	quotation.Set("model", "Capricorn MRL-8")
	quotation.Set("capacity", "8 Passengers / 544 kg")
	quotation.Set("speed", "1.0 m/s")
	quotation.Set("stops", "G+4")
	quotation.Set("drive_system", "Gearless MRL")
	quotation.Set("cabin_material", "SS-304 Hairline Finish")
	quotation.Set("door_type", "Automatic Center Opening")
	if err := app.Save(quotation); err != nil {
		return fmt.Errorf("seed: save demo quotation: %w", err)
	}

	items := []itemDef{
		{1, "Capricorn MRL-8 passenger elevator", 1, 1250000},
		{2, "Extended warranty (2 years)", 1, 45000},
	}
	for _, d := range items {
		record := core.NewRecord(itemsCol)
		record.Set("quotation", quotation.Id)
		record.Set("sort_order", d.sortOrder)
		record.Set("description", d.description)
		record.Set("qty", d.qty)
		record.Set("unit_price", d.unitPrice)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: save quotation item %q: %w", d.description, err)
		}
	}

	pricing := []pricingDef{
		{1, "Basic Cost", 1250000, 1180000, false, false},
		{2, "Installation & Commissioning", 85000, 85000, false, false},
		{3, "Transportation", 25000, 0, false, true},
		{4, "Scaffolding", 18000, 0, false, true},
		{5, "Additional Door Cost", 0, 0, true, false},
		{6, "ARD (Automatic Rescue Device)", 35000, 32000, false, false},
		{7, "Power Backup Unit", 0, 0, true, false},
		{8, "AMC (First Year)", 30000, 0, false, true},
	}
	for _, d := range pricing {
		record := core.NewRecord(pricingCol)
		record.Set("quotation", quotation.Id)
		record.Set("sort_order", d.sortOrder)
		record.Set("label", d.label)
		record.Set("standard", d.standard)
		record.Set("launch", d.launch)
		record.Set("is_na", d.isNA)
		record.Set("is_complimentary", d.isComplimentary)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed: save pricing item %q: %w", d.label, err)
		}
	}

	log.Printf("seed: created demo quotation %s", quotation.GetString("quote_number"))
	return nil
}

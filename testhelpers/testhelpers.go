// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestQuotation creates a quotation record with the given quote
// number and customer name and returns it.
func CreateTestQuotation(t *testing.T, app *pocketbase.PocketBase, quoteNumber, customerName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		t.Fatalf("failed to find quotations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote_number", quoteNumber)
	record.Set("customer_name", customerName)
	record.Set("status", "draft")
	record.Set("gst_rate", 18.0)
	record.Set("site_address", "Plot 12, MIDC Industrial Area, Pune")
	record.Set("model", "Capricorn MRL-8")
	record.Set("capacity", "8 Passengers / 544 kg")
	record.Set("speed", "1.0 m/s")
	record.Set("stops", "G+4")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quotation: %v", err)
	}

	return record
}

// CreateTestPricingItem creates a pricing row linked to a quotation.
func CreateTestPricingItem(t *testing.T, app *pocketbase.PocketBase, quotationID, label string, standard, launch float64, isNA, isComplimentary bool) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("pricing_items")
	if err != nil {
		t.Fatalf("failed to find pricing_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quotation", quotationID)
	record.Set("label", label)
	record.Set("standard", standard)
	record.Set("launch", launch)
	record.Set("is_na", isNA)
	record.Set("is_complimentary", isComplimentary)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test pricing item: %v", err)
	}

	return record
}

// CreateTestLineItem creates a scope line item linked to a quotation.
func CreateTestLineItem(t *testing.T, app *pocketbase.PocketBase, quotationID, description string, qty, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotation_items")
	if err != nil {
		t.Fatalf("failed to find quotation_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quotation", quotationID)
	record.Set("description", description)
	record.Set("qty", qty)
	record.Set("unit_price", unitPrice)
	record.Set("sort_order", 1)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test line item: %v", err)
	}

	return record
}

// SeedTestSettings creates a quotation_settings record with bank details
// and a simple two-stage payment schedule.
func SeedTestSettings(t *testing.T, app *pocketbase.PocketBase) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotation_settings")
	if err != nil {
		t.Fatalf("failed to find quotation_settings collection: %v", err)
	}

	terms, err := json.Marshal([]map[string]any{
		{"stage": "Advance with order", "percent": 50.0},
		{"stage": "On handover", "percent": 50.0},
	})
	if err != nil {
		t.Fatalf("failed to marshal payment terms: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("bank_name", "State Bank of India")
	record.Set("account_name", "Capricorn Elevators Pvt Ltd")
	record.Set("account_number", "38412345678")
	record.Set("ifsc", "SBIN0001234")
	record.Set("branch", "Pune Camp")
	record.Set("payment_terms", string(terms))
	record.Set("default_gst_rate", 18.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test settings: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

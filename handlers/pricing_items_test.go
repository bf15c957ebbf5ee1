package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"quotationdesk/testhelpers"
)

func TestHandlePricingItemPatch_UpdatesPrices(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0030", "Rajesh Kumar")
	item := testhelpers.CreateTestPricingItem(t, app, quotation.Id, "Basic Cost", 0, 0, false, false)

	form := url.Values{}
	form.Set("standard", "900000")
	form.Set("launch", "850000")

	handler := HandlePricingItemPatch(app)
	req, rec := postForm(t, "/quotations/"+quotation.Id+"/pricing/"+item.Id, form)
	req.Method = http.MethodPatch
	req.SetPathValue("id", quotation.Id)
	req.SetPathValue("itemId", item.Id)
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	updated, err := app.FindRecordById("pricing_items", item.Id)
	if err != nil {
		t.Fatalf("failed to reload pricing item: %v", err)
	}
	if updated.GetFloat("standard") != 900000 {
		t.Errorf("standard = %v, want 900000", updated.GetFloat("standard"))
	}
	if updated.GetFloat("launch") != 850000 {
		t.Errorf("launch = %v, want 850000", updated.GetFloat("launch"))
	}
}

func TestHandlePricingItemPatch_FlagsOnly(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0031", "Rajesh Kumar")
	item := testhelpers.CreateTestPricingItem(t, app, quotation.Id, "Transportation", 25000, 25000, false, false)

	form := url.Values{}
	form.Set("is_complimentary", "true")

	handler := HandlePricingItemPatch(app)
	req, rec := postForm(t, "/quotations/"+quotation.Id+"/pricing/"+item.Id, form)
	req.Method = http.MethodPatch
	req.SetPathValue("id", quotation.Id)
	req.SetPathValue("itemId", item.Id)
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	updated, err := app.FindRecordById("pricing_items", item.Id)
	if err != nil {
		t.Fatalf("failed to reload pricing item: %v", err)
	}
	if !updated.GetBool("is_complimentary") {
		t.Error("is_complimentary not set")
	}
	// Prices were not submitted and must not change.
	if updated.GetFloat("standard") != 25000 {
		t.Errorf("standard = %v, want untouched 25000", updated.GetFloat("standard"))
	}
}

func TestHandlePricingItemPatch_InvalidPrice(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0032", "Rajesh Kumar")
	item := testhelpers.CreateTestPricingItem(t, app, quotation.Id, "Basic Cost", 0, 0, false, false)

	form := url.Values{}
	form.Set("standard", "not a number")

	handler := HandlePricingItemPatch(app)
	req, rec := postForm(t, "/quotations/"+quotation.Id+"/pricing/"+item.Id, form)
	req.Method = http.MethodPatch
	req.SetPathValue("id", quotation.Id)
	req.SetPathValue("itemId", item.Id)
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandlePricingItemPatch_WrongQuotation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	q1 := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0033", "Rajesh Kumar")
	q2 := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0034", "Priya Sharma")
	item := testhelpers.CreateTestPricingItem(t, app, q1.Id, "Basic Cost", 100, 100, false, false)

	form := url.Values{}
	form.Set("standard", "500")

	handler := HandlePricingItemPatch(app)
	req, rec := postForm(t, "/quotations/"+q2.Id+"/pricing/"+item.Id, form)
	req.Method = http.MethodPatch
	req.SetPathValue("id", q2.Id)
	req.SetPathValue("itemId", item.Id)
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for item belonging to another quotation, got %d", rec.Code)
	}
}

package handlers

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotationdesk/services"
	"quotationdesk/testhelpers"
)

func capturePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode capture PNG: %v", err)
	}
	return buf.Bytes()
}

func TestHandlePageCapture(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0050", "Rajesh Kumar")

	handler := HandlePageCapture(app)
	req := httptest.NewRequest(http.MethodPost,
		"/quotations/"+quotation.Id+"/capture/spec-page",
		bytes.NewReader(capturePNG(t, 100, 140)))
	req.SetPathValue("id", quotation.Id)
	req.SetPathValue("region", services.RegionSpecPage)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	col, err := app.FindCollectionByNameOrId("page_captures")
	if err != nil {
		t.Fatalf("failed to find page_captures collection: %v", err)
	}
	records, err := app.FindRecordsByFilter(col, "quotation = {:q}", "", 0, 0, map[string]any{"q": quotation.Id})
	if err != nil || len(records) != 1 {
		t.Fatalf("expected 1 stored capture, got %d (err=%v)", len(records), err)
	}
	// Uploaded at 100px wide, normalized to 3x.
	if got := records[0].GetFloat("width"); got != 300 {
		t.Errorf("stored width = %v, want 300 after upscale", got)
	}
}

func TestHandlePageCapture_UnknownRegion(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0051", "Rajesh Kumar")

	handler := HandlePageCapture(app)
	req := httptest.NewRequest(http.MethodPost,
		"/quotations/"+quotation.Id+"/capture/cover-page",
		bytes.NewReader(capturePNG(t, 10, 10)))
	req.SetPathValue("id", quotation.Id)
	req.SetPathValue("region", "cover-page")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandlePageCapture_InvalidImage(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0052", "Rajesh Kumar")

	handler := HandlePageCapture(app)
	req := httptest.NewRequest(http.MethodPost,
		"/quotations/"+quotation.Id+"/capture/spec-page",
		bytes.NewReader([]byte("not an image")))
	req.SetPathValue("id", quotation.Id)
	req.SetPathValue("region", services.RegionSpecPage)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandlePageCapture_QuotationNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandlePageCapture(app)
	req := httptest.NewRequest(http.MethodPost,
		"/quotations/missing/capture/spec-page",
		bytes.NewReader(capturePNG(t, 10, 10)))
	req.SetPathValue("id", "missing")
	req.SetPathValue("region", services.RegionSpecPage)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

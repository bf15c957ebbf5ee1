package services_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"quotationdesk/services"
	"quotationdesk/testhelpers"
)

// testPNG encodes a small solid-color PNG of the given width.
func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 26, G: 26, B: 26, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestValidCaptureRegion(t *testing.T) {
	tests := []struct {
		region string
		valid  bool
	}{
		{"spec-page", true},
		{"pricing-page", true},
		{"cover-page", false},
		{"", false},
		{"SPEC-PAGE", false},
	}

	for _, tt := range tests {
		if got := services.ValidCaptureRegion(tt.region); got != tt.valid {
			t.Errorf("ValidCaptureRegion(%q) = %v, want %v", tt.region, got, tt.valid)
		}
	}
}

func TestNormalizeCapture_UpscalesSmallImages(t *testing.T) {
	data := testPNG(t, 100, 140)

	out, width, height, err := services.NormalizeCapture(data)
	if err != nil {
		t.Fatalf("NormalizeCapture returned error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("NormalizeCapture returned empty bytes")
	}
	if width != 100*services.CaptureScale {
		t.Errorf("width = %d, want %d", width, 100*services.CaptureScale)
	}
	if height != 140*services.CaptureScale {
		t.Errorf("height = %d, want %d", height, 140*services.CaptureScale)
	}
}

func TestNormalizeCapture_KeepsAlreadyScaledImages(t *testing.T) {
	data := testPNG(t, 2400, 200)

	_, width, _, err := services.NormalizeCapture(data)
	if err != nil {
		t.Fatalf("NormalizeCapture returned error: %v", err)
	}
	if width != 2400 {
		t.Errorf("width = %d, want 2400 (no upscale past capture resolution)", width)
	}
}

func TestNormalizeCapture_RejectsGarbage(t *testing.T) {
	if _, _, _, err := services.NormalizeCapture([]byte("not an image")); err == nil {
		t.Error("expected error for non-image bytes, got nil")
	}
}

func TestSaveCaptureAndRenderPage(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0001", "Rajesh Kumar")

	data := testPNG(t, 50, 50)
	if err := services.SaveCapture(app, quotation.Id, services.RegionSpecPage, data, 50, 50); err != nil {
		t.Fatalf("SaveCapture failed: %v", err)
	}

	renderer := services.RecordCaptureRenderer{App: app}
	got, err := renderer.RenderPage(context.Background(), quotation.Id, services.RegionSpecPage)
	if err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("RenderPage bytes differ from stored capture: got %d bytes, want %d", len(got), len(data))
	}
}

func TestSaveCapture_UpsertsPerRegion(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0002", "Rajesh Kumar")

	first := testPNG(t, 40, 40)
	second := testPNG(t, 60, 60)
	if err := services.SaveCapture(app, quotation.Id, services.RegionPricingPage, first, 40, 40); err != nil {
		t.Fatalf("first SaveCapture failed: %v", err)
	}
	if err := services.SaveCapture(app, quotation.Id, services.RegionPricingPage, second, 60, 60); err != nil {
		t.Fatalf("second SaveCapture failed: %v", err)
	}

	col, err := app.FindCollectionByNameOrId("page_captures")
	if err != nil {
		t.Fatalf("failed to find page_captures collection: %v", err)
	}
	records, err := app.FindRecordsByFilter(col,
		"quotation = {:q} && region = {:r}", "", 0, 0,
		map[string]any{"q": quotation.Id, "r": services.RegionPricingPage})
	if err != nil {
		t.Fatalf("failed to query captures: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("capture count = %d, want 1 (upsert per region)", len(records))
	}

	renderer := services.RecordCaptureRenderer{App: app}
	got, err := renderer.RenderPage(context.Background(), quotation.Id, services.RegionPricingPage)
	if err != nil {
		t.Fatalf("RenderPage returned error: %v", err)
	}
	if !bytes.Equal(got, second) {
		t.Error("RenderPage did not return the most recent capture")
	}
}

func TestRenderPage_MissingCaptureReturnsNil(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0003", "Rajesh Kumar")

	renderer := services.RecordCaptureRenderer{App: app}
	got, err := renderer.RenderPage(context.Background(), quotation.Id, services.RegionSpecPage)
	if err != nil {
		t.Fatalf("RenderPage returned error for missing capture: %v", err)
	}
	if got != nil {
		t.Errorf("RenderPage = %d bytes, want nil for missing capture", len(got))
	}
}

func TestRenderPage_CancelledContext(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0004", "Rajesh Kumar")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer := services.RecordCaptureRenderer{App: app}
	if _, err := renderer.RenderPage(ctx, quotation.Id, services.RegionSpecPage); err == nil {
		t.Error("expected error for cancelled context, got nil")
	}
}

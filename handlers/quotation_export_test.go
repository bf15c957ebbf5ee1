package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/xuri/excelize/v2"

	"quotationdesk/testhelpers"
)

// writeTestTemplate generates a blank multi-page PDF on disk and points
// QUOTATION_TEMPLATE at it for the duration of the test.
func writeTestTemplate(t *testing.T, pages int) {
	t.Helper()

	cfg := config.NewBuilder().WithPageSize(pagesize.A4).Build()
	m := maroto.New(cfg)
	for i := 0; i < pages; i++ {
		m.AddPages(page.New())
	}
	doc, err := m.Generate()
	if err != nil {
		t.Fatalf("failed to build test template: %v", err)
	}

	path := filepath.Join(t.TempDir(), "template.pdf")
	if err := os.WriteFile(path, doc.GetBytes(), 0o644); err != nil {
		t.Fatalf("failed to write test template: %v", err)
	}
	t.Setenv("QUOTATION_TEMPLATE", path)
}

func TestHandleQuotationExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.SeedTestSettings(t, app)
	writeTestTemplate(t, 10)
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0060", "Rajesh Kumar")
	testhelpers.CreateTestPricingItem(t, app, quotation.Id, "Basic Cost", 950000, 950000, false, false)

	handler := HandleQuotationExportPDF(app)
	req := httptest.NewRequest(http.MethodGet, "/quotations/"+quotation.Id+"/export/pdf", nil)
	req.SetPathValue("id", quotation.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "Capricorn_Quotation_CAP-2025-0060.pdf") {
		t.Errorf("Content-Disposition = %q, want quote-number filename", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body does not start with %PDF- header")
	}
}

func TestHandleQuotationExportPDF_TemplateUnavailable(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	t.Setenv("QUOTATION_TEMPLATE", filepath.Join(t.TempDir(), "missing.pdf"))
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0061", "Rajesh Kumar")

	handler := HandleQuotationExportPDF(app)
	req := httptest.NewRequest(http.MethodGet, "/quotations/"+quotation.Id+"/export/pdf", nil)
	req.SetPathValue("id", quotation.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502 for missing template, got %d", rec.Code)
	}
}

func TestHandleQuotationExportPDF_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleQuotationExportPDF(app)
	req := httptest.NewRequest(http.MethodGet, "/quotations/missing/export/pdf", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleQuotationAnnexurePDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.SeedTestSettings(t, app)
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0062", "Rajesh Kumar")

	handler := HandleQuotationAnnexurePDF(app)
	req := httptest.NewRequest(http.MethodGet, "/quotations/"+quotation.Id+"/export/annexure", nil)
	req.SetPathValue("id", quotation.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body does not start with %PDF- header")
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "Pricing_Annexure_CAP-2025-0062.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestHandleQuotationExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	quotation := testhelpers.CreateTestQuotation(t, app, "CAP-2025-0063", "Rajesh Kumar")
	testhelpers.CreateTestPricingItem(t, app, quotation.Id, "Basic Cost", 900000, 850000, false, false)

	handler := HandleQuotationExportExcel(app)
	req := httptest.NewRequest(http.MethodGet, "/quotations/"+quotation.Id+"/export/excel", nil)
	req.SetPathValue("id", quotation.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("body is not a readable workbook: %v", err)
	}
	defer f.Close()
	ref, _ := f.GetCellValue("Pricing", "A2")
	if ref != "Quote Ref: CAP-2025-0063" {
		t.Errorf("A2 = %q, want quote ref", ref)
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		prefix, quoteNumber, ext string
		expect                   string
	}{
		{"Capricorn_Quotation", "CAP-2025-0001", "pdf", "Capricorn_Quotation_CAP-2025-0001.pdf"},
		{"Capricorn_Quotation", "", "pdf", "Capricorn_Quotation_Official.pdf"},
		{"Capricorn_Quotation", `Q/2025\07 "final"`, "pdf", "Capricorn_Quotation_Q_2025_07_final.pdf"},
		{"Capricorn_Pricing", "CAP 01", "xlsx", "Capricorn_Pricing_CAP_01.xlsx"},
	}

	for _, tt := range tests {
		if got := exportFilename(tt.prefix, tt.quoteNumber, tt.ext); got != tt.expect {
			t.Errorf("exportFilename(%q, %q, %q) = %q, want %q", tt.prefix, tt.quoteNumber, tt.ext, got, tt.expect)
		}
	}
}

package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"golang.org/x/sync/errgroup"

	"quotationdesk/services"
)

// HandleQuotationExportPDF returns a handler that assembles the branded
// quotation PDF. The template and both page captures are fetched
// concurrently; a missing template fails the export, missing captures
// degrade to the text fallback inside the assembler.
func HandleQuotationExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return e.String(http.StatusBadRequest, "Missing quotation ID")
		}

		raw, err := buildQuotationRaw(app, quotationID)
		if err != nil {
			log.Printf("quotation_export: %v", err)
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		pm, err := services.BuildPreviewModel(raw, loadPreviewDefaults(app))
		if err != nil {
			log.Printf("quotation_export: could not map quotation %s: %v", quotationID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		renderer := services.RecordCaptureRenderer{App: app}
		var (
			template []byte
			images   services.PageImages
		)

		g, gctx := errgroup.WithContext(e.Request.Context())
		g.Go(func() error {
			b, err := services.NewTemplateSource().Load(gctx)
			if err != nil {
				return fmt.Errorf("template load: %w", err)
			}
			template = b
			return nil
		})
		g.Go(func() error {
			b, err := renderer.RenderPage(gctx, quotationID, services.RegionSpecPage)
			if err != nil {
				log.Printf("quotation_export: spec capture for %s: %v", quotationID, err)
				return nil
			}
			images.SpecPage = b
			return nil
		})
		g.Go(func() error {
			b, err := renderer.RenderPage(gctx, quotationID, services.RegionPricingPage)
			if err != nil {
				log.Printf("quotation_export: pricing capture for %s: %v", quotationID, err)
				return nil
			}
			images.PricingPage = b
			return nil
		})
		if err := g.Wait(); err != nil {
			log.Printf("quotation_export: %v", err)
			return e.String(http.StatusBadGateway, "Quotation template unavailable")
		}

		pdfBytes, err := services.AssembleQuotationPDF(e.Request.Context(), template, pm, images)
		if err != nil {
			log.Printf("quotation_export: could not assemble PDF for %s: %v", quotationID, err)
			return e.String(http.StatusInternalServerError, "Could not generate PDF")
		}

		filename := exportFilename("Capricorn_Quotation", pm.QuoteNumber, "pdf")
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, err = e.Response.Write(pdfBytes)
		return err
	}
}

// HandleQuotationAnnexurePDF returns a handler that generates the
// standalone pricing annexure without the branded template.
func HandleQuotationAnnexurePDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return e.String(http.StatusBadRequest, "Missing quotation ID")
		}

		raw, err := buildQuotationRaw(app, quotationID)
		if err != nil {
			log.Printf("quotation_export: %v", err)
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		pm, err := services.BuildPreviewModel(raw, loadPreviewDefaults(app))
		if err != nil {
			log.Printf("quotation_export: could not map quotation %s: %v", quotationID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		pdfBytes, err := services.GenerateAnnexurePDF(pm)
		if err != nil {
			log.Printf("quotation_export: could not generate annexure for %s: %v", quotationID, err)
			return e.String(http.StatusInternalServerError, "Could not generate PDF")
		}

		filename := exportFilename("Pricing_Annexure", pm.QuoteNumber, "pdf")
		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, err = e.Response.Write(pdfBytes)
		return err
	}
}

// HandleQuotationExportExcel returns a handler that exports the pricing
// breakdown as a spreadsheet.
func HandleQuotationExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		if quotationID == "" {
			return e.String(http.StatusBadRequest, "Missing quotation ID")
		}

		raw, err := buildQuotationRaw(app, quotationID)
		if err != nil {
			log.Printf("quotation_export: %v", err)
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		pm, err := services.BuildPreviewModel(raw, loadPreviewDefaults(app))
		if err != nil {
			log.Printf("quotation_export: could not map quotation %s: %v", quotationID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		xlsxBytes, err := services.GenerateExcel(pm)
		if err != nil {
			log.Printf("quotation_export: could not generate Excel for %s: %v", quotationID, err)
			return e.String(http.StatusInternalServerError, "Could not generate Excel file")
		}

		filename := exportFilename("Capricorn_Pricing", pm.QuoteNumber, "xlsx")
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, err = e.Response.Write(xlsxBytes)
		return err
	}
}

// exportFilename builds a download filename from a prefix and the quote
// number, replacing characters that break Content-Disposition headers.
func exportFilename(prefix, quoteNumber, ext string) string {
	part := sanitizeFilename(quoteNumber)
	if part == "" {
		part = "Official"
	}
	return prefix + "_" + part + "." + ext
}

func sanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '/', r == '\\':
			b.WriteRune('_')
		}
	}
	return b.String()
}

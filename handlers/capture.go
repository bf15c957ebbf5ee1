package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/services"
)

// maxCaptureBytes bounds the uploaded capture size. A 3x A4 page PNG
// from html2canvas lands well under this.
const maxCaptureBytes = 20 << 20

// HandlePageCapture returns a handler that accepts a rasterized page
// region from the preview and stores it for PDF assembly. The body is
// the raw PNG bytes.
func HandlePageCapture(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotationID := e.Request.PathValue("id")
		region := e.Request.PathValue("region")
		if quotationID == "" {
			return e.String(http.StatusBadRequest, "Missing quotation ID")
		}
		if !services.ValidCaptureRegion(region) {
			return e.String(http.StatusBadRequest, "Unknown capture region")
		}

		if _, err := app.FindRecordById("quotations", quotationID); err != nil {
			return e.String(http.StatusNotFound, "Quotation not found")
		}

		data, err := io.ReadAll(io.LimitReader(e.Request.Body, maxCaptureBytes+1))
		if err != nil {
			log.Printf("capture: could not read upload for %s/%s: %v", quotationID, region, err)
			return e.String(http.StatusBadRequest, "Could not read upload")
		}
		if len(data) == 0 {
			return e.String(http.StatusBadRequest, "Empty upload")
		}
		if len(data) > maxCaptureBytes {
			return e.String(http.StatusRequestEntityTooLarge, "Capture too large")
		}

		normalized, width, height, err := services.NormalizeCapture(data)
		if err != nil {
			log.Printf("capture: invalid image for %s/%s: %v", quotationID, region, err)
			return e.String(http.StatusBadRequest, "Invalid image data")
		}

		if err := services.SaveCapture(app, quotationID, region, normalized, width, height); err != nil {
			log.Printf("capture: could not save capture for %s/%s: %v", quotationID, region, err)
			return e.String(http.StatusInternalServerError, "Could not save capture")
		}

		return e.NoContent(http.StatusNoContent)
	}
}

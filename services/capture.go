package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/disintegration/imaging"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Capturable preview regions. These match the element ids of the
// on-screen template pages in the preview view.
const (
	RegionSpecPage    = "spec-page"
	RegionPricingPage = "pricing-page"
)

// CaptureScale is the rasterization factor preview regions are captured
// at, so page replacements stay sharp at print size.
const CaptureScale = 3

// previewPageWidthPx is the CSS width of a preview page (A4 at 96dpi).
const previewPageWidthPx = 794

// PageRenderer produces a raster image for a named preview region of a
// quotation. A nil byte slice with a nil error means no capture exists;
// callers must treat that as "proceed without this image" and fall back
// to drawing the page content directly.
type PageRenderer interface {
	RenderPage(ctx context.Context, quotationID, region string) ([]byte, error)
}

// ValidCaptureRegion reports whether region names a capturable page.
func ValidCaptureRegion(region string) bool {
	return region == RegionSpecPage || region == RegionPricingPage
}

// NormalizeCapture decodes an uploaded capture and upscales it by
// CaptureScale when the browser rasterized at native resolution.
// Returns PNG bytes and the final pixel dimensions.
func NormalizeCapture(data []byte) ([]byte, int, int, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode capture: %w", err)
	}

	w := img.Bounds().Dx()
	if w < previewPageWidthPx*CaptureScale {
		img = imaging.Resize(img, w*CaptureScale, 0, imaging.Lanczos)
	}
	b := img.Bounds()

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, 0, 0, fmt.Errorf("encode capture: %w", err)
	}
	return buf.Bytes(), b.Dx(), b.Dy(), nil
}

// SaveCapture upserts the capture for a quotation region. Only the most
// recent capture per region is kept.
func SaveCapture(app *pocketbase.PocketBase, quotationID, region string, png []byte, width, height int) error {
	col, err := app.FindCollectionByNameOrId("page_captures")
	if err != nil {
		return fmt.Errorf("page_captures collection: %w", err)
	}

	records, err := app.FindRecordsByFilter(col,
		"quotation = {:q} && region = {:r}", "-created", 1, 0,
		map[string]any{"q": quotationID, "r": region})
	if err != nil || len(records) == 0 {
		record := core.NewRecord(col)
		record.Set("quotation", quotationID)
		record.Set("region", region)
		record.Set("image", base64.StdEncoding.EncodeToString(png))
		record.Set("width", width)
		record.Set("height", height)
		return app.Save(record)
	}

	record := records[0]
	record.Set("image", base64.StdEncoding.EncodeToString(png))
	record.Set("width", width)
	record.Set("height", height)
	return app.Save(record)
}

// RecordCaptureRenderer serves page captures previously uploaded by the
// browser and stored in the page_captures collection.
type RecordCaptureRenderer struct {
	App *pocketbase.PocketBase
}

// RenderPage returns the stored PNG for a quotation region, or nil when
// no usable capture exists. Capture lookups never fail the document:
// a missing or corrupt capture yields nil and the assembler draws the
// page itself.
func (r *RecordCaptureRenderer) RenderPage(ctx context.Context, quotationID, region string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	col, err := r.App.FindCollectionByNameOrId("page_captures")
	if err != nil {
		return nil, fmt.Errorf("page_captures collection: %w", err)
	}

	records, err := r.App.FindRecordsByFilter(col,
		"quotation = {:q} && region = {:r}", "-created", 1, 0,
		map[string]any{"q": quotationID, "r": region})
	if err != nil || len(records) == 0 {
		return nil, nil
	}

	data, err := base64.StdEncoding.DecodeString(records[0].GetString("image"))
	if err != nil {
		log.Printf("capture: corrupt capture for %s/%s: %v", quotationID, region, err)
		return nil, nil
	}
	return data, nil
}

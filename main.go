package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"quotationdesk/collections"
	"quotationdesk/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve static files (stylesheet, scripts, quotation template PDF)
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Quotation CRUD ───────────────────────────────────────
		se.Router.GET("/quotations", handlers.HandleQuotationList(app))
		se.Router.GET("/quotations/create", handlers.HandleQuotationCreate(app))
		se.Router.POST("/quotations", handlers.HandleQuotationSave(app))
		se.Router.GET("/quotations/{id}/edit", handlers.HandleQuotationEdit(app))
		se.Router.POST("/quotations/{id}/save", handlers.HandleQuotationUpdate(app))
		se.Router.DELETE("/quotations/{id}", handlers.HandleQuotationDelete(app))

		// ── Pricing rows ─────────────────────────────────────────
		se.Router.PATCH("/quotations/{id}/pricing/{itemId}", handlers.HandlePricingItemPatch(app))

		// ── Document preview & page captures ─────────────────────
		se.Router.GET("/quotations/{id}/preview", handlers.HandleQuotationPreview(app))
		se.Router.POST("/quotations/{id}/capture/{region}", handlers.HandlePageCapture(app))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/quotations/{id}/export/pdf", handlers.HandleQuotationExportPDF(app))
		se.Router.GET("/quotations/{id}/export/annexure", handlers.HandleQuotationAnnexurePDF(app))
		se.Router.GET("/quotations/{id}/export/excel", handlers.HandleQuotationExportExcel(app))

		// Redirect home to quotation list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/quotations")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

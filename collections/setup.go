// Package collections creates and seeds the PocketBase collections
// backing quotations and their document pipeline.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the quotations,
// quotation_items, pricing_items, page_captures and quotation_settings
// collections exist.
func Setup(app *pocketbase.PocketBase) {
	quotations := ensureCollection(app, "quotations", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "quote_number", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"draft", "sent", "accepted", "rejected"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "customer_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "customer_company", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_email", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "site_address", Required: false})
		c.Fields.Add(&core.TextField{Name: "quote_date", Required: false})
		c.Fields.Add(&core.TextField{Name: "valid_until", Required: false})
		c.Fields.Add(&core.NumberField{Name: "gst_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_amount", Required: false})
		c.Fields.Add(&core.TextField{Name: "model", Required: false})
		c.Fields.Add(&core.TextField{Name: "capacity", Required: false})
		c.Fields.Add(&core.TextField{Name: "speed", Required: false})
		c.Fields.Add(&core.TextField{Name: "stops", Required: false})
		c.Fields.Add(&core.TextField{Name: "drive_system", Required: false})
		c.Fields.Add(&core.TextField{Name: "cabin_material", Required: false})
		c.Fields.Add(&core.TextField{Name: "door_type", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "quotation_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quotation",
			Required:      true,
			CollectionId:  quotations.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: true})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
	})

	ensureCollection(app, "pricing_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quotation",
			Required:      true,
			CollectionId:  quotations.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "label", Required: true})
		c.Fields.Add(&core.NumberField{Name: "standard", Required: false})
		c.Fields.Add(&core.NumberField{Name: "launch", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_na"})
		c.Fields.Add(&core.BoolField{Name: "is_complimentary"})
	})

	ensureCollection(app, "page_captures", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quotation",
			Required:      true,
			CollectionId:  quotations.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "region", Required: true})
		// Captured PNG, base64-encoded.
		c.Fields.Add(&core.TextField{Name: "image", Required: true})
		c.Fields.Add(&core.NumberField{Name: "width", Required: false})
		c.Fields.Add(&core.NumberField{Name: "height", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "quotation_settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "bank_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "account_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "account_number", Required: false})
		c.Fields.Add(&core.TextField{Name: "ifsc", Required: false})
		c.Fields.Add(&core.TextField{Name: "branch", Required: false})
		// JSON array of {stage, percent}.
		c.Fields.Add(&core.TextField{Name: "payment_terms", Required: false})
		c.Fields.Add(&core.NumberField{Name: "default_gst_rate", Required: false})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}

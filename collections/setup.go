package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the counters, sale_orders and
// issued_order_ids collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "counters", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "month_year", Required: true})
		c.Fields.Add(&core.NumberField{Name: "counter", Required: true})
		c.AddIndex("idx_counters_month_year", true, "month_year", "")
	})

	ensureCollection(app, "sale_orders", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "username", Required: true})
		c.Fields.Add(&core.TextField{Name: "dealer_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "city", Required: false})
		c.Fields.Add(&core.TextField{Name: "order_id", Required: true})
		c.Fields.Add(&core.TextField{Name: "report_name", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "generated_at", OnCreate: true})
		c.AddIndex("idx_sale_orders_username", false, "username", "")
	})

	ensureCollection(app, "issued_order_ids", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "order_id", Required: true})
		c.Fields.Add(&core.TextField{Name: "given_to_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "dealer_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "city", Required: false})
		c.Fields.Add(&core.TextField{Name: "given_by_user", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "given_at", OnCreate: true})
		c.AddIndex("idx_issued_order_ids_order_id", true, "order_id", "")
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

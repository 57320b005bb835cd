package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"saleorder/collections"
	"saleorder/config"
	"saleorder/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app := pocketbase.New()

	// Create the durable collections on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Resolve the authenticated username for every request
		se.Router.BindFunc(handlers.UserMiddleware())

		// ── Upload & report generation ───────────────────────────
		se.Router.POST("/upload", handlers.HandleUpload(app, cfg))
		se.Router.POST("/reports", handlers.HandleGenerateReport(app, cfg))
		se.Router.POST("/reports/pdf", handlers.HandleGeneratePDF(app, cfg))
		se.Router.GET("/download/{report}", handlers.HandleDownload(cfg))

		// ── Order history & identifiers ──────────────────────────
		se.Router.GET("/orders", handlers.HandleOrderList(app))
		se.Router.GET("/order-ids/last", handlers.HandleLastOrderID(app))
		se.Router.GET("/order-ids/next", handlers.HandleNextOrderID(app))
		se.Router.POST("/order-ids/issue", handlers.HandleIssueOrderID(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

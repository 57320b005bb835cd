package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"saleorder/services"
)

// HandleOrderList returns the current user's generated orders, newest
// first.
// Route: GET /orders
func HandleOrderList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, ok := requireUser(e)
		if !ok {
			return nil
		}

		orders, err := services.ListOrders(app, user)
		if err != nil {
			log.Printf("orders: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load orders"})
		}
		return e.JSON(http.StatusOK, orders)
	}
}

package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"saleorder/services"
)

// HandleLastOrderID returns the most recent identifier across generated
// reports and manually issued ids.
// Route: GET /order-ids/last
func HandleLastOrderID(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if _, ok := requireUser(e); !ok {
			return nil
		}

		id, err := services.LatestOrderID(app)
		if err != nil {
			log.Printf("order_id: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not read order ids"})
		}
		return e.JSON(http.StatusOK, map[string]string{"order_id": id})
	}
}

// HandleNextOrderID returns the suggested next identifier without
// consuming the counter.
// Route: GET /order-ids/next
func HandleNextOrderID(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if _, ok := requireUser(e); !ok {
			return nil
		}

		id, err := services.NextSuggestedOrderID(app, time.Now())
		if err != nil {
			log.Printf("order_id: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not read order ids"})
		}
		return e.JSON(http.StatusOK, map[string]string{"order_id": id})
	}
}

// HandleIssueOrderID consumes the next sequential identifier and records
// who it was handed to, for orders placed outside the upload flow.
// Route: POST /order-ids/issue
func HandleIssueOrderID(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, ok := requireUser(e)
		if !ok {
			return nil
		}

		givenTo := strings.TrimSpace(e.Request.FormValue("given_to_name"))
		dealer := strings.TrimSpace(e.Request.FormValue("dealer_name"))
		city := strings.TrimSpace(e.Request.FormValue("city"))
		if givenTo == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing given_to_name"})
		}

		id, err := services.IssueOrderID(app, givenTo, dealer, city, user, time.Now())
		if err != nil {
			log.Printf("order_id: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "could not issue order id"})
		}
		return e.JSON(http.StatusOK, map[string]string{"order_id": id})
	}
}

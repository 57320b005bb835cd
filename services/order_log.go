package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// OrderSummary is one entry of a user's order history.
type OrderSummary struct {
	DealerName  string `json:"dealer_name"`
	City        string `json:"city"`
	OrderID     string `json:"order_id"`
	ReportName  string `json:"report_name"`
	GeneratedAt string `json:"generated_at"`
}

// LogOrder records a generated report in the sale_orders collection.
func LogOrder(app core.App, meta ReportMeta, reportName string) error {
	col, err := app.FindCollectionByNameOrId("sale_orders")
	if err != nil {
		return fmt.Errorf("sale_orders collection: %w", err)
	}

	rec := core.NewRecord(col)
	rec.Set("username", meta.Username)
	rec.Set("dealer_name", meta.DealerName)
	rec.Set("city", meta.City)
	rec.Set("order_id", meta.OrderID)
	rec.Set("report_name", reportName)
	if err := app.Save(rec); err != nil {
		return fmt.Errorf("log order %s: %w", meta.OrderID, err)
	}
	return nil
}

// ListOrders returns a user's generated orders, newest first.
func ListOrders(app core.App, username string) ([]OrderSummary, error) {
	recs, err := app.FindRecordsByFilter(
		"sale_orders",
		"username = {:username}",
		"-generated_at",
		0,
		0,
		map[string]any{"username": username},
	)
	if err != nil {
		return nil, fmt.Errorf("list orders for %s: %w", username, err)
	}

	orders := make([]OrderSummary, 0, len(recs))
	for _, rec := range recs {
		orders = append(orders, OrderSummary{
			DealerName:  rec.GetString("dealer_name"),
			City:        rec.GetString("city"),
			OrderID:     rec.GetString("order_id"),
			ReportName:  rec.GetString("report_name"),
			GeneratedAt: rec.GetDateTime("generated_at").Time().Format(time.RFC3339),
		})
	}
	return orders, nil
}

// LatestOrderID returns the most recent identifier across generated reports
// and manually issued IDs, or "" when none exist yet.
func LatestOrderID(app core.App) (string, error) {
	type candidate struct {
		id string
		at time.Time
	}
	var latest candidate

	consider := func(collection, idField, timeField string) error {
		recs, err := app.FindRecordsByFilter(collection, "id != ''", "-"+timeField, 1, 0)
		if err != nil {
			return fmt.Errorf("query %s: %w", collection, err)
		}
		if len(recs) == 0 {
			return nil
		}
		at := recs[0].GetDateTime(timeField).Time()
		if latest.id == "" || at.After(latest.at) {
			latest = candidate{id: recs[0].GetString(idField), at: at}
		}
		return nil
	}

	if err := consider("sale_orders", "order_id", "generated_at"); err != nil {
		return "", err
	}
	if err := consider("issued_order_ids", "order_id", "given_at"); err != nil {
		return "", err
	}
	return latest.id, nil
}

// NextSuggestedOrderID predicts the next identifier without consuming the
// counter: the latest known ID plus one inside the same month, otherwise a
// fresh counter for the current month.
func NextSuggestedOrderID(app core.App, now time.Time) (string, error) {
	latest, err := LatestOrderID(app)
	if err != nil {
		return "", err
	}
	currentKey := MonthKey(now)
	if latest == "" {
		return FormatOrderID(currentKey, 1), nil
	}
	monthKey, seq, ok := ParseOrderID(latest)
	if !ok || monthKey != currentKey {
		return FormatOrderID(currentKey, 1), nil
	}
	return FormatOrderID(currentKey, seq+1), nil
}

// IssueOrderID consumes the next sequential identifier and records who it
// was handed to, without generating a report. The counter increment and the
// issued record commit together.
func IssueOrderID(app core.App, givenTo, dealerName, city, byUser string, now time.Time) (string, error) {
	var orderID string
	err := app.RunInTransaction(func(tx core.App) error {
		id, err := NextOrderID(tx, now)
		if err != nil {
			return err
		}
		orderID = id

		col, err := tx.FindCollectionByNameOrId("issued_order_ids")
		if err != nil {
			return fmt.Errorf("issued_order_ids collection: %w", err)
		}
		rec := core.NewRecord(col)
		rec.Set("order_id", id)
		rec.Set("given_to_name", givenTo)
		rec.Set("dealer_name", dealerName)
		rec.Set("city", city)
		rec.Set("given_by_user", byUser)
		return tx.Save(rec)
	})
	if err != nil {
		return "", fmt.Errorf("issue order id: %w", err)
	}
	return orderID, nil
}

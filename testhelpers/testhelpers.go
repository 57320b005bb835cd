// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"saleorder/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestOrder records a generated sale order and returns it.
func CreateTestOrder(t *testing.T, app *pocketbase.PocketBase, username, dealerName, orderID, reportName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("sale_orders")
	if err != nil {
		t.Fatalf("failed to find sale_orders collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("username", username)
	record.Set("dealer_name", dealerName)
	record.Set("city", "Jaipur")
	record.Set("order_id", orderID)
	record.Set("report_name", reportName)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test order: %v", err)
	}

	return record
}

// SetCounter pins the month counter to a known value.
func SetCounter(t *testing.T, app *pocketbase.PocketBase, monthYear string, counter int) *core.Record {
	t.Helper()

	record, err := app.FindFirstRecordByData("counters", "month_year", monthYear)
	if err != nil {
		col, cerr := app.FindCollectionByNameOrId("counters")
		if cerr != nil {
			t.Fatalf("failed to find counters collection: %v", cerr)
		}
		record = core.NewRecord(col)
		record.Set("month_year", monthYear)
	}
	record.Set("counter", counter)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save counter: %v", err)
	}

	return record
}

package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// ErrOrderID is the sentinel returned when the counter store is
// unreachable. Report generation continues with it so the failure surfaces
// to the user instead of aborting the pipeline.
const ErrOrderID = "ERROR-ID"

// MonthKey returns the "MM-YY" counter key for a point in time.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%02d-%02d", int(t.Month()), t.Year()%100)
}

// FormatOrderID constructs the order identifier from its components.
func FormatOrderID(monthKey string, sequence int) string {
	return fmt.Sprintf("%s-%05d", monthKey, sequence)
}

// ParseOrderID splits an identifier of the form MM-YY-NNNNN back into its
// month key and sequence number.
func ParseOrderID(id string) (monthKey string, sequence int, ok bool) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		return "", 0, false
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, false
	}
	return parts[0] + "-" + parts[1], seq, true
}

// NextOrderID issues the next identifier for the month of now, in the form
// MM-YY-NNNNN. The counter row is created with 1 on a month's first order
// and incremented in place afterwards, inside a single transaction so
// concurrent requests never observe the same value.
//
// On storage failure the sentinel ErrOrderID is returned together with the
// error; the caller logs it and keeps going.
func NextOrderID(app core.App, now time.Time) (string, error) {
	key := MonthKey(now)

	var sequence int
	err := app.RunInTransaction(func(tx core.App) error {
		rec, err := tx.FindFirstRecordByData("counters", "month_year", key)
		if err != nil {
			col, err := tx.FindCollectionByNameOrId("counters")
			if err != nil {
				return fmt.Errorf("counters collection: %w", err)
			}
			rec = core.NewRecord(col)
			rec.Set("month_year", key)
			rec.Set("counter", 1)
			sequence = 1
			return tx.Save(rec)
		}

		sequence = rec.GetInt("counter") + 1
		rec.Set("counter", sequence)
		return tx.Save(rec)
	})
	if err != nil {
		return ErrOrderID, fmt.Errorf("order id sequence for %s: %w", key, err)
	}

	return FormatOrderID(key, sequence), nil
}

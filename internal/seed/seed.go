// Package seed bulk-inserts synthetic daily-check rows for demos and
// backfills.
package seed

import (
	"errors"
	"fmt"
	"time"

	"maintlog/internal/models"
	"maintlog/internal/store"
)

// CheckedBy tags every seeded row so synthetic data is distinguishable
// from operator entries.
const CheckedBy = "System Bot"

// Remark marks seeded rows as auto-generated.
const Remark = "auto-generated"

// Seeded status labels.
const (
	StatusNormal   = "normal"
	StatusAbnormal = "abnormal"
)

// DefaultItems is the routine inspection checklist seeded when the caller
// supplies none.
var DefaultItems = []string{
	"Server system",
	"CCTV cameras",
	"Network switches",
	"UPS units",
	"Internet uplink",
	"Office equipment",
	"Printers",
	"Lighting",
	"Server room temperature",
	"NAS backup system",
}

// Anomaly flags one (item, date) pair whose seeded status is forced to
// abnormal.
type Anomaly struct {
	ItemName string
	Date     string // YYYY-MM-DD
}

// Result reports what a seeding run did.
type Result struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// DailyChecks inserts one check per item for every day in [start, end],
// skipping Wednesdays entirely. Rows already present (same day and item)
// count as skips, not failures, so re-running a seed is harmless.
func DailyChecks(s *store.Store, start, end time.Time, items []string, anomalies []Anomaly) (Result, error) {
	var res Result
	if end.Before(start) {
		return res, fmt.Errorf("end date %s before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	if len(items) == 0 {
		items = DefaultItems
	}

	abnormal := make(map[Anomaly]bool, len(anomalies))
	for _, a := range anomalies {
		abnormal[a] = true
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Wednesday {
			continue
		}
		date := day.Format("2006-01-02")
		for _, item := range items {
			status := StatusNormal
			if abnormal[Anomaly{ItemName: item, Date: date}] {
				status = StatusAbnormal
			}
			_, err := s.CreateDailyCheck(models.DailyCheck{
				CheckDate: date,
				ItemName:  item,
				Status:    status,
				Remark:    Remark,
				CheckedBy: CheckedBy,
			})
			if errors.Is(err, store.ErrDuplicateCheck) {
				res.Skipped++
				continue
			}
			if err != nil {
				return res, fmt.Errorf("seed %s / %s: %w", date, item, err)
			}
			res.Inserted++
		}
	}
	return res, nil
}

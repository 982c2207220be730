// Package jobs registers the built-in cron jobs. Import for side effects.
package jobs

import (
	"log"
	"sync"

	"gorm.io/gorm"

	"pos.GO/config"
	"pos.GO/cron"
	reservationRepo "pos.GO/model/repository/reservation"
	stockRepo "pos.GO/model/repository/stock"
)

var (
	jobDB     *gorm.DB
	jobDBOnce sync.Once
)

func db() *gorm.DB {
	jobDBOnce.Do(func() {
		d, err := config.NewDB()
		if err != nil {
			log.Printf("cron: db connection failed: %v", err)
			return
		}
		jobDB = d
	})
	return jobDB
}

// SetDB overrides the job DB handle (for tests).
func SetDB(d *gorm.DB) {
	jobDBOnce.Do(func() {})
	jobDB = d
}

func init() {
	cron.Register("reservations:sweep", "@every 1m", SweepReservations)
	cron.Register("stock:low:report", "@daily", ReportLowStock)
}

// SweepReservations clears item locks whose TTL has passed.
func SweepReservations(args ...string) {
	d := db()
	if d == nil {
		return
	}
	n, err := reservationRepo.NewReservationRepository(d).ReleaseExpired()
	if err != nil {
		log.Printf("cron reservations:sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("cron reservations:sweep released %d expired locks", n)
	}
}

// ReportLowStock logs every stock row at or below its alert threshold.
func ReportLowStock(args ...string) {
	d := db()
	if d == nil {
		return
	}
	rows, err := stockRepo.NewStockRepository(d).LowStock(0)
	if err != nil {
		log.Printf("cron stock:low:report failed: %v", err)
		return
	}
	if len(rows) == 0 {
		log.Println("cron stock:low:report: no low stock")
		return
	}
	for _, r := range rows {
		log.Printf("low stock: variant %d at location %d has %d (alert at %d)",
			r.VariantID, r.LocationID, r.Quantity, r.LowStockThreshold)
	}
}

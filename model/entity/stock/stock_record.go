package stock

import "time"

// StockRecord is the authoritative per-(variant, location) quantity counter.
// Rows are created lazily on first receipt or explicit stocking; Quantity is
// mutated only by the stock ledger and never observed negative by a
// committed read.
type StockRecord struct {
	ID                uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	VariantID         uint      `gorm:"column:variant_id;not null;uniqueIndex:idx_stock_variant_location" json:"variantId"`
	LocationID        uint      `gorm:"column:location_id;not null;uniqueIndex:idx_stock_variant_location" json:"locationId"`
	Quantity          int64     `gorm:"column:quantity;not null;default:0" json:"quantity"`
	LowStockThreshold int64     `gorm:"column:low_stock_threshold;not null;default:0" json:"lowStockThreshold"`
	CreatedBy         uint      `gorm:"column:created_by" json:"createdBy,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (StockRecord) TableName() string {
	return "stock_records"
}

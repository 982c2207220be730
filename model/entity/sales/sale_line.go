package sales

import "time"

// SaleLine is one ordered item of a sale.
type SaleLine struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SaleID    uint      `gorm:"column:sale_id;not null;index" json:"saleId"`
	ItemID    uint      `gorm:"column:item_id;not null" json:"itemId"`
	VariantID uint      `gorm:"column:variant_id;not null;index" json:"variantId"`
	Quantity  int64     `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice float64   `gorm:"column:unit_price;type:decimal(12,4);not null;default:0" json:"unitPrice"`
	Discount  float64   `gorm:"column:discount;type:decimal(12,4);not null;default:0" json:"discount"`
	Subtotal  float64   `gorm:"column:subtotal;type:decimal(12,4);not null;default:0" json:"subtotal"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SaleLine) TableName() string {
	return "sale_lines"
}

package returns

import "time"

// SaleReturn reverses part of a prior sale's stock effect. Independent of
// the original sale's reservation state.
type SaleReturn struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Reference     string    `gorm:"column:reference;type:varchar(64);uniqueIndex" json:"reference"`
	Date          time.Time `gorm:"column:date" json:"date"`
	Status        string    `gorm:"column:status;type:varchar(32);not null;default:'Pending'" json:"status"`
	PaymentStatus string    `gorm:"column:payment_status;type:varchar(32);not null;default:'Unpaid'" json:"paymentStatus"`
	Total         float64   `gorm:"column:total;type:decimal(12,4);not null;default:0" json:"total"`
	Paid          float64   `gorm:"column:paid;type:decimal(12,4);not null;default:0" json:"paid"`
	Due           float64   `gorm:"column:due;type:decimal(12,4);not null;default:0" json:"due"`
	CustomerID    uint      `gorm:"column:customer_id;not null;index" json:"customerId"`
	SaleID        uint      `gorm:"column:sale_id;not null;index" json:"saleId"`
	LocationID    uint      `gorm:"column:location_id;not null" json:"locationId"`
	CreatedBy     uint      `gorm:"column:created_by;not null" json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Lines []ReturnLine `gorm:"foreignKey:ReturnID" json:"lines"`
}

func (SaleReturn) TableName() string {
	return "sale_returns"
}

// ReturnLine. VariantID may be nil on records imported from older systems;
// the return coordinator then falls back to the item's first known variant.
type ReturnLine struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ReturnID  uint      `gorm:"column:return_id;not null;index" json:"returnId"`
	ItemID    uint      `gorm:"column:item_id;not null" json:"itemId"`
	VariantID *uint     `gorm:"column:variant_id" json:"variantId,omitempty"`
	Quantity  int64     `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice float64   `gorm:"column:unit_price;type:decimal(12,4);not null;default:0" json:"unitPrice"`
	Reason    string    `gorm:"column:reason;type:varchar(255)" json:"reason,omitempty"`
	Subtotal  float64   `gorm:"column:subtotal;type:decimal(12,4);not null;default:0" json:"subtotal"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ReturnLine) TableName() string {
	return "return_lines"
}

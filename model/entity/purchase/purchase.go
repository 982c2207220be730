package purchase

import "time"

// Purchase is a received supplier order. Its lines credit stock; no
// reservation is involved (back-office operation).
type Purchase struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Reference     string    `gorm:"column:reference;type:varchar(64);uniqueIndex" json:"reference"`
	Date          time.Time `gorm:"column:date" json:"date"`
	Status        string    `gorm:"column:status;type:varchar(32);not null;default:'Pending'" json:"status"`
	PaymentStatus string    `gorm:"column:payment_status;type:varchar(32);not null;default:'Unpaid'" json:"paymentStatus"`
	Total         float64   `gorm:"column:total;type:decimal(12,4);not null;default:0" json:"total"`
	Paid          float64   `gorm:"column:paid;type:decimal(12,4);not null;default:0" json:"paid"`
	Due           float64   `gorm:"column:due;type:decimal(12,4);not null;default:0" json:"due"`
	SupplierID    uint      `gorm:"column:supplier_id;not null;index" json:"supplierId"`
	CreatedBy     uint      `gorm:"column:created_by;not null" json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Lines []PurchaseLine `gorm:"foreignKey:PurchaseID" json:"lines"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseLine carries its own location: a single receipt may stock
// several locations.
type PurchaseLine struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PurchaseID uint      `gorm:"column:purchase_id;not null;index" json:"purchaseId"`
	ItemID     uint      `gorm:"column:item_id;not null" json:"itemId"`
	VariantID  uint      `gorm:"column:variant_id;not null;index" json:"variantId"`
	LocationID uint      `gorm:"column:location_id;not null" json:"locationId"`
	Quantity   int64     `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice  float64   `gorm:"column:unit_price;type:decimal(12,4);not null;default:0" json:"unitPrice"`
	Subtotal   float64   `gorm:"column:subtotal;type:decimal(12,4);not null;default:0" json:"subtotal"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (PurchaseLine) TableName() string {
	return "purchase_lines"
}

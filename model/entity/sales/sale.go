package sales

import "time"

// Sale statuses.
const (
	StatusCompleted = "Completed"
	StatusPending   = "Pending"
)

// Payment statuses.
const (
	PaymentPaid    = "Paid"
	PaymentUnpaid  = "Unpaid"
	PaymentOverdue = "Overdue"
)

// Sale is a committed point-of-sale transaction. Created atomically with its
// lines and the corresponding stock decrements.
type Sale struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Reference     string    `gorm:"column:reference;type:varchar(64);uniqueIndex" json:"reference"`
	Date          time.Time `gorm:"column:date" json:"date"`
	Status        string    `gorm:"column:status;type:varchar(32);not null;default:'Pending'" json:"status"`
	PaymentStatus string    `gorm:"column:payment_status;type:varchar(32);not null;default:'Unpaid'" json:"paymentStatus"`
	PaymentMethod string    `gorm:"column:payment_method;type:varchar(64)" json:"paymentMethod,omitempty"`
	Subtotal      float64   `gorm:"column:subtotal;type:decimal(12,4);not null;default:0" json:"subtotal"`
	Discount      float64   `gorm:"column:discount;type:decimal(12,4);not null;default:0" json:"discount"`
	Tax           float64   `gorm:"column:tax;type:decimal(12,4);not null;default:0" json:"tax"`
	Shipping      float64   `gorm:"column:shipping;type:decimal(12,4);not null;default:0" json:"shipping"`
	Total         float64   `gorm:"column:total;type:decimal(12,4);not null;default:0" json:"total"`
	Paid          float64   `gorm:"column:paid;type:decimal(12,4);not null;default:0" json:"paid"`
	Due           float64   `gorm:"column:due;type:decimal(12,4);not null;default:0" json:"due"`
	Note          string    `gorm:"column:note;type:text" json:"note,omitempty"`
	CustomerID    uint      `gorm:"column:customer_id;not null;index" json:"customerId"`
	UserID        uint      `gorm:"column:user_id;not null;index" json:"userId"`
	LocationID    uint      `gorm:"column:location_id;not null;index" json:"locationId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Lines []SaleLine `gorm:"foreignKey:SaleID" json:"lines"`
}

func (Sale) TableName() string {
	return "sales"
}

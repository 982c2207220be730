package catalog

import (
	"time"

	"gorm.io/datatypes"
)

// Variant is a specific sellable configuration (SKU) of an item.
type Variant struct {
	ID         uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemID     uint           `gorm:"column:item_id;not null;index" json:"itemId"`
	SKU        string         `gorm:"column:sku;type:varchar(64);uniqueIndex" json:"sku"`
	Barcode    string         `gorm:"column:barcode;type:varchar(64)" json:"barcode,omitempty"`
	Price      float64        `gorm:"column:price;type:decimal(12,4);not null;default:0" json:"price"`
	Cost       float64        `gorm:"column:cost;type:decimal(12,4);not null;default:0" json:"cost"`
	Attributes datatypes.JSON `gorm:"column:attributes" json:"attributes,omitempty"`
	CreatedBy  uint           `gorm:"column:created_by" json:"createdBy,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func (Variant) TableName() string {
	return "item_variants"
}

package catalog

import "time"

// Item is a sellable product. The is_locked/locked_at/locked_by columns hold
// the checkout reservation state: at most one holder, refreshed on re-acquire,
// stale after the reservation TTL (a stale lock is equivalent to no lock).
type Item struct {
	ID          uint       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string     `gorm:"column:description;type:text" json:"description,omitempty"`
	IsLocked    bool       `gorm:"column:is_locked;not null;default:false" json:"isLocked"`
	LockedAt    *time.Time `gorm:"column:locked_at" json:"lockedAt,omitempty"`
	LockedBy    *uint      `gorm:"column:locked_by" json:"lockedBy,omitempty"`
	CreatedBy   uint       `gorm:"column:created_by" json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Variants []Variant `gorm:"foreignKey:ItemID" json:"variants,omitempty"`
}

func (Item) TableName() string {
	return "items"
}

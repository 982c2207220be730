package catalog

import "time"

// Location is a physical store or warehouse stock is tracked against.
type Location struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"column:address;type:varchar(255)" json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Location) TableName() string {
	return "locations"
}

// Customer referenced by sales and returns.
type Customer struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
	Phone     string    `gorm:"column:phone;type:varchar(64)" json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Customer) TableName() string {
	return "customers"
}

// Supplier referenced by purchase receipts.
type Supplier struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
	Phone     string    `gorm:"column:phone;type:varchar(64)" json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

package catalog

import "time"

// User is a cashier or back-office account. APIToken backs AUTH_TYPE=token.
type User struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Role      string    `gorm:"column:role;type:varchar(32);not null;default:'biller'" json:"role"`
	APIToken  string    `gorm:"column:api_token;type:varchar(128);index" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

package models

// --- Item ---

type Item struct {
	ID          string     `json:"id" mapstructure:"id"`
	Name        string     `json:"name" mapstructure:"name"`
	Description *string    `json:"description,omitempty" mapstructure:"description"`
	IsLocked    bool       `json:"is_locked" mapstructure:"is_locked"`
	Variants    []*Variant `json:"variants" mapstructure:"variants"`
}

type Variant struct {
	ID    string  `json:"id" mapstructure:"id"`
	SKU   string  `json:"sku" mapstructure:"sku"`
	Price float64 `json:"price" mapstructure:"price"`
	Cost  float64 `json:"cost" mapstructure:"cost"`
}

// --- Sale ---

type Sale struct {
	ID            string      `json:"id" mapstructure:"id"`
	Reference     string      `json:"reference" mapstructure:"reference"`
	Date          string      `json:"date" mapstructure:"date"`
	Status        string      `json:"status" mapstructure:"status"`
	PaymentStatus string      `json:"payment_status" mapstructure:"payment_status"`
	Subtotal      float64     `json:"subtotal" mapstructure:"subtotal"`
	Discount      float64     `json:"discount" mapstructure:"discount"`
	Tax           float64     `json:"tax" mapstructure:"tax"`
	Shipping      float64     `json:"shipping" mapstructure:"shipping"`
	Total         float64     `json:"total" mapstructure:"total"`
	Paid          float64     `json:"paid" mapstructure:"paid"`
	Due           float64     `json:"due" mapstructure:"due"`
	CustomerID    string      `json:"customer_id" mapstructure:"customer_id"`
	UserID        string      `json:"user_id" mapstructure:"user_id"`
	LocationID    string      `json:"location_id" mapstructure:"location_id"`
	Lines         []*SaleLine `json:"lines" mapstructure:"lines"`
}

type SaleLine struct {
	ID        string  `json:"id" mapstructure:"id"`
	ItemID    string  `json:"item_id" mapstructure:"item_id"`
	VariantID string  `json:"variant_id" mapstructure:"variant_id"`
	Quantity  int32   `json:"quantity" mapstructure:"quantity"`
	UnitPrice float64 `json:"unit_price" mapstructure:"unit_price"`
	Discount  float64 `json:"discount" mapstructure:"discount"`
	Subtotal  float64 `json:"subtotal" mapstructure:"subtotal"`
}

type SaleList struct {
	Items      []*Sale `json:"items"`
	TotalCount int32   `json:"total_count"`
}

// --- Stock ---

type StockInfo struct {
	VariantID         string `json:"variant_id" mapstructure:"variant_id"`
	LocationID        string `json:"location_id" mapstructure:"location_id"`
	Quantity          int32  `json:"quantity" mapstructure:"quantity"`
	LowStockThreshold int32  `json:"low_stock_threshold" mapstructure:"low_stock_threshold"`
}

package stock

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pos.GO/core/poserr"
	stockEntity "pos.GO/model/entity/stock"
)

// StockRepository is the stock ledger: the single owner of StockRecord
// quantities. All adjustments are forward-only; reversing a decrement is an
// increment with the same amount, which keeps multi-step workflows
// composable.
type StockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// GetQuantity returns the committed quantity for (variant, location).
// Absent rows read as zero. Point-in-time read, not itself synchronizing.
func (r *StockRepository) GetQuantity(variantID, locationID uint) (int64, error) {
	const query = `SELECT quantity FROM stock_records WHERE variant_id = ? AND location_id = ? LIMIT 1`
	var qty sql.NullInt64
	err := r.db.Raw(query, variantID, locationID).Scan(&qty).Error
	if err != nil {
		return 0, err
	}
	if !qty.Valid {
		return 0, nil
	}
	return qty.Int64, nil
}

// TryDecrement decrements quantity iff current >= amount, as one conditional
// UPDATE. Two concurrent calls on the same key can never both succeed past
// the available quantity. On failure it returns *poserr.InsufficientStockError
// with no side effect.
func (r *StockRepository) TryDecrement(tx *gorm.DB, variantID, locationID uint, amount int64) error {
	if amount <= 0 {
		return poserr.ErrBadAmount
	}
	res := tx.Model(&stockEntity.StockRecord{}).
		Where("variant_id = ? AND location_id = ? AND quantity >= ?", variantID, locationID, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		available, err := r.availableIn(tx, variantID, locationID)
		if err != nil {
			return err
		}
		return &poserr.InsufficientStockError{
			VariantID: variantID,
			Available: available,
			Requested: amount,
		}
	}
	return nil
}

// Increment credits stock unconditionally, creating the row if absent.
// Used for receipts and return credits and to reverse prior decrements.
func (r *StockRepository) Increment(tx *gorm.DB, variantID, locationID uint, amount int64) error {
	if amount <= 0 {
		return poserr.ErrBadAmount
	}
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "variant_id"}, {Name: "location_id"}},
		DoUpdates: []clause.Assignment{{Column: clause.Column{Name: "quantity"}, Value: gorm.Expr("quantity + ?", amount)}},
	}
	rec := stockEntity.StockRecord{
		VariantID:  variantID,
		LocationID: locationID,
		Quantity:   amount,
	}
	return tx.Clauses(upsert).Create(&rec).Error
}

// Upsert sets quantity and threshold outright (explicit stocking).
func (r *StockRepository) Upsert(variantID, locationID uint, quantity, threshold int64, createdBy uint) (*stockEntity.StockRecord, error) {
	if quantity < 0 {
		return nil, poserr.ErrBadAmount
	}
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "variant_id"}, {Name: "location_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "low_stock_threshold"}),
	}
	rec := stockEntity.StockRecord{
		VariantID:         variantID,
		LocationID:        locationID,
		Quantity:          quantity,
		LowStockThreshold: threshold,
		CreatedBy:         createdBy,
	}
	if err := r.db.Clauses(upsert).Create(&rec).Error; err != nil {
		return nil, err
	}
	var out stockEntity.StockRecord
	if err := r.db.Where("variant_id = ? AND location_id = ?", variantID, locationID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Record returns the full row for (variant, location).
func (r *StockRepository) Record(variantID, locationID uint) (*stockEntity.StockRecord, error) {
	var rec stockEntity.StockRecord
	err := r.db.Where("variant_id = ? AND location_id = ?", variantID, locationID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, poserr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// LowStock returns rows at or below their threshold. locationID 0 means all
// locations.
func (r *StockRepository) LowStock(locationID uint) ([]stockEntity.StockRecord, error) {
	q := r.db.Where("quantity <= low_stock_threshold AND low_stock_threshold > 0")
	if locationID != 0 {
		q = q.Where("location_id = ?", locationID)
	}
	var recs []stockEntity.StockRecord
	err := q.Order("quantity asc").Find(&recs).Error
	return recs, err
}

// GetQuantityBySKU resolves a SKU to its variant and reads quantity at the
// location. Raw SQL for minimal overhead on the realtime path.
func (r *StockRepository) GetQuantityBySKU(sku string, locationID uint) (int64, bool) {
	const query = `
		SELECT s.quantity FROM stock_records s
		JOIN item_variants v ON v.id = s.variant_id
		WHERE v.sku = ? AND s.location_id = ? LIMIT 1`
	var qty sql.NullInt64
	if err := r.db.Raw(query, sku, locationID).Scan(&qty).Error; err != nil || !qty.Valid {
		return 0, false
	}
	return qty.Int64, true
}

func (r *StockRepository) availableIn(tx *gorm.DB, variantID, locationID uint) (int64, error) {
	const query = `SELECT quantity FROM stock_records WHERE variant_id = ? AND location_id = ? LIMIT 1`
	var qty sql.NullInt64
	if err := tx.Raw(query, variantID, locationID).Scan(&qty).Error; err != nil {
		return 0, err
	}
	if !qty.Valid {
		return 0, nil
	}
	return qty.Int64, nil
}

package catalog

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"pos.GO/core/poserr"
	catalogEntity "pos.GO/model/entity/catalog"
	stockEntity "pos.GO/model/entity/stock"
)

// CatalogRepository is the read-only catalog lookup consumed by the
// transaction core. The core references catalog rows, never mutates them.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetVariant returns price, cost and owning item for a variant.
func (r *CatalogRepository) GetVariant(variantID uint) (*catalogEntity.Variant, error) {
	var v catalogEntity.Variant
	err := r.db.First(&v, variantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, poserr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FirstVariantOf returns the item's first known variant. Degraded
// compatibility path for returns recorded without an explicit variant id:
// it can credit the wrong stock row when an item has several variants, so
// callers log its use.
func (r *CatalogRepository) FirstVariantOf(tx *gorm.DB, itemID uint) (*catalogEntity.Variant, error) {
	var v catalogEntity.Variant
	err := tx.Where("item_id = ?", itemID).Order("id asc").First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, poserr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetItem returns the item with its variants.
func (r *CatalogRepository) GetItem(itemID uint) (*catalogEntity.Item, error) {
	var item catalogEntity.Item
	err := r.db.Preload("Variants").First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, poserr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ItemWithStock is the lock endpoint payload: the item plus per-variant
// stock at one location.
type ItemWithStock struct {
	catalogEntity.Item
	Stock []stockEntity.StockRecord `json:"stock"`
}

// GetItemWithStock loads an item, its variants, and their stock rows at the
// given location (location 0 skips the stock join).
func (r *CatalogRepository) GetItemWithStock(itemID, locationID uint) (*ItemWithStock, error) {
	item, err := r.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	out := &ItemWithStock{Item: *item}
	if locationID == 0 || len(item.Variants) == 0 {
		return out, nil
	}
	variantIDs := make([]uint, 0, len(item.Variants))
	for _, v := range item.Variants {
		variantIDs = append(variantIDs, v.ID)
	}
	err = r.db.Where("variant_id IN ? AND location_id = ?", variantIDs, locationID).
		Find(&out.Stock).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetPriceBySKU reads a variant price by SKU. Raw SQL for the realtime path.
func (r *CatalogRepository) GetPriceBySKU(sku string) (float64, bool) {
	const query = `SELECT price FROM item_variants WHERE sku = ? LIMIT 1`
	var price sql.NullFloat64
	if err := r.db.Raw(query, sku).Scan(&price).Error; err != nil || !price.Valid {
		return 0, false
	}
	return price.Float64, true
}

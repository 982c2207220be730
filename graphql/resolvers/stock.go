package resolvers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	gqlmodels "pos.GO/graphql/models"
)

func (r *QueryResolver) Stock(ctx context.Context, variantID, locationID uint) (*gqlmodels.StockInfo, error) {
	var row map[string]interface{}
	err := r.db.WithContext(ctx).Table("stock_records").
		Where("variant_id = ? AND location_id = ?", variantID, locationID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var info gqlmodels.StockInfo
	if err := decodeRow(row, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// LowStock lists rows at or below their threshold. locationID 0 means the
// request-context location, falling back to all locations.
func (r *QueryResolver) LowStock(ctx context.Context, locationID uint) ([]*gqlmodels.StockInfo, error) {
	if locationID == 0 {
		locationID = r.locationID(ctx)
	}
	q := r.db.WithContext(ctx).Table("stock_records").
		Where("low_stock_threshold > 0 AND quantity <= low_stock_threshold")
	if locationID != 0 {
		q = q.Where("location_id = ?", locationID)
	}

	var rows []map[string]interface{}
	if err := q.Order("quantity").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.StockInfo, 0, len(rows))
	for _, row := range rows {
		var info gqlmodels.StockInfo
		if err := decodeRow(row, &info); err != nil {
			return nil, err
		}
		out = append(out, &info)
	}
	return out, nil
}

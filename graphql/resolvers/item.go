package resolvers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	gqlmodels "pos.GO/graphql/models"
)

func (r *QueryResolver) Item(ctx context.Context, id uint) (*gqlmodels.Item, error) {
	var row map[string]interface{}
	err := r.db.WithContext(ctx).Table("items").Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var item gqlmodels.Item
	if err := decodeRow(row, &item); err != nil {
		return nil, err
	}
	variants, err := r.variantsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Variants = variants
	return &item, nil
}

func (r *QueryResolver) variantsOf(ctx context.Context, itemID uint) ([]*gqlmodels.Variant, error) {
	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).Table("item_variants").
		Where("item_id = ?", itemID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	variants := make([]*gqlmodels.Variant, 0, len(rows))
	for _, vr := range rows {
		var v gqlmodels.Variant
		if err := decodeRow(vr, &v); err != nil {
			return nil, err
		}
		variants = append(variants, &v)
	}
	return variants, nil
}

package resolvers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	gqlmodels "pos.GO/graphql/models"
)

func (r *QueryResolver) Sale(ctx context.Context, id uint) (*gqlmodels.Sale, error) {
	var row map[string]interface{}
	err := r.db.WithContext(ctx).Table("sales").Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.saleFromRow(ctx, row)
}

func (r *QueryResolver) Sales(ctx context.Context, limit, offset int) (*gqlmodels.SaleList, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := r.db.WithContext(ctx).Table("sales").Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).Table("sales").
		Order("id DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	sales := make([]*gqlmodels.Sale, 0, len(rows))
	for _, row := range rows {
		s, err := r.saleFromRow(ctx, row)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return &gqlmodels.SaleList{Items: sales, TotalCount: int32(total)}, nil
}

func (r *QueryResolver) saleFromRow(ctx context.Context, row map[string]interface{}) (*gqlmodels.Sale, error) {
	var s gqlmodels.Sale
	if err := decodeRow(row, &s); err != nil {
		return nil, err
	}

	var lineRows []map[string]interface{}
	err := r.db.WithContext(ctx).Table("sale_lines").
		Where("sale_id = ?", row["id"]).Order("id").Find(&lineRows).Error
	if err != nil {
		return nil, err
	}
	s.Lines = make([]*gqlmodels.SaleLine, 0, len(lineRows))
	for _, lr := range lineRows {
		var l gqlmodels.SaleLine
		if err := decodeRow(lr, &l); err != nil {
			return nil, err
		}
		s.Lines = append(s.Lines, &l)
	}
	return &s, nil
}

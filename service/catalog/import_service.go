package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogEntity "pos.GO/model/entity/catalog"
	stockEntity "pos.GO/model/entity/stock"
)

// ImportOptions configures an item import run.
type ImportOptions struct {
	LocationID uint
	BatchSize  int
	CreatedBy  uint
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows int
	Created   int
	Updated   int
	Skipped   int
	Warnings  []string
	TotalTime time.Duration
}

var knownColumns = map[string]bool{
	"sku": true, "name": true, "description": true, "price": true,
	"cost": true, "quantity": true, "quantity_alert": true,
}

// ImportItems reads CSV data from r and upserts items, variants and opening stock.
// Required columns: sku, name. Optional: description, price, cost, quantity, quantity_alert.
func ImportItems(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	startTotal := time.Now()

	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	if opts.LocationID == 0 {
		opts.LocationID = 1
	}

	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[h] = i
	}
	if _, ok := colIndex["sku"]; !ok {
		return nil, fmt.Errorf("CSV must contain a 'sku' column")
	}
	if _, ok := colIndex["name"]; !ok {
		return nil, fmt.Errorf("CSV must contain a 'name' column")
	}

	result := &ImportResult{}
	for _, h := range headers {
		if !knownColumns[h] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}
	result.TotalRows = len(rows)

	cell := func(row []string, col string) string {
		i, ok := colIndex[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for n, row := range rows {
			sku := cell(row, "sku")
			name := cell(row, "name")
			if sku == "" || name == "" {
				result.Skipped++
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: missing sku or name, skipping", n+2))
				continue
			}

			var variant catalogEntity.Variant
			existing := true
			if err := tx.Where("sku = ?", sku).First(&variant).Error; err != nil {
				if err != gorm.ErrRecordNotFound {
					return err
				}
				existing = false
			}

			price := parseFloat(cell(row, "price"))
			cost := parseFloat(cell(row, "cost"))

			if existing {
				updates := map[string]interface{}{"price": price, "cost": cost}
				if err := tx.Model(&catalogEntity.Variant{}).Where("id = ?", variant.ID).Updates(updates).Error; err != nil {
					return err
				}
				err := tx.Model(&catalogEntity.Item{}).Where("id = ?", variant.ItemID).
					Updates(map[string]interface{}{"name": name, "description": cell(row, "description")}).Error
				if err != nil {
					return err
				}
				result.Updated++
			} else {
				item := catalogEntity.Item{
					Name:        name,
					Description: cell(row, "description"),
					CreatedBy:   opts.CreatedBy,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				variant = catalogEntity.Variant{
					ItemID:    item.ID,
					SKU:       sku,
					Price:     price,
					Cost:      cost,
					CreatedBy: opts.CreatedBy,
				}
				if err := tx.Create(&variant).Error; err != nil {
					return err
				}
				result.Created++
			}

			if qty := cell(row, "quantity"); qty != "" {
				record := stockEntity.StockRecord{
					VariantID:         variant.ID,
					LocationID:        opts.LocationID,
					Quantity:          parseInt(qty),
					LowStockThreshold: parseInt(cell(row, "quantity_alert")),
					CreatedBy:         opts.CreatedBy,
				}
				err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "variant_id"}, {Name: "location_id"}},
					DoUpdates: clause.AssignmentColumns([]string{"quantity", "low_stock_threshold"}),
				}).Create(&record).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.TotalTime = time.Since(startTotal)
	return result, nil
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

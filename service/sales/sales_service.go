package sales

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pos.GO/core/metrics"
	"pos.GO/core/poserr"
	"pos.GO/core/ref"
	salesEntity "pos.GO/model/entity/sales"
	reservationRepo "pos.GO/model/repository/reservation"
	stockRepo "pos.GO/model/repository/stock"
)

// LineInput is one requested sale line.
type LineInput struct {
	ItemID    uint    `json:"itemId"`
	VariantID uint    `json:"variantId"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Discount  float64 `json:"discount"`
	Subtotal  float64 `json:"subtotal"`
}

// SaleInput is the request payload for create and update. Monetary fields
// arrive computed; pricing and tax arithmetic live outside this core.
type SaleInput struct {
	Reference     string      `json:"reference"`
	Date          time.Time   `json:"date"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	PaymentMethod string      `json:"paymentMethod"`
	Subtotal      float64     `json:"subtotal"`
	Discount      float64     `json:"discount"`
	Tax           float64     `json:"tax"`
	Shipping      float64     `json:"shipping"`
	Total         float64     `json:"total"`
	Paid          float64     `json:"paid"`
	Due           float64     `json:"due"`
	Note          string      `json:"note"`
	CustomerID    uint        `json:"customerId"`
	LocationID    uint        `json:"locationId"`
	Lines         []LineInput `json:"lines"`
}

// Service coordinates sale create/update/delete. Each operation runs inside
// one database transaction: either all line writes and ledger adjustments
// commit together, or nothing changes.
type Service struct {
	db     *gorm.DB
	ledger *stockRepo.StockRepository
	holds  *reservationRepo.ReservationRepository
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:     db,
		ledger: stockRepo.NewStockRepository(db),
		holds:  reservationRepo.NewReservationRepository(db),
	}
}

func (in *SaleInput) validate() error {
	if in.CustomerID == 0 || in.LocationID == 0 || len(in.Lines) == 0 {
		return errors.New("customer, location, and at least one sale line are required")
	}
	for _, l := range in.Lines {
		if l.VariantID == 0 || l.Quantity <= 0 {
			return poserr.ErrBadAmount
		}
	}
	return nil
}

// sortedLines returns a copy ordered by variant id, the fixed key order for
// ledger updates, so concurrent sales over overlapping variants cannot
// deadlock on row locks.
func sortedLines(lines []LineInput) []LineInput {
	out := make([]LineInput, len(lines))
	copy(out, lines)
	sort.Slice(out, func(i, j int) bool { return out[i].VariantID < out[j].VariantID })
	return out
}

// Create validates availability, decrements stock and persists the sale with
// its lines, all-or-nothing across the entire line set. The creating user's
// checkout holds on the sold items are released in the same transaction.
func (s *Service) Create(input SaleInput, userID uint) (*salesEntity.Sale, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	sale := newSaleFrom(input, userID)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, l := range sortedLines(input.Lines) {
			if err := s.ledger.TryDecrement(tx, l.VariantID, input.LocationID, l.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		return s.holds.ReleaseAllFor(tx, itemIDs(input.Lines), userID)
	})
	if err != nil {
		if poserr.IsInsufficientStock(err) {
			metrics.InsufficientStock.Inc()
		}
		return nil, err
	}

	metrics.SalesCommitted.Inc()
	return s.Get(sale.ID)
}

// Update replaces the sale's lines: the original decrements are reversed,
// the new line set is validated and decremented, and the record is rewritten,
// in one transaction. When the new set does not fit the available stock the
// whole update rolls back and the old decrements stand.
func (s *Service) Update(id uint, input SaleInput, userID uint) (*salesEntity.Sale, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		original, err := loadSaleForUpdate(tx, id)
		if err != nil {
			return err
		}

		// Reverse the original sale's stock effect (forward increments).
		for _, l := range sortedSaleLines(original.Lines) {
			if err := s.ledger.Increment(tx, l.VariantID, original.LocationID, l.Quantity); err != nil {
				return fmt.Errorf("reverse line %d: %w", l.ID, err)
			}
		}

		// Validate and apply the new line set.
		for _, l := range sortedLines(input.Lines) {
			if err := s.ledger.TryDecrement(tx, l.VariantID, input.LocationID, l.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Where("sale_id = ?", id).Delete(&salesEntity.SaleLine{}).Error; err != nil {
			return fmt.Errorf("delete old lines: %w", err)
		}

		updated := newSaleFrom(input, userID)
		updated.ID = id
		if input.Reference == "" {
			updated.Reference = original.Reference
		}
		for i := range updated.Lines {
			updated.Lines[i].SaleID = id
		}
		if err := tx.Model(&salesEntity.Sale{}).Where("id = ?", id).
			Updates(saleColumns(updated)).Error; err != nil {
			return fmt.Errorf("update sale: %w", err)
		}
		if err := tx.Create(&updated.Lines).Error; err != nil {
			return fmt.Errorf("create new lines: %w", err)
		}
		return s.holds.ReleaseAllFor(tx, itemIDs(input.Lines), userID)
	})
	if err != nil {
		if poserr.IsInsufficientStock(err) {
			metrics.InsufficientStock.Inc()
		}
		return nil, err
	}

	metrics.SalesCommitted.Inc()
	return s.Get(id)
}

// Delete reverses the sale's stock effect and removes the sale and its
// lines, atomically.
func (s *Service) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		sale, err := loadSaleForUpdate(tx, id)
		if err != nil {
			return err
		}
		for _, l := range sortedSaleLines(sale.Lines) {
			if err := s.ledger.Increment(tx, l.VariantID, sale.LocationID, l.Quantity); err != nil {
				return fmt.Errorf("restore line %d: %w", l.ID, err)
			}
		}
		if err := tx.Where("sale_id = ?", id).Delete(&salesEntity.SaleLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&salesEntity.Sale{}, id).Error
	})
}

// Get returns the sale with its lines.
func (s *Service) Get(id uint) (*salesEntity.Sale, error) {
	return loadSale(s.db, id)
}

// List returns sales newest first. userID 0 lists all; a non-zero userID
// restricts to that cashier's sales (biller view).
func (s *Service) List(userID uint) ([]salesEntity.Sale, error) {
	q := s.db.Preload("Lines").Order("created_at desc")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	var out []salesEntity.Sale
	err := q.Find(&out).Error
	return out, err
}

func loadSale(tx *gorm.DB, id uint) (*salesEntity.Sale, error) {
	var sale salesEntity.Sale
	err := tx.Preload("Lines").First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, poserr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// loadSaleForUpdate locks the sale row before reading it, so concurrent
// mutators of the same sale serialize on the sale row and each one reverses
// the line set the previous committer actually wrote. A plain snapshot read
// here would let a second updater reverse stale lines on MySQL.
func loadSaleForUpdate(tx *gorm.DB, id uint) (*salesEntity.Sale, error) {
	var sale salesEntity.Sale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Lines").First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, poserr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// sortedSaleLines returns a copy of stored lines ordered by variant id,
// matching the key order used for decrements so reversal and decrement
// loops take stock-row locks in one fixed order.
func sortedSaleLines(lines []salesEntity.SaleLine) []salesEntity.SaleLine {
	out := make([]salesEntity.SaleLine, len(lines))
	copy(out, lines)
	sort.Slice(out, func(i, j int) bool { return out[i].VariantID < out[j].VariantID })
	return out
}

func newSaleFrom(input SaleInput, userID uint) *salesEntity.Sale {
	sale := &salesEntity.Sale{
		Reference:     input.Reference,
		Date:          input.Date,
		Status:        input.Status,
		PaymentStatus: input.PaymentStatus,
		PaymentMethod: input.PaymentMethod,
		Subtotal:      input.Subtotal,
		Discount:      input.Discount,
		Tax:           input.Tax,
		Shipping:      input.Shipping,
		Total:         input.Total,
		Paid:          input.Paid,
		Due:           input.Due,
		Note:          input.Note,
		CustomerID:    input.CustomerID,
		UserID:        userID,
		LocationID:    input.LocationID,
	}
	if sale.Reference == "" {
		sale.Reference = ref.New("SL")
	}
	if sale.Date.IsZero() {
		sale.Date = time.Now()
	}
	if sale.Status == "" {
		sale.Status = salesEntity.StatusPending
	}
	if sale.PaymentStatus == "" {
		sale.PaymentStatus = salesEntity.PaymentUnpaid
	}
	for _, l := range input.Lines {
		sale.Lines = append(sale.Lines, salesEntity.SaleLine{
			ItemID:    l.ItemID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
			Subtotal:  l.Subtotal,
		})
	}
	return sale
}

func saleColumns(s *salesEntity.Sale) map[string]interface{} {
	return map[string]interface{}{
		"reference":      s.Reference,
		"date":           s.Date,
		"status":         s.Status,
		"payment_status": s.PaymentStatus,
		"payment_method": s.PaymentMethod,
		"subtotal":       s.Subtotal,
		"discount":       s.Discount,
		"tax":            s.Tax,
		"shipping":       s.Shipping,
		"total":          s.Total,
		"paid":           s.Paid,
		"due":            s.Due,
		"note":           s.Note,
		"customer_id":    s.CustomerID,
		"user_id":        s.UserID,
		"location_id":    s.LocationID,
	}
}

func itemIDs(lines []LineInput) []uint {
	seen := make(map[uint]bool, len(lines))
	out := make([]uint, 0, len(lines))
	for _, l := range lines {
		if l.ItemID != 0 && !seen[l.ItemID] {
			seen[l.ItemID] = true
			out = append(out, l.ItemID)
		}
	}
	return out
}

package purchase

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"pos.GO/core/metrics"
	"pos.GO/core/poserr"
	"pos.GO/core/ref"
	purchaseEntity "pos.GO/model/entity/purchase"
	stockRepo "pos.GO/model/repository/stock"
)

// LineInput is one received line. Location is per line: a single receipt
// can stock several locations.
type LineInput struct {
	ItemID     uint    `json:"itemId"`
	VariantID  uint    `json:"variantId"`
	LocationID uint    `json:"locationId"`
	Quantity   int64   `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	Subtotal   float64 `json:"subtotal"`
}

type PurchaseInput struct {
	Reference     string      `json:"reference"`
	Date          time.Time   `json:"date"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	Total         float64     `json:"total"`
	Paid          float64     `json:"paid"`
	Due           float64     `json:"due"`
	SupplierID    uint        `json:"supplierId"`
	Lines         []LineInput `json:"lines"`
}

// Service coordinates purchase receipts: ledger credits and the purchase
// record are one atomic unit. No reservation is involved; receipts are
// back-office operations.
type Service struct {
	db     *gorm.DB
	ledger *stockRepo.StockRepository
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, ledger: stockRepo.NewStockRepository(db)}
}

func (in *PurchaseInput) validate() error {
	if in.SupplierID == 0 || len(in.Lines) == 0 {
		return errors.New("supplier and at least one purchase line are required")
	}
	for _, l := range in.Lines {
		if l.VariantID == 0 || l.LocationID == 0 || l.Quantity <= 0 {
			return poserr.ErrBadAmount
		}
	}
	return nil
}

// Create persists the purchase with its lines and credits the ledger per
// line, in one transaction.
func (s *Service) Create(input PurchaseInput, userID uint) (*purchaseEntity.Purchase, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	p := newPurchaseFrom(input, userID)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		for _, l := range sortedLines(input.Lines) {
			if err := s.ledger.Increment(tx, l.VariantID, l.LocationID, l.Quantity); err != nil {
				return fmt.Errorf("credit stock for variant %d: %w", l.VariantID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PurchasesCommitted.Inc()
	return s.Get(p.ID)
}

// Delete reverses the receipt's credits and removes the record. The reversal
// is a conditional decrement: when the received stock was already sold it
// fails with InsufficientStock and the purchase stays.
func (s *Service) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := loadPurchase(tx, id)
		if err != nil {
			return err
		}
		for _, l := range sortedEntityLines(p.Lines) {
			if err := s.ledger.TryDecrement(tx, l.VariantID, l.LocationID, l.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Where("purchase_id = ?", id).Delete(&purchaseEntity.PurchaseLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&purchaseEntity.Purchase{}, id).Error
	})
	if poserr.IsInsufficientStock(err) {
		metrics.InsufficientStock.Inc()
	}
	return err
}

// Get returns the purchase with its lines.
func (s *Service) Get(id uint) (*purchaseEntity.Purchase, error) {
	return loadPurchase(s.db, id)
}

// List returns purchases newest first.
func (s *Service) List() ([]purchaseEntity.Purchase, error) {
	var out []purchaseEntity.Purchase
	err := s.db.Preload("Lines").Order("date desc").Find(&out).Error
	return out, err
}

func loadPurchase(tx *gorm.DB, id uint) (*purchaseEntity.Purchase, error) {
	var p purchaseEntity.Purchase
	err := tx.Preload("Lines").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, poserr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func newPurchaseFrom(input PurchaseInput, userID uint) *purchaseEntity.Purchase {
	p := &purchaseEntity.Purchase{
		Reference:     input.Reference,
		Date:          input.Date,
		Status:        input.Status,
		PaymentStatus: input.PaymentStatus,
		Total:         input.Total,
		Paid:          input.Paid,
		Due:           input.Due,
		SupplierID:    input.SupplierID,
		CreatedBy:     userID,
	}
	if p.Reference == "" {
		p.Reference = ref.New("PO")
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	if p.Status == "" {
		p.Status = "Pending"
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = "Unpaid"
	}
	for _, l := range input.Lines {
		p.Lines = append(p.Lines, purchaseEntity.PurchaseLine{
			ItemID:     l.ItemID,
			VariantID:  l.VariantID,
			LocationID: l.LocationID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			Subtotal:   l.Subtotal,
		})
	}
	return p
}

func sortedLines(lines []LineInput) []LineInput {
	out := make([]LineInput, len(lines))
	copy(out, lines)
	sort.Slice(out, func(i, j int) bool {
		if out[i].VariantID != out[j].VariantID {
			return out[i].VariantID < out[j].VariantID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out
}

func sortedEntityLines(lines []purchaseEntity.PurchaseLine) []purchaseEntity.PurchaseLine {
	out := make([]purchaseEntity.PurchaseLine, len(lines))
	copy(out, lines)
	sort.Slice(out, func(i, j int) bool {
		if out[i].VariantID != out[j].VariantID {
			return out[i].VariantID < out[j].VariantID
		}
		return out[i].LocationID < out[j].LocationID
	})
	return out
}

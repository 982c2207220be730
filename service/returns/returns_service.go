package returns

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"pos.GO/core/metrics"
	"pos.GO/core/poserr"
	"pos.GO/core/ref"
	returnsEntity "pos.GO/model/entity/returns"
	catalogRepo "pos.GO/model/repository/catalog"
	stockRepo "pos.GO/model/repository/stock"
)

// LineInput is one returned line. VariantID 0 triggers the first-variant
// fallback.
type LineInput struct {
	ItemID    uint    `json:"itemId"`
	VariantID uint    `json:"variantId"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Reason    string  `json:"reason"`
	Subtotal  float64 `json:"subtotal"`
}

type ReturnInput struct {
	Reference     string      `json:"reference"`
	Date          time.Time   `json:"date"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	Total         float64     `json:"total"`
	Paid          float64     `json:"paid"`
	Due           float64     `json:"due"`
	CustomerID    uint        `json:"customerId"`
	SaleID        uint        `json:"saleId"`
	LocationID    uint        `json:"locationId"`
	Lines         []LineInput `json:"lines"`
}

// Service coordinates sales returns: return record, lines and ledger credits
// commit as one unit.
type Service struct {
	db      *gorm.DB
	ledger  *stockRepo.StockRepository
	catalog *catalogRepo.CatalogRepository
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:      db,
		ledger:  stockRepo.NewStockRepository(db),
		catalog: catalogRepo.NewCatalogRepository(db),
	}
}

func (in *ReturnInput) validate() error {
	if in.CustomerID == 0 || in.LocationID == 0 || len(in.Lines) == 0 {
		return errors.New("customer, location, and at least one return line are required")
	}
	for _, l := range in.Lines {
		if l.Quantity <= 0 {
			return poserr.ErrBadAmount
		}
	}
	return nil
}

// Create persists the return and credits the ledger per line in one
// transaction.
//
// When a line carries no variant id the credit goes to the item's first
// known variant. That guess can hit the wrong stock row on multi-variant
// items; it is kept for compatibility with returns recorded by older
// clients and is logged every time it runs. A line whose item has no
// variants at all skips the ledger credit, as the original data did.
func (s *Service) Create(input ReturnInput, userID uint) (*returnsEntity.SaleReturn, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	r := newReturnFrom(input, userID)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, l := range input.Lines {
			variantID := l.VariantID
			if variantID == 0 && l.ItemID != 0 {
				v, err := s.catalog.FirstVariantOf(tx, l.ItemID)
				if errors.Is(err, poserr.ErrNotFound) {
					log.Printf("returns: no variant for item %d, skipping stock credit", l.ItemID)
					continue
				}
				if err != nil {
					return err
				}
				log.Printf("returns: line without variant, guessed variant %d for item %d", v.ID, l.ItemID)
				variantID = v.ID
				r.Lines[i].VariantID = &variantID
			}
			if variantID == 0 {
				continue
			}
			if err := s.ledger.Increment(tx, variantID, input.LocationID, l.Quantity); err != nil {
				return fmt.Errorf("credit stock for variant %d: %w", variantID, err)
			}
		}
		if err := tx.Create(r).Error; err != nil {
			return fmt.Errorf("create return: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ReturnsCommitted.Inc()
	return s.Get(r.ID)
}

// Get returns the sale return with its lines.
func (s *Service) Get(id uint) (*returnsEntity.SaleReturn, error) {
	var r returnsEntity.SaleReturn
	err := s.db.Preload("Lines").First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, poserr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns sale returns newest first.
func (s *Service) List() ([]returnsEntity.SaleReturn, error) {
	var out []returnsEntity.SaleReturn
	err := s.db.Preload("Lines").Order("created_at desc").Find(&out).Error
	return out, err
}

func newReturnFrom(input ReturnInput, userID uint) *returnsEntity.SaleReturn {
	r := &returnsEntity.SaleReturn{
		Reference:     input.Reference,
		Date:          input.Date,
		Status:        input.Status,
		PaymentStatus: input.PaymentStatus,
		Total:         input.Total,
		Paid:          input.Paid,
		Due:           input.Due,
		CustomerID:    input.CustomerID,
		SaleID:        input.SaleID,
		LocationID:    input.LocationID,
		CreatedBy:     userID,
	}
	if r.Reference == "" {
		r.Reference = ref.New("RT")
	}
	if r.Date.IsZero() {
		r.Date = time.Now()
	}
	if r.Status == "" {
		r.Status = "Pending"
	}
	if r.PaymentStatus == "" {
		r.PaymentStatus = "Unpaid"
	}
	for _, l := range input.Lines {
		line := returnsEntity.ReturnLine{
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Reason:    l.Reason,
			Subtotal:  l.Subtotal,
		}
		if l.VariantID != 0 {
			v := l.VariantID
			line.VariantID = &v
		}
		r.Lines = append(r.Lines, line)
	}
	return r
}

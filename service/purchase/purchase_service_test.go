package purchase

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"pos.GO/core/poserr"
	catalogEntity "pos.GO/model/entity/catalog"
	purchaseEntity "pos.GO/model/entity/purchase"
	stockEntity "pos.GO/model/entity/stock"
	stockRepo "pos.GO/model/repository/stock"
)

func purchaseTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("purchase_service_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	err = db.AutoMigrate(
		&catalogEntity.Item{},
		&catalogEntity.Variant{},
		&stockEntity.StockRecord{},
		&purchaseEntity.Purchase{},
		&purchaseEntity.PurchaseLine{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func stockQty(t *testing.T, db *gorm.DB, variantID, locationID uint) int64 {
	t.Helper()
	qty, err := stockRepo.NewStockRepository(db).GetQuantity(variantID, locationID)
	if err != nil {
		t.Fatalf("GetQuantity: %v", err)
	}
	return qty
}

func TestCreate_CreditsPerLineLocation(t *testing.T) {
	db := purchaseTestDB(t)
	svc := NewService(db)

	p, err := svc.Create(PurchaseInput{
		SupplierID: 1,
		Total:      200,
		Lines: []LineInput{
			{ItemID: 1, VariantID: 1, LocationID: 1, Quantity: 10, UnitPrice: 8},
			{ItemID: 1, VariantID: 1, LocationID: 2, Quantity: 5, UnitPrice: 8},
			{ItemID: 2, VariantID: 2, LocationID: 1, Quantity: 3, UnitPrice: 20},
		},
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(p.Reference, "PO-") {
		t.Errorf("reference = %q, want PO- prefix", p.Reference)
	}
	if len(p.Lines) != 3 {
		t.Errorf("lines = %d, want 3", len(p.Lines))
	}
	if got := stockQty(t, db, 1, 1); got != 10 {
		t.Errorf("variant 1 at location 1 = %d, want 10", got)
	}
	if got := stockQty(t, db, 1, 2); got != 5 {
		t.Errorf("variant 1 at location 2 = %d, want 5", got)
	}
	if got := stockQty(t, db, 2, 1); got != 3 {
		t.Errorf("variant 2 at location 1 = %d, want 3", got)
	}
}

func TestCreate_Validation(t *testing.T) {
	db := purchaseTestDB(t)
	svc := NewService(db)

	if _, err := svc.Create(PurchaseInput{Lines: []LineInput{{VariantID: 1, LocationID: 1, Quantity: 1}}}, 1); err == nil {
		t.Error("missing supplier should fail")
	}
	in := PurchaseInput{SupplierID: 1, Lines: []LineInput{{VariantID: 1, LocationID: 1, Quantity: -2}}}
	if _, err := svc.Create(in, 1); !errors.Is(err, poserr.ErrBadAmount) {
		t.Errorf("negative quantity: err = %v, want ErrBadAmount", err)
	}
}

func TestDelete_ReversesCredits(t *testing.T) {
	db := purchaseTestDB(t)
	svc := NewService(db)

	p, err := svc.Create(PurchaseInput{
		SupplierID: 1,
		Lines:      []LineInput{{ItemID: 1, VariantID: 1, LocationID: 1, Quantity: 10}},
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := stockQty(t, db, 1, 1); got != 0 {
		t.Errorf("stock = %d, want 0", got)
	}
	if _, err := svc.Get(p.ID); !errors.Is(err, poserr.ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestDelete_BlockedWhenStockAlreadySold(t *testing.T) {
	db := purchaseTestDB(t)
	svc := NewService(db)

	p, err := svc.Create(PurchaseInput{
		SupplierID: 1,
		Lines:      []LineInput{{ItemID: 1, VariantID: 1, LocationID: 1, Quantity: 10}},
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Simulate sales consuming most of the received stock.
	ledger := stockRepo.NewStockRepository(db)
	if err := ledger.TryDecrement(db, 1, 1, 7); err != nil {
		t.Fatalf("TryDecrement: %v", err)
	}

	err = svc.Delete(p.ID)
	if !poserr.IsInsufficientStock(err) {
		t.Fatalf("Delete = %v, want InsufficientStockError", err)
	}
	if _, err := svc.Get(p.ID); err != nil {
		t.Errorf("purchase should survive blocked delete: %v", err)
	}
	if got := stockQty(t, db, 1, 1); got != 3 {
		t.Errorf("stock = %d, want 3 (unchanged)", got)
	}
}

func TestList_NewestFirst(t *testing.T) {
	db := purchaseTestDB(t)
	svc := NewService(db)

	first, err := svc.Create(PurchaseInput{
		SupplierID: 1,
		Date:       time.Now().Add(-time.Hour),
		Lines:      []LineInput{{ItemID: 1, VariantID: 1, LocationID: 1, Quantity: 1}},
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(PurchaseInput{
		SupplierID: 1,
		Lines:      []LineInput{{ItemID: 1, VariantID: 1, LocationID: 1, Quantity: 1}},
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	out, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("List = %d purchases, want 2", len(out))
	}
	if out[0].ID != second.ID || out[1].ID != first.ID {
		t.Errorf("order = [%d, %d], want [%d, %d]", out[0].ID, out[1].ID, second.ID, first.ID)
	}
}

package stock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"pos.GO/core/poserr"
	catalogEntity "pos.GO/model/entity/catalog"
	stockEntity "pos.GO/model/entity/stock"
)

func stockTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("stock_repo_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	if err := db.AutoMigrate(
		&catalogEntity.Item{},
		&catalogEntity.Variant{},
		&stockEntity.StockRecord{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedStock(t *testing.T, db *gorm.DB, variantID, locationID uint, qty int64) {
	t.Helper()
	rec := stockEntity.StockRecord{VariantID: variantID, LocationID: locationID, Quantity: qty}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}
}

func TestGetQuantity_AbsentRowReadsZero(t *testing.T) {
	db := stockTestDB(t)
	repo := NewStockRepository(db)

	qty, err := repo.GetQuantity(99, 1)
	if err != nil {
		t.Fatalf("GetQuantity: %v", err)
	}
	if qty != 0 {
		t.Errorf("qty = %d, want 0", qty)
	}
}

func TestTryDecrement_Succeeds(t *testing.T) {
	db := stockTestDB(t)
	repo := NewStockRepository(db)
	seedStock(t, db, 1, 1, 10)

	if err := repo.TryDecrement(db, 1, 1, 4); err != nil {
		t.Fatalf("TryDecrement: %v", err)
	}
	qty, _ := repo.GetQuantity(1, 1)
	if qty != 6 {
		t.Errorf("qty = %d, want 6", qty)
	}
}

func TestTryDecrement_ExactBalanceToZero(t *testing.T) {
	db := stockTestDB(t)
	repo := NewStockRepository(db)
	seedStock(t, db, 1, 1, 5)

	if err := repo.TryDecrement(db, 1, 1, 5); err != nil {
		t.Fatalf("TryDecrement: %v", err)
	}
	qty, _ := repo.GetQuantity(1, 1)
	if qty != 0 {
		t.Errorf("qty = %d, want 0", qty)
	}
}

func TestTryDecrement_Insufficient(t *testing.T) {
	db := stockTestDB(t)
	repo := NewStockRepository(db)
	seedStock(t, db, 1, 1, 3)

	err := repo.TryDecrement(db, 1, 1, 5)
	var insuff *poserr.InsufficientStockError
	if !errors.As(err, &insuff) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if insuff.Available != 3 || insuff.Requested != 5 || insuff.VariantID != 1 {
		t.Errorf("error fields = %+v", insuff)
	}
	qty, _ := repo.GetQuantity(1, 1)
	if qty != 3 {
		t.Errorf("qty = %d, want 3 (no side effect)", qty)
	}
}

func TestTryDecrement_AbsentRowIsInsufficient(t *testing.T) {
	db := stockTestDB(t)
	repo := NewStockRepository(db)

	err := repo.TryDecrement(db, 42, 1, 1)
	var insuff *poserr.InsufficientStockError
	if !errors.As(err, &insuff) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if insuff.Available != 0 {
		t.Errorf("Available = %d, want 0", insuff.Available)
	}
}

func TestTryDecrement_BadAmount(t *testing.T) {
	db := stockTestDB(t)
	repo := NewStockRepository(db)
	seedStock(t, db, 1, 1, 10)

	for _, amount := range []int64{0, -3} {
		if err := repo.TryDecrement(db, 1, 1, amount); err != poserr.ErrBadAmount {
			t.Errorf("TryDecrement(%d) = %v, want ErrBadAmount", amount, err)
		}
	}
}

func TestTryDecrement_NoOversellUnderConcurrency(t *testing.T) {
	db := stockTestDB(t)
	repo := NewStockRepository(db)
	seedStock(t, db, 1, 1, 10)

	const workers = 15
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.TryDecrement(db, 1, 1, 1)
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		if !poserr.IsInsufficientStock(err) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	qty, _ := repo.GetQuantity(1, 1)
	if qty != 10-int64(succeeded) {
		t.Errorf("qty = %d, succeeded = %d, want qty == 10 - succeeded", qty, succeeded)
	}
	if qty < 0 {
		t.Errorf("oversold: qty = %d", qty)
	}
	if succeeded != 10 {
		t.Errorf("succeeded = %d, want 10", succeeded)
	}
}

func TestIncrement_CreatesRowThenAdds(t *testing.T) {
	db := stockTestDB(t)
	repo := NewStockRepository(db)

	if err := repo.Increment(db, 1, 1, 7); err != nil {
		t.Fatalf("Increment (create): %v", err)
	}
	if err := repo.Increment(db, 1, 1, 3); err != nil {
		t.Fatalf("Increment (add): %v", err)
	}
	qty, _ := repo.GetQuantity(1, 1)
	if qty != 10 {
		t.Errorf("qty = %d, want 10", qty)
	}
}

func TestIncrement_BadAmount(t *testing.T) {
	db := stockTestDB(t)
	repo := NewStockRepository(db)

	if err := repo.Increment(db, 1, 1, 0); err != poserr.ErrBadAmount {
		t.Errorf("Increment(0) = %v, want ErrBadAmount", err)
	}
}

func TestUpsert_SetsQuantityOutright(t *testing.T) {
	db := stockTestDB(t)
	repo := NewStockRepository(db)
	seedStock(t, db, 1, 1, 10)

	rec, err := repo.Upsert(1, 1, 25, 5, 1)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if rec.Quantity != 25 || rec.LowStockThreshold != 5 {
		t.Errorf("record = %+v, want quantity 25 threshold 5", rec)
	}

	if _, err := repo.Upsert(1, 1, -1, 0, 1); err != poserr.ErrBadAmount {
		t.Errorf("Upsert(-1) = %v, want ErrBadAmount", err)
	}
}

func TestLowStock(t *testing.T) {
	db := stockTestDB(t)
	repo := NewStockRepository(db)

	if _, err := repo.Upsert(1, 1, 2, 5, 1); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if _, err := repo.Upsert(2, 1, 50, 5, 1); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if _, err := repo.Upsert(3, 2, 1, 5, 1); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	// Threshold 0 rows never report
	if _, err := repo.Upsert(4, 1, 0, 0, 1); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	all, err := repo.LowStock(0)
	if err != nil {
		t.Fatalf("LowStock: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("LowStock(0) returned %d rows, want 2", len(all))
	}

	loc1, err := repo.LowStock(1)
	if err != nil {
		t.Fatalf("LowStock(1): %v", err)
	}
	if len(loc1) != 1 || loc1[0].VariantID != 1 {
		t.Errorf("LowStock(1) = %+v, want variant 1 only", loc1)
	}
}

func TestGetQuantityBySKU(t *testing.T) {
	db := stockTestDB(t)
	repo := NewStockRepository(db)

	item := catalogEntity.Item{Name: "Mug"}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	variant := catalogEntity.Variant{ItemID: item.ID, SKU: "MUG-1", Price: 7.9}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant: %v", err)
	}
	seedStock(t, db, variant.ID, 1, 12)

	qty, ok := repo.GetQuantityBySKU("MUG-1", 1)
	if !ok || qty != 12 {
		t.Errorf("GetQuantityBySKU = (%d, %v), want (12, true)", qty, ok)
	}
	if _, ok := repo.GetQuantityBySKU("NOPE", 1); ok {
		t.Error("unknown SKU should not resolve")
	}
}

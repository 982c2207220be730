package reservation

import (
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
)

func reservationTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("reservation_repo_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	if err := db.AutoMigrate(&catalogEntity.Item{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedItem(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	item := catalogEntity.Item{Name: name}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item.ID
}

func lockState(t *testing.T, db *gorm.DB, itemID uint) catalogEntity.Item {
	t.Helper()
	var item catalogEntity.Item
	if err := db.First(&item, itemID).Error; err != nil {
		t.Fatalf("load item: %v", err)
	}
	return item
}

func TestAcquire_FreeItem(t *testing.T) {
	db := reservationTestDB(t)
	repo := NewReservationRepository(db)
	itemID := seedItem(t, db, "Mug")

	if err := repo.Acquire(itemID, 7); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	item := lockState(t, db, itemID)
	if !item.IsLocked || item.LockedBy == nil || *item.LockedBy != 7 || item.LockedAt == nil {
		t.Errorf("lock state = %+v, want held by 7", item)
	}
}

func TestAcquire_ConflictWhileHeld(t *testing.T) {
	db := reservationTestDB(t)
	repo := NewReservationRepository(db)
	itemID := seedItem(t, db, "Mug")

	if err := repo.Acquire(itemID, 7); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := repo.Acquire(itemID, 8); err != poserr.ErrLockConflict {
		t.Errorf("second holder Acquire = %v, want ErrLockConflict", err)
	}
	item := lockState(t, db, itemID)
	if item.LockedBy == nil || *item.LockedBy != 7 {
		t.Errorf("holder = %v, want 7 (unchanged)", item.LockedBy)
	}
}

func TestAcquire_IdempotentForSameHolder(t *testing.T) {
	db := reservationTestDB(t)
	repo := NewReservationRepository(db)
	itemID := seedItem(t, db, "Mug")

	if err := repo.Acquire(itemID, 7); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	first := lockState(t, db, itemID)

	time.Sleep(10 * time.Millisecond)
	if err := repo.Acquire(itemID, 7); err != nil {
		t.Fatalf("re-Acquire: %v", err)
	}
	second := lockState(t, db, itemID)
	if !second.LockedAt.After(*first.LockedAt) {
		t.Errorf("locked_at not refreshed: %v -> %v", first.LockedAt, second.LockedAt)
	}
}

func TestAcquire_StaleLockIsStolen(t *testing.T) {
	db := reservationTestDB(t)
	repo := NewReservationRepository(db).WithTTL(50 * time.Millisecond)
	itemID := seedItem(t, db, "Mug")

	if err := repo.Acquire(itemID, 7); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	time.Sleep(80 * time.Millisecond)

	if err := repo.Acquire(itemID, 8); err != nil {
		t.Fatalf("steal after expiry: %v", err)
	}
	item := lockState(t, db, itemID)
	if item.LockedBy == nil || *item.LockedBy != 8 {
		t.Errorf("holder = %v, want 8", item.LockedBy)
	}
}

func TestAcquire_UnknownItem(t *testing.T) {
	db := reservationTestDB(t)
	repo := NewReservationRepository(db)

	if err := repo.Acquire(999, 7); err != poserr.ErrNotFound {
		t.Errorf("Acquire(999) = %v, want ErrNotFound", err)
	}
}

func TestAcquire_MutualExclusionUnderConcurrency(t *testing.T) {
	db := reservationTestDB(t)
	repo := NewReservationRepository(db)
	itemID := seedItem(t, db, "Mug")

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		holder := uint(i + 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Acquire(itemID, holder)
		}()
	}
	wg.Wait()
	close(errs)

	won := 0
	for err := range errs {
		switch err {
		case nil:
			won++
		case poserr.ErrLockConflict:
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Errorf("winners = %d, want exactly 1", won)
	}
}

func TestRelease_ByHolder(t *testing.T) {
	db := reservationTestDB(t)
	repo := NewReservationRepository(db)
	itemID := seedItem(t, db, "Mug")

	if err := repo.Acquire(itemID, 7); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := repo.Release(itemID, 7); err != nil {
		t.Fatalf("Release: %v", err)
	}
	item := lockState(t, db, itemID)
	if item.IsLocked || item.LockedBy != nil || item.LockedAt != nil {
		t.Errorf("lock state = %+v, want cleared", item)
	}
}

func TestRelease_NotHeldIsNoOp(t *testing.T) {
	db := reservationTestDB(t)
	repo := NewReservationRepository(db)
	itemID := seedItem(t, db, "Mug")

	if err := repo.Release(itemID, 7); err != nil {
		t.Errorf("Release on free item = %v, want nil", err)
	}
}

func TestRelease_OtherHolderForbidden(t *testing.T) {
	db := reservationTestDB(t)
	repo := NewReservationRepository(db)
	itemID := seedItem(t, db, "Mug")

	if err := repo.Acquire(itemID, 7); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := repo.Release(itemID, 8); err != poserr.ErrLockForbidden {
		t.Errorf("Release by other = %v, want ErrLockForbidden", err)
	}
	item := lockState(t, db, itemID)
	if !item.IsLocked {
		t.Error("hold should be intact after forbidden release")
	}
}

func TestRelease_UnknownItem(t *testing.T) {
	db := reservationTestDB(t)
	repo := NewReservationRepository(db)

	if err := repo.Release(999, 7); err != poserr.ErrNotFound {
		t.Errorf("Release(999) = %v, want ErrNotFound", err)
	}
}

func TestReleaseAllFor_OnlyOwnHolds(t *testing.T) {
	db := reservationTestDB(t)
	repo := NewReservationRepository(db)
	a := seedItem(t, db, "A")
	b := seedItem(t, db, "B")
	c := seedItem(t, db, "C")

	if err := repo.Acquire(a, 7); err != nil {
		t.Fatalf("Acquire a: %v", err)
	}
	if err := repo.Acquire(b, 7); err != nil {
		t.Fatalf("Acquire b: %v", err)
	}
	if err := repo.Acquire(c, 8); err != nil {
		t.Fatalf("Acquire c: %v", err)
	}

	if err := repo.ReleaseAllFor(db, []uint{a, b, c}, 7); err != nil {
		t.Fatalf("ReleaseAllFor: %v", err)
	}
	if lockState(t, db, a).IsLocked || lockState(t, db, b).IsLocked {
		t.Error("holder 7's holds should be cleared")
	}
	if !lockState(t, db, c).IsLocked {
		t.Error("holder 8's hold should survive")
	}
}

func TestReleaseExpired_SweepsOnlyStale(t *testing.T) {
	db := reservationTestDB(t)
	repo := NewReservationRepository(db).WithTTL(50 * time.Millisecond)
	stale := seedItem(t, db, "Stale")
	fresh := seedItem(t, db, "Fresh")

	if err := repo.Acquire(stale, 7); err != nil {
		t.Fatalf("Acquire stale: %v", err)
	}
	time.Sleep(80 * time.Millisecond)
	if err := repo.Acquire(fresh, 8); err != nil {
		t.Fatalf("Acquire fresh: %v", err)
	}

	n, err := repo.ReleaseExpired()
	if err != nil {
		t.Fatalf("ReleaseExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("released = %d, want 1", n)
	}
	if lockState(t, db, stale).IsLocked {
		t.Error("stale hold should be swept")
	}
	if !lockState(t, db, fresh).IsLocked {
		t.Error("fresh hold should survive")
	}
}

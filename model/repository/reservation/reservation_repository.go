package reservation

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pos.GO/config"
	"pos.GO/core/poserr"
	catalogEntity "pos.GO/model/entity/catalog"
)

// ReservationRepository manages the per-item checkout hold: single holder,
// refreshed on re-acquire, stolen once stale. State machine per item is
// Free -> Held(holder, at) -> Free; every transition is one conditional
// UPDATE so a concurrent acquire/release on the same item cannot race the
// read-decide-write sequence.
//
// A hold carries no stock guarantee; availability is re-verified at commit
// time by the sale coordinator.
type ReservationRepository struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db, ttl: config.ReservationTTL(), now: time.Now}
}

// WithTTL overrides the hold TTL (tests).
func (r *ReservationRepository) WithTTL(ttl time.Duration) *ReservationRepository {
	r.ttl = ttl
	return r
}

// Acquire claims the item for holderID. Succeeds when the item is free, held
// by the same holder (idempotent re-acquire, locked_at refreshed), or held
// but stale; a stale lock is equivalent to no lock. Returns
// poserr.ErrLockConflict when held by a different, non-expired holder.
func (r *ReservationRepository) Acquire(itemID, holderID uint) error {
	now := r.now()
	cutoff := now.Add(-r.ttl)

	res := r.db.Model(&catalogEntity.Item{}).
		Where("id = ? AND (is_locked = ? OR locked_by = ? OR locked_at < ?)", itemID, false, holderID, cutoff).
		Updates(map[string]interface{}{
			"is_locked": true,
			"locked_at": now,
			"locked_by": holderID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// No row matched: either the item does not exist or it is held by
	// someone else within the TTL.
	var item catalogEntity.Item
	err := r.db.Select("id", "is_locked", "locked_by").First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return poserr.ErrNotFound
	}
	if err != nil {
		return err
	}
	return poserr.ErrLockConflict
}

// Release clears the hold when owned by holderID. Releasing a not-held item
// is a no-op success; releasing another session's hold is forbidden.
func (r *ReservationRepository) Release(itemID, holderID uint) error {
	res := r.db.Model(&catalogEntity.Item{}).
		Where("id = ? AND locked_by = ?", itemID, holderID).
		Updates(map[string]interface{}{
			"is_locked": false,
			"locked_at": nil,
			"locked_by": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var item catalogEntity.Item
	err := r.db.Select("id", "is_locked", "locked_by").First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return poserr.ErrNotFound
	}
	if err != nil {
		return err
	}
	if item.IsLocked {
		return poserr.ErrLockForbidden
	}
	return nil
}

// ReleaseAllFor clears holderID's holds on the given items inside tx. Used
// when a sale commits: the items leave the cart together with the sale.
func (r *ReservationRepository) ReleaseAllFor(tx *gorm.DB, itemIDs []uint, holderID uint) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return tx.Model(&catalogEntity.Item{}).
		Where("id IN ? AND locked_by = ?", itemIDs, holderID).
		Updates(map[string]interface{}{
			"is_locked": false,
			"locked_at": nil,
			"locked_by": nil,
		}).Error
}

// ReleaseExpired clears all stale holds in bulk. Correctness does not depend
// on this running, since expiry is evaluated lazily at acquire time; it only
// keeps lock state fresh for list UIs. Run from the cron sweeper.
func (r *ReservationRepository) ReleaseExpired() (int64, error) {
	cutoff := r.now().Add(-r.ttl)
	res := r.db.Model(&catalogEntity.Item{}).
		Where("is_locked = ? AND locked_at < ?", true, cutoff).
		Updates(map[string]interface{}{
			"is_locked": false,
			"locked_at": nil,
			"locked_by": nil,
		})
	return res.RowsAffected, res.Error
}

package persistent

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// lockScope takes a transaction-scoped advisory lock on key. It is released on
// commit or rollback.
func lockScope(tx *gorm.DB, key string) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}

func wherePool(query *gorm.DB, poolID *string) *gorm.DB {
	if poolID == nil {
		return query.Where("pool_id IS NULL")
	}
	return query.Where("pool_id = ?", *poolID)
}

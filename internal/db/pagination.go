package db

import "gorm.io/gorm"

// Paginate returns a gorm scope applying limit/offset, clamping the limit
// to maxPageSize. limit <= 0 falls back to maxPageSize.
func Paginate(limit, offset, maxPageSize int) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if limit <= 0 || limit > maxPageSize {
			limit = maxPageSize
		}
		if offset < 0 {
			offset = 0
		}
		return tx.Limit(limit).Offset(offset)
	}
}

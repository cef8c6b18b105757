package repository

import (
	"context"

	"github.com/koyeliyag-code/healthsync/internal/database"
	"gorm.io/gorm"
)

// conn returns a context-bound handle, or ErrUnavailable when the service is
// running without a store connection.
func conn(ctx context.Context) (*gorm.DB, error) {
	if database.DB == nil {
		return nil, database.ErrUnavailable
	}
	return database.DB.WithContext(ctx), nil
}

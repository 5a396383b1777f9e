package repos

import (
	"gorm.io/gorm"

	"github.com/lunchline/canteen-backend/internal/platform/dbctx"
)

// conn resolves the handle a repo call should run on: the transaction when
// one is in flight, the base handle otherwise.
func conn(db *gorm.DB, dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return db.WithContext(dbc.Ctx)
}

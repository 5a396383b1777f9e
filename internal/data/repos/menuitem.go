package repos

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunchline/canteen-backend/internal/domain"
	"github.com/lunchline/canteen-backend/internal/platform/dbctx"
	"github.com/lunchline/canteen-backend/internal/platform/logger"
)

type MenuItemRepo interface {
	GetByID(dbc dbctx.Context, menuItemID uuid.UUID) (*domain.MenuItem, error)
	UpdateStock(dbc dbctx.Context, item *domain.MenuItem) error
	Create(dbc dbctx.Context, items []*domain.MenuItem) error
}

type menuItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMenuItemRepo(db *gorm.DB, baseLog *logger.Logger) MenuItemRepo {
	return &menuItemRepo{db: db, log: baseLog.With("repo", "MenuItemRepo")}
}

func (r *menuItemRepo) GetByID(dbc dbctx.Context, menuItemID uuid.UUID) (*domain.MenuItem, error) {
	var row domain.MenuItem
	err := conn(r.db, dbc).
		Where("id = ?", menuItemID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// UpdateStock persists the in-memory stock count with an optimistic version
// check, so two concurrent orders can never both take the last unit.
func (r *menuItemRepo) UpdateStock(dbc dbctx.Context, item *domain.MenuItem) error {
	res := conn(r.db, dbc).
		Model(&domain.MenuItem{}).
		Where("id = ? AND version = ?", item.ID, item.Version).
		Updates(map[string]interface{}{
			"daily_stock_count": item.DailyStockCount,
			"version":           item.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConcurrencyConflict
	}
	item.Version++
	return nil
}

func (r *menuItemRepo) Create(dbc dbctx.Context, items []*domain.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	return conn(r.db, dbc).Create(&items).Error
}

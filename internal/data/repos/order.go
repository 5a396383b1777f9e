package repos

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunchline/canteen-backend/internal/domain"
	"github.com/lunchline/canteen-backend/internal/platform/dbctx"
	"github.com/lunchline/canteen-backend/internal/platform/logger"
)

type OrderRepo interface {
	Create(dbc dbctx.Context, order *domain.Order) error
	GetByID(dbc dbctx.Context, orderID uuid.UUID) (*domain.Order, error)
	GetByIdempotencyKey(dbc dbctx.Context, key string) (*domain.Order, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return &orderRepo{db: db, log: baseLog.With("repo", "OrderRepo")}
}

// Create inserts the order and cascades its items. The unique index on
// idempotency_key makes a duplicate-key race surface as
// gorm.ErrDuplicatedKey instead of a second order.
func (r *orderRepo) Create(dbc dbctx.Context, order *domain.Order) error {
	if order == nil {
		return nil
	}
	return conn(r.db, dbc).Create(order).Error
}

func (r *orderRepo) GetByID(dbc dbctx.Context, orderID uuid.UUID) (*domain.Order, error) {
	return r.getOne(dbc, "id = ?", orderID)
}

// GetByIdempotencyKey retrieves the full order graph for replay of a
// previously accepted request.
func (r *orderRepo) GetByIdempotencyKey(dbc dbctx.Context, key string) (*domain.Order, error) {
	return r.getOne(dbc, "idempotency_key = ?", key)
}

func (r *orderRepo) getOne(dbc dbctx.Context, query string, arg interface{}) (*domain.Order, error) {
	var row domain.Order
	err := conn(r.db, dbc).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Items.MenuItem").
		Preload("Parent").
		Preload("Student").
		Preload("Canteen").
		Where(query, arg).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

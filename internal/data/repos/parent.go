package repos

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunchline/canteen-backend/internal/domain"
	"github.com/lunchline/canteen-backend/internal/platform/dbctx"
	"github.com/lunchline/canteen-backend/internal/platform/logger"
)

type ParentRepo interface {
	GetByID(dbc dbctx.Context, parentID uuid.UUID) (*domain.Parent, error)
	GetByEmail(dbc dbctx.Context, email string) (*domain.Parent, error)
	UpdateWallet(dbc dbctx.Context, parent *domain.Parent) error
	Create(dbc dbctx.Context, parents []*domain.Parent) error
}

type parentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParentRepo(db *gorm.DB, baseLog *logger.Logger) ParentRepo {
	return &parentRepo{db: db, log: baseLog.With("repo", "ParentRepo")}
}

func (r *parentRepo) GetByID(dbc dbctx.Context, parentID uuid.UUID) (*domain.Parent, error) {
	var row domain.Parent
	err := conn(r.db, dbc).
		Where("id = ?", parentID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *parentRepo) GetByEmail(dbc dbctx.Context, email string) (*domain.Parent, error) {
	var row domain.Parent
	err := conn(r.db, dbc).
		Where("email = ?", email).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// UpdateWallet persists the in-memory balance with an optimistic version
// check. A lost race surfaces as domain.ErrConcurrencyConflict and the
// caller's transaction rolls back.
func (r *parentRepo) UpdateWallet(dbc dbctx.Context, parent *domain.Parent) error {
	res := conn(r.db, dbc).
		Model(&domain.Parent{}).
		Where("id = ? AND version = ?", parent.ID, parent.Version).
		Updates(map[string]interface{}{
			"wallet_balance": parent.WalletBalance,
			"version":        parent.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConcurrencyConflict
	}
	parent.Version++
	return nil
}

func (r *parentRepo) Create(dbc dbctx.Context, parents []*domain.Parent) error {
	if len(parents) == 0 {
		return nil
	}
	return conn(r.db, dbc).Create(&parents).Error
}

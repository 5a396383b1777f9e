package repos

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunchline/canteen-backend/internal/domain"
	"github.com/lunchline/canteen-backend/internal/platform/dbctx"
	"github.com/lunchline/canteen-backend/internal/platform/logger"
)

type CanteenRepo interface {
	GetByID(dbc dbctx.Context, canteenID uuid.UUID) (*domain.Canteen, error)
	Create(dbc dbctx.Context, canteens []*domain.Canteen) error
	CreateSchedules(dbc dbctx.Context, schedules []*domain.CanteenSchedule) error
}

type canteenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCanteenRepo(db *gorm.DB, baseLog *logger.Logger) CanteenRepo {
	return &canteenRepo{db: db, log: baseLog.With("repo", "CanteenRepo")}
}

// GetByID eagerly resolves the weekly schedule entries.
func (r *canteenRepo) GetByID(dbc dbctx.Context, canteenID uuid.UUID) (*domain.Canteen, error) {
	var row domain.Canteen
	err := conn(r.db, dbc).
		Preload("Schedules").
		Where("id = ?", canteenID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *canteenRepo) Create(dbc dbctx.Context, canteens []*domain.Canteen) error {
	if len(canteens) == 0 {
		return nil
	}
	return conn(r.db, dbc).Create(&canteens).Error
}

func (r *canteenRepo) CreateSchedules(dbc dbctx.Context, schedules []*domain.CanteenSchedule) error {
	if len(schedules) == 0 {
		return nil
	}
	return conn(r.db, dbc).Create(&schedules).Error
}

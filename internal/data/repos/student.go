package repos

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunchline/canteen-backend/internal/domain"
	"github.com/lunchline/canteen-backend/internal/platform/dbctx"
	"github.com/lunchline/canteen-backend/internal/platform/logger"
)

type StudentRepo interface {
	GetByID(dbc dbctx.Context, studentID uuid.UUID) (*domain.Student, error)
	Create(dbc dbctx.Context, students []*domain.Student) error
}

type studentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentRepo(db *gorm.DB, baseLog *logger.Logger) StudentRepo {
	return &studentRepo{db: db, log: baseLog.With("repo", "StudentRepo")}
}

// GetByID eagerly resolves the owning parent.
func (r *studentRepo) GetByID(dbc dbctx.Context, studentID uuid.UUID) (*domain.Student, error) {
	var row domain.Student
	err := conn(r.db, dbc).
		Preload("Parent").
		Where("id = ?", studentID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *studentRepo) Create(dbc dbctx.Context, students []*domain.Student) error {
	if len(students) == 0 {
		return nil
	}
	return conn(r.db, dbc).Create(&students).Error
}

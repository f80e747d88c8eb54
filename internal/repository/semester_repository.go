package repository

import (
	"context"

	"github.com/pixelclub/pixels-backend/internal/model"
	"gorm.io/gorm"
)

type SemesterRepository interface {
	Create(ctx context.Context, s *model.Semester) error
	FindByID(ctx context.Context, id uint64) (*model.Semester, error)
	List(ctx context.Context) ([]model.Semester, error)
}

type semesterRepository struct {
	db *gorm.DB
}

func NewSemesterRepository(db *gorm.DB) SemesterRepository {
	return &semesterRepository{db: db}
}

func (r *semesterRepository) Create(ctx context.Context, s *model.Semester) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *semesterRepository) FindByID(ctx context.Context, id uint64) (*model.Semester, error) {
	var s model.Semester
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *semesterRepository) List(ctx context.Context) ([]model.Semester, error) {
	var list []model.Semester
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

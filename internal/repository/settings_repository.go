package repository

import (
	"context"
	"errors"

	"github.com/pixelclub/pixels-backend/internal/model"
	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	SetCurrentSemester(ctx context.Context, semesterID *uint64) error
	SetLeadershipOn(ctx context.Context, on bool) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the singleton settings row, creating it on first read.
func (r *settingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	var s model.Settings
	err := r.db.WithContext(ctx).First(&s, model.SettingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = model.Settings{ID: model.SettingsRowID}
		if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) SetCurrentSemester(ctx context.Context, semesterID *uint64) error {
	if _, err := r.Get(ctx); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.Settings{}).
		Where("id = ?", model.SettingsRowID).
		Update("current_semester_id", semesterID).Error
}

func (r *settingsRepository) SetLeadershipOn(ctx context.Context, on bool) error {
	if _, err := r.Get(ctx); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.Settings{}).
		Where("id = ?", model.SettingsRowID).
		Update("leadership_on", on).Error
}

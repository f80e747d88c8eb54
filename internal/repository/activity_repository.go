package repository

import (
	"context"

	"github.com/pixelclub/pixels-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityRepository interface {
	Create(ctx context.Context, a *model.Activity) error
	Update(ctx context.Context, a *model.Activity) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*model.Activity, error)
	ListBySemester(ctx context.Context, semesterID uint64) ([]model.Activity, error)
	SetMultiplier(ctx context.Context, activityID uint64, memberUID string, multiplier int64) error
	RemoveMultiplier(ctx context.Context, activityID uint64, memberUID string) error
	ReassignMultiplier(ctx context.Context, fromUID, toUID string) error
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, a *model.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *activityRepository) Update(ctx context.Context, a *model.Activity) error {
	return r.db.WithContext(ctx).
		Model(&model.Activity{ID: a.ID}).
		Updates(map[string]interface{}{
			"name":        a.Name,
			"type":        a.Type,
			"pixels":      a.Pixels,
			"semester_id": a.SemesterID,
		}).Error
}

func (r *activityRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_id = ?", id).Delete(&model.ActivityMultiplier{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Activity{}, id).Error
	})
}

func (r *activityRepository) FindByID(ctx context.Context, id uint64) (*model.Activity, error) {
	var a model.Activity
	if err := r.db.WithContext(ctx).
		Preload("Multipliers").
		First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *activityRepository) ListBySemester(ctx context.Context, semesterID uint64) ([]model.Activity, error) {
	var list []model.Activity
	if err := r.db.WithContext(ctx).
		Preload("Multipliers").
		Where("semester_id = ?", semesterID).
		Order("created_at asc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *activityRepository) SetMultiplier(ctx context.Context, activityID uint64, memberUID string, multiplier int64) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "activity_id"}, {Name: "member_uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"multiplier"}),
	}).Create(&model.ActivityMultiplier{
		ActivityID: activityID,
		MemberUID:  memberUID,
		Multiplier: multiplier,
	}).Error
}

func (r *activityRepository) RemoveMultiplier(ctx context.Context, activityID uint64, memberUID string) error {
	return r.db.WithContext(ctx).
		Where("activity_id = ? AND member_uid = ?", activityID, memberUID).
		Delete(&model.ActivityMultiplier{}).Error
}

// ReassignMultiplier moves multiplier entries from one member to another,
// keeping the destination's own entry when both members have one.
func (r *activityRepository) ReassignMultiplier(ctx context.Context, fromUID, toUID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.ActivityMultiplier
		if err := tx.Where("member_uid = ?", fromUID).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			var count int64
			if err := tx.Model(&model.ActivityMultiplier{}).
				Where("activity_id = ? AND member_uid = ?", row.ActivityID, toUID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				if err := tx.Delete(&model.ActivityMultiplier{}, row.ID).Error; err != nil {
					return err
				}
				continue
			}
			if err := tx.Model(&model.ActivityMultiplier{}).
				Where("id = ?", row.ID).
				Update("member_uid", toUID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

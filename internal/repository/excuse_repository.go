package repository

import (
	"context"

	"github.com/pixelclub/pixels-backend/internal/model"
	"gorm.io/gorm"
)

type ExcuseRepository interface {
	Create(ctx context.Context, ex *model.ExcusedAbsence) error
	FindByID(ctx context.Context, id uint64) (*model.ExcusedAbsence, error)
	SetStatus(ctx context.Context, id uint64, status model.ExcuseStatus) error
	ListByEvent(ctx context.Context, eventID uint64) ([]model.ExcusedAbsence, error)
	ListByMember(ctx context.Context, memberUID string) ([]model.ExcusedAbsence, error)
	// ApprovedEventIDs is the excused-absence index: the set of events for
	// which the member's absence has been approved, across all events.
	ApprovedEventIDs(ctx context.Context, memberUID string) ([]uint64, error)
	Reassign(ctx context.Context, fromUID, toUID string) error
}

type excuseRepository struct {
	db *gorm.DB
}

func NewExcuseRepository(db *gorm.DB) ExcuseRepository {
	return &excuseRepository{db: db}
}

func (r *excuseRepository) Create(ctx context.Context, ex *model.ExcusedAbsence) error {
	return r.db.WithContext(ctx).Create(ex).Error
}

func (r *excuseRepository) FindByID(ctx context.Context, id uint64) (*model.ExcusedAbsence, error) {
	var ex model.ExcusedAbsence
	if err := r.db.WithContext(ctx).First(&ex, id).Error; err != nil {
		return nil, err
	}
	return &ex, nil
}

func (r *excuseRepository) SetStatus(ctx context.Context, id uint64, status model.ExcuseStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.ExcusedAbsence{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *excuseRepository) ListByEvent(ctx context.Context, eventID uint64) ([]model.ExcusedAbsence, error) {
	var list []model.ExcusedAbsence
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at asc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *excuseRepository) ListByMember(ctx context.Context, memberUID string) ([]model.ExcusedAbsence, error) {
	var list []model.ExcusedAbsence
	if err := r.db.WithContext(ctx).
		Where("member_uid = ?", memberUID).
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *excuseRepository) ApprovedEventIDs(ctx context.Context, memberUID string) ([]uint64, error) {
	var ids []uint64
	if err := r.db.WithContext(ctx).
		Model(&model.ExcusedAbsence{}).
		Where("member_uid = ? AND status = ?", memberUID, model.ExcuseStatusApproved).
		Pluck("event_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *excuseRepository) Reassign(ctx context.Context, fromUID, toUID string) error {
	return r.db.WithContext(ctx).
		Model(&model.ExcusedAbsence{}).
		Where("member_uid = ?", fromUID).
		Update("member_uid", toUID).Error
}

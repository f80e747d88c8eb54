package repository

import (
	"context"

	"github.com/pixelclub/pixels-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository interface {
	Create(ctx context.Context, ev *model.Event) error
	Update(ctx context.Context, ev *model.Event) error
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*model.Event, error)
	ListBySemester(ctx context.Context, semesterID uint64) ([]model.Event, error)
	AddAttendee(ctx context.Context, eventID uint64, memberUID string) error
	RemoveAttendee(ctx context.Context, eventID uint64, memberUID string) error
	ReassignAttendee(ctx context.Context, fromUID, toUID string) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, ev *model.Event) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *eventRepository) Update(ctx context.Context, ev *model.Event) error {
	return r.db.WithContext(ctx).
		Model(&model.Event{ID: ev.ID}).
		Updates(map[string]interface{}{
			"name":        ev.Name,
			"date":        ev.Date,
			"type":        ev.Type,
			"pixels":      ev.Pixels,
			"semester_id": ev.SemesterID,
		}).Error
}

func (r *eventRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.EventAttendee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&model.ExcusedAbsence{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Event{}, id).Error
	})
}

func (r *eventRepository) FindByID(ctx context.Context, id uint64) (*model.Event, error) {
	var ev model.Event
	if err := r.db.WithContext(ctx).
		Preload("Attendees").
		First(&ev, id).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *eventRepository) ListBySemester(ctx context.Context, semesterID uint64) ([]model.Event, error) {
	var events []model.Event
	if err := r.db.WithContext(ctx).
		Preload("Attendees").
		Where("semester_id = ?", semesterID).
		Order("date asc").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) AddAttendee(ctx context.Context, eventID uint64, memberUID string) error {
	// Idempotent: the unique index makes a repeat check-in a no-op.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.EventAttendee{EventID: eventID, MemberUID: memberUID}).Error
}

func (r *eventRepository) RemoveAttendee(ctx context.Context, eventID uint64, memberUID string) error {
	return r.db.WithContext(ctx).
		Where("event_id = ? AND member_uid = ?", eventID, memberUID).
		Delete(&model.EventAttendee{}).Error
}

// ReassignAttendee moves every attendance row from one member to another,
// dropping rows that would collide with an existing destination row.
func (r *eventRepository) ReassignAttendee(ctx context.Context, fromUID, toUID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []model.EventAttendee
		if err := tx.Where("member_uid = ?", fromUID).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			var count int64
			if err := tx.Model(&model.EventAttendee{}).
				Where("event_id = ? AND member_uid = ?", row.EventID, toUID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				// destination already attends this event
				if err := tx.Delete(&model.EventAttendee{}, row.ID).Error; err != nil {
					return err
				}
				continue
			}
			if err := tx.Model(&model.EventAttendee{}).
				Where("id = ?", row.ID).
				Update("member_uid", toUID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

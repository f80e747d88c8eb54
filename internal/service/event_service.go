package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/repository"
	"gorm.io/gorm"
)

// WriteRouter receives before/after snapshots for every write to a watched
// collection and fans out pixel recomputation to the affected members.
// Failures are handled inside the router; callers treat it as fire-and-forget.
type WriteRouter interface {
	EventWritten(ctx context.Context, before, after *model.Event) error
	ExcuseWritten(ctx context.Context, before, after *model.ExcusedAbsence) error
	ActivityWritten(ctx context.Context, before, after *model.Activity) error
}

type EventInput struct {
	Name       string
	Date       time.Time
	Type       model.EventType
	Pixels     int64
	SemesterID uint64
}

type EventService interface {
	Create(ctx context.Context, in EventInput) (*model.Event, error)
	Update(ctx context.Context, id uint64, in EventInput) (*model.Event, error)
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (*model.Event, error)
	ListBySemester(ctx context.Context, semesterID uint64) ([]model.Event, error)
	AddAttendee(ctx context.Context, eventID uint64, memberUID string) (*model.Event, error)
	RemoveAttendee(ctx context.Context, eventID uint64, memberUID string) (*model.Event, error)
}

type eventService struct {
	repo   repository.EventRepository
	router WriteRouter
}

func NewEventService(repo repository.EventRepository, router WriteRouter) EventService {
	return &eventService{repo: repo, router: router}
}

func validateEventInput(in *EventInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Name) > 200 {
		return errors.New("invalid name")
	}
	if !in.Type.Valid() {
		return errors.New("invalid event type")
	}
	if in.Pixels < 0 {
		return errors.New("pixels must be >= 0")
	}
	if in.SemesterID == 0 {
		return errors.New("semester is required")
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, in EventInput) (*model.Event, error) {
	if err := validateEventInput(&in); err != nil {
		return nil, err
	}
	ev := &model.Event{
		Name:       in.Name,
		Date:       in.Date,
		Type:       in.Type,
		Pixels:     in.Pixels,
		SemesterID: in.SemesterID,
	}
	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, err
	}
	_ = s.router.EventWritten(ctx, nil, ev)
	return ev, nil
}

func (s *eventService) Update(ctx context.Context, id uint64, in EventInput) (*model.Event, error) {
	if err := validateEventInput(&in); err != nil {
		return nil, err
	}
	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ev := &model.Event{
		ID:         id,
		Name:       in.Name,
		Date:       in.Date,
		Type:       in.Type,
		Pixels:     in.Pixels,
		SemesterID: in.SemesterID,
	}
	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}
	after, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.router.EventWritten(ctx, before, after)
	return after, nil
}

func (s *eventService) Delete(ctx context.Context, id uint64) error {
	before, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.router.EventWritten(ctx, before, nil)
	return nil
}

func (s *eventService) Get(ctx context.Context, id uint64) (*model.Event, error) {
	ev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ev, nil
}

func (s *eventService) ListBySemester(ctx context.Context, semesterID uint64) ([]model.Event, error) {
	return s.repo.ListBySemester(ctx, semesterID)
}

func (s *eventService) AddAttendee(ctx context.Context, eventID uint64, memberUID string) (*model.Event, error) {
	memberUID = strings.TrimSpace(memberUID)
	if memberUID == "" {
		return nil, errors.New("member is required")
	}
	before, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddAttendee(ctx, eventID, memberUID); err != nil {
		return nil, err
	}
	after, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	_ = s.router.EventWritten(ctx, before, after)
	return after, nil
}

func (s *eventService) RemoveAttendee(ctx context.Context, eventID uint64, memberUID string) (*model.Event, error) {
	before, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveAttendee(ctx, eventID, memberUID); err != nil {
		return nil, err
	}
	after, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	_ = s.router.EventWritten(ctx, before, after)
	return after, nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/repository"
	"gorm.io/gorm"
)

type ActivityInput struct {
	Name       string
	Type       model.ActivityType
	Pixels     int64
	SemesterID uint64
}

type ActivityService interface {
	Create(ctx context.Context, in ActivityInput) (*model.Activity, error)
	Update(ctx context.Context, id uint64, in ActivityInput) (*model.Activity, error)
	Delete(ctx context.Context, id uint64) error
	Get(ctx context.Context, id uint64) (*model.Activity, error)
	ListBySemester(ctx context.Context, semesterID uint64) ([]model.Activity, error)
	SetMultiplier(ctx context.Context, activityID uint64, memberUID string, multiplier int64) (*model.Activity, error)
	RemoveMultiplier(ctx context.Context, activityID uint64, memberUID string) (*model.Activity, error)
}

type activityService struct {
	repo   repository.ActivityRepository
	router WriteRouter
}

func NewActivityService(repo repository.ActivityRepository, router WriteRouter) ActivityService {
	return &activityService{repo: repo, router: router}
}

func validateActivityInput(in *ActivityInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Name) > 200 {
		return errors.New("invalid name")
	}
	if !in.Type.Valid() {
		return errors.New("invalid activity type")
	}
	if in.Pixels < 0 {
		return errors.New("pixels must be >= 0")
	}
	if in.SemesterID == 0 {
		return errors.New("semester is required")
	}
	return nil
}

func (s *activityService) Create(ctx context.Context, in ActivityInput) (*model.Activity, error) {
	if err := validateActivityInput(&in); err != nil {
		return nil, err
	}
	a := &model.Activity{
		Name:       in.Name,
		Type:       in.Type,
		Pixels:     in.Pixels,
		SemesterID: in.SemesterID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	_ = s.router.ActivityWritten(ctx, nil, a)
	return a, nil
}

func (s *activityService) Update(ctx context.Context, id uint64, in ActivityInput) (*model.Activity, error) {
	if err := validateActivityInput(&in); err != nil {
		return nil, err
	}
	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	a := &model.Activity{
		ID:         id,
		Name:       in.Name,
		Type:       in.Type,
		Pixels:     in.Pixels,
		SemesterID: in.SemesterID,
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	after, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.router.ActivityWritten(ctx, before, after)
	return after, nil
}

func (s *activityService) Delete(ctx context.Context, id uint64) error {
	before, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.router.ActivityWritten(ctx, before, nil)
	return nil
}

func (s *activityService) Get(ctx context.Context, id uint64) (*model.Activity, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *activityService) ListBySemester(ctx context.Context, semesterID uint64) ([]model.Activity, error) {
	return s.repo.ListBySemester(ctx, semesterID)
}

func (s *activityService) SetMultiplier(ctx context.Context, activityID uint64, memberUID string, multiplier int64) (*model.Activity, error) {
	memberUID = strings.TrimSpace(memberUID)
	if memberUID == "" {
		return nil, errors.New("member is required")
	}
	if multiplier <= 0 {
		return nil, errors.New("multiplier must be positive")
	}
	before, err := s.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetMultiplier(ctx, activityID, memberUID, multiplier); err != nil {
		return nil, err
	}
	after, err := s.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	_ = s.router.ActivityWritten(ctx, before, after)
	return after, nil
}

func (s *activityService) RemoveMultiplier(ctx context.Context, activityID uint64, memberUID string) (*model.Activity, error) {
	before, err := s.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveMultiplier(ctx, activityID, memberUID); err != nil {
		return nil, err
	}
	after, err := s.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	_ = s.router.ActivityWritten(ctx, before, after)
	return after, nil
}

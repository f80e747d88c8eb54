package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/repository"
	"gorm.io/gorm"
)

type ExcuseService interface {
	Request(ctx context.Context, eventID uint64, memberUID, reason string) (*model.ExcusedAbsence, error)
	SetStatus(ctx context.Context, id uint64, status model.ExcuseStatus) (*model.ExcusedAbsence, error)
	ListByEvent(ctx context.Context, eventID uint64) ([]model.ExcusedAbsence, error)
	ListByMember(ctx context.Context, memberUID string) ([]model.ExcusedAbsence, error)
}

type excuseService struct {
	repo      repository.ExcuseRepository
	eventRepo repository.EventRepository
	router    WriteRouter
}

func NewExcuseService(repo repository.ExcuseRepository, eventRepo repository.EventRepository, router WriteRouter) ExcuseService {
	return &excuseService{repo: repo, eventRepo: eventRepo, router: router}
}

func (s *excuseService) Request(ctx context.Context, eventID uint64, memberUID, reason string) (*model.ExcusedAbsence, error) {
	memberUID = strings.TrimSpace(memberUID)
	reason = strings.TrimSpace(reason)
	if memberUID == "" {
		return nil, errors.New("member is required")
	}
	if reason == "" {
		return nil, errors.New("reason is required")
	}
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ex := &model.ExcusedAbsence{
		EventID:   eventID,
		MemberUID: memberUID,
		Reason:    reason,
		Status:    model.ExcuseStatusPending,
	}
	if err := s.repo.Create(ctx, ex); err != nil {
		return nil, err
	}
	_ = s.router.ExcuseWritten(ctx, nil, ex)
	return ex, nil
}

func (s *excuseService) SetStatus(ctx context.Context, id uint64, status model.ExcuseStatus) (*model.ExcusedAbsence, error) {
	if !status.Valid() {
		return nil, errors.New("invalid status")
	}
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	after, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.router.ExcuseWritten(ctx, before, after)
	return after, nil
}

func (s *excuseService) ListByEvent(ctx context.Context, eventID uint64) ([]model.ExcusedAbsence, error) {
	return s.repo.ListByEvent(ctx, eventID)
}

func (s *excuseService) ListByMember(ctx context.Context, memberUID string) ([]model.ExcusedAbsence, error) {
	return s.repo.ListByMember(ctx, memberUID)
}

package service

import (
	"context"
	"errors"

	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/repository"
	"gorm.io/gorm"
)

// ErrNoSemester signals that no active semester is configured; pixel
// aggregation is undefined in that state and must not write anything.
var ErrNoSemester = errors.New("no active semester")

// SemesterSource is the narrow read surface the aggregation engine needs
// from the global settings document.
type SemesterSource interface {
	ActiveSemester(ctx context.Context) (uint64, bool, error)
}

type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	ActiveSemester(ctx context.Context) (uint64, bool, error)
	LeaderboardEnabled(ctx context.Context) (bool, error)
	SetCurrentSemester(ctx context.Context, semesterID *uint64) error
	SetLeadershipOn(ctx context.Context, on bool) error
	CreateSemester(ctx context.Context, name string) (*model.Semester, error)
	ListSemesters(ctx context.Context) ([]model.Semester, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	semesterRepo repository.SemesterRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository, semesterRepo repository.SemesterRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, semesterRepo: semesterRepo}
}

func (s *settingsService) Get(ctx context.Context) (*model.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *settingsService) ActiveSemester(ctx context.Context) (uint64, bool, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return 0, false, err
	}
	if settings.CurrentSemesterID == nil {
		return 0, false, nil
	}
	return *settings.CurrentSemesterID, true, nil
}

func (s *settingsService) LeaderboardEnabled(ctx context.Context) (bool, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.LeadershipOn, nil
}

func (s *settingsService) SetCurrentSemester(ctx context.Context, semesterID *uint64) error {
	if semesterID != nil {
		if _, err := s.semesterRepo.FindByID(ctx, *semesterID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
	}
	return s.settingsRepo.SetCurrentSemester(ctx, semesterID)
}

func (s *settingsService) SetLeadershipOn(ctx context.Context, on bool) error {
	return s.settingsRepo.SetLeadershipOn(ctx, on)
}

func (s *settingsService) CreateSemester(ctx context.Context, name string) (*model.Semester, error) {
	sem := &model.Semester{Name: name}
	if err := s.semesterRepo.Create(ctx, sem); err != nil {
		return nil, err
	}
	return sem, nil
}

func (s *settingsService) ListSemesters(ctx context.Context) ([]model.Semester, error) {
	return s.semesterRepo.List(ctx)
}

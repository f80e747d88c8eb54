package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrForbidden = errors.New("forbidden")

type MemberService interface {
	Get(ctx context.Context, uid string) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	// Leaderboard returns members ordered by cached total; it is gated on
	// the leadership flag unless the caller is an admin.
	Leaderboard(ctx context.Context, limit int, isAdmin bool) ([]model.Member, error)
	SetAdmin(ctx context.Context, uid string, isAdmin bool) error
	SetDelta(ctx context.Context, uid string, delta int64) (*model.Member, error)
	Recompute(ctx context.Context, uid string) (*model.Member, error)
	// Merge consolidates the source member into the destination: attendee
	// rows, excuses, multiplier entries and the manual delta transfer
	// (destination wins on conflict), the source row is deleted, and the
	// destination is re-aggregated.
	Merge(ctx context.Context, sourceUID, destUID string) (*model.Member, error)
}

type memberService struct {
	repo         repository.MemberRepository
	eventRepo    repository.EventRepository
	excuseRepo   repository.ExcuseRepository
	activityRepo repository.ActivityRepository
	settings     SettingsService
	pixels       PixelService
}

func NewMemberService(
	repo repository.MemberRepository,
	eventRepo repository.EventRepository,
	excuseRepo repository.ExcuseRepository,
	activityRepo repository.ActivityRepository,
	settings SettingsService,
	pixels PixelService,
) MemberService {
	return &memberService{
		repo:         repo,
		eventRepo:    eventRepo,
		excuseRepo:   excuseRepo,
		activityRepo: activityRepo,
		settings:     settings,
		pixels:       pixels,
	}
}

func (s *memberService) Get(ctx context.Context, uid string) (*model.Member, error) {
	m, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *memberService) List(ctx context.Context) ([]model.Member, error) {
	return s.repo.List(ctx)
}

func (s *memberService) Leaderboard(ctx context.Context, limit int, isAdmin bool) ([]model.Member, error) {
	if !isAdmin {
		on, err := s.settings.LeaderboardEnabled(ctx)
		if err != nil {
			return nil, err
		}
		if !on {
			return nil, ErrForbidden
		}
	}
	return s.repo.ListLeaderboard(ctx, limit)
}

func (s *memberService) SetAdmin(ctx context.Context, uid string, isAdmin bool) error {
	if err := s.repo.SetAdmin(ctx, uid, isAdmin); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *memberService) SetDelta(ctx context.Context, uid string, delta int64) (*model.Member, error) {
	if err := s.repo.SetDelta(ctx, uid, delta); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// The delta feeds the aggregation directly; recompute so the cached
	// total reflects it immediately.
	if err := s.pixels.Recompute(ctx, uid); err != nil {
		return nil, err
	}
	return s.Get(ctx, uid)
}

func (s *memberService) Recompute(ctx context.Context, uid string) (*model.Member, error) {
	if _, err := s.Get(ctx, uid); err != nil {
		return nil, err
	}
	if err := s.pixels.Recompute(ctx, uid); err != nil {
		return nil, err
	}
	return s.Get(ctx, uid)
}

func (s *memberService) Merge(ctx context.Context, sourceUID, destUID string) (*model.Member, error) {
	sourceUID = strings.TrimSpace(sourceUID)
	destUID = strings.TrimSpace(destUID)
	if sourceUID == "" || destUID == "" || sourceUID == destUID {
		return nil, errors.New("invalid merge pair")
	}
	source, err := s.Get(ctx, sourceUID)
	if err != nil {
		return nil, err
	}
	dest, err := s.Get(ctx, destUID)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.ReassignAttendee(ctx, sourceUID, destUID); err != nil {
		return nil, err
	}
	if err := s.excuseRepo.Reassign(ctx, sourceUID, destUID); err != nil {
		return nil, err
	}
	if err := s.activityRepo.ReassignMultiplier(ctx, sourceUID, destUID); err != nil {
		return nil, err
	}
	if source.PixelDelta != 0 {
		if err := s.repo.SetDelta(ctx, destUID, dest.PixelDelta+source.PixelDelta); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Delete(ctx, sourceUID); err != nil {
		return nil, err
	}
	if err := s.pixels.Recompute(ctx, destUID); err != nil {
		return nil, err
	}
	return s.Get(ctx, destUID)
}

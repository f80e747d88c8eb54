package service

import (
	"context"
	"errors"

	"github.com/pixelclub/pixels-backend/internal/pixel"
	"github.com/pixelclub/pixels-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// PixelService is the aggregation engine: it re-derives a member's pixel
// total from the manual delta, semester-scoped event attendance, and
// activity multipliers, then persists the result as the cached total.
type PixelService interface {
	// Recompute aggregates one member and writes the cache. It silently
	// no-ops when the member no longer exists (a trigger can name a
	// deleted member) and skips without writing when no semester is
	// active, so stale-but-valid caches are never clobbered.
	Recompute(ctx context.Context, memberUID string) error
	// AttendanceLog classifies every active-semester event for the member.
	AttendanceLog(ctx context.Context, memberUID string) ([]pixel.EventResult, error)
}

type pixelService struct {
	memberRepo   repository.MemberRepository
	eventRepo    repository.EventRepository
	excuseRepo   repository.ExcuseRepository
	activityRepo repository.ActivityRepository
	semesters    SemesterSource
}

func NewPixelService(
	memberRepo repository.MemberRepository,
	eventRepo repository.EventRepository,
	excuseRepo repository.ExcuseRepository,
	activityRepo repository.ActivityRepository,
	semesters SemesterSource,
) PixelService {
	return &pixelService{
		memberRepo:   memberRepo,
		eventRepo:    eventRepo,
		excuseRepo:   excuseRepo,
		activityRepo: activityRepo,
		semesters:    semesters,
	}
}

func (s *pixelService) Recompute(ctx context.Context, memberUID string) error {
	member, err := s.memberRepo.FindByUID(ctx, memberUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	semesterID, ok, err := s.semesters.ActiveSemester(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	events, err := s.eventRepo.ListBySemester(ctx, semesterID)
	if err != nil {
		return err
	}
	// The excused index is rebuilt on every pass; approvals change
	// asynchronously from event writes.
	excusedIDs, err := s.excuseRepo.ApprovedEventIDs(ctx, memberUID)
	if err != nil {
		return err
	}
	activities, err := s.activityRepo.ListBySemester(ctx, semesterID)
	if err != nil {
		return err
	}

	total := pixel.Total(
		member.PixelDelta,
		pixel.EventTotal(memberUID, events, pixel.ExcusedSet(excusedIDs)),
		pixel.ActivityTotal(memberUID, activities),
	)
	return s.memberRepo.UpdateCachedPixels(ctx, memberUID, total)
}

func (s *pixelService) AttendanceLog(ctx context.Context, memberUID string) ([]pixel.EventResult, error) {
	semesterID, ok, err := s.semesters.ActiveSemester(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSemester
	}
	events, err := s.eventRepo.ListBySemester(ctx, semesterID)
	if err != nil {
		return nil, err
	}
	excusedIDs, err := s.excuseRepo.ApprovedEventIDs(ctx, memberUID)
	if err != nil {
		return nil, err
	}
	return pixel.ResolveAttendance(memberUID, events, pixel.ExcusedSet(excusedIDs)), nil
}

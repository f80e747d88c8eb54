package service

import (
	"context"
	"testing"
	"time"

	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/repository"
	"gorm.io/gorm"
)

// Fakes embed the repository interfaces so only the methods the aggregator
// touches need implementations; anything else panics loudly.

type fakeMemberRepo struct {
	repository.MemberRepository
	members map[string]*model.Member
	cached  map[string]int64
	writes  int
}

func (f *fakeMemberRepo) FindByUID(_ context.Context, uid string) (*model.Member, error) {
	m, ok := f.members[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMemberRepo) UpdateCachedPixels(_ context.Context, uid string, total int64) error {
	f.cached[uid] = total
	f.writes++
	return nil
}

type fakeEventRepo struct {
	repository.EventRepository
	events []model.Event
}

func (f *fakeEventRepo) ListBySemester(_ context.Context, semesterID uint64) ([]model.Event, error) {
	var out []model.Event
	for _, ev := range f.events {
		if ev.SemesterID == semesterID {
			out = append(out, ev)
		}
	}
	return out, nil
}

type fakeExcuseRepo struct {
	repository.ExcuseRepository
	approved map[string][]uint64
}

func (f *fakeExcuseRepo) ApprovedEventIDs(_ context.Context, uid string) ([]uint64, error) {
	return f.approved[uid], nil
}

type fakeActivityRepo struct {
	repository.ActivityRepository
	activities []model.Activity
}

func (f *fakeActivityRepo) ListBySemester(_ context.Context, semesterID uint64) ([]model.Activity, error) {
	var out []model.Activity
	for _, a := range f.activities {
		if a.SemesterID == semesterID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeSemesters struct {
	id  uint64
	set bool
}

func (f *fakeSemesters) ActiveSemester(context.Context) (uint64, bool, error) {
	return f.id, f.set, nil
}

func gbmEvent(id, semester uint64, pixels int64, attendees ...string) model.Event {
	ev := model.Event{ID: id, Name: "GBM", Date: time.Now(), Type: model.EventTypeGBM, Pixels: pixels, SemesterID: semester}
	for _, uid := range attendees {
		ev.Attendees = append(ev.Attendees, model.EventAttendee{EventID: id, MemberUID: uid})
	}
	return ev
}

func newFixture() (*fakeMemberRepo, *fakeEventRepo, *fakeExcuseRepo, *fakeActivityRepo, *fakeSemesters, PixelService) {
	members := &fakeMemberRepo{
		members: map[string]*model.Member{
			"A": {UID: "A", PixelDelta: 0},
			"B": {UID: "B", PixelDelta: -5},
		},
		cached: map[string]int64{},
	}
	events := &fakeEventRepo{events: []model.Event{
		gbmEvent(1, 7, 10, "A"),
		gbmEvent(2, 7, 20, "A", "B"),
		gbmEvent(3, 99, 50, "A"), // other semester, never counts
	}}
	excuses := &fakeExcuseRepo{approved: map[string][]uint64{}}
	activities := &fakeActivityRepo{activities: []model.Activity{
		{ID: 1, SemesterID: 7, Pixels: 5, Multipliers: []model.ActivityMultiplier{
			{ActivityID: 1, MemberUID: "A", Multiplier: 3},
		}},
	}}
	semesters := &fakeSemesters{id: 7, set: true}
	svc := NewPixelService(members, events, excuses, activities, semesters)
	return members, events, excuses, activities, semesters, svc
}

func TestRecomputeAdditivity(t *testing.T) {
	members, _, _, _, _, svc := newFixture()
	ctx := context.Background()

	// A: delta 0 + events (10+20) + activity 5*3 = 45
	if err := svc.Recompute(ctx, "A"); err != nil {
		t.Fatalf("recompute A: %v", err)
	}
	if got := members.cached["A"]; got != 45 {
		t.Fatalf("A cached=%d want=45", got)
	}

	// B: delta -5 + event 20 + no activities = 15
	if err := svc.Recompute(ctx, "B"); err != nil {
		t.Fatalf("recompute B: %v", err)
	}
	if got := members.cached["B"]; got != 15 {
		t.Fatalf("B cached=%d want=15", got)
	}
}

func TestRecomputeDeterminism(t *testing.T) {
	members, _, _, _, _, svc := newFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.Recompute(ctx, "A"); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
		if got := members.cached["A"]; got != 45 {
			t.Fatalf("pass %d: cached=%d want=45", i, got)
		}
	}
}

func TestRecomputeExcusePrecedence(t *testing.T) {
	members, _, excuses, _, _, svc := newFixture()
	ctx := context.Background()

	// An approved excuse on an event A attended changes nothing: attended
	// members always keep their points.
	excuses.approved["A"] = []uint64{1}
	if err := svc.Recompute(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	if got := members.cached["A"]; got != 45 {
		t.Fatalf("cached=%d want=45", got)
	}

	// An approved excuse on an event B missed keeps its contribution at 0.
	excuses.approved["B"] = []uint64{1}
	if err := svc.Recompute(ctx, "B"); err != nil {
		t.Fatal(err)
	}
	if got := members.cached["B"]; got != 15 {
		t.Fatalf("cached=%d want=15", got)
	}
}

func TestRecomputeSkipsWhenNoSemester(t *testing.T) {
	members, _, _, _, semesters, svc := newFixture()
	semesters.set = false

	if err := svc.Recompute(context.Background(), "A"); err != nil {
		t.Fatal(err)
	}
	if members.writes != 0 {
		t.Fatalf("expected no cache write, got %d", members.writes)
	}
}

func TestRecomputeUnknownMemberNoOps(t *testing.T) {
	members, _, _, _, _, svc := newFixture()

	if err := svc.Recompute(context.Background(), "ghost"); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if members.writes != 0 {
		t.Fatalf("expected no cache write, got %d", members.writes)
	}
}

func TestAttendanceLog(t *testing.T) {
	_, _, excuses, _, _, svc := newFixture()
	excuses.approved["B"] = []uint64{1}

	log, err := svc.AttendanceLog(context.Background(), "B")
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 {
		t.Fatalf("len=%d want=2", len(log))
	}
	if log[0].Attendance != "excused" || log[0].Points != 0 {
		t.Fatalf("event 1: %+v", log[0])
	}
	if log[1].Attendance != "attended" || log[1].Points != 20 {
		t.Fatalf("event 2: %+v", log[1])
	}
}

func TestAttendanceLogNoSemester(t *testing.T) {
	_, _, _, _, semesters, svc := newFixture()
	semesters.set = false

	if _, err := svc.AttendanceLog(context.Background(), "A"); err != ErrNoSemester {
		t.Fatalf("err=%v want=ErrNoSemester", err)
	}
}

package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/repository"
	"github.com/pixelclub/pixels-backend/internal/trigger"
	"gorm.io/gorm"
)

type memEventRepo struct {
	repository.EventRepository
	events map[uint64]*model.Event
}

func (r *memEventRepo) FindByID(_ context.Context, id uint64) (*model.Event, error) {
	ev, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ev
	cp.Attendees = append([]model.EventAttendee(nil), ev.Attendees...)
	return &cp, nil
}

func (r *memEventRepo) AddAttendee(_ context.Context, eventID uint64, uid string) error {
	ev := r.events[eventID]
	if ev.HasAttendee(uid) {
		return nil
	}
	ev.Attendees = append(ev.Attendees, model.EventAttendee{EventID: eventID, MemberUID: uid})
	return nil
}

func (r *memEventRepo) RemoveAttendee(_ context.Context, eventID uint64, uid string) error {
	ev := r.events[eventID]
	kept := ev.Attendees[:0]
	for _, a := range ev.Attendees {
		if a.MemberUID != uid {
			kept = append(kept, a)
		}
	}
	ev.Attendees = kept
	return nil
}

func (r *memEventRepo) Delete(_ context.Context, id uint64) error {
	delete(r.events, id)
	return nil
}

type countingAggregator struct {
	calls map[string]int
}

func (a *countingAggregator) Recompute(_ context.Context, uid string) error {
	a.calls[uid]++
	return nil
}

func newEventFixture() (*memEventRepo, *countingAggregator, EventService) {
	repo := &memEventRepo{events: map[uint64]*model.Event{
		1: {ID: 1, Name: "GBM", Type: model.EventTypeGBM, Pixels: 10, SemesterID: 7, Attendees: []model.EventAttendee{
			{EventID: 1, MemberUID: "A"},
			{EventID: 1, MemberUID: "B"},
		}},
	}}
	agg := &countingAggregator{calls: map[string]int{}}
	svc := NewEventService(repo, trigger.NewRouter(agg))
	return repo, agg, svc
}

func TestRemoveAttendeeRecomputesOnlyTouchedMembers(t *testing.T) {
	_, agg, svc := newEventFixture()

	// The before/after union names A and B; members unrelated to this
	// event must not be recomputed.
	if _, err := svc.RemoveAttendee(context.Background(), 1, "B"); err != nil {
		t.Fatal(err)
	}
	if want := map[string]int{"A": 1, "B": 1}; !reflect.DeepEqual(agg.calls, want) {
		t.Fatalf("calls=%v want=%v", agg.calls, want)
	}
}

func TestAddAttendeeTriggersRecompute(t *testing.T) {
	_, agg, svc := newEventFixture()

	ev, err := svc.AddAttendee(context.Background(), 1, "C")
	if err != nil {
		t.Fatal(err)
	}
	if !ev.HasAttendee("C") {
		t.Fatal("C not added")
	}
	if agg.calls["C"] != 1 {
		t.Fatalf("C recomputed %d times, want 1", agg.calls["C"])
	}
}

func TestDeleteEventRecomputesPriorAttendees(t *testing.T) {
	repo, agg, svc := newEventFixture()

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if _, ok := repo.events[1]; ok {
		t.Fatal("event not deleted")
	}
	if want := map[string]int{"A": 1, "B": 1}; !reflect.DeepEqual(agg.calls, want) {
		t.Fatalf("calls=%v want=%v", agg.calls, want)
	}
}

func TestAddAttendeeUnknownEvent(t *testing.T) {
	_, agg, svc := newEventFixture()

	if _, err := svc.AddAttendee(context.Background(), 99, "C"); err != ErrNotFound {
		t.Fatalf("err=%v want=ErrNotFound", err)
	}
	if len(agg.calls) != 0 {
		t.Fatalf("no recompute expected, got %v", agg.calls)
	}
}

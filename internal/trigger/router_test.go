package trigger

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"testing"

	"github.com/pixelclub/pixels-backend/internal/model"
)

func eventWith(attendees ...string) *model.Event {
	ev := &model.Event{ID: 1, Type: model.EventTypeGBM}
	for _, uid := range attendees {
		ev.Attendees = append(ev.Attendees, model.EventAttendee{EventID: 1, MemberUID: uid})
	}
	return ev
}

func activityWith(uids ...string) *model.Activity {
	a := &model.Activity{ID: 1}
	for _, uid := range uids {
		a.Multipliers = append(a.Multipliers, model.ActivityMultiplier{ActivityID: 1, MemberUID: uid, Multiplier: 1})
	}
	return a
}

func TestEventAffected(t *testing.T) {
	tests := []struct {
		name          string
		before, after *model.Event
		want          []string
	}{
		{"create", nil, eventWith("A", "B"), []string{"A", "B"}},
		{"delete", eventWith("A", "B"), nil, []string{"A", "B"}},
		{"attendee removed", eventWith("A", "B"), eventWith("A"), []string{"A", "B"}},
		{"attendee added", eventWith("A"), eventWith("A", "C"), []string{"A", "C"}},
		{"no attendees", eventWith(), eventWith(), []string{}},
		{"duplicate union", eventWith("A"), eventWith("A"), []string{"A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EventAffected(tt.before, tt.after); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestExcuseAffected(t *testing.T) {
	a := &model.ExcusedAbsence{ID: 1, EventID: 1, MemberUID: "A"}
	b := &model.ExcusedAbsence{ID: 1, EventID: 1, MemberUID: "B"}
	tests := []struct {
		name          string
		before, after *model.ExcusedAbsence
		want          []string
	}{
		{"create", nil, a, []string{"A"}},
		{"status change", a, a, []string{"A"}},
		{"reassigned", a, b, []string{"A", "B"}},
		{"delete", a, nil, []string{"A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExcuseAffected(tt.before, tt.after); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestActivityAffected(t *testing.T) {
	tests := []struct {
		name          string
		before, after *model.Activity
		want          []string
	}{
		{"create", nil, activityWith("A", "B"), []string{"A", "B"}},
		{"entry removed", activityWith("A", "B"), activityWith("B"), []string{"A", "B"}},
		{"delete", activityWith("A"), nil, []string{"A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActivityAffected(tt.before, tt.after); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
		})
	}
}

type recordingAggregator struct {
	mu      sync.Mutex
	calls   []string
	failUID string
}

func (a *recordingAggregator) Recompute(_ context.Context, uid string) error {
	a.mu.Lock()
	a.calls = append(a.calls, uid)
	a.mu.Unlock()
	if uid == a.failUID {
		return errors.New("boom")
	}
	return nil
}

func (a *recordingAggregator) sortedCalls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := append([]string(nil), a.calls...)
	sort.Strings(out)
	return out
}

func TestEventWrittenFansOutToUnion(t *testing.T) {
	agg := &recordingAggregator{}
	r := NewRouter(agg)

	err := r.EventWritten(context.Background(), eventWith("A", "B"), eventWith("B", "C"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := agg.sortedCalls(), []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("calls=%v want=%v", got, want)
	}
}

func TestFanOutIsolatesFailures(t *testing.T) {
	agg := &recordingAggregator{failUID: "B"}
	r := NewRouter(agg)

	err := r.EventWritten(context.Background(), nil, eventWith("A", "B", "C"))
	if err == nil {
		t.Fatal("expected error from failing member")
	}
	// All members are still attempted despite B's failure.
	if got, want := agg.sortedCalls(), []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("calls=%v want=%v", got, want)
	}
}

func TestFanOutNoAffectedMembers(t *testing.T) {
	agg := &recordingAggregator{}
	r := NewRouter(agg)

	if err := r.EventWritten(context.Background(), eventWith(), eventWith()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agg.sortedCalls()) != 0 {
		t.Fatalf("expected no recompute calls, got %v", agg.calls)
	}
}

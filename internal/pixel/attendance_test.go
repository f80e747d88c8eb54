package pixel

import (
	"testing"

	"github.com/pixelclub/pixels-backend/internal/model"
)

func gbm(id uint64, pixels int64, attendees ...string) model.Event {
	return event(id, model.EventTypeGBM, pixels, attendees...)
}

func event(id uint64, typ model.EventType, pixels int64, attendees ...string) model.Event {
	ev := model.Event{ID: id, Type: typ, Pixels: pixels}
	for _, uid := range attendees {
		ev.Attendees = append(ev.Attendees, model.EventAttendee{EventID: id, MemberUID: uid})
	}
	return ev
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		uid     string
		ev      model.Event
		excused map[uint64]bool
		want    Attendance
	}{
		{"attended mandatory", "A", gbm(1, 10, "A"), nil, Attended},
		{"absent mandatory no excuse", "B", gbm(1, 10, "A"), nil, Unexcused},
		{"absent mandatory approved excuse", "B", gbm(1, 10, "A"), map[uint64]bool{1: true}, Excused},
		{"attended wins over excuse", "A", gbm(1, 10, "A"), map[uint64]bool{1: true}, Attended},
		{"absent social", "B", event(2, model.EventTypeSocial, 5, "A"), nil, NoShow},
		{"absent social with excuse", "B", event(2, model.EventTypeSocial, 5, "A"), map[uint64]bool{2: true}, Excused},
		{"absent other_mandatory", "B", event(3, model.EventTypeOtherMandatory, 5), nil, Unexcused},
		{"absent optional", "B", event(4, model.EventTypeOtherOptional, 5), nil, NoShow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.uid, &tt.ev, tt.excused); got != tt.want {
				t.Fatalf("got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestEventPoints(t *testing.T) {
	tests := []struct {
		name string
		ev   model.Event
		att  Attendance
		want int64
	}{
		{"attended earns pixels", gbm(1, 10, "A"), Attended, 10},
		{"attended zero pixels", gbm(1, 0, "A"), Attended, 0},
		{"attended negative pixels", gbm(1, -3, "A"), Attended, 0},
		{"excused earns nothing", gbm(1, 10), Excused, 0},
		{"unexcused earns nothing", gbm(1, 10), Unexcused, 0},
		{"no-show earns nothing", event(1, model.EventTypeSocial, 10), NoShow, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EventPoints(&tt.ev, tt.att); got != tt.want {
				t.Fatalf("got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestEventTotal(t *testing.T) {
	events := []model.Event{
		gbm(1, 10, "A"),
		gbm(2, 20, "A", "B"),
		event(3, model.EventTypeSocial, 5, "B"),
		event(4, model.EventTypeSponsorEvent, 15, "A"),
	}

	if got := EventTotal("A", events, nil); got != 45 {
		t.Fatalf("A total got=%d want=45", got)
	}
	if got := EventTotal("B", events, nil); got != 25 {
		t.Fatalf("B total got=%d want=25", got)
	}
	// An approved excuse on an attended event changes nothing.
	if got := EventTotal("A", events, ExcusedSet([]uint64{1})); got != 45 {
		t.Fatalf("A excused total got=%d want=45", got)
	}
	if got := EventTotal("C", events, nil); got != 0 {
		t.Fatalf("C total got=%d want=0", got)
	}
}

func TestResolveAttendance(t *testing.T) {
	events := []model.Event{
		gbm(1, 10, "A"),
		gbm(2, 10),
		event(3, model.EventTypeSocial, 5),
	}
	results := ResolveAttendance("B", events, ExcusedSet([]uint64{2}))
	if len(results) != 3 {
		t.Fatalf("len=%d want=3", len(results))
	}
	want := []Attendance{Unexcused, Excused, NoShow}
	for i, res := range results {
		if res.Attendance != want[i] {
			t.Errorf("event %d attendance=%v want=%v", res.Event.ID, res.Attendance, want[i])
		}
		if res.Points != 0 {
			t.Errorf("event %d points=%d want=0", res.Event.ID, res.Points)
		}
	}
}

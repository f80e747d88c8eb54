// Package pixel implements the point computation rules: per-event attendance
// classification, activity accumulation, and the combined total.
package pixel

import "github.com/pixelclub/pixels-backend/internal/model"

type Attendance string

const (
	Attended  Attendance = "attended"
	Excused   Attendance = "excused"
	Unexcused Attendance = "unexcused"
	NoShow    Attendance = "no_show"
)

// EventResult is one event's classification and earned points for a member,
// as shown on the dashboard attendance log.
type EventResult struct {
	Event      *model.Event
	Attendance Attendance
	Points     int64
}

// Classify applies the precedence order attended → excused →
// mandatory-unexcused → no-show. A member present in the attendee set is
// always Attended; an approved excuse only matters when absent.
func Classify(memberUID string, ev *model.Event, excused map[uint64]bool) Attendance {
	switch {
	case ev.HasAttendee(memberUID):
		return Attended
	case excused[ev.ID]:
		return Excused
	case ev.Type.Mandatory():
		return Unexcused
	default:
		return NoShow
	}
}

// EventPoints returns the points earned for one classified event. Only
// attendance earns points; a non-positive pixel value earns nothing.
func EventPoints(ev *model.Event, att Attendance) int64 {
	if att == Attended && ev.Pixels > 0 {
		return ev.Pixels
	}
	return 0
}

// ResolveAttendance classifies every event for the member and derives the
// per-event earned points.
func ResolveAttendance(memberUID string, events []model.Event, excused map[uint64]bool) []EventResult {
	results := make([]EventResult, 0, len(events))
	for i := range events {
		ev := &events[i]
		att := Classify(memberUID, ev, excused)
		results = append(results, EventResult{
			Event:      ev,
			Attendance: att,
			Points:     EventPoints(ev, att),
		})
	}
	return results
}

// EventTotal sums earned points over all events.
func EventTotal(memberUID string, events []model.Event, excused map[uint64]bool) int64 {
	var total int64
	for i := range events {
		ev := &events[i]
		total += EventPoints(ev, Classify(memberUID, ev, excused))
	}
	return total
}

// ExcusedSet builds the lookup set consumed by Classify from the approved
// excused-absence index.
func ExcusedSet(eventIDs []uint64) map[uint64]bool {
	set := make(map[uint64]bool, len(eventIDs))
	for _, id := range eventIDs {
		set[id] = true
	}
	return set
}

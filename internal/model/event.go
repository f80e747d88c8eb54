package model

import "time"

type EventType string

const (
	EventTypeGBM            EventType = "gbm"
	EventTypeOtherMandatory EventType = "other_mandatory"
	EventTypeSponsorEvent   EventType = "sponsor_event"
	EventTypeOtherProfDev   EventType = "other_prof_dev"
	EventTypeSocial         EventType = "social"
	EventTypeOtherOptional  EventType = "other_optional"
	EventTypePixelActivity  EventType = "pixel_activity"
	EventTypeSpecial        EventType = "special"
)

// Mandatory reports whether absence from an event of this type is penalized
// as Unexcused when no approved excuse exists.
func (t EventType) Mandatory() bool {
	return t == EventTypeGBM || t == EventTypeOtherMandatory
}

func (t EventType) Valid() bool {
	switch t {
	case EventTypeGBM, EventTypeOtherMandatory, EventTypeSponsorEvent,
		EventTypeOtherProfDev, EventTypeSocial, EventTypeOtherOptional,
		EventTypePixelActivity, EventTypeSpecial:
		return true
	}
	return false
}

type Event struct {
	ID         uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string          `gorm:"size:200;not null" json:"name"`
	Date       time.Time       `gorm:"column:date;not null" json:"date"`
	Type       EventType       `gorm:"column:type;size:32;not null" json:"type"`
	Pixels     int64           `gorm:"column:pixels;not null;default:0" json:"pixels"`
	SemesterID uint64          `gorm:"column:semester_id;index;not null" json:"semesterId"`
	Attendees  []EventAttendee `gorm:"foreignKey:EventID" json:"attendees,omitempty"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Event) TableName() string {
	return "events"
}

// AttendeeUIDs returns the attendee set as a slice of member UIDs.
func (e *Event) AttendeeUIDs() []string {
	uids := make([]string, 0, len(e.Attendees))
	for _, a := range e.Attendees {
		uids = append(uids, a.MemberUID)
	}
	return uids
}

// HasAttendee reports whether uid is in the attendee set.
func (e *Event) HasAttendee(uid string) bool {
	for _, a := range e.Attendees {
		if a.MemberUID == uid {
			return true
		}
	}
	return false
}

// EventAttendee is one row of the event/member attendance join table. The
// composite unique index enforces the no-duplicate-attendee invariant.
type EventAttendee struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	EventID   uint64    `gorm:"column:event_id;index:uk_event_member,unique;not null" json:"-"`
	MemberUID string    `gorm:"column:member_uid;size:128;index:uk_event_member,unique;not null" json:"memberUid"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (EventAttendee) TableName() string {
	return "event_attendees"
}

package model

import "time"

type ExcuseStatus string

const (
	ExcuseStatusPending  ExcuseStatus = "pending"
	ExcuseStatusApproved ExcuseStatus = "approved"
	ExcuseStatusDenied   ExcuseStatus = "denied"
)

func (s ExcuseStatus) Valid() bool {
	return s == ExcuseStatusPending || s == ExcuseStatusApproved || s == ExcuseStatusDenied
}

// ExcusedAbsence is a child of exactly one Event; only the approved status
// affects point computation.
type ExcusedAbsence struct {
	ID        uint64       `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   uint64       `gorm:"column:event_id;index;not null" json:"eventId"`
	MemberUID string       `gorm:"column:member_uid;size:128;index;not null" json:"memberUid"`
	Reason    string       `gorm:"type:text" json:"reason"`
	Status    ExcuseStatus `gorm:"column:status;size:16;not null;default:pending" json:"status"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ExcusedAbsence) TableName() string {
	return "excused_absences"
}

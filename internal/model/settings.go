package model

import "time"

// SettingsRowID is the fixed primary key of the single settings row.
const SettingsRowID = 1

// Settings is a singleton. A nil CurrentSemesterID means no active semester,
// which suspends all pixel recomputation.
type Settings struct {
	ID                uint64    `gorm:"primaryKey" json:"-"`
	CurrentSemesterID *uint64   `gorm:"column:current_semester_id" json:"currentSemesterId"`
	LeadershipOn      bool      `gorm:"column:leadership_on;not null;default:false" json:"isLeadershipOn"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Settings) TableName() string {
	return "settings"
}

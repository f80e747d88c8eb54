package model

import "time"

type ActivityType string

const (
	ActivityTypeCoffeeChat ActivityType = "coffee_chat"
	ActivityTypeBonding    ActivityType = "bonding"
	ActivityTypeOther      ActivityType = "other"
)

func (t ActivityType) Valid() bool {
	return t == ActivityTypeCoffeeChat || t == ActivityTypeBonding || t == ActivityTypeOther
}

// Activity awards pixels per participating member, weighted by that member's
// multiplier entry. A member with no entry does not participate.
type Activity struct {
	ID          uint64               `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string               `gorm:"size:200;not null" json:"name"`
	Type        ActivityType         `gorm:"column:type;size:32;not null" json:"type"`
	Pixels      int64                `gorm:"column:pixels;not null;default:0" json:"pixels"`
	SemesterID  uint64               `gorm:"column:semester_id;index;not null" json:"semesterId"`
	Multipliers []ActivityMultiplier `gorm:"foreignKey:ActivityID" json:"multipliers,omitempty"`
	CreatedAt   time.Time            `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time            `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Activity) TableName() string {
	return "activities"
}

// MultiplierFor returns the member's multiplier, 0 when absent.
func (a *Activity) MultiplierFor(uid string) int64 {
	for _, m := range a.Multipliers {
		if m.MemberUID == uid {
			return m.Multiplier
		}
	}
	return 0
}

// MultiplierUIDs returns the set of participating member UIDs.
func (a *Activity) MultiplierUIDs() []string {
	uids := make([]string, 0, len(a.Multipliers))
	for _, m := range a.Multipliers {
		uids = append(uids, m.MemberUID)
	}
	return uids
}

type ActivityMultiplier struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ActivityID uint64    `gorm:"column:activity_id;index:uk_activity_member,unique;not null" json:"-"`
	MemberUID  string    `gorm:"column:member_uid;size:128;index:uk_activity_member,unique;not null" json:"memberUid"`
	Multiplier int64     `gorm:"column:multiplier;not null;default:1" json:"multiplier"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ActivityMultiplier) TableName() string {
	return "activity_multipliers"
}

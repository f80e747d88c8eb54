package model

import "time"

// Member is the canonical in-memory record. PixelCached is a cache of the
// last aggregation result, never a source of truth; PixelDelta is the
// admin-set manual adjustment added unconditionally to computed totals.
type Member struct {
	UID         string    `json:"uid"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	IsAdmin     bool      `json:"isAdmin"`
	PixelDelta  int64     `json:"pixelDelta"`
	PixelCached int64     `json:"pixelCached"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MemberRecord is the stored shape of a member row. Rows imported from the
// pre-migration schema may carry the adjustment under `pixeldelta` and the
// cached total under `pixels`; ToMember folds those into the canonical
// fields so no fallback logic leaks past the repository.
type MemberRecord struct {
	UID         string    `gorm:"column:uid;primaryKey;size:128"`
	FirstName   string    `gorm:"column:first_name;size:120"`
	LastName    string    `gorm:"column:last_name;size:120"`
	Email       string    `gorm:"column:email;size:254;index"`
	IsAdmin     bool      `gorm:"column:is_admin;not null;default:false"`
	PixelDelta  *int64    `gorm:"column:pixel_delta"`
	LegacyDelta *int64    `gorm:"column:pixeldelta"`
	PixelCached *int64    `gorm:"column:pixel_cached"`
	LegacyTotal *int64    `gorm:"column:pixels"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (MemberRecord) TableName() string {
	return "members"
}

func (r *MemberRecord) ToMember() *Member {
	m := &Member{
		UID:       r.UID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		IsAdmin:   r.IsAdmin,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	switch {
	case r.PixelDelta != nil:
		m.PixelDelta = *r.PixelDelta
	case r.LegacyDelta != nil:
		m.PixelDelta = *r.LegacyDelta
	}
	switch {
	case r.PixelCached != nil:
		m.PixelCached = *r.PixelCached
	case r.LegacyTotal != nil:
		m.PixelCached = *r.LegacyTotal
	}
	return m
}

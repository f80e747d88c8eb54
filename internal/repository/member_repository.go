package repository

import (
	"context"

	"github.com/pixelclub/pixels-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberRepository interface {
	FindByUID(ctx context.Context, uid string) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	ListLeaderboard(ctx context.Context, limit int) ([]model.Member, error)
	// UpsertProfile creates the member on first login and refreshes the
	// profile fields on subsequent logins, leaving pixel fields untouched.
	UpsertProfile(ctx context.Context, uid, firstName, lastName, email string) (*model.Member, error)
	UpdateCachedPixels(ctx context.Context, uid string, total int64) error
	SetDelta(ctx context.Context, uid string, delta int64) error
	SetAdmin(ctx context.Context, uid string, isAdmin bool) error
	Delete(ctx context.Context, uid string) error
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) FindByUID(ctx context.Context, uid string) (*model.Member, error) {
	var rec model.MemberRecord
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&rec).Error; err != nil {
		return nil, err
	}
	return rec.ToMember(), nil
}

func (r *memberRepository) List(ctx context.Context) ([]model.Member, error) {
	var recs []model.MemberRecord
	if err := r.db.WithContext(ctx).
		Order("last_name asc, first_name asc").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return toMembers(recs), nil
}

func (r *memberRepository) ListLeaderboard(ctx context.Context, limit int) ([]model.Member, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var recs []model.MemberRecord
	if err := r.db.WithContext(ctx).
		Order("pixel_cached desc, last_name asc").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return toMembers(recs), nil
}

func (r *memberRepository) UpsertProfile(ctx context.Context, uid, firstName, lastName, email string) (*model.Member, error) {
	zero := int64(0)
	rec := model.MemberRecord{
		UID:         uid,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		PixelDelta:  &zero,
		PixelCached: &zero,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "email"}),
	}).Create(&rec).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUID(ctx, uid)
}

func (r *memberRepository) UpdateCachedPixels(ctx context.Context, uid string, total int64) error {
	// Single update; the legacy pixels column is mirrored for old readers.
	return r.db.WithContext(ctx).
		Model(&model.MemberRecord{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"pixel_cached": total,
			"pixels":       total,
		}).Error
}

func (r *memberRepository) SetDelta(ctx context.Context, uid string, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.MemberRecord{}).
		Where("uid = ?", uid).
		Update("pixel_delta", delta)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *memberRepository) SetAdmin(ctx context.Context, uid string, isAdmin bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.MemberRecord{}).
		Where("uid = ?", uid).
		Update("is_admin", isAdmin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, uid string) error {
	return r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Delete(&model.MemberRecord{}).Error
}

func toMembers(recs []model.MemberRecord) []model.Member {
	out := make([]model.Member, 0, len(recs))
	for i := range recs {
		out = append(out, *recs[i].ToMember())
	}
	return out
}

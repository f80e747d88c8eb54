// Package trigger routes document writes to pixel recomputation. Each write
// handler receives before/after snapshots (nil on create/delete), derives
// the affected member set, and fans out one aggregation per member.
package trigger

import (
	"context"
	"sort"

	"github.com/labstack/gommon/log"
	"github.com/pixelclub/pixels-backend/internal/model"
	"golang.org/x/sync/errgroup"
)

// Aggregator recomputes and persists one member's pixel total.
type Aggregator interface {
	Recompute(ctx context.Context, memberUID string) error
}

type Router struct {
	agg    Aggregator
	logger *log.Logger
}

func NewRouter(agg Aggregator) *Router {
	logger := log.New("trigger")
	logger.SetLevel(log.INFO)
	return &Router{agg: agg, logger: logger}
}

// EventWritten handles an event create, update, or delete.
func (r *Router) EventWritten(ctx context.Context, before, after *model.Event) error {
	return r.fanOut(ctx, EventAffected(before, after))
}

// ExcuseWritten handles an excused-absence create, update, or delete.
func (r *Router) ExcuseWritten(ctx context.Context, before, after *model.ExcusedAbsence) error {
	return r.fanOut(ctx, ExcuseAffected(before, after))
}

// ActivityWritten handles an activity create, update, or delete.
func (r *Router) ActivityWritten(ctx context.Context, before, after *model.Activity) error {
	return r.fanOut(ctx, ActivityAffected(before, after))
}

// EventAffected is the union of attendee sets before and after the write:
// removed attendees must lose points, added attendees must gain them, and a
// deleted event's prior attendees must be recomputed.
func EventAffected(before, after *model.Event) []string {
	set := make(map[string]bool)
	if before != nil {
		for _, uid := range before.AttendeeUIDs() {
			set[uid] = true
		}
	}
	if after != nil {
		for _, uid := range after.AttendeeUIDs() {
			set[uid] = true
		}
	}
	return sorted(set)
}

// ExcuseAffected is the pair {userId before, userId after}; normally equal,
// distinct only when a request is reassigned between members.
func ExcuseAffected(before, after *model.ExcusedAbsence) []string {
	set := make(map[string]bool)
	if before != nil && before.MemberUID != "" {
		set[before.MemberUID] = true
	}
	if after != nil && after.MemberUID != "" {
		set[after.MemberUID] = true
	}
	return sorted(set)
}

// ActivityAffected is the union of multiplier keys before and after.
func ActivityAffected(before, after *model.Activity) []string {
	set := make(map[string]bool)
	if before != nil {
		for _, uid := range before.MultiplierUIDs() {
			set[uid] = true
		}
	}
	if after != nil {
		for _, uid := range after.MultiplierUIDs() {
			set[uid] = true
		}
	}
	return sorted(set)
}

// fanOut recomputes every affected member concurrently. One member's failure
// is logged and does not block the others; there is no retry — the next
// write to any contributing collection re-fires recomputation. Returns the
// first failure once all aggregations have finished.
func (r *Router) fanOut(ctx context.Context, uids []string) error {
	if len(uids) == 0 {
		return nil
	}
	var g errgroup.Group
	for _, uid := range uids {
		uid := uid
		g.Go(func() error {
			if err := r.agg.Recompute(ctx, uid); err != nil {
				r.logger.Errorf("recompute %s: %v", uid, err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

func sorted(set map[string]bool) []string {
	uids := make([]string, 0, len(set))
	for uid := range set {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	return uids
}

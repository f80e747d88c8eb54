package pixel

import "github.com/pixelclub/pixels-backend/internal/model"

// ActivityContribution returns one activity's contribution for a member:
// pixels × multiplier, 0 when the member has no multiplier entry or the
// activity has no positive pixel value.
func ActivityContribution(memberUID string, a *model.Activity) int64 {
	mult := a.MultiplierFor(memberUID)
	if mult <= 0 || a.Pixels <= 0 {
		return 0
	}
	return a.Pixels * mult
}

// ActivityTotal sums contributions over all qualifying activities.
func ActivityTotal(memberUID string, activities []model.Activity) int64 {
	var total int64
	for i := range activities {
		total += ActivityContribution(memberUID, &activities[i])
	}
	return total
}

// Total combines the manual delta, event points, and activity points into
// the member's pixel balance.
func Total(delta, eventPoints, activityPoints int64) int64 {
	return delta + eventPoints + activityPoints
}

package pixel

import (
	"testing"

	"github.com/pixelclub/pixels-backend/internal/model"
)

func activity(id uint64, pixels int64, multipliers map[string]int64) model.Activity {
	a := model.Activity{ID: id, Type: model.ActivityTypeCoffeeChat, Pixels: pixels}
	for uid, m := range multipliers {
		a.Multipliers = append(a.Multipliers, model.ActivityMultiplier{
			ActivityID: id, MemberUID: uid, Multiplier: m,
		})
	}
	return a
}

func TestActivityContribution(t *testing.T) {
	tests := []struct {
		name string
		uid  string
		a    model.Activity
		want int64
	}{
		{"multiplied", "A", activity(1, 5, map[string]int64{"A": 3}), 15},
		{"absent member", "C", activity(1, 5, map[string]int64{"A": 3}), 0},
		{"zero multiplier", "A", activity(1, 5, map[string]int64{"A": 0}), 0},
		{"zero pixels", "A", activity(1, 0, map[string]int64{"A": 3}), 0},
		{"negative pixels", "A", activity(1, -5, map[string]int64{"A": 3}), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ActivityContribution(tt.uid, &tt.a); got != tt.want {
				t.Fatalf("got=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestActivityTotal(t *testing.T) {
	activities := []model.Activity{
		activity(1, 5, map[string]int64{"A": 3, "B": 1}),
		activity(2, 10, map[string]int64{"A": 2}),
		activity(3, 4, map[string]int64{"B": 2}),
	}
	if got := ActivityTotal("A", activities); got != 35 {
		t.Fatalf("A got=%d want=35", got)
	}
	if got := ActivityTotal("B", activities); got != 13 {
		t.Fatalf("B got=%d want=13", got)
	}
	if got := ActivityTotal("C", activities); got != 0 {
		t.Fatalf("C got=%d want=0", got)
	}
}

func TestTotal(t *testing.T) {
	if got := Total(-5, 30, 15); got != 40 {
		t.Fatalf("got=%d want=40", got)
	}
	if got := Total(0, 0, 0); got != 0 {
		t.Fatalf("got=%d want=0", got)
	}
}

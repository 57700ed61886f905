package mealwindow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/messkit/meal-access-service/internal/domain"
)

// tableRange is a daily serving range in minutes since midnight, bounds
// inclusive.
type tableRange struct {
	meal     domain.MealType
	startMin int
	endMin   int
}

// TablePolicy partitions the day into fixed serving ranges in a single
// location. Outside all ranges no meal is servable.
type TablePolicy struct {
	loc    *time.Location
	ranges []tableRange
}

// NewTablePolicy parses "HH:MM-HH:MM" ranges for each meal. Ranges must not
// overlap and must not cross midnight.
func NewTablePolicy(loc *time.Location, breakfast, lunch, dinner string) (*TablePolicy, error) {
	specs := []struct {
		meal domain.MealType
		raw  string
	}{
		{domain.MealBreakfast, breakfast},
		{domain.MealLunch, lunch},
		{domain.MealDinner, dinner},
	}

	p := &TablePolicy{loc: loc}
	for _, spec := range specs {
		start, end, err := parseRange(spec.raw)
		if err != nil {
			return nil, fmt.Errorf("%s window %q: %w", strings.ToLower(string(spec.meal)), spec.raw, err)
		}
		for _, existing := range p.ranges {
			if start <= existing.endMin && existing.startMin <= end {
				return nil, fmt.Errorf("%s window %q overlaps another meal", strings.ToLower(string(spec.meal)), spec.raw)
			}
		}
		p.ranges = append(p.ranges, tableRange{meal: spec.meal, startMin: start, endMin: end})
	}
	return p, nil
}

// ActiveWindow returns the range covering now, or nil outside all ranges.
func (p *TablePolicy) ActiveWindow(_ context.Context, now time.Time) (*Window, error) {
	local := now.In(p.loc)
	minute := local.Hour()*60 + local.Minute()

	for _, r := range p.ranges {
		if minute < r.startMin || minute > r.endMin {
			continue
		}
		midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.loc)
		return &Window{
			MealType: r.meal,
			Start:    midnight.Add(time.Duration(r.startMin) * time.Minute),
			End:      midnight.Add(time.Duration(r.endMin) * time.Minute),
		}, nil
	}
	return nil, nil
}

func parseRange(raw string) (int, int, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want HH:MM-HH:MM")
	}
	start, err := parseClock(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, fmt.Errorf("end must be after start")
	}
	return start, end, nil
}

func parseClock(raw string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", raw)
	}
	return t.Hour()*60 + t.Minute(), nil
}

package schedule

import (
	"sort"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/model"
)

const (
	// MaxDays сколько ближайших дней попадает в расписание
	MaxDays = 3

	// DisplayThreshold сколько слотов дня показывается до кнопки "More".
	// Только для отображения, из DayGroup слоты не удаляются.
	DisplayThreshold = 6
)

const (
	HeadingToday    = "Today"
	HeadingTomorrow = "Tomorrow"
)

// GroupByDay раскладывает слоты по дням.
// Дни без будущих слотов отбрасываются, остаётся не больше MaxDays ближайших.
func GroupByDay(slots []model.Slot, now time.Time, loc *time.Location) []model.DayGroup {
	if len(slots) == 0 {
		return []model.DayGroup{}
	}
	if loc == nil {
		loc = time.Local
	}

	byDay := make(map[string][]model.Slot)
	for _, s := range slots {
		key := s.Instant.In(loc).Format(dayKeyLayout)
		byDay[key] = append(byDay[key], s)
	}

	groups := make([]model.DayGroup, 0, len(byDay))
	for key, daySlots := range byDay {
		if !hasFuture(daySlots) {
			continue
		}

		sort.SliceStable(daySlots, func(i, j int) bool {
			return daySlots[i].Instant.Before(daySlots[j].Instant)
		})

		groups = append(groups, model.DayGroup{
			DayKey:  key,
			Heading: Heading(key, daySlots[0].Instant, now, loc),
			Slots:   daySlots,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].DayKey < groups[j].DayKey
	})

	if len(groups) > MaxDays {
		groups = groups[:MaxDays]
	}
	return groups
}

// Heading заголовок дня: Today, Tomorrow или "Mon, 20.10"
func Heading(dayKey string, sample, now time.Time, loc *time.Location) string {
	today := now.In(loc)
	switch dayKey {
	case today.Format(dayKeyLayout):
		return HeadingToday
	case today.AddDate(0, 0, 1).Format(dayKeyLayout):
		return HeadingTomorrow
	default:
		return sample.In(loc).Format("Mon, 02.01")
	}
}

func hasFuture(slots []model.Slot) bool {
	for _, s := range slots {
		if !s.IsPast {
			return true
		}
	}
	return false
}

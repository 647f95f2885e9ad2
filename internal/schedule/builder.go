package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/model"
	"go.uber.org/zap"
)

// Builder собирает расписание из сырых записей backend:
// нормализация -> классификация -> группировка по дням
type Builder struct {
	norm   *Normalizer
	logger *zap.Logger
}

// NewBuilder создаёт сборщик расписания
func NewBuilder(loc *time.Location, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		norm:   NewNormalizer(loc),
		logger: logger,
	}
}

// Location зона, в которой считаются календарные дни
func (b *Builder) Location() *time.Location {
	return b.norm.Location()
}

// Normalize превращает сырые записи в слоты.
// Записи без распознаваемого времени молча пропускаются.
func (b *Builder) Normalize(raws []model.RawSlot, now time.Time) []model.Slot {
	slots := make([]model.Slot, 0, len(raws))
	ids := newIDSet(len(raws))

	for _, raw := range raws {
		slot, ok := b.normalizeOne(raw, now, ids)
		if !ok {
			continue
		}
		slots = append(slots, slot)
	}

	b.logDropped(len(raws), len(slots))
	return slots
}

// Build строит сгруппированное по дням расписание
func (b *Builder) Build(raws []model.RawSlot, now time.Time) []model.DayGroup {
	return GroupByDay(b.Normalize(raws, now), now, b.norm.Location())
}

// Appointments превращает записи пациента в список будущих приёмов по возрастанию
func (b *Builder) Appointments(raws []model.RawSlot, now time.Time) []model.Appointment {
	result := make([]model.Appointment, 0, len(raws))
	ids := newIDSet(len(raws))
	kept := 0

	for _, raw := range raws {
		slot, ok := b.normalizeOne(raw, now, ids)
		if !ok {
			continue
		}
		kept++
		if slot.IsPast {
			continue
		}

		duration, _ := RawInt(raw, "durationMinutes")
		result = append(result, model.Appointment{
			ID:              slot.ID,
			Instant:         slot.Instant,
			Status:          model.AppointmentStatus(RawString(raw, statusField)),
			SessionType:     RawString(raw, "sessionType"),
			DurationMinutes: duration,
		})
	}

	b.logDropped(len(raws), kept)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Instant.Before(result[j].Instant)
	})
	return result
}

func (b *Builder) normalizeOne(raw model.RawSlot, now time.Time, ids idSet) (model.Slot, bool) {
	instant, ok := b.norm.Instant(raw)
	if !ok {
		return model.Slot{}, false
	}

	id, ok := RawID(raw)
	if !ok {
		id = syntheticID(b.norm.DayKey(instant), instant)
	}

	booked, isPast := Classify(raw, instant, now)
	return model.Slot{
		ID:      ids.unique(id),
		Instant: instant,
		Booked:  booked,
		IsPast:  isPast,
	}, true
}

func (b *Builder) logDropped(total, kept int) {
	if dropped := total - kept; dropped > 0 {
		b.logger.Debug("Dropped slots without recognizable time",
			zap.Int("dropped", dropped),
			zap.Int("total", total))
	}
}

// idSet следит за уникальностью ID в пределах одной загрузки
type idSet map[string]int

func newIDSet(size int) idSet {
	return make(idSet, size)
}

// unique возвращает id как есть, а повторы помечает суффиксом -1, -2, ...
func (s idSet) unique(id string) string {
	n := s[id]
	s[id] = n + 1
	if n == 0 {
		return id
	}
	return fmt.Sprintf("%s-%d", id, n)
}

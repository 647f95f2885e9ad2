package schedule

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/model"
)

// Normalizer приводит разнородные представления времени к time.Time
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer создаёт нормализатор для указанной зоны (nil - time.Local)
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc}
}

// Location возвращает зону нормализатора
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Instant находит время слота по таблице полей.
// false означает, что запись нужно отбросить.
func (n *Normalizer) Instant(raw model.RawSlot) (time.Time, bool) {
	v, ok := lookup(raw, timeFields)
	if !ok {
		return time.Time{}, false
	}

	switch val := v.(type) {
	case string:
		return n.fromString(val)
	case []any:
		return n.fromTuple(val)
	case []int:
		parts := make([]any, len(val))
		for i, p := range val {
			parts[i] = p
		}
		return n.fromTuple(parts)
	default:
		return time.Time{}, false
	}
}

// DayKey ключ календарного дня в зоне нормализатора
func (n *Normalizer) DayKey(t time.Time) string {
	return t.In(n.loc).Format(dayKeyLayout)
}

// fromTuple разбирает [год, месяц(с 1), день, час, минута, секунда]
func (n *Normalizer) fromTuple(parts []any) (time.Time, bool) {
	if len(parts) < 3 {
		return time.Time{}, false
	}

	// год, месяц, день обязательны; остальное по умолчанию 0
	vals := [6]int{}
	for i := 0; i < len(vals) && i < len(parts); i++ {
		num, ok := toInt(parts[i])
		if !ok {
			return time.Time{}, false
		}
		vals[i] = num
	}

	if vals[1] < 1 || vals[1] > 12 || vals[2] < 1 || vals[2] > 31 {
		return time.Time{}, false
	}

	return time.Date(vals[0], time.Month(vals[1]), vals[2], vals[3], vals[4], vals[5], 0, n.loc), true
}

func (n *Normalizer) fromString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(n.loc), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// RawID идентификатор записи, если backend его прислал
func RawID(raw model.RawSlot) (string, bool) {
	v, ok := lookup(raw, idFields)
	if !ok {
		return "", false
	}

	id := stringify(v)
	if id == "" {
		return "", false
	}
	return id, true
}

// RawString строковое значение поля (пустая строка если поля нет)
func RawString(raw model.RawSlot, field string) string {
	v, ok := raw[field]
	if !ok || v == nil {
		return ""
	}
	return stringify(v)
}

// RawInt целое значение поля
func RawInt(raw model.RawSlot, field string) (int, bool) {
	v, ok := raw[field]
	if !ok || v == nil {
		return 0, false
	}
	return toInt(v)
}

// syntheticID детерминированный ID для записи без идентификатора
func syntheticID(dayKey string, t time.Time) string {
	return fmt.Sprintf("%s-%d", dayKey, t.UnixMilli())
}

// lookup возвращает первое присутствующее непустое значение
func lookup(raw model.RawSlot, fields []string) (any, bool) {
	for _, f := range fields {
		if v, ok := raw[f]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func toInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int32:
		return int(val), true
	case int64:
		return int(val), true
	case float64:
		if val != math.Trunc(val) {
			return 0, false
		}
		return int(val), true
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

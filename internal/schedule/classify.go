package schedule

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/model"
)

// Classify определяет занятость слота и то, прошёл ли он относительно now
func Classify(raw model.RawSlot, instant, now time.Time) (booked, isPast bool) {
	return IsBooked(raw), instant.Before(now)
}

// IsBooked слот занят, если выставлен любой флаг занятости
// или статус присутствует и отличается от AVAILABLE
func IsBooked(raw model.RawSlot) bool {
	for _, f := range bookedFlags {
		if truthy(raw[f]) {
			return true
		}
	}

	status, ok := raw[statusField]
	if !ok || status == nil {
		return false
	}
	return strings.ToUpper(stringify(status)) != statusAvailable
}

// truthy повторяет правила приведения к bool, принятые во frontend
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

package formatting

import (
	"fmt"
	"strconv"
)

// FormatFee стоимость консультации в египетских фунтах
func FormatFee(fee *float64) string {
	if fee == nil {
		return ""
	}
	return "L.E " + strconv.FormatFloat(*fee, 'f', -1, 64)
}

// FormatRating средняя оценка, например "4.5 / 5"
func FormatRating(avg *float64) string {
	if avg == nil {
		return ""
	}
	return fmt.Sprintf("%.1f / 5", *avg)
}

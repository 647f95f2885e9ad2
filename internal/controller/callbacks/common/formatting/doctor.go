package formatting

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/Freeeeeet/paxify_bot/internal/model"
)

const doctorTypeDoctor = "DOCTOR"

// Stars оценка звёздами, округление до целого
func Stars(rating float64) string {
	filled := int(math.Round(rating))
	if filled < 0 {
		filled = 0
	}
	if filled > 5 {
		filled = 5
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}

// DoctorTitle у врачей типа DOCTOR титул всегда "Consultant"
func DoctorTitle(d model.Doctor) string {
	if d.Type == doctorTypeDoctor {
		return "Consultant"
	}
	return d.Title
}

// FormatDoctorShort строка врача в списке
func FormatDoctorShort(d model.Doctor, index int) string {
	line := fmt.Sprintf("%d. <b>%s</b>", index, html.EscapeString(d.Name))
	if d.Specialty != "" {
		line += "\n   🩺 " + html.EscapeString(d.Specialty)
	}
	if fee := FormatFee(d.ConsultationFee); fee != "" {
		line += "\n   💰 " + fee
	}
	return line
}

// FormatDoctorProfile карточка врача
func FormatDoctorProfile(p *model.DoctorProfile) string {
	d := p.Doctor
	var sb strings.Builder

	sb.WriteString("👤 <b>" + html.EscapeString(d.Name) + "</b>\n")
	if title := DoctorTitle(d); title != "" {
		sb.WriteString(html.EscapeString(title) + "\n")
	}
	if d.Specialty != "" {
		sb.WriteString("🩺 " + html.EscapeString(d.Specialty) + "\n")
	}
	if p.AverageRating != nil {
		sb.WriteString(fmt.Sprintf("%s %s\n", Stars(*p.AverageRating), FormatRating(p.AverageRating)))
	}
	if p.ReviewsCount > 0 {
		sb.WriteString(fmt.Sprintf("From %d Visitors\n", p.ReviewsCount))
	}
	if fee := FormatFee(d.ConsultationFee); fee != "" {
		sb.WriteString("💰 " + fee + "\n")
	}
	if d.Address != "" {
		sb.WriteString("📍 " + html.EscapeString(d.Address) + "\n")
	}
	if d.Bio != "" {
		sb.WriteString("\n" + html.EscapeString(d.Bio) + "\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// FormatReviews последние отзывы о враче
func FormatReviews(reviews []model.Review, limit int) string {
	if len(reviews) == 0 {
		return "⭐ No reviews yet."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⭐ <b>Reviews</b> (%d)\n", len(reviews)))

	for i, r := range reviews {
		if limit > 0 && i >= limit {
			sb.WriteString(fmt.Sprintf("\n…and %d more", len(reviews)-limit))
			break
		}

		author := "Visitor"
		if r.Patient != nil && r.Patient.Name != "" {
			author = r.Patient.Name
		}
		sb.WriteString(fmt.Sprintf("\n%s <b>%s</b>\n", Stars(float64(r.Rating)), html.EscapeString(author)))
		if r.Comment != "" {
			sb.WriteString(html.EscapeString(r.Comment) + "\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

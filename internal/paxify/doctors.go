package paxify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Freeeeeet/paxify_bot/internal/model"
)

type reviewRequest struct {
	DoctorID string `json:"doctorId"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// PublicDoctors список одобренных врачей, доступен без авторизации
func (c *Client) PublicDoctors(ctx context.Context) ([]model.Doctor, error) {
	var doctors listEnvelope[model.Doctor]
	if err := c.doJSON(ctx, http.MethodGet, "/api/public/doctors", nil, &doctors); err != nil {
		return nil, fmt.Errorf("fetch doctors: %w", err)
	}
	return doctors, nil
}

// DoctorProfile профиль врача со средней оценкой
func (c *Client) DoctorProfile(ctx context.Context, doctorID string) (*model.DoctorProfile, error) {
	path := fmt.Sprintf("/api/public/doctors/%s/profile", url.PathEscape(doctorID))

	var profile model.DoctorProfile
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &profile); err != nil {
		return nil, fmt.Errorf("fetch doctor profile: %w", err)
	}
	return &profile, nil
}

// DoctorReviews отзывы о враче
func (c *Client) DoctorReviews(ctx context.Context, doctorID string) ([]model.Review, error) {
	path := fmt.Sprintf("/api/public/doctors/%s/reviews", url.PathEscape(doctorID))

	var reviews listEnvelope[model.Review]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &reviews); err != nil {
		return nil, fmt.Errorf("fetch doctor reviews: %w", err)
	}
	return reviews, nil
}

// SubmitReview оставляет отзыв от имени пользователя из контекста
func (c *Client) SubmitReview(ctx context.Context, doctorID string, rating int, comment string) error {
	body := reviewRequest{DoctorID: doctorID, Rating: rating, Comment: comment}
	if err := c.doJSON(ctx, http.MethodPost, "/api/reviews", body, nil); err != nil {
		return fmt.Errorf("submit review: %w", err)
	}
	return nil
}

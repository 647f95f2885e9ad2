package patient

import (
	"context"
	"strconv"

	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/paxify_bot/internal/controller/state"
	"github.com/Freeeeeet/paxify_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Reviews
// ========================

// HandleReviews показывает отзывы о терапевте
func HandleReviews(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		doctorID, err := common.ParseStringFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "reviews")
			return
		}

		reviews, err := h.DoctorService.Reviews(ctx, doctorID)
		if err != nil {
			common.HandleError(hc, err, "reviews")
			return
		}

		text, kb := common.BuildReviewsScreen(doctorID, reviews)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show reviews", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleNewReview предлагает выбрать оценку
func HandleNewReview(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		doctorID, err := common.ParseStringFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "review_new")
			return
		}

		text, kb := common.BuildRatingScreen(doctorID)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show rating screen", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleReviewRating запоминает оценку и просит комментарий
func HandleReviewRating(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.CallbackArgs(callback.Data, 2)
		if err != nil {
			common.HandleError(hc, err, "review_rate")
			return
		}

		rating, err := strconv.Atoi(args[1])
		if err != nil || rating < 1 || rating > 5 {
			hc.AnswerAlert(common.ErrorMessage(service.ErrInvalidRating))
			return
		}

		hc.SetData(common.KeyReviewDoctor, args[0])
		hc.SetData(common.KeyReviewRating, rating)
		hc.SetState(callbacktypes.UserState(state.StateReviewComment))

		text := "✍️ <b>New review</b>\n\n" +
			"Your rating: " + strconv.Itoa(rating) + " ★\n\n" +
			"Now send a comment about your sessions, or <code>-</code> to skip.\n\n" +
			"To cancel use /cancel"
		if err := hc.EditMessage(text, nil); err != nil {
			h.Logger.Error("Failed to ask for review comment", zap.Error(err))
		}
		hc.Answer("")
	})
}

package patient

import (
	"context"
	"strconv"
	"strings"

	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Therapists
// ========================

// HandleDoctorsPage показывает страницу списка терапевтов
func HandleDoctorsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := strconv.Atoi(strings.TrimPrefix(callback.Data, "doctors_page:"))
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "doctors_page")
			return
		}

		doctors, err := h.DoctorService.Doctors(ctx)
		if err != nil {
			common.HandleError(hc, err, "list_doctors")
			return
		}

		text, kb := common.BuildDoctorsScreen(doctors, page)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show doctors page", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleDoctorProfile показывает профиль терапевта
func HandleDoctorProfile(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		doctorID, err := common.ParseStringFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "doctor_profile")
			return
		}

		profile, err := h.DoctorService.Profile(ctx, doctorID)
		if err != nil {
			common.HandleError(hc, err, "doctor_profile")
			return
		}
		if profile == nil {
			common.HandleError(hc, common.ErrDoctorNotFound, "doctor_profile")
			return
		}

		// Имя понадобится в заголовке расписания
		hc.SetData(common.DoctorNameKey(doctorID), profile.Doctor.Name)

		text, kb := common.BuildDoctorProfileScreen(profile)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show doctor profile",
				zap.String("doctor_id", doctorID),
				zap.Error(err))
		}
		hc.Answer("")
	})
}

package patient

import (
	"context"
	"errors"
	"strings"

	"github.com/Freeeeeet/paxify_bot/internal/booking"
	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/paxify_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Booking
// ========================

// HandleSelectSlot выбирает слот и открывает форму записи
func HandleSelectSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseIntsFromCallback(callback.Data, 3)
		if err != nil {
			common.HandleError(hc, err, "select_slot")
			return
		}

		sched, err := currentSchedule(hc, int64(args[0]))
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		dayIdx, slotIdx := args[1], args[2]
		if dayIdx < 0 || dayIdx >= len(sched.Days) || slotIdx < 0 || slotIdx >= len(sched.Days[dayIdx].Slots) {
			hc.AnswerAlert(common.ErrorMessage(common.ErrSlotNotFound))
			return
		}
		slot := sched.Days[dayIdx].Slots[slotIdx]

		if err := h.BookingService.SelectSlot(ctx, hc.TelegramID, slot); err != nil {
			h.Logger.Info("Slot selection rejected",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.String("slot_id", slot.ID),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		prefillForm(hc)
		hc.SetData(common.KeyBookingMessage, hc.Message.ID)

		if err := RenderBookingForm(ctx, b, h, hc.TelegramID, hc.ChatID, hc.Message.ID); err != nil {
			h.Logger.Error("Failed to show booking form", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleBookingForm начинает ввод контактных данных
func HandleBookingForm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if _, ok := h.BookingService.Session(hc.TelegramID).SelectedSlot(); !ok {
			hc.AnswerAlert(common.ErrorMessage(common.ErrNoActiveBooking))
			return
		}

		hc.SetData(common.KeyBookingMessage, hc.Message.ID)
		hc.SetState(callbacktypes.UserState(state.StateBookingName))

		if _, err := hc.SendMessage("👤 Enter your full name:\n\nTo cancel use /cancel", nil); err != nil {
			h.Logger.Error("Failed to ask for name", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandlePaymentMethod меняет способ оплаты
func HandlePaymentMethod(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		sess := h.BookingService.Session(hc.TelegramID)
		if _, ok := sess.SelectedSlot(); !ok {
			hc.AnswerAlert(common.ErrorMessage(common.ErrNoActiveBooking))
			return
		}

		method := strings.TrimPrefix(callback.Data, "pay:")
		if err := sess.Form().SetPaymentMethod(method); err != nil {
			common.HandleError(hc, err, "payment_method")
			return
		}

		if err := RenderBookingForm(ctx, b, h, hc.TelegramID, hc.ChatID, hc.Message.ID); err != nil {
			h.Logger.Error("Failed to update booking form", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmBooking отправляет запись на выбранный слот
func HandleConfirmBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		sess := h.BookingService.Session(hc.TelegramID)
		slot, ok := sess.SelectedSlot()
		if !ok {
			hc.AnswerAlert(common.ErrorMessage(common.ErrNoActiveBooking))
			return
		}
		form := sess.Form().Snapshot()

		// Баннер об ожидании оплаты появляется до ответа backend
		sess.OnAdvisory(func(advisory string) {
			if advisory == "" {
				return
			}
			if err := hc.EditMessage(common.BuildSubmittingScreen(slot, form, advisory), nil); err != nil {
				h.Logger.Warn("Failed to show payment advisory", zap.Error(err))
			}
		})
		defer sess.OnAdvisory(nil)

		outcome, err := h.BookingService.Confirm(ctx, hc.TelegramID)
		if err != nil {
			logBookingError(h, hc.TelegramID, slot.ID, err)

			// Форма остаётся для повторной попытки
			if _, still := sess.SelectedSlot(); still {
				if rerr := RenderBookingForm(ctx, b, h, hc.TelegramID, hc.ChatID, hc.Message.ID); rerr != nil {
					h.Logger.Warn("Failed to restore booking form", zap.Error(rerr))
				}
			}
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		h.Logger.Info("Appointment booked",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("slot_id", slot.ID),
			zap.String("status", string(outcome.Status)))

		h.StateManager.DeleteData(hc.TelegramID, common.KeyBookingMessage)

		sched, _, _ := storedSchedule(hc)
		var doctorID string
		if sched != nil {
			doctorID = sched.DoctorID
		}

		text, kb := common.BuildBookedScreen(slot, outcome, doctorID)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show booking result", zap.Error(err))
		}
		hc.Answer(outcome.Message())

		if doctorID != "" {
			refreshSchedule(hc, doctorID)
		}
	})
}

// HandleCancelBooking закрывает форму записи
func HandleCancelBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		h.BookingService.Cancel(hc.TelegramID)
		closeBookingDialog(hc)

		sched, version, ok := storedSchedule(hc)
		if !ok {
			session, _ := h.AuthService.Session(ctx, hc.TelegramID)
			if err := hc.EditMessage(common.BuildMainMenu(session), nil); err != nil {
				h.Logger.Warn("Failed to show main menu", zap.Error(err))
			}
			hc.Answer("Booking cancelled")
			return
		}

		text, kb := common.BuildScheduleScreen(doctorName(hc, sched.DoctorID), sched, version, common.NoExpandedDay)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Warn("Failed to return to schedule", zap.Error(err))
		}
		hc.Answer("Booking cancelled")
	})
}

// RenderBookingForm показывает форму записи в сообщении messageID
func RenderBookingForm(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID, chatID int64, messageID int) error {
	sess := h.BookingService.Session(telegramID)
	slot, ok := sess.SelectedSlot()
	if !ok {
		return common.ErrNoActiveBooking
	}

	text, kb := common.BuildBookingScreen(slot, sess.Form().Snapshot(), sess.Advisory())
	return common.EditMessage(ctx, b, chatID, messageID, text, kb)
}

// prefillForm подставляет имя и email вошедшего пациента
func prefillForm(hc *common.HandlerContext) {
	session, err := hc.Handler.AuthService.Session(hc.Ctx, hc.TelegramID)
	if err != nil || session == nil {
		return
	}

	form := hc.Handler.BookingService.Session(hc.TelegramID).Form()
	data := form.Snapshot()
	if data.Name == "" && session.Name != "" {
		form.SetName(session.Name)
	}
	if data.Email == "" && session.Email != "" {
		form.SetEmail(session.Email)
	}
}

// refreshSchedule новым сообщением показывает расписание после записи
func refreshSchedule(hc *common.HandlerContext, doctorID string) {
	msg, err := hc.SendMessage("🔄 Refreshing schedule...", nil)
	if err != nil {
		hc.Handler.Logger.Warn("Failed to send schedule placeholder", zap.Error(err))
		return
	}

	if err := ShowSchedule(hc.Ctx, hc.Bot, hc.Handler, hc.TelegramID, hc.ChatID, msg.ID, doctorID); err != nil {
		hc.Handler.Logger.Warn("Failed to refresh schedule after booking",
			zap.String("doctor_id", doctorID),
			zap.Error(err))
		if eerr := common.EditMessage(hc.Ctx, hc.Bot, hc.ChatID, msg.ID, common.ErrorMessage(err), nil); eerr != nil {
			hc.Handler.Logger.Warn("Failed to report refresh error", zap.Error(eerr))
		}
	}
}

// closeBookingDialog завершает ввод данных формы, если он шёл
func closeBookingDialog(hc *common.HandlerContext) {
	switch state.UserState(hc.Handler.StateManager.GetState(hc.TelegramID)) {
	case state.StateBookingName, state.StateBookingPhone, state.StateBookingEmail:
		hc.SetState(callbacktypes.UserState(state.StateNone))
	}
	hc.Handler.StateManager.DeleteData(hc.TelegramID, common.KeyBookingMessage)
}

func logBookingError(h *callbacktypes.Handler, telegramID int64, slotID string, err error) {
	var remote *booking.RemoteError
	fields := []zap.Field{
		zap.Int64("telegram_id", telegramID),
		zap.String("slot_id", slotID),
		zap.Error(err),
	}

	if errors.As(err, &remote) {
		h.Logger.Error("Booking failed", fields...)
		return
	}
	h.Logger.Info("Booking rejected", fields...)
}

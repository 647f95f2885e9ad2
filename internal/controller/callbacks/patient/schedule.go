package patient

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Doctor Schedule
// ========================

// HandleSchedule загружает и показывает расписание терапевта
func HandleSchedule(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		doctorID, err := common.ParseStringFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "schedule")
			return
		}

		// Открытая форма записи относится к прежнему снимку
		h.BookingService.Cancel(hc.TelegramID)

		if err := ShowSchedule(ctx, b, h, hc.TelegramID, hc.ChatID, hc.Message.ID, doctorID); err != nil {
			common.HandleError(hc, err, "schedule")
			return
		}
		hc.Answer("")
	})
}

// HandleDayMore раскрывает все слоты дня
func HandleDayMore(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithContext(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseIntsFromCallback(callback.Data, 2)
		if err != nil {
			common.HandleError(hc, err, "day_more")
			return
		}

		sched, err := currentSchedule(hc, int64(args[0]))
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		if args[1] < 0 || args[1] >= len(sched.Days) {
			common.HandleError(hc, common.ErrInvalidFormat, "day_more")
			return
		}

		text, kb := common.BuildScheduleScreen(doctorName(hc, sched.DoctorID), sched, int64(args[0]), args[1])
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to expand schedule day", zap.Error(err))
		}
		hc.Answer("")
	})
}

// ShowSchedule загружает расписание в сообщение messageID.
// Если пока шла загрузка пользователь открыл другое расписание, результат отбрасывается.
func ShowSchedule(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, telegramID, chatID int64, messageID int, doctorID string) error {
	version := h.StateManager.Bump(telegramID, common.CounterSchedule)

	sched, err := h.ScheduleService.DoctorSchedule(ctx, telegramID, doctorID)
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}

	if current := h.StateManager.Counter(telegramID, common.CounterSchedule); current != version {
		h.Logger.Debug("Discarding stale schedule",
			zap.Int64("telegram_id", telegramID),
			zap.String("doctor_id", doctorID),
			zap.Int64("version", version),
			zap.Int64("current", current))
		return nil
	}

	h.StateManager.SetData(telegramID, common.KeySchedule, sched)
	h.StateManager.SetData(telegramID, common.KeyScheduleVersion, version)

	name, _ := h.StateManager.GetData(telegramID, common.DoctorNameKey(doctorID))
	nameStr, _ := name.(string)

	text, kb := common.BuildScheduleScreen(nameStr, sched, version, common.NoExpandedDay)
	return common.EditMessage(ctx, b, chatID, messageID, text, kb)
}

// currentSchedule снимок расписания, если кнопка нажата в его актуальной версии
func currentSchedule(hc *common.HandlerContext, version int64) (*model.DoctorSchedule, error) {
	stored, ok := hc.GetData(common.KeyScheduleVersion)
	if !ok {
		return nil, common.ErrScheduleExpired
	}
	if v, _ := stored.(int64); v != version {
		return nil, common.ErrScheduleExpired
	}

	data, ok := hc.GetData(common.KeySchedule)
	if !ok {
		return nil, common.ErrScheduleExpired
	}
	sched, ok := data.(*model.DoctorSchedule)
	if !ok || sched == nil {
		return nil, common.ErrScheduleExpired
	}
	return sched, nil
}

// storedSchedule последний загруженный снимок без проверки версии кнопки
func storedSchedule(hc *common.HandlerContext) (*model.DoctorSchedule, int64, bool) {
	stored, _ := hc.GetData(common.KeyScheduleVersion)
	version, _ := stored.(int64)

	sched, err := currentSchedule(hc, version)
	if err != nil {
		return nil, 0, false
	}
	return sched, version, true
}

func doctorName(hc *common.HandlerContext, doctorID string) string {
	name, _ := hc.GetData(common.DoctorNameKey(doctorID))
	s, _ := name.(string)
	return s
}

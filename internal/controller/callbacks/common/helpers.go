package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// CallbackArgs аргументы после префикса
// Например: "slot:2:5" -> ["2", "5"]
func CallbackArgs(data string, n int) ([]string, error) {
	parts := strings.Split(data, ":")
	if len(parts) != n+1 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	for _, p := range parts[1:] {
		if p == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
	}
	return parts[1:], nil
}

// ParseStringFromCallback извлекает строковый ID из callback data
// Например: "doctor:17" -> "17"
func ParseStringFromCallback(data string) (string, error) {
	args, err := CallbackArgs(data, 1)
	if err != nil {
		return "", err
	}
	return args[0], nil
}

// ParseIntsFromCallback извлекает числа из callback data
// Например: "slot:2:5" -> [2, 5]
func ParseIntsFromCallback(data string, n int) ([]int, error) {
	args, err := CallbackArgs(data, n)
	if err != nil {
		return nil, err
	}

	out := make([]int, 0, n)
	for _, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
		out = append(out, v)
	}
	return out, nil
}

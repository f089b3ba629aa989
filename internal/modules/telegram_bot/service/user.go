package service

import (
	"context"
	"strconv"

	"signal_bot/internal/i18n"
	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func userIDOf(u *tgbot.User) string {
	return strconv.FormatInt(u.ID, 10)
}

// trackUser пишет метаданные и активность в профильную базу; ошибка не мешает ответу
func (t *Telegram) trackUser(ctx context.Context, u *tgbot.User) {
	if t.Profiles == nil || u == nil {
		return
	}
	meta := models.UserMeta{
		UserID:       userIDOf(u),
		Username:     u.UserName,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		LanguageCode: u.LanguageCode,
	}
	if err := t.Profiles.UpsertUser(ctx, meta); err != nil {
		logger.Warn("[TG] upsert user %s: %v", meta.UserID, err)
	}
}

func (t *Telegram) recordActivity(ctx context.Context, userID, kind string) {
	if t.Profiles == nil {
		return
	}
	if err := t.Profiles.RecordActivity(ctx, userID, kind); err != nil {
		logger.Warn("[TG] record activity %s: %v", userID, err)
	}
}

func (t *Telegram) hasLanguage(userID string) bool {
	_, ok := t.Access.Language(userID)
	return ok
}

func (t *Telegram) locale(userID string) i18n.Locale {
	code, ok := t.Access.Language(userID)
	if !ok {
		return i18n.DefaultLocale
	}
	if l, ok := i18n.Parse(code); ok {
		return l
	}
	return i18n.DefaultLocale
}

// text шаблон в языке пользователя
func (t *Telegram) text(userID string, key i18n.Key, params i18n.Params) string {
	return i18n.Render(t.locale(userID), key, params)
}

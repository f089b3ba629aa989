package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"signal_bot/internal/i18n"
	"signal_bot/internal/metrics"
	"signal_bot/internal/models"
	accessservice "signal_bot/internal/modules/access/service"
	"signal_bot/internal/modules/config"
	healthservice "signal_bot/internal/modules/health/service"
	historyservice "signal_bot/internal/modules/history/service"
	"signal_bot/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const pollErrorBackoff = 3 * time.Second

// botAPI часть *tgbot.BotAPI, которой пользуемся
type botAPI interface {
	Send(c tgbot.Chattable) (tgbot.Message, error)
	Request(c tgbot.Chattable) (*tgbot.APIResponse, error)
	GetUpdates(config tgbot.UpdateConfig) ([]tgbot.Update, error)
}

// ProfileStore профили и статистика для админки. Ошибки только логируются.
type ProfileStore interface {
	UpsertUser(ctx context.Context, meta models.UserMeta) error
	RecordActivity(ctx context.Context, userID, kind string) error
	QueryStats(ctx context.Context) (models.ProfileStats, error)
	Profiles(ctx context.Context, limit int) ([]models.UserProfile, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (models.Verdict, error)
}

type Restarter interface {
	RequestRestart()
}

type Deps struct {
	Access   *accessservice.Controller
	History  *historyservice.History
	Profiles ProfileStore
	Analyzer Analyzer
	Restart  Restarter
	Metrics  *metrics.Metrics
	Health   *healthservice.State
}

// Telegram
type Telegram struct {
	bot botAPI
	cfg *config.Config
	Deps
	now func() time.Time

	offset int
	cancel context.CancelFunc
}

func NewTelegram(cfg *config.Config, deps Deps) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram.NewTelegram: %w", err)
	}
	logger.Info("[TG] authorized as @%s", b.Self.UserName)
	return newTelegram(b, cfg, deps), nil
}

func newTelegram(bot botAPI, cfg *config.Config, deps Deps) *Telegram {
	return &Telegram{
		bot:  bot,
		cfg:  cfg,
		Deps: deps,
		now:  time.Now,
	}
}

func (t *Telegram) Send(ctx context.Context, chatID int64, text string) (tgbot.Message, error) {
	return t.bot.Send(tgbot.NewMessage(chatID, text))
}

func (t *Telegram) SendWithKeyboard(ctx context.Context, chatID int64, text string, kb tgbot.InlineKeyboardMarkup) (tgbot.Message, error) {
	msg := tgbot.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	return t.bot.Send(msg)
}

func (t *Telegram) Delete(ctx context.Context, chatID int64, msgID int) bool {
	resp, err := t.bot.Request(tgbot.NewDeleteMessage(chatID, msgID))
	if err != nil {
		logger.Debug("[TG] delete %d/%d: %v", chatID, msgID, err)
		return false
	}
	return resp.Ok
}

// AnswerCallback убирает "часики" на кнопке
func (t *Telegram) AnswerCallback(ctx context.Context, id string) bool {
	resp, err := t.bot.Request(tgbot.NewCallback(id, ""))
	if err != nil {
		logger.Debug("[TG] answer callback %s: %v", id, err)
		return false
	}
	return resp.Ok
}

// SendTo пользователю по строковому id (в личке chat id == user id)
func (t *Telegram) SendTo(ctx context.Context, userID, text string) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram.SendTo: bad user id %q: %w", userID, err)
	}
	_, err = t.Send(ctx, chatID, text)
	return err
}

// Broadcast шлёт текст по списку с паузой между отправками. Возвращает число доставленных.
func (t *Telegram) Broadcast(ctx context.Context, userIDs []string, text string) int {
	delivered := 0
	for i, id := range userIDs {
		if i > 0 && t.cfg.Telegram.BroadcastDelay > 0 {
			select {
			case <-ctx.Done():
				return delivered
			case <-time.After(t.cfg.Telegram.BroadcastDelay):
			}
		}
		if err := t.SendTo(ctx, id, text); err != nil {
			logger.Warn("[TG] broadcast to %s: %v", id, err)
			continue
		}
		delivered++
	}
	return delivered
}

// RenderSignal текст сигнала для рассылки
func (t *Telegram) RenderSignal(v models.Verdict) string {
	return FormatSignal(v)
}

func (t *Telegram) NotifyExpired(ctx context.Context, userID string) {
	if err := t.SendTo(ctx, userID, t.text(userID, i18n.KeySubscriptionExpired, nil)); err != nil {
		logger.Warn("[TG] expiry notice to %s: %v", userID, err)
	}
}

// Start запускает long-poll в отдельной горутине
func (t *Telegram) Start(ctx context.Context) {
	ctx, t.cancel = context.WithCancel(ctx)
	go t.poll(ctx)
}

func (t *Telegram) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
}

func (t *Telegram) poll(ctx context.Context) {
	logger.Info("[TG] ▶️ polling updates")
	for ctx.Err() == nil {
		if _, err := t.pollOnce(ctx); err != nil {
			logger.Warn("[TG] getUpdates: %v", err)
			select {
			case <-ctx.Done():
			case <-time.After(pollErrorBackoff):
			}
		}
	}
	logger.Info("[TG] ⏹ polling stopped")
}

// pollOnce один getUpdates с явным offset = последний update_id + 1
func (t *Telegram) pollOnce(ctx context.Context) (int, error) {
	u := tgbot.NewUpdate(t.offset)
	u.Timeout = t.cfg.Telegram.PollTimeout

	updates, err := t.bot.GetUpdates(u)
	if err != nil {
		return 0, err
	}
	t.Health.TouchPoll(t.now())

	for _, upd := range updates {
		if ctx.Err() != nil {
			break
		}
		if upd.UpdateID >= t.offset {
			t.offset = upd.UpdateID + 1
		}
		t.safeHandle(ctx, upd)
	}
	return len(updates), nil
}

// safeHandle паника в одном апдейте не останавливает опрос
func (t *Telegram) safeHandle(ctx context.Context, upd tgbot.Update) {
	defer func() {
		if r := recover(); r != nil {
			t.Metrics.Panic("telegram")
			logger.Error("[TG] update %d panic: %v\n%s", upd.UpdateID, r, debug.Stack())
		}
	}()
	t.handleUpdate(ctx, upd)
}

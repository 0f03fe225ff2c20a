package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"signal_bot/internal/engine"
	"signal_bot/internal/i18n"
	prefsvc "signal_bot/internal/modules/prefs/service"
	"signal_bot/pkg/logger"
)

// botAPI — то, что нужно от *tgbot.BotAPI (в тестах подменяется).
type botAPI interface {
	Send(c tgbot.Chattable) (tgbot.Message, error)
	GetUpdatesChan(config tgbot.UpdateConfig) tgbot.UpdatesChannel
	StopReceivingUpdates()
}

// Telegram шлёт карточки во все подписанные чаты, каждому на его языке.
type Telegram struct {
	bot     botAPI
	cat     *i18n.Catalog
	prefs   prefsvc.Store
	defLang string
	sound   bool
	board   *Board

	mu    sync.Mutex
	chats map[int64]struct{}
}

type TelegramConfig struct {
	Token        string
	ChatID       int64
	DefaultLang  string
	SoundDefault bool
}

func NewTelegram(cfg TelegramConfig, cat *i18n.Catalog, prefs prefsvc.Store, board *Board) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	logger.Info("[TG] authorized as @%s", b.Self.UserName)
	return newTelegram(b, cfg, cat, prefs, board), nil
}

func newTelegram(bot botAPI, cfg TelegramConfig, cat *i18n.Catalog, prefs prefsvc.Store, board *Board) *Telegram {
	t := &Telegram{
		bot:     bot,
		cat:     cat,
		prefs:   prefs,
		defLang: cat.Normalize(cfg.DefaultLang),
		sound:   cfg.SoundDefault,
		board:   board,
		chats:   make(map[int64]struct{}),
	}
	if cfg.ChatID != 0 {
		t.chats[cfg.ChatID] = struct{}{}
	}
	return t
}

func (t *Telegram) subscribe(chatID int64) {
	t.mu.Lock()
	t.chats[chatID] = struct{}{}
	t.mu.Unlock()
}

func (t *Telegram) chatIDs() []int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]int64, 0, len(t.chats))
	for id := range t.chats {
		out = append(out, id)
	}
	return out
}

func (t *Telegram) chatPrefs(ctx context.Context, chatID int64) prefsvc.Prefs {
	p, err := prefsvc.GetOr(ctx, t.prefs, chatID, prefsvc.Prefs{Language: t.defLang, SoundEnabled: t.sound})
	if err != nil {
		logger.Error("[TG] prefs for %d: %v", chatID, err)
		return prefsvc.Prefs{ChatID: chatID, Language: t.defLang, SoundEnabled: t.sound}
	}
	p.Language = t.cat.Normalize(p.Language)
	return p
}

func (t *Telegram) send(chatID int64, text string) error {
	_, err := t.bot.Send(tgbot.NewMessage(chatID, text))
	return err
}

func (t *Telegram) Present(ctx context.Context, r engine.Result) error {
	t.board.Put(r)

	var firstErr error
	for _, chatID := range t.chatIDs() {
		lang := t.chatPrefs(ctx, chatID).Language
		if err := t.send(chatID, BuildView(t.cat, lang, r).Render(t.cat, lang)); err != nil {
			logger.Error("[TG] send %s to %d: %v", r.Symbol, chatID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (t *Telegram) PresentError(ctx context.Context, symbol string, cause error) error {
	var firstErr error
	for _, chatID := range t.chatIDs() {
		lang := t.chatPrefs(ctx, chatID).Language
		if err := t.send(chatID, RenderError(t.cat, lang, symbol, cause)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Start читает апдейты до отмены ctx.
func (t *Telegram) Start(ctx context.Context) {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	go func() {
		logger.Info("[TG] updates loop started")
		for {
			select {
			case <-ctx.Done():
				logger.Info("[TG] updates loop stopped")
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				t.handleUpdate(ctx, update)
			}
		}
	}()
}

func (t *Telegram) Stop() {
	t.bot.StopReceivingUpdates()
}

func (t *Telegram) handleUpdate(ctx context.Context, update tgbot.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}
	chatID := msg.Chat.ID

	var err error
	switch msg.Command() {
	case "start":
		t.subscribe(chatID)
		err = t.handleStart(ctx, chatID)
	case "status":
		err = t.handleStatus(ctx, chatID)
	case "lang":
		err = t.handleLang(ctx, chatID, msg.CommandArguments())
	case "sound":
		err = t.handleSound(ctx, chatID, msg.CommandArguments())
	default:
		err = t.send(chatID, t.cat.Label(t.chatPrefs(ctx, chatID).Language, "help"))
	}
	if err != nil {
		logger.Error("[TG] /%s from %d: %v", msg.Command(), chatID, err)
	}
}

func (t *Telegram) handleStart(ctx context.Context, chatID int64) error {
	lang := t.chatPrefs(ctx, chatID).Language
	kb := tgbot.NewReplyKeyboard(
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton("/status"),
			tgbot.NewKeyboardButton("/help"),
		),
		tgbot.NewKeyboardButtonRow(
			tgbot.NewKeyboardButton("/lang uk"),
			tgbot.NewKeyboardButton("/lang en"),
		),
	)
	m := tgbot.NewMessage(chatID, t.cat.Label(lang, "help"))
	m.ReplyMarkup = kb
	_, err := t.bot.Send(m)
	return err
}

func (t *Telegram) handleStatus(ctx context.Context, chatID int64) error {
	lang := t.chatPrefs(ctx, chatID).Language
	all := t.board.All()
	if len(all) == 0 {
		return t.send(chatID, t.cat.Label(lang, "no_data"))
	}
	cards := make([]string, 0, len(all))
	for _, r := range all {
		cards = append(cards, BuildView(t.cat, lang, r).Render(t.cat, lang))
	}
	return t.send(chatID, strings.Join(cards, "\n\n"))
}

func (t *Telegram) handleLang(ctx context.Context, chatID int64, arg string) error {
	p := t.chatPrefs(ctx, chatID)
	code, ok := t.cat.Resolve(arg)
	if !ok {
		return t.send(chatID, fmt.Sprintf("%s: %s (/lang %s)",
			t.cat.Label(p.Language, "language"), t.cat.Name(p.Language), strings.Join(t.cat.Languages(), "|")))
	}
	p.Language = code
	if err := t.prefs.Save(ctx, p); err != nil {
		return err
	}
	return t.send(chatID, fmt.Sprintf("%s: %s", t.cat.Label(p.Language, "language"), t.cat.Name(p.Language)))
}

// handleSound: звук играет на хосте, поэтому флаг пишется в настройки хоста,
// из какого бы чата ни пришла команда.
func (t *Telegram) handleSound(ctx context.Context, chatID int64, arg string) error {
	lang := t.chatPrefs(ctx, chatID).Language
	host := t.chatPrefs(ctx, prefsvc.HostChatID)
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "on", "1", "true":
		host.SoundEnabled = true
	case "off", "0", "false":
		host.SoundEnabled = false
	default:
		return t.send(chatID, fmt.Sprintf("%s: %s", t.cat.Label(lang, "sound"), t.onOff(lang, host.SoundEnabled)))
	}
	if err := t.prefs.Save(ctx, host); err != nil {
		return err
	}
	return t.send(chatID, fmt.Sprintf("%s: %s", t.cat.Label(lang, "sound"), t.onOff(lang, host.SoundEnabled)))
}

func (t *Telegram) onOff(lang string, v bool) string {
	if v {
		return t.cat.Label(lang, "on")
	}
	return t.cat.Label(lang, "off")
}

// Package bot adapts the Telegram transport to the chatui runtime: it turns
// incoming updates into events, keeps per-user ordering, and paints screens
// back as inline keyboards.
package bot

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"expenis/internal/chatui"
	"expenis/internal/logger"
)

const queueSize = 16

// Bot pumps Telegram updates into a chatui runtime and implements its
// Renderer. Each user gets an ordered queue so their events are handled in
// arrival order while users stay independent.
type Bot struct {
	api     *tgbotapi.BotAPI
	runtime *chatui.Runtime

	mu     sync.Mutex
	queues map[int64]chan *chatui.Event
	wg     sync.WaitGroup
}

// New creates a bot for the given token. Call Runtime().Bind to attach
// screen groups before Run.
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		api:    api,
		queues: make(map[int64]chan *chatui.Event),
	}
	b.runtime = chatui.NewRuntime(b)
	return b, nil
}

// Runtime returns the underlying chatui runtime for command binding.
func (b *Bot) Runtime() *chatui.Runtime {
	return b.runtime
}

// Run consumes the update long-poll until the context is cancelled, then
// drains the per-user queues.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	logger.Get().Infow("bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.close()
			b.wg.Wait()
			logger.Get().Infow("bot stopped")
			return
		case update := <-updates:
			ev := b.toEvent(update)
			if ev == nil {
				continue
			}
			b.enqueue(ev)
		}
	}
}

// toEvent converts a Telegram update into a runtime event. Callback queries
// are answered immediately so the client stops its spinner.
func (b *Bot) toEvent(update tgbotapi.Update) *chatui.Event {
	if cq := update.CallbackQuery; cq != nil {
		if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			logger.Get().Warnw("failed to answer callback query", "error", err)
		}
		if cq.Message == nil {
			return nil
		}
		return &chatui.Event{
			UserID:    cq.From.ID,
			ChatID:    cq.Message.Chat.ID,
			MessageID: cq.Message.MessageID,
			Kind:      chatui.EventCallback,
			Token:     cq.Data,
		}
	}

	if msg := update.Message; msg != nil && msg.From != nil {
		ev := &chatui.Event{
			UserID:    msg.From.ID,
			ChatID:    msg.Chat.ID,
			MessageID: msg.MessageID,
		}
		if msg.IsCommand() {
			ev.Kind = chatui.EventCommand
			ev.Command = msg.Command()
			ev.Args = strings.Fields(msg.CommandArguments())
		} else {
			ev.Kind = chatui.EventText
			ev.Text = msg.Text
		}
		return ev
	}

	return nil
}

// enqueue hands the event to the user's ordered queue, starting a worker on
// first contact. A full queue drops the event rather than blocking the
// update loop.
func (b *Bot) enqueue(ev *chatui.Event) {
	b.mu.Lock()
	queue, ok := b.queues[ev.UserID]
	if !ok {
		queue = make(chan *chatui.Event, queueSize)
		b.queues[ev.UserID] = queue
		b.wg.Add(1)
		go b.worker(queue)
	}
	b.mu.Unlock()

	select {
	case queue <- ev:
	default:
		logger.Get().Warnw("user queue full, dropping event", "user_id", ev.UserID)
	}
}

func (b *Bot) worker(queue chan *chatui.Event) {
	defer b.wg.Done()
	for ev := range queue {
		b.runtime.Dispatch(ev)
	}
}

func (b *Bot) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, queue := range b.queues {
		close(queue)
	}
	b.queues = make(map[int64]chan *chatui.Event)
}

// Paint implements chatui.Renderer.
func (b *Bot) Paint(ev *chatui.Event, message string, layout [][]chatui.Cell, edit bool) error {
	markup := toMarkup(layout)

	if edit {
		msg := tgbotapi.NewEditMessageTextAndMarkup(ev.ChatID, ev.MessageID, message, markup)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := b.api.Send(msg); err != nil {
			// Pressing a button without a visible change produces an
			// identical edit, which Telegram rejects.
			if strings.Contains(err.Error(), "message is not modified") {
				return nil
			}
			return err
		}
		return nil
	}

	msg := tgbotapi.NewMessage(ev.ChatID, message)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

// Notify implements chatui.Renderer.
func (b *Bot) Notify(ev *chatui.Event, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(ev.ChatID, text))
	return err
}

func toMarkup(layout [][]chatui.Cell) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(layout))
	for _, row := range layout {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, cell := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(cell.Label, cell.Token))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

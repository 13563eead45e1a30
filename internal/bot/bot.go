// Package bot connects the conversation flow to Telegram via long polling.
package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/emeklilik/sgkcalc/internal/conversation"
	"github.com/emeklilik/sgkcalc/internal/logging"
)

// MessageSender sends plain text messages to a chat.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) (int64, error)
}

// UpdateSource fetches updates. *tgbotapi.BotAPI satisfies it.
type UpdateSource interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

// Handler answers one user message. *conversation.Flow satisfies it.
type Handler interface {
	Handle(ctx context.Context, in conversation.Input) (conversation.Reply, error)
}

// ErrorReplier is implemented by handlers that phrase their own failure
// reply, e.g. in the user's language.
type ErrorReplier interface {
	ErrorText(ctx context.Context, in conversation.Input) string
}

// Observer is told how each update ended: "ok", "error" or "ignored".
type Observer interface {
	UpdateHandled(outcome string)
}

type nopObserver struct{}

func (nopObserver) UpdateHandled(string) {}

const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeIgnored = "ignored"
)

// Bot polls for updates and replies through the handler.
type Bot struct {
	Logger logging.Logger
	// ErrorText is sent when the handler fails and does not implement
	// ErrorReplier; empty sends nothing.
	ErrorText string

	updates     UpdateSource
	sender      MessageSender
	handler     Handler
	observer    Observer
	pollTimeout int
	workers     int
	retryDelay  time.Duration
}

// New creates a bot. pollTimeout is the long-poll timeout in seconds.
func New(updates UpdateSource, sender MessageSender, handler Handler, pollTimeout int) *Bot {
	return &Bot{
		Logger:      logging.NopLogger{},
		updates:     updates,
		sender:      sender,
		handler:     handler,
		observer:    nopObserver{},
		pollTimeout: pollTimeout,
		workers:     8,
		retryDelay:  time.Second,
	}
}

// SetLogger sets the logger. A nil logger disables logging.
func (b *Bot) SetLogger(logger logging.Logger) {
	b.Logger = logging.OrNop(logger)
}

// SetObserver sets the update observer. A nil observer disables events.
func (b *Bot) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	b.observer = o
}

// Run polls until ctx is cancelled. A poll in flight when ctx is cancelled
// finishes before Run returns.
func (b *Bot) Run(ctx context.Context) error {
	offset := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		cfg := tgbotapi.NewUpdate(offset)
		cfg.Timeout = b.pollTimeout
		cfg.AllowedUpdates = []string{"message"}

		updates, err := b.updates.GetUpdates(cfg)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.Logger.Warnf("failed to get updates: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(b.retryDelay):
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
		}
		b.Dispatch(ctx, updates)
	}
}

// Dispatch handles a batch of updates. Messages from the same user are
// handled in order on one goroutine; different users run concurrently.
func (b *Bot) Dispatch(ctx context.Context, updates []tgbotapi.Update) {
	byUser := make(map[int64][]*tgbotapi.Message)
	var order []int64
	for i := range updates {
		msg := updates[i].Message
		if msg == nil || msg.From == nil || msg.Chat == nil || msg.Text == "" {
			b.observer.UpdateHandled(OutcomeIgnored)
			continue
		}
		if _, seen := byUser[msg.From.ID]; !seen {
			order = append(order, msg.From.ID)
		}
		byUser[msg.From.ID] = append(byUser[msg.From.ID], msg)
	}

	var g errgroup.Group
	g.SetLimit(b.workers)
	for _, userID := range order {
		msgs := byUser[userID]
		g.Go(func() error {
			for _, msg := range msgs {
				b.handleMessage(ctx, msg)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	b.Logger.Debugf("message from user %d in chat %d", msg.From.ID, msg.Chat.ID)

	in := conversation.Input{
		UserID:   msg.From.ID,
		Language: msg.From.LanguageCode,
		Text:     msg.Text,
	}
	reply, err := b.handler.Handle(ctx, in)
	if err != nil {
		b.Logger.Errorf("failed to handle message from user %d: %v", msg.From.ID, err)
		b.observer.UpdateHandled(OutcomeError)
		if text := b.errorText(ctx, in); text != "" {
			b.send(ctx, msg.Chat.ID, text)
		}
		return
	}

	if err := b.send(ctx, msg.Chat.ID, reply.Text); err != nil {
		b.observer.UpdateHandled(OutcomeError)
		return
	}
	b.observer.UpdateHandled(OutcomeOK)
}

func (b *Bot) errorText(ctx context.Context, in conversation.Input) string {
	if r, ok := b.handler.(ErrorReplier); ok {
		return r.ErrorText(ctx, in)
	}
	return b.ErrorText
}

func (b *Bot) send(ctx context.Context, chatID int64, text string) error {
	if _, err := b.sender.SendMessage(ctx, chatID, text); err != nil {
		b.Logger.Warnf("failed to send message to chat %d: %v", chatID, err)
		return err
	}
	return nil
}

// TelegramSender sends through the Bot API.
type TelegramSender struct {
	api *tgbotapi.BotAPI
}

// NewTelegramSender wraps an authenticated API client.
func NewTelegramSender(api *tgbotapi.BotAPI) *TelegramSender {
	return &TelegramSender{api: api}
}

// SendMessage sends text as a plain message and returns its message id.
func (s *TelegramSender) SendMessage(_ context.Context, chatID int64, text string) (int64, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := s.api.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}
	return int64(sent.MessageID), nil
}

// Connect authenticates with token and returns the API client.
func Connect(token string, debug bool) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	api.Debug = debug
	return api, nil
}

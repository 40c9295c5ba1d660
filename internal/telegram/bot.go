// Package telegram serves a practice session over a Telegram chat. Only
// the learner's own chat is served.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/mates/internal/evaluate"
	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/gamification"
	"github.com/abhisek/mates/internal/logging"
	"github.com/abhisek/mates/internal/session"
)

const (
	cmdStart    = "start"
	cmdNickname = "nombre"
	cmdHint     = "pista"
	cmdProgress = "progreso"
	cmdMenu     = "menu"
	cmdHelp     = "ayuda"

	callbackCategory = "cat:"
	callbackNext     = "next:"
)

// API is the subset of *tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// NewAPI connects to Telegram with token.
func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	return api, nil
}

// Bot answers one learner's chat.
type Bot struct {
	api     API
	chatID  int64
	session *session.Service
	tracker *gamification.Tracker
}

// New creates a Bot serving chatID.
func New(api API, chatID int64, svc *session.Service, tracker *gamification.Tracker) *Bot {
	return &Bot{api: api, chatID: chatID, session: svc, tracker: tracker}
}

// Run long-polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	logging.Logger.WithField("chat_id", b.chatID).Info("telegram bot polling")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return errors.New("telegram update channel closed")
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes a single update.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID
	log := logging.FromContext(ctx).WithField("chat_id", chatID)
	if chatID != b.chatID {
		log.Warn("message from unknown chat")
		b.send(ctx, tgbotapi.NewMessage(chatID, "Lo siento, este bot es privado."))
		return
	}

	cmd, args, isCmd := parseCommand(msg.Text)
	if !isCmd {
		b.handleAnswer(ctx, msg.Text)
		return
	}

	switch cmd {
	case cmdStart:
		b.handleStart(ctx)
	case cmdNickname:
		b.handleNickname(ctx, args)
	case cmdHint:
		b.handleHint(ctx)
	case cmdProgress:
		b.reply(ctx, progressText(b.tracker.State()))
	case cmdMenu:
		b.sendMenu(ctx, "¿Qué quieres practicar?")
	default:
		b.reply(ctx, helpText)
	}
}

func (b *Bot) handleStart(ctx context.Context) {
	state := b.tracker.State()
	if state.Nickname == "" {
		b.reply(ctx, "¡Hola! Soy tu compañero de matemáticas. ¿Cómo te llamas? Escribe /nombre seguido de tu apodo.")
		return
	}
	b.sendMenu(ctx, fmt.Sprintf("¡Hola, %s! ¿Qué quieres practicar hoy?", state.Nickname))
}

func (b *Bot) handleNickname(ctx context.Context, name string) {
	state, err := b.tracker.SetNickname(ctx, name)
	if errors.Is(err, gamification.ErrEmptyNickname) {
		b.reply(ctx, "Escribe tu apodo después del comando, por ejemplo: /nombre Leo")
		return
	}
	if err != nil {
		logging.FromContext(ctx).WithError(err).Error("failed to save nickname")
		b.reply(ctx, "No he podido guardar tu apodo. Inténtalo de nuevo.")
		return
	}
	b.sendMenu(ctx, fmt.Sprintf("¡Encantado, %s! ¿Qué quieres practicar?", state.Nickname))
}

func (b *Bot) handleHint(ctx context.Context) {
	ex := b.session.Current()
	switch {
	case ex == nil:
		b.reply(ctx, "Todavía no hay ningún ejercicio. Usa /menu para elegir uno.")
	case ex.Hint == "":
		b.reply(ctx, "Este ejercicio no tiene pista. ¡Tú puedes!")
	default:
		b.reply(ctx, "💡 "+ex.Hint)
	}
}

func (b *Bot) handleAnswer(ctx context.Context, text string) {
	ex := b.session.Current()
	if ex == nil {
		b.sendMenu(ctx, "Primero elige qué quieres practicar.")
		return
	}

	sub, err := b.session.Submit(ctx, ex, text)
	if errors.Is(err, evaluate.ErrEmptyAnswer) {
		b.reply(ctx, "Escribe tu respuesta, por favor.")
		return
	}
	if err != nil {
		logging.FromContext(ctx).WithError(err).Error("failed to evaluate answer")
		b.reply(ctx, "Algo ha fallado al corregir tu respuesta. Inténtalo de nuevo.")
		return
	}

	msg := tgbotapi.NewMessage(b.chatID, feedbackText(sub))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Siguiente ➡️", callbackNext+string(ex.Category)),
			tgbotapi.NewInlineKeyboardButtonData("Menú", callbackNext),
		),
	)
	b.send(ctx, msg)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil || cb.Message.Chat.ID != b.chatID {
		return
	}

	// Acknowledge immediately so Telegram stops the button spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		logging.FromContext(ctx).WithError(err).Debug("failed to acknowledge callback")
	}

	var name string
	switch {
	case strings.HasPrefix(cb.Data, callbackCategory):
		name = strings.TrimPrefix(cb.Data, callbackCategory)
	case strings.HasPrefix(cb.Data, callbackNext):
		name = strings.TrimPrefix(cb.Data, callbackNext)
		if name == "" {
			b.sendMenu(ctx, "¿Qué quieres practicar?")
			return
		}
	default:
		logging.FromContext(ctx).WithField("data", cb.Data).Warn("unknown callback")
		return
	}

	category, err := exercise.ParseCategory(name)
	if err != nil {
		b.sendMenu(ctx, "No conozco ese tipo de ejercicio. Elige otro:")
		return
	}
	b.sendExercise(ctx, category)
}

func (b *Bot) sendExercise(ctx context.Context, category exercise.Category) {
	ex, err := b.session.Next(ctx, category)
	if err != nil {
		logging.FromContext(ctx).WithError(err).Error("failed to generate exercise")
		b.reply(ctx, "No he podido preparar un ejercicio. Inténtalo de nuevo.")
		return
	}
	b.reply(ctx, exerciseText(ex))
}

func (b *Bot) sendMenu(ctx context.Context, text string) {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ReplyMarkup = categoryKeyboard()
	b.send(ctx, msg)
}

func (b *Bot) reply(ctx context.Context, text string) {
	b.send(ctx, tgbotapi.NewMessage(b.chatID, text))
}

func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		logging.FromContext(ctx).WithFields(logrus.Fields{
			"chat_id": b.chatID,
		}).WithError(err).Error("failed to send telegram message")
	}
}

// parseCommand splits "/nombre@matesbot Leo" into ("nombre", "Leo", true).
func parseCommand(text string) (string, string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	head, args, _ := strings.Cut(text[1:], " ")
	head, _, _ = strings.Cut(head, "@")
	return strings.ToLower(head), strings.TrimSpace(args), true
}

// Package telegram lets the owner talk to the QA pipeline from Telegram.
package telegram

import (
	"context"
	"time"

	"github.com/sandevgo/provostbot/internal/config"
	"github.com/sandevgo/provostbot/internal/core"
	"github.com/sandevgo/provostbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

const degradedMessage = "I'm temporarily unable to answer, please try again."

type Pipeline interface {
	Ask(ctx context.Context, question string) (core.Result, error)
}

type Bot struct {
	bot      *tele.Bot
	pipeline Pipeline
	sender   *sender
	ownerID  int64
}

func NewBot(ctx context.Context, cfg *config.TelegramConfig, pipeline Pipeline) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		bot:      b,
		pipeline: pipeline,
		sender:   newSender(b),
		ownerID:  cfg.OwnerID,
	}

	// Carry the service context (with its logger) into handlers.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Only the owner may talk to the bot.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	_ = c.Notify(tele.Typing)

	res, err := b.pipeline.Ask(ctx, c.Text())
	if err != nil {
		logger.Error().Err(err).Msg("pipeline run failed")
		return c.Send(degradedMessage)
	}

	return b.sender.sendMarkdown(ctx, c.Chat(), res.Answer, false)
}

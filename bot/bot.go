package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"factory_floor/background"
	"factory_floor/catalog"
	"factory_floor/dashboard"
	"factory_floor/instructions"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const maxMessageLength = 4096

// Bot serves one dashboard per Telegram chat.
type Bot struct {
	api        *tgbotapi.BotAPI
	catalog    *catalog.Catalog
	sims       dashboard.Simulator
	background *background.Cache

	mu         sync.Mutex
	dashboards map[int64]*dashboard.Dashboard
}

func New(token string, c *catalog.Catalog, sims dashboard.Simulator, bg *background.Cache) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:        api,
		catalog:    c,
		sims:       sims,
		background: bg,
		dashboards: make(map[int64]*dashboard.Dashboard),
	}, nil
}

// Start long-polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	b.api.Debug = false
	logrus.Infof("Bot authorized: %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		}
	}
}

func (b *Bot) dashboardFor(chatID int64) *dashboard.Dashboard {
	b.mu.Lock()
	defer b.mu.Unlock()

	d, ok := b.dashboards[chatID]
	if !ok {
		d = dashboard.New(b.catalog, b.sims)
		b.dashboards[chatID] = d
	}
	return d
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !message.IsCommand() {
		b.sendMessage(chatID, instructions.UnknownCommand, nil)
		return
	}

	logrus.WithFields(logrus.Fields{
		"chat_id": chatID,
		"command": message.Command(),
	}).Debug("Command received")

	switch message.Command() {
	case "start":
		b.sendWelcome(ctx, chatID)
	case "zones":
		b.dispatch(ctx, chatID, actionZones, "")
	case "zone":
		b.dispatch(ctx, chatID, actionZone, strings.TrimSpace(message.CommandArguments()))
	case "tour":
		b.dispatch(ctx, chatID, actionTourStart, "")
	case "next":
		b.dispatch(ctx, chatID, actionTourNext, "")
	case "exit", "close":
		b.dispatch(ctx, chatID, actionExit, "")
	case "run":
		b.dispatch(ctx, chatID, actionRun, "")
	case "status":
		b.sendMessage(chatID, renderStatus(b.dashboardFor(chatID).View()), nil)
	default:
		b.sendMessage(chatID, instructions.UnknownCommand, nil)
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logrus.WithError(err).Warn("Failed to answer callback query")
	}
	if query.Message == nil {
		return
	}

	action, arg := parseCallback(query.Data)
	b.dispatch(ctx, query.Message.Chat.ID, action, arg)
}

func (b *Bot) dispatch(ctx context.Context, chatID int64, action, arg string) {
	d := b.dashboardFor(chatID)

	switch action {
	case actionZones:
		kb := zoneKeyboard(b.catalog)
		b.sendMessage(chatID, "🗺 *Factory Floor*\nPick a zone to open its panel.", &kb)

	case actionZone:
		if err := d.SelectZone(arg); err != nil {
			if errors.Is(err, dashboard.ErrUnknownZone) {
				kb := zoneKeyboard(b.catalog)
				b.sendMessage(chatID, fmt.Sprintf("Unknown zone %q.", arg), &kb)
				return
			}
			logrus.WithError(err).Error("Failed to select zone")
			return
		}
		b.sendPanel(chatID, d.View())
		// Plain zone panels load their report straight away; tour stops wait
		// for the visitor to read the story first.
		if d.View().PanelStep == nil {
			b.runScenario(ctx, chatID, d)
		}

	case actionTourStart:
		if err := d.StartTour(); err != nil {
			logrus.WithError(err).Warn("Failed to start tour")
			b.sendMessage(chatID, "The guided tour is not available.", nil)
			return
		}
		b.sendPanel(chatID, d.View())

	case actionTourNext:
		d.Advance()
		v := d.View()
		if !v.TourActive {
			b.sendMessage(chatID, tourCompleteMessage, nil)
			return
		}
		b.sendPanel(chatID, v)

	case actionExit:
		d.Exit()
		b.sendMessage(chatID, exitMessage, nil)

	case actionRun:
		b.runScenario(ctx, chatID, d)

	default:
		logrus.WithField("action", action).Warn("Unknown callback action")
	}
}

func (b *Bot) sendPanel(chatID int64, v dashboard.View) {
	kb := panelKeyboard(v)
	b.sendMessage(chatID, renderPanel(v), &kb)
}

func (b *Bot) runScenario(ctx context.Context, chatID int64, d *dashboard.Dashboard) {
	typing := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := b.api.Request(typing); err != nil {
		logrus.WithError(err).Debug("Failed to send typing indicator")
	}

	out, err := d.RunScenario(ctx)
	if err != nil {
		if errors.Is(err, dashboard.ErrNoZoneSelected) {
			b.sendMessage(chatID, "Open a zone first with /zones.", nil)
			return
		}
		logrus.WithError(err).Error("Failed to run scenario")
		return
	}
	if !out.Applied {
		return
	}

	v := d.View()
	kb := panelKeyboard(v)
	b.sendMessage(chatID, renderReport(out.Zone, out.Report), &kb)
}

func (b *Bot) sendWelcome(ctx context.Context, chatID int64) {
	if b.background != nil {
		if img, ok := b.background.Load(ctx); ok {
			b.sendBackground(chatID, img)
		}
	}
	kb := zoneKeyboard(b.catalog)
	b.sendMessage(chatID, instructions.WelcomeMessage, &kb)
}

func (b *Bot) sendBackground(chatID int64, uri string) {
	_, data, err := background.DecodeDataURI(uri)
	if err != nil {
		logrus.WithError(err).Warn("Cached background is not a usable data URI")
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "factory-floor.png", Bytes: data})
	if _, err := b.api.Send(photo); err != nil {
		logrus.WithError(err).Warn("Failed to send background photo")
	}
}

// sendMessage sends text, split to Telegram's size limit, with markup
// attached to the last part.
func (b *Bot) sendMessage(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	parts := splitMessage(text, maxMessageLength)

	for i, part := range parts {
		msg := tgbotapi.NewMessage(chatID, part)
		// Try markdown first, fallback to plain text
		msg.ParseMode = tgbotapi.ModeMarkdown
		if markup != nil && i == len(parts)-1 {
			msg.ReplyMarkup = *markup
		}

		if _, err := b.api.Send(msg); err != nil {
			logrus.WithError(err).WithField("part", i+1).Warn("Markdown parsing failed, retrying as plain text")
			msg.ParseMode = ""
			if _, err := b.api.Send(msg); err != nil {
				logrus.WithError(err).WithField("part", i+1).Error("Failed to send message")
			}
		}
	}
}

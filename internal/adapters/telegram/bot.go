// Package telegram is the chat transport: a long-polling bot that maps each
// incoming message onto an Action and answers through the forecast and location use cases.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"lakeweather.bot/internal/core/forecast"
	"lakeweather.bot/internal/core/location"
	"lakeweather.bot/internal/ports"
	"lakeweather.bot/pkg/errors"
)

// Sender delivers outgoing messages; *tgbotapi.BotAPI implements it
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// UpdateSource yields incoming updates; *tgbotapi.BotAPI implements it
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type ForecastUseCase interface {
	GetForecast(ctx context.Context, userID int64, days int) (*forecast.Forecast, error)
	DefaultDays() int
}

type LocationUseCase interface {
	Get(ctx context.Context, userID int64) (location.Coordinate, error)
	Upsert(ctx context.Context, userID int64, coord location.Coordinate) error
}

// BotOptions represents options for creating the bot adapter
type BotOptions struct {
	Sender          Sender
	Updates         UpdateSource
	ForecastUseCase ForecastUseCase
	LocationUseCase LocationUseCase
	Logger          ports.Logger
	// Title heads every forecast message
	Title string
	// Timezone is used for the "updated" timestamp; defaults to UTC
	Timezone       *time.Location
	PollTimeout    int
	RequestTimeout time.Duration
}

// Validate checks if all required dependencies are provided
func (opts *BotOptions) Validate() error {
	if opts.Sender == nil {
		return errors.NewValidationError("sender is required")
	}
	if opts.Updates == nil {
		return errors.NewValidationError("update source is required")
	}
	if opts.ForecastUseCase == nil {
		return errors.NewValidationError("forecast use case is required")
	}
	if opts.LocationUseCase == nil {
		return errors.NewValidationError("location use case is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// BotAdapter serves chat users over the Telegram Bot API
type BotAdapter struct {
	sender         Sender
	updates        UpdateSource
	forecasts      ForecastUseCase
	locations      LocationUseCase
	logger         ports.Logger
	title          string
	timezone       *time.Location
	pollTimeout    int
	requestTimeout time.Duration
	keyboard       tgbotapi.ReplyKeyboardMarkup
	inFlight       sync.WaitGroup
}

// NewBotAdapter creates a new bot adapter
func NewBotAdapter(opts BotOptions) (*BotAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bot options: %w", err)
	}

	timezone := opts.Timezone
	if timezone == nil {
		timezone = time.UTC
	}
	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return &BotAdapter{
		sender:         opts.Sender,
		updates:        opts.Updates,
		forecasts:      opts.ForecastUseCase,
		locations:      opts.LocationUseCase,
		logger:         opts.Logger,
		title:          opts.Title,
		timezone:       timezone,
		pollTimeout:    opts.PollTimeout,
		requestTimeout: requestTimeout,
		keyboard:       mainKeyboard(),
	}, nil
}

// NewBotAPI connects to Telegram with the given token. The HTTP client timeout
// must exceed the long-poll timeout or every poll is cut short.
func NewBotAPI(token string, pollTimeout int, debug bool, logger ports.Logger) (*tgbotapi.BotAPI, error) {
	client := &http.Client{Timeout: time.Duration(pollTimeout+10) * time.Second}
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, errors.NewConfigurationError("failed to connect to Telegram", err)
	}
	api.Debug = debug
	if err := tgbotapi.SetLogger(botLogger{logger: logger}); err != nil {
		logger.Warn("Failed to install Telegram logger", ports.F("error", err))
	}

	logger.Info("Telegram bot authorized", ports.F("username", api.Self.UserName))
	return api, nil
}

// Run polls for updates until ctx is cancelled, handling each update in its own
// goroutine. It waits for in-flight updates before returning.
func (b *BotAdapter) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.pollTimeout

	updates := b.updates.GetUpdatesChan(updateConfig)
	b.logger.Info("Telegram bot polling started", ports.F("pollTimeout", b.pollTimeout))

	defer b.inFlight.Wait()
	for {
		select {
		case <-ctx.Done():
			b.updates.StopReceivingUpdates()
			b.logger.Info("Telegram bot polling stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.inFlight.Add(1)
			go func(update tgbotapi.Update) {
				defer b.inFlight.Done()
				b.HandleUpdate(ctx, update)
			}(update)
		}
	}
}

// HandleUpdate answers a single update. Failures are reported to the user and
// logged; they never propagate.
func (b *BotAdapter) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, b.requestTimeout)
	defer cancel()

	userID := msg.Chat.ID
	if msg.From != nil {
		userID = msg.From.ID
	}

	action := ParseAction(msg)
	b.logger.Debug("Telegram update received",
		ports.F("updateID", update.UpdateID),
		ports.F("userID", userID),
		ports.F("action", action.String()))

	switch action {
	case ActionStart:
		b.reply(msg.Chat.ID, startText, false)
	case ActionHelp:
		b.reply(msg.Chat.ID, helpText, false)
	case ActionWeather:
		b.sendForecast(ctx, msg.Chat.ID, userID)
	case ActionShowLocation:
		b.showLocation(ctx, msg.Chat.ID, userID)
	case ActionShareLocation:
		b.shareLocation(ctx, msg.Chat.ID, userID, msg.Location)
	default:
		b.reply(msg.Chat.ID, navigationText, false)
	}
}

func (b *BotAdapter) sendForecast(ctx context.Context, chatID, userID int64) {
	b.reply(chatID, loadingText, false)

	result, err := b.forecasts.GetForecast(ctx, userID, b.forecasts.DefaultDays())
	if err != nil {
		b.logger.Error("Forecast request failed",
			ports.F("userID", userID),
			ports.F("error", err))
		if errors.IsProviderUnavailableError(err) {
			b.reply(chatID, providerFailureText, false)
			return
		}
		b.reply(chatID, genericFailureText, false)
		return
	}

	b.reply(chatID, RenderForecast(b.title, result, b.timezone), true)
}

func (b *BotAdapter) showLocation(ctx context.Context, chatID, userID int64) {
	coord, err := b.locations.Get(ctx, userID)
	if err != nil {
		b.logger.Error("Location lookup failed",
			ports.F("userID", userID),
			ports.F("error", err))
		b.reply(chatID, genericFailureText, false)
		return
	}
	b.reply(chatID, currentLocationText(coord), false)
}

func (b *BotAdapter) shareLocation(ctx context.Context, chatID, userID int64, shared *tgbotapi.Location) {
	coord := location.Coordinate{Latitude: shared.Latitude, Longitude: shared.Longitude}
	if err := b.locations.Upsert(ctx, userID, coord); err != nil {
		b.logger.Error("Location update failed",
			ports.F("userID", userID),
			ports.F("error", err))
		if errors.IsValidationError(err) {
			b.reply(chatID, invalidLocationText, false)
			return
		}
		b.reply(chatID, genericFailureText, false)
		return
	}
	b.reply(chatID, locationAcceptedText(coord), false)
}

func (b *BotAdapter) reply(chatID int64, text string, markdown bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = b.keyboard
	if markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}

	if _, err := b.sender.Send(msg); err != nil {
		b.logger.Warn("Failed to send Telegram message",
			ports.F("chatID", chatID),
			ports.F("error", err))
	}
}

// botLogger routes the library's internal logging into ports.Logger
type botLogger struct {
	logger ports.Logger
}

func (l botLogger) Println(v ...interface{}) {
	l.logger.Debug(fmt.Sprint(v...), ports.F("component", "telegram"))
}

func (l botLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), ports.F("component", "telegram"))
}

package telegram

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lakeweather.bot/internal/core/forecast"
	"lakeweather.bot/internal/core/location"
	"lakeweather.bot/internal/mocks"
	"lakeweather.bot/pkg/errors"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []tgbotapi.MessageConfig
	err      error
}

func (s *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		s.messages = append(s.messages, msg)
	}
	return tgbotapi.Message{}, s.err
}

func (s *fakeSender) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	texts := make([]string, 0, len(s.messages))
	for _, m := range s.messages {
		texts = append(texts, m.Text)
	}
	return texts
}

type fakeUpdates struct {
	ch      chan tgbotapi.Update
	stopped bool
	config  tgbotapi.UpdateConfig
}

func (u *fakeUpdates) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	u.config = config
	return u.ch
}

func (u *fakeUpdates) StopReceivingUpdates() { u.stopped = true }

type stubForecasts struct {
	result    *forecast.Forecast
	err       error
	calls     int
	gotUserID int64
	gotDays   int
}

func (s *stubForecasts) GetForecast(ctx context.Context, userID int64, days int) (*forecast.Forecast, error) {
	s.calls++
	s.gotUserID = userID
	s.gotDays = days
	return s.result, s.err
}

func (s *stubForecasts) DefaultDays() int { return 3 }

type stubLocations struct {
	coord    location.Coordinate
	getErr   error
	upserted map[int64]location.Coordinate
	upErr    error
}

func (s *stubLocations) Get(ctx context.Context, userID int64) (location.Coordinate, error) {
	if c, ok := s.upserted[userID]; ok {
		return c, nil
	}
	return s.coord, s.getErr
}

func (s *stubLocations) Upsert(ctx context.Context, userID int64, coord location.Coordinate) error {
	if s.upErr != nil {
		return s.upErr
	}
	if s.upserted == nil {
		s.upserted = make(map[int64]location.Coordinate)
	}
	s.upserted[userID] = coord
	return nil
}

var ladoga = location.Coordinate{Latitude: 61.111969, Longitude: 30.339632}

type botFixture struct {
	bot       *BotAdapter
	sender    *fakeSender
	updates   *fakeUpdates
	forecasts *stubForecasts
	locations *stubLocations
}

func newBotFixture(t *testing.T) botFixture {
	t.Helper()
	f := botFixture{
		sender:    &fakeSender{},
		updates:   &fakeUpdates{ch: make(chan tgbotapi.Update)},
		forecasts: &stubForecasts{result: sampleForecast()},
		locations: &stubLocations{coord: ladoga},
	}

	bot, err := NewBotAdapter(BotOptions{
		Sender:          f.sender,
		Updates:         f.updates,
		ForecastUseCase: f.forecasts,
		LocationUseCase: f.locations,
		Logger:          mocks.NewPermissiveLogger(t),
		Title:           "Погода на Ладожском озере",
		PollTimeout:     60,
	})
	require.NoError(t, err)
	f.bot = bot
	return f
}

func textUpdate(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: userID},
			Chat: &tgbotapi.Chat{ID: userID},
			Text: text,
		},
	}
}

func commandUpdate(userID int64, command string) tgbotapi.Update {
	update := textUpdate(userID, "/"+command)
	update.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(command) + 1}}
	return update
}

func locationUpdate(userID int64, lat, lon float64) tgbotapi.Update {
	update := textUpdate(userID, "")
	update.Message.Location = &tgbotapi.Location{Latitude: lat, Longitude: lon}
	return update
}

func TestBotAdapter_Commands(t *testing.T) {
	tests := []struct {
		name     string
		update   tgbotapi.Update
		wantText string
	}{
		{"Start", commandUpdate(1, "start"), startText},
		{"Help", commandUpdate(1, "help"), helpText},
		{"HelpButton", textUpdate(1, LabelHelp), helpText},
		{"Location", commandUpdate(1, "location"), "Текущие координаты: 61.111969, 30.339632"},
		{"LocationButton", textUpdate(1, LabelLocation), "Текущие координаты: 61.111969, 30.339632"},
		{"FreeText", textUpdate(1, "привет"), navigationText},
		{"PartialWeatherLabel", textUpdate(1, "Погода на 3"), navigationText},
		{"PartialLocationLabel", textUpdate(1, "локация"), navigationText},
		{"UnknownCommand", commandUpdate(1, "settings"), navigationText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBotFixture(t)

			f.bot.HandleUpdate(context.Background(), tt.update)

			require.Len(t, f.sender.messages, 1)
			msg := f.sender.messages[0]
			assert.Equal(t, int64(1), msg.ChatID)
			assert.Equal(t, tt.wantText, msg.Text)
			assert.Equal(t, mainKeyboard(), msg.ReplyMarkup)
			assert.Zero(t, f.forecasts.calls)
		})
	}
}

func TestBotAdapter_Weather(t *testing.T) {
	for _, update := range []tgbotapi.Update{commandUpdate(42, "weather"), textUpdate(42, LabelWeather)} {
		f := newBotFixture(t)

		f.bot.HandleUpdate(context.Background(), update)

		texts := f.sender.texts()
		require.Len(t, texts, 2)
		assert.Equal(t, loadingText, texts[0])
		assert.Contains(t, texts[1], "🌊 **Погода на Ладожском озере**")
		assert.Equal(t, tgbotapi.ModeMarkdown, f.sender.messages[1].ParseMode)
		assert.Equal(t, int64(42), f.forecasts.gotUserID)
		assert.Equal(t, 3, f.forecasts.gotDays)
	}
}

func TestBotAdapter_WeatherFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{"ProviderUnavailable", errors.NewProviderUnavailableError("circuit open", nil), providerFailureText},
		{"WrappedProviderUnavailable", fmt.Errorf("user 42: %w", errors.NewProviderUnavailableError("timeout", nil)), providerFailureText},
		{"Storage", errors.NewStorageError("database is locked", nil), genericFailureText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBotFixture(t)
			f.forecasts.result = nil
			f.forecasts.err = tt.err

			f.bot.HandleUpdate(context.Background(), textUpdate(42, LabelWeather))

			assert.Equal(t, []string{loadingText, tt.wantText}, f.sender.texts())
		})
	}
}

func TestBotAdapter_ShareLocation(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		f := newBotFixture(t)

		f.bot.HandleUpdate(context.Background(), locationUpdate(7, 60.123456, 30.987654))

		assert.Equal(t, location.Coordinate{Latitude: 60.123456, Longitude: 30.987654}, f.locations.upserted[7])
		assert.Equal(t, []string{
			"📍 Геолокация принята!\n📌 Координаты: 60.1235, 30.9877\n\nХотите посмотреть погоду для этой точки?",
		}, f.sender.texts())

		f.bot.HandleUpdate(context.Background(), commandUpdate(7, "location"))
		assert.Equal(t, "Текущие координаты: 60.123456, 30.987654", f.sender.texts()[1])
	})

	t.Run("Rejected", func(t *testing.T) {
		f := newBotFixture(t)
		f.locations.upErr = errors.NewValidationError("latitude out of range")

		f.bot.HandleUpdate(context.Background(), locationUpdate(7, 95, 30))

		assert.Equal(t, []string{invalidLocationText}, f.sender.texts())
	})

	t.Run("StorageFailure", func(t *testing.T) {
		f := newBotFixture(t)
		f.locations.upErr = errors.NewStorageError("disk full", nil)

		f.bot.HandleUpdate(context.Background(), locationUpdate(7, 60, 30))

		assert.Equal(t, []string{genericFailureText}, f.sender.texts())
	})
}

func TestBotAdapter_ShowLocationFailure(t *testing.T) {
	f := newBotFixture(t)
	f.locations.getErr = errors.NewStorageError("database is locked", nil)

	f.bot.HandleUpdate(context.Background(), textUpdate(3, LabelLocation))

	assert.Equal(t, []string{genericFailureText}, f.sender.texts())
}

func TestBotAdapter_IgnoresNonMessageUpdates(t *testing.T) {
	f := newBotFixture(t)

	f.bot.HandleUpdate(context.Background(), tgbotapi.Update{UpdateID: 9})

	assert.Empty(t, f.sender.texts())
}

func TestBotAdapter_SendFailureIsLogged(t *testing.T) {
	f := newBotFixture(t)
	f.sender.err = fmt.Errorf("network down")

	assert.NotPanics(t, func() {
		f.bot.HandleUpdate(context.Background(), commandUpdate(1, "start"))
	})
}

func TestBotAdapter_Run(t *testing.T) {
	f := newBotFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- f.bot.Run(ctx) }()

	f.updates.ch <- commandUpdate(1, "start")
	f.updates.ch <- commandUpdate(2, "help")

	require.Eventually(t, func() bool { return len(f.sender.texts()) == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
	assert.True(t, f.updates.stopped)
	assert.Equal(t, 60, f.updates.config.Timeout)
}

func TestBotOptions_Validate(t *testing.T) {
	_, err := NewBotAdapter(BotOptions{})

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "sender is required")
}

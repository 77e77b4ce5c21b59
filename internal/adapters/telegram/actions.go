package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Reply keyboard labels
const (
	LabelWeather  = "🌤️ Погода на 3 дня"
	LabelLocation = "🗺️ Текущая локация"
	LabelHelp     = "❓ Помощь"
)

// Action is what the bot does in response to one incoming message
type Action int

const (
	ActionUnknown Action = iota
	ActionStart
	ActionWeather
	ActionShowLocation
	ActionHelp
	ActionShareLocation
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionWeather:
		return "weather"
	case ActionShowLocation:
		return "show_location"
	case ActionHelp:
		return "help"
	case ActionShareLocation:
		return "share_location"
	default:
		return "unknown"
	}
}

var commandActions = map[string]Action{
	"start":    ActionStart,
	"weather":  ActionWeather,
	"location": ActionShowLocation,
	"help":     ActionHelp,
}

var labelActions = map[string]Action{
	LabelWeather:  ActionWeather,
	LabelLocation: ActionShowLocation,
	LabelHelp:     ActionHelp,
}

// ParseAction classifies msg. Keyboard labels match exactly (surrounding
// whitespace aside); a partial label is not an action.
func ParseAction(msg *tgbotapi.Message) Action {
	if msg == nil {
		return ActionUnknown
	}
	if msg.Location != nil {
		return ActionShareLocation
	}
	if msg.IsCommand() {
		return commandActions[msg.Command()]
	}
	return labelActions[strings.TrimSpace(msg.Text)]
}

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(LabelWeather),
			tgbotapi.NewKeyboardButton(LabelLocation),
			tgbotapi.NewKeyboardButton(LabelHelp),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

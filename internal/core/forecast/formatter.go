package forecast

import "time"

// FallbackIcon is shown for condition codes outside every known range
const FallbackIcon = "🌤️"

var windLabels = map[WindDirection]string{
	WindNorth:     "С",
	WindNorthEast: "СВ",
	WindEast:      "В",
	WindSouthEast: "ЮВ",
	WindSouth:     "Ю",
	WindSouthWest: "ЮЗ",
	WindWest:      "З",
	WindNorthWest: "СЗ",
}

var dayNames = map[string]string{
	"Monday":    "Понедельник",
	"Tuesday":   "Вторник",
	"Wednesday": "Среда",
	"Thursday":  "Четверг",
	"Friday":    "Пятница",
	"Saturday":  "Суббота",
	"Sunday":    "Воскресенье",
}

type codeRange struct {
	from, to int
}

type iconRule struct {
	icon   string
	ranges []codeRange
}

// iconRules holds disjoint condition-code ranges
var iconRules = []iconRule{
	{"☀️", []codeRange{{800, 800}}},
	{"⛅", []codeRange{{801, 802}}},
	{"☁️", []codeRange{{803, 804}}},
	{"🌧️", []codeRange{{300, 314}, {321, 321}, {500, 504}}},
	{"🌨️", []codeRange{{511, 511}, {611, 616}, {620, 622}}},
	{"⛈️", []codeRange{{200, 232}}},
	{"❄️", []codeRange{{600, 602}}},
	{"🌫️", []codeRange{{701, 781}}},
}

// WindDirectionLabel returns the Russian compass abbreviation for dir
func WindDirectionLabel(dir WindDirection) string {
	if label, ok := windLabels[dir]; ok {
		return label
	}
	return dir.String()
}

// WeatherIcon maps a provider condition code to an emoji, falling back to FallbackIcon
func WeatherIcon(conditionID int) string {
	for _, rule := range iconRules {
		for _, r := range rule.ranges {
			if conditionID >= r.from && conditionID <= r.to {
				return rule.icon
			}
		}
	}
	return FallbackIcon
}

// LocalizedDayName returns the Russian weekday name for date
func LocalizedDayName(date time.Time) string {
	return localizeWeekday(date.Weekday().String())
}

func localizeWeekday(name string) string {
	if localized, ok := dayNames[name]; ok {
		return localized
	}
	return name
}

// Decorate attaches the icon and wind label to each summary
func Decorate(summaries []DaySummary) []DayForecast {
	days := make([]DayForecast, 0, len(summaries))
	for _, s := range summaries {
		days = append(days, DayForecast{
			DaySummary: s,
			Icon:       WeatherIcon(s.ConditionID),
			WindLabel:  WindDirectionLabel(s.WindDirection),
		})
	}
	return days
}

package telegram

import (
	"fmt"
	"strings"
	"time"

	"lakeweather.bot/internal/core/forecast"
	"lakeweather.bot/internal/core/location"
)

const (
	startText = "👋 Добро пожаловать в бот погоды на Ладожском озере!\n\n" +
		"Выберите опцию ниже или используйте команды:\n" +
		"/weather - текущая погода\n" +
		"/help - справка"

	helpText = "🌊 Бот погоды для Ладожского озера\n\n" +
		"Доступные команды:\n" +
		"/start - начать работу\n" +
		"/weather - погода на 3 дня\n" +
		"/help - эта справка\n" +
		"/location - заданные координаты\n\n" +
		"Или используйте кнопки меню для навигации.\n\n" +
		"Бот показывает:\n" +
		"• Температуру (°C)\n" +
		"• Осадки и облачность\n" +
		"• Направление и скорость ветра\n" +
		"• Влажность и давление"

	loadingText         = "⏳ Получаю актуальные данные о погоде..."
	providerFailureText = "❌ Не удалось получить данные о погоде. Попробуйте позже или проверьте настройки API."
	genericFailureText  = "❌ Произошла ошибка. Попробуйте позже."
	invalidLocationText = "❌ Некорректные координаты."
	navigationText      = "Используйте кнопки меню или команды для навигации"
)

func currentLocationText(coord location.Coordinate) string {
	return "Текущие координаты: " + coord.String()
}

func locationAcceptedText(coord location.Coordinate) string {
	return fmt.Sprintf("📍 Геолокация принята!\n📌 Координаты: %s\n\nХотите посмотреть погоду для этой точки?", coord.Short())
}

// RenderForecast formats f as a Markdown message. Temperatures and wind speed
// are rounded to one decimal; the update time is shown in tz.
func RenderForecast(title string, f *forecast.Forecast, tz *time.Location) string {
	if tz == nil {
		tz = time.UTC
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🌊 **%s**\n\n", title)

	for _, day := range f.Days {
		fmt.Fprintf(&b, "**%s (%s)** %s\n", day.DayName, day.Date.Format("02.01.2006"), day.Icon)
		fmt.Fprintf(&b, "• Температура: %.1f°C ... %.1f°C\n", day.MinTempC, day.MaxTempC)
		fmt.Fprintf(&b, "• Осадки: %s\n", day.Description)
		fmt.Fprintf(&b, "• Ветер: %s %.1f м/с\n", day.WindLabel, day.AvgWindSpeedMs)
		fmt.Fprintf(&b, "• Влажность: %d%%\n", day.HumidityPct)
		fmt.Fprintf(&b, "• Давление: %d гПа\n\n", day.PressureHPa)
	}

	fmt.Fprintf(&b, "📍 *Координаты:* %s\n", f.Coordinate.String())
	fmt.Fprintf(&b, "🕒 *Обновлено:* %s", f.GeneratedAt.In(tz).Format("02.01.2006 15:04"))
	return b.String()
}

package domain

import (
	"strings"
	"time"
)

var validDays = map[string]struct{}{
	"mon": {}, "tue": {}, "wed": {}, "thu": {},
	"fri": {}, "sat": {}, "sun": {},
}

const timeLayout = "15:04"

// NormalizeMoodTag обрезает пробелы; пустая строка и литерал "0"
// нормализуются в отсутствие значения
func NormalizeMoodTag(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" || trimmed == "0" {
		return nil
	}
	return &trimmed
}

// NormalizeLink обрезает пробелы; пустая строка нормализуется в отсутствие.
// Формат ссылки проверяется валидацией до нормализации.
func NormalizeLink(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NormalizeFoodTags обрезает каждый тег и выбрасывает пустые.
// Порядок и дубликаты входа сохраняются, регистр не меняется.
func NormalizeFoodTags(raw []string) []string {
	if raw == nil {
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			continue
		}
		tags = append(tags, trimmed)
	}
	return tags
}

// NormalizeOpenHours приводит часы работы к канонической форме:
//   - неизвестный день недели отбрасывается молча
//   - "Closed" (без учёта регистра) сохраняется как "Closed"
//   - диапазон "HH:mm-HH:mm" переформатируется с ведущими нулями;
//     непарсящиеся стороны и значения без единственного дефиса
//     сохраняются как есть (нормализация best-effort, не ошибка)
//
// Порядок валидных записей входа сохраняется, дни приводятся к нижнему регистру.
func NormalizeOpenHours(raw OpenHours) OpenHours {
	if raw == nil {
		return nil
	}
	sanitized := OpenHours{}
	for _, entry := range raw {
		day := strings.ToLower(strings.TrimSpace(entry.Day))
		if _, ok := validDays[day]; !ok {
			continue
		}
		value := strings.TrimSpace(entry.Hours)
		if strings.EqualFold(value, "Closed") {
			sanitized = sanitized.Set(day, "Closed")
			continue
		}
		sanitized = sanitized.Set(day, normalizeTimeRange(value))
	}
	return sanitized
}

func normalizeTimeRange(value string) string {
	parts := strings.Split(value, "-")
	if len(parts) != 2 {
		// нет ровно одного дефиса - исходная строка сохраняется
		return value
	}

	start := normalizeTime(strings.TrimSpace(parts[0]))
	end := strings.TrimSpace(parts[1])
	// 24:00 - валидное время закрытия, но не валидное время суток
	if end != "24:00" {
		end = normalizeTime(end)
	}
	return start + "-" + end
}

func normalizeTime(value string) string {
	// time.Parse принимает час без ведущего нуля, Format возвращает его:
	// "9:00" -> "09:00"
	parsed, err := time.Parse(timeLayout, value)
	if err != nil {
		return value
	}
	return parsed.Format(timeLayout)
}

// NormalizePoiInput применяет все нормализации к входному payload POI
func NormalizePoiInput(in PoiInput) PoiInput {
	in.MoodTag = NormalizeMoodTag(in.MoodTag)
	in.Link = NormalizeLink(in.Link)
	in.FoodTags = NormalizeFoodTags(in.FoodTags)
	in.OpenHours = NormalizeOpenHours(in.OpenHours)
	return in
}

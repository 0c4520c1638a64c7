package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// HoursEntry - часы работы за один день недели
type HoursEntry struct {
	Day   string
	Hours string
}

// OpenHours - часы работы по дням недели.
// Порядок записей соответствует порядку ключей во входном JSON, поэтому
// тип реализован как слайс, а не map.
type OpenHours []HoursEntry

// Get возвращает часы для дня
func (oh OpenHours) Get(day string) (string, bool) {
	for _, e := range oh {
		if e.Day == day {
			return e.Hours, true
		}
	}
	return "", false
}

// Set добавляет день или перезаписывает существующий, сохраняя позицию
func (oh OpenHours) Set(day, hours string) OpenHours {
	for i, e := range oh {
		if e.Day == day {
			oh[i].Hours = hours
			return oh
		}
	}
	return append(oh, HoursEntry{Day: day, Hours: hours})
}

// MarshalJSON сериализует записи как JSON-объект в порядке слайса
func (oh OpenHours) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range oh {
		if i > 0 {
			buf.WriteByte(',')
		}
		day, err := json.Marshal(e.Day)
		if err != nil {
			return nil, err
		}
		hours, err := json.Marshal(e.Hours)
		if err != nil {
			return nil, err
		}
		buf.Write(day)
		buf.WriteByte(':')
		buf.Write(hours)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON читает JSON-объект токенами, чтобы не потерять порядок ключей
func (oh *OpenHours) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*oh = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("open hours: expected JSON object, got %v", tok)
	}

	entries := OpenHours{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("open hours: non-string key %v", keyTok)
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("open hours: value for %q must be a string: %w", key, err)
		}
		entries = entries.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*oh = entries
	return nil
}

// Value сериализует часы работы для колонки типа json.
// Колонка намеренно json, а не jsonb: jsonb не сохраняет порядок ключей.
func (oh OpenHours) Value() (driver.Value, error) {
	if oh == nil {
		return nil, nil
	}
	data, err := json.Marshal(oh)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan читает значение json-колонки
func (oh *OpenHours) Scan(src interface{}) error {
	if src == nil {
		*oh = nil
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("open hours: cannot scan %T", src)
	}

	return oh.UnmarshalJSON(data)
}

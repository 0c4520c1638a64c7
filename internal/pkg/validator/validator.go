package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Паттерн закреплён с обеих сторон: значение целиком - пустая строка
// или http(s) URL, подстрочного совпадения недостаточно
var linkPattern = regexp.MustCompile(`^(?:$|https?://.+)$`)

func init() {
	validate = validator.New()

	// poi_link - внешняя ссылка POI: пустая строка или http(s) URL
	_ = validate.RegisterValidation("poi_link", func(fl validator.FieldLevel) bool {
		return linkPattern.MatchString(fl.Field().String())
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

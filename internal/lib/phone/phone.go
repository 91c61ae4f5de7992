// Package phone проверяет номера WhatsApp.
package phone

import (
	"github.com/go-playground/validator"
)

const (
	minDigits = 10
	maxDigits = 15
)

// Valid сообщает, имеет ли номер вид +<код страны><абонент> с 10–15 цифрами.
func Valid(number string) bool {
	if len(number) < 1+minDigits || len(number) > 1+maxDigits || number[0] != '+' {
		return false
	}
	for i := 1; i < len(number); i++ {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
	}
	return true
}

// Tag: имя тега валидатора для номеров WhatsApp.
const Tag = "whatsapp"

// RegisterValidation регистрирует тег `whatsapp` в валидаторе.
func RegisterValidation(v *validator.Validate) error {
	return v.RegisterValidation(Tag, func(fl validator.FieldLevel) bool {
		return Valid(fl.Field().String())
	})
}

// NewValidator возвращает валидатор с зарегистрированным тегом `whatsapp`.
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterValidation(v); err != nil {
		panic(err)
	}
	return v
}

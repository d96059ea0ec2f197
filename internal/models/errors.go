package models

import (
	"errors"
	"fmt"
)

// Ожидаемые ошибки прикладного уровня. Вызывающий код проверяет их через errors.Is.
var (
	// Ресурс (запись каталога или агрегат) не найден
	ErrResourceNotFound = errors.New("resource not found")
	// Пользователь не может читать или изменять ресурс
	ErrNotAllowed = errors.New("not allowed")
	// Нарушен уникальный ключ
	ErrAlreadyExists = errors.New("resource already exists")
	// Нельзя сменить видимость: официальная сущность или ссылка на несуществующую peculiaridade
	ErrInvalidVisibility = errors.New("invalid visibility change")
)

// InvalidVisibility оборачивает ErrInvalidVisibility с пояснением.
func InvalidVisibility(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidVisibility, reason)
}

package domain

import "fmt"

// ValidationError описывает нарушение инварианта при создании или изменении
// доменного объекта. Field содержит имя поля, которое не прошло проверку.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

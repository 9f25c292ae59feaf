package services

import (
	"strings"

	"rooms-api/dto"
)

// ValidationError junta todos los errores de campo de un request
// El controlador lo traduce a un 400 con la lista completa de errores
type ValidationError struct {
	Errors []dto.FieldError
}

// Error implementa la interfaz error
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NewValidationError crea un ValidationError a partir de pares campo/mensaje
func NewValidationError(errs ...dto.FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

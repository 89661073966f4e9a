// Package domain define el núcleo de negocio del checkout (sin dependencias externas).
//
// Los errores de dominio son un conjunto cerrado de variantes etiquetadas (Kind):
// la capa web mapea Kind → HTTP status con una tabla explícita, nunca
// inspeccionando el texto del mensaje.
package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica un error de dominio para su mapeo a HTTP y a hints de recuperación.
type Kind int

const (
	// KindInternal error inesperado (repositorio, pasarela a nivel transporte, bug).
	KindInternal Kind = iota
	// KindNotFound el recurso referenciado no existe.
	KindNotFound
	// KindConflict la operación choca con el estado actual (transición ilegal, duplicado, sin stock).
	KindConflict
	// KindInvalidInput entrada malformada o campo requerido ausente.
	KindInvalidInput
	// KindUnprocessable entrada bien formada pero inconsistente (ej. total que no cuadra).
	KindUnprocessable
	// KindUnauthorized credenciales ausentes o inválidas.
	KindUnauthorized
)

// Error es el error de dominio etiquetado.
type Error struct {
	Kind    Kind
	Message string
	Err     error // causa subyacente opcional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is permite errors.Is contra otro *Error del mismo Kind (sentinelas por variante).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinelas por variante, para errors.Is en use cases y tests.
var (
	ErrNotFound      = &Error{Kind: KindNotFound, Message: "recurso no encontrado"}
	ErrConflict      = &Error{Kind: KindConflict, Message: "conflicto con el estado actual"}
	ErrInvalidInput  = &Error{Kind: KindInvalidInput, Message: "entrada inválida"}
	ErrUnprocessable = &Error{Kind: KindUnprocessable, Message: "entidad no procesable"}
	ErrUnauthorized  = &Error{Kind: KindUnauthorized, Message: "no autorizado"}
)

// NotFound construye un error NotFound con mensaje formateado.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict construye un error Conflict con mensaje formateado.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// InvalidInput construye un error InvalidInput con mensaje formateado.
func InvalidInput(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Unprocessable construye un error Unprocessable con mensaje formateado.
func Unprocessable(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnprocessable, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized construye un error Unauthorized con mensaje formateado.
func Unauthorized(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Internal envuelve una causa inesperada preservando la cadena para errors.Is/As.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf devuelve el Kind de un error; los errores no etiquetados son KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

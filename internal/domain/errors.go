package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrMalformedDocument = errors.New("documento XML mal formado")
	ErrCanceled          = errors.New("procesamiento cancelado")
	ErrWriteFailed       = errors.New("no se pudo escribir el archivo de salida")
)

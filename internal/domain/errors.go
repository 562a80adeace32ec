package domain

import "errors"

// Errores de dominio (sin dependencias externas). Taxonomía:
//   - ErrInvalidInput: entrada malformada o faltante (motivo en blanco, cantidad <= 0).
//   - ErrInvalidState: operación no legal en el estado actual de la entidad.
//   - ErrConflict: violación de unicidad o de concurrencia (incluye reintentos agotados).
//   - ErrNotFound: el id referenciado no existe.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidState       = errors.New("operación no permitida en el estado actual")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNothingToReturn    = errors.New("el empleado no tiene activos para devolver")
)

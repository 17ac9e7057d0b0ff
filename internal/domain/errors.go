package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrNegativeStock          = errors.New("el stock no puede quedar negativo")
	ErrConcurrencyConflict    = errors.New("conflicto de concurrencia, reintente la operación")
)

// ValidationError entrada mal formada: sin líneas, cantidad no positiva, referencia desconocida.
// Se rechaza antes de cualquier cambio de estado.
type ValidationError struct {
	Field  string
	Reason string
	// NotFound marca una referencia inexistente (producto, bodega, ubicación, proveedor).
	NotFound bool
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validación: " + e.Reason
	}
	return fmt.Sprintf("validación: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	if e.NotFound {
		return ErrNotFound
	}
	return ErrInvalidInput
}

// NewValidationError atajo para errores de validación de un campo.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NewUnknownReferenceError referencia a una entidad que no existe.
func NewUnknownReferenceError(field, id string) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf("%q no existe", id), NotFound: true}
}

// InvalidStateTransitionError la operación no es legal desde el estado actual del documento.
type InvalidStateTransitionError struct {
	DocumentID string
	From       string
	Action     string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("documento %s: no se puede %s desde el estado %s", e.DocumentID, e.Action, e.From)
}

func (e *InvalidStateTransitionError) Unwrap() error { return ErrInvalidStateTransition }

// InsufficientStockError un decremento dejaría el stock negativo (entregas y transferencias).
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	LocationID  string
	Available   int64
	Requested   int64
}

// Deficit cantidad faltante para cubrir lo solicitado.
func (e *InsufficientStockError) Deficit() int64 { return e.Requested - e.Available }

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s en bodega %s: disponible %d, requerido %d, faltan %d",
		e.ProductID, e.WarehouseID, e.Available, e.Requested, e.Deficit())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NegativeStockError apply_delta produciría una cantidad negativa sin permiso explícito.
type NegativeStockError struct {
	Key     string
	Current int64
	Delta   int64
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("stock %s: %d%+d quedaría negativo", e.Key, e.Current, e.Delta)
}

func (e *NegativeStockError) Unwrap() error { return ErrNegativeStock }

// ConcurrencyConflictError contención de lock o versión obsoleta; el llamador debe reintentar.
type ConcurrencyConflictError struct {
	Resource string
	Reason   string
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("conflicto de concurrencia en %s: %s", e.Resource, e.Reason)
}

func (e *ConcurrencyConflictError) Unwrap() error { return ErrConcurrencyConflict }

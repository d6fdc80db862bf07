package entity

import "time"

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeEntry = "entry"
	MovementTypeExit  = "exit"
)

// MaxMovementNoteLen longitud máxima de la nota libre de un movimiento.
const MaxMovementNoteLen = 500

// Movement es un registro append-only del libro de movimientos: no existe
// operación de actualización ni borrado individual (solo el cascade al borrar
// el producto). La suma de entradas menos salidas en orden de creación debe
// coincidir siempre con Product.Quantity.
type Movement struct {
	ID         int64
	ProductID  int64
	Type       string // entry | exit
	Quantity   int    // siempre >= 1
	OccurredAt time.Time
	Note       string
}

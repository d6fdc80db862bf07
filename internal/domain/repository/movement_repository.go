package repository

import "github.com/invorya/almacen-api/internal/domain/entity"

// MovementRepository puerto de persistencia para el libro de movimientos (append-only).
type MovementRepository interface {
	// Create persiste el movimiento y asigna su ID.
	Create(movement *entity.Movement) error
	// ListByProduct devuelve los movimientos de un producto ordenados por
	// occurred_at descendente, desempatando por id descendente.
	ListByProduct(productID int64) ([]*entity.Movement, error)
}

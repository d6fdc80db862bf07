package dto

import (
	"fmt"
	"time"

	"github.com/invorya/almacen-api/internal/domain/entity"
)

// CreateMovementRequest entrada para registrar un movimiento de stock.
// OccurredAt es opcional; si no viene se usa la hora actual.
type CreateMovementRequest struct {
	Type       string     `json:"type"` // entry | exit
	Quantity   int        `json:"quantity"`
	OccurredAt *time.Time `json:"occurred_at"`
	Note       string     `json:"note"`
}

// Validate valida tipo, cantidad y nota.
func (r CreateMovementRequest) Validate() error {
	if r.Type != entity.MovementTypeEntry && r.Type != entity.MovementTypeExit {
		return fmt.Errorf("type debe ser entry o exit")
	}
	if r.Quantity < 1 {
		return fmt.Errorf("quantity debe ser al menos 1")
	}
	if len(r.Note) > entity.MaxMovementNoteLen {
		return fmt.Errorf("note supera %d caracteres", entity.MaxMovementNoteLen)
	}
	return nil
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Quantity   int       `json:"quantity"`
	Note       string    `json:"note"`
}

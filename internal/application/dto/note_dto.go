package dto

import (
	"fmt"
	"time"

	"github.com/invorya/almacen-api/internal/domain/entity"
)

// CreateNoteRequest entrada para crear una nota.
type CreateNoteRequest struct {
	Content string `json:"content"`
}

// Validate valida el contenido.
func (r CreateNoteRequest) Validate() error {
	if l := len(r.Content); l < 1 || l > entity.MaxNoteContentLen {
		return fmt.Errorf("content debe tener entre 1 y %d caracteres", entity.MaxNoteContentLen)
	}
	return nil
}

// NoteResponse salida de una nota.
type NoteResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

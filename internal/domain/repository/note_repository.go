package repository

import "github.com/invorya/almacen-api/internal/domain/entity"

// NoteRepository puerto de persistencia para notas.
type NoteRepository interface {
	Create(note *entity.Note) error
	// List devuelve todas las notas, más recientes primero (id descendente).
	List() ([]*entity.Note, error)
}

package entity

import "time"

// MaxNoteContentLen longitud máxima del contenido de una nota.
const MaxNoteContentLen = 500

// Note nota de texto libre, independiente de productos.
type Note struct {
	ID        int64
	Content   string
	CreatedAt time.Time
}

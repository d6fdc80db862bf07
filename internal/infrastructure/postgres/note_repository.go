package postgres

import (
	"context"
	"fmt"

	"github.com/invorya/almacen-api/internal/domain/entity"
	"github.com/invorya/almacen-api/internal/domain/repository"
)

var _ repository.NoteRepository = (*NoteRepo)(nil)

// NoteRepo implementación del puerto NoteRepository sobre PostgreSQL.
type NoteRepo struct {
	q Querier
}

// NewNoteRepository construye el adaptador.
func NewNoteRepository(q Querier) *NoteRepo {
	return &NoteRepo{q: q}
}

// Create persiste una nota y asigna el ID generado.
func (r *NoteRepo) Create(note *entity.Note) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO notes (content, created_at) VALUES ($1, $2) RETURNING id`,
		note.Content, note.CreatedAt,
	).Scan(&note.ID)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// List devuelve todas las notas, más recientes primero.
func (r *NoteRepo) List() ([]*entity.Note, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, content, created_at FROM notes ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Note
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

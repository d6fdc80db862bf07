package usecase

import (
	"fmt"
	"time"

	"github.com/invorya/almacen-api/internal/application/dto"
	"github.com/invorya/almacen-api/internal/domain"
	"github.com/invorya/almacen-api/internal/domain/entity"
	"github.com/invorya/almacen-api/internal/domain/repository"
)

// NoteUseCase casos de uso de notas de texto libre.
type NoteUseCase struct {
	repo repository.NoteRepository
}

// NewNoteUseCase construye el caso de uso.
func NewNoteUseCase(repo repository.NoteRepository) *NoteUseCase {
	return &NoteUseCase{repo: repo}
}

// Create valida y crea una nota.
func (uc *NoteUseCase) Create(in dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	note := &entity.Note{Content: in.Content, CreatedAt: time.Now().UTC()}
	if err := uc.repo.Create(note); err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// List devuelve todas las notas, más recientes primero.
func (uc *NoteUseCase) List() ([]dto.NoteResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.NoteResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *toNoteResponse(n))
	}
	return items, nil
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{ID: n.ID, Content: n.Content, CreatedAt: n.CreatedAt}
}

package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/almacen-api/internal/application/dto"
	"github.com/invorya/almacen-api/internal/application/usecase"
	"github.com/invorya/almacen-api/internal/domain"
	"github.com/invorya/almacen-api/internal/domain/entity"
)

type fakeNoteRepo struct {
	seq   int64
	notes []*entity.Note
}

func (f *fakeNoteRepo) Create(n *entity.Note) error {
	f.seq++
	n.ID = f.seq
	clone := *n
	f.notes = append(f.notes, &clone)
	return nil
}

func (f *fakeNoteRepo) List() ([]*entity.Note, error) {
	// Más recientes primero, como el repositorio real (id DESC).
	list := make([]*entity.Note, 0, len(f.notes))
	for i := len(f.notes) - 1; i >= 0; i-- {
		clone := *f.notes[i]
		list = append(list, &clone)
	}
	return list, nil
}

func TestNoteCreate_YListaMasRecientesPrimero(t *testing.T) {
	uc := usecase.NewNoteUseCase(&fakeNoteRepo{})

	first, err := uc.Create(dto.CreateNoteRequest{Content: "revisar proveedor ACME"})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	_, err = uc.Create(dto.CreateNoteRequest{Content: "pedir tornillos"})
	require.NoError(t, err)

	list, err := uc.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "pedir tornillos", list[0].Content)
	assert.Equal(t, "revisar proveedor ACME", list[1].Content)
}

func TestNoteCreate_ContenidoInvalido(t *testing.T) {
	uc := usecase.NewNoteUseCase(&fakeNoteRepo{})

	_, err := uc.Create(dto.CreateNoteRequest{Content: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateNoteRequest{Content: strings.Repeat("x", entity.MaxNoteContentLen+1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

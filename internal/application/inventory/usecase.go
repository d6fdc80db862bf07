package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/invorya/almacen-api/internal/application/dto"
	"github.com/invorya/almacen-api/internal/domain"
	"github.com/invorya/almacen-api/internal/domain/entity"
	"github.com/invorya/almacen-api/internal/domain/repository"
)

// MovementUseCase registra movimientos del libro de stock de forma transaccional
// (entry/exit) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type MovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Register inicia una transacción, bloquea la fila del producto, aplica el
// movimiento y persiste las dos escrituras juntas. Una salida que dejaría el
// stock negativo falla con domain.ErrInsufficientStock sin mutar nada: ni la
// fila del producto ni el libro de movimientos.
func (uc *MovementUseCase) Register(ctx context.Context, productID int64, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	occurredAt := time.Now().UTC()
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}

	var created *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		product, err := productRepo.GetByIDForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newQuantity := product.Quantity
		switch in.Type {
		case entity.MovementTypeEntry:
			newQuantity += in.Quantity
		case entity.MovementTypeExit:
			newQuantity -= in.Quantity
			if newQuantity < 0 {
				return domain.ErrInsufficientStock
			}
		}

		if err := productRepo.UpdateQuantity(productID, newQuantity); err != nil {
			return err
		}
		movement := &entity.Movement{
			ProductID:  productID,
			Type:       in.Type,
			Quantity:   in.Quantity,
			OccurredAt: occurredAt,
			Note:       in.Note,
		}
		if err := movementRepo.Create(movement); err != nil {
			return err
		}
		created = movement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(created), nil
}

// ListByProduct devuelve el historial de un producto, más reciente primero
// (occurred_at desc, id desc). Falla con ErrNotFound si el producto no existe.
func (uc *MovementUseCase) ListByProduct(ctx context.Context, productID int64) ([]dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movementRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return items, nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		OccurredAt: m.OccurredAt,
		Quantity:   m.Quantity,
		Note:       m.Note,
	}
}

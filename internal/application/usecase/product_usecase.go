package usecase

import (
	"fmt"
	"time"

	"github.com/invorya/almacen-api/internal/application/dto"
	"github.com/invorya/almacen-api/internal/domain"
	"github.com/invorya/almacen-api/internal/domain/entity"
	"github.com/invorya/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo de productos.
// Quantity solo se modifica aquí en creación, actualización explícita e importación;
// el flujo normal de stock pasa por el libro de movimientos (inventory).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create valida y crea un producto. La unicidad del SKU la decide la capa de
// almacenamiento (constraint único), que devuelve domain.ErrDuplicate.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	product := &entity.Product{
		SKU:       in.SKU,
		Name:      in.Name,
		Category:  in.Category,
		Supplier:  in.Supplier,
		Quantity:  in.Quantity,
		MinStock:  in.MinStock,
		Cost:      in.Cost,
		Price:     in.Price,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return ToProductResponse(product), nil
}

// List lista productos con filtros y orden (default: name ascendente).
func (uc *ProductUseCase) List(filter repository.ProductFilter) ([]dto.ProductResponse, error) {
	normalizeOrder(&filter, repository.OrderByName)
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return items, nil
}

// LowStock lista los productos en o por debajo de su umbral mínimo
// (default: quantity ascendente).
func (uc *ProductUseCase) LowStock(orderBy, orderDir string) ([]dto.ProductResponse, error) {
	filter := repository.ProductFilter{LowStock: true, OrderBy: orderBy, OrderDir: orderDir}
	normalizeOrder(&filter, repository.OrderByQuantity)
	list, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return items, nil
}

// Update actualización parcial: solo los campos presentes en el request
// sobrescriben valores. Devuelve nil, nil si el producto no existe.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// Delete elimina un producto; el cascade de la BD borra sus movimientos.
// Devuelve domain.ErrNotFound si el ID no existe.
func (uc *ProductUseCase) Delete(id int64) error {
	deleted, err := uc.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func normalizeOrder(f *repository.ProductFilter, defaultBy string) {
	if f.OrderBy != repository.OrderByName && f.OrderBy != repository.OrderByQuantity {
		f.OrderBy = defaultBy
	}
	if f.OrderDir != repository.OrderAsc && f.OrderDir != repository.OrderDesc {
		f.OrderDir = repository.OrderAsc
	}
}

// ToProductResponse arma la respuesta con el flag derivado low_stock.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Category:  p.Category,
		Supplier:  p.Supplier,
		Quantity:  p.Quantity,
		MinStock:  p.MinStock,
		LowStock:  p.LowStock(),
		Cost:      p.Cost,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
	}
}

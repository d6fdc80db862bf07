package repository

import "github.com/invorya/almacen-api/internal/domain/entity"

// Valores de ordenamiento aceptados por ProductFilter.
const (
	OrderByName     = "name"
	OrderByQuantity = "quantity"
	OrderAsc        = "asc"
	OrderDesc       = "desc"
)

// ProductFilter filtros del listado de productos. Campo vacío = sin restricción;
// los filtros presentes se componen con AND.
type ProductFilter struct {
	Search   string // subcadena sobre name O sku, sin distinguir mayúsculas
	Category string // coincidencia exacta
	Supplier string // coincidencia exacta
	LowStock bool   // solo productos con quantity <= min_stock
	OrderBy  string // name | quantity (default: name)
	OrderDir string // asc | desc (default: asc)
}

// ProductRepository puerto de persistencia para productos.
// Las lecturas devuelven nil, nil cuando el producto no existe.
type ProductRepository interface {
	// Create persiste el producto y asigna su ID. Devuelve domain.ErrDuplicate si el SKU ya existe.
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE); usar solo dentro de una transacción.
	GetByIDForUpdate(id int64) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(filter ProductFilter) ([]*entity.Product, error)
	// Update sobrescribe toda la fila. Devuelve domain.ErrDuplicate si el nuevo SKU ya existe.
	Update(product *entity.Product) error
	UpdateQuantity(id int64, quantity int) error
	// Delete elimina el producto y, por cascade, sus movimientos. Devuelve false si no existía.
	Delete(id int64) (bool, error)
}

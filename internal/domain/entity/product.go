package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Límites de campos del producto. Se aplican igual en el CRUD y en la importación CSV.
const (
	MaxSKULen      = 64
	MaxNameLen     = 200
	MaxCategoryLen = 100
	MaxSupplierLen = 100
)

// Product representa un producto del inventario (bodega única).
// Quantity se mantiene vía movimientos (entry/exit) y nunca puede ser negativa;
// Cost y Price son decimales fijos con 2 decimales.
type Product struct {
	ID        int64
	SKU       string // código único, sensible a mayúsculas
	Name      string
	Category  string
	Supplier  string
	Quantity  int
	MinStock  int
	Cost      decimal.Decimal
	Price     decimal.Decimal
	CreatedAt time.Time
}

// LowStock indica si el producto está en o por debajo de su umbral mínimo.
// Es un campo derivado: se calcula en lectura, nunca se persiste.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.MinStock
}

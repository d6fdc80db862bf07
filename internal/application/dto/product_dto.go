package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/almacen-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
// Los mismos límites de campos aplican a la importación CSV (ver importer).
type CreateProductRequest struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Category string          `json:"category"`
	Supplier string          `json:"supplier"`
	Quantity int             `json:"quantity"`
	MinStock int             `json:"min_stock"`
	Cost     decimal.Decimal `json:"cost"`
	Price    decimal.Decimal `json:"price"`
}

// Validate aplica las restricciones de campos del catálogo.
func (r CreateProductRequest) Validate() error {
	if l := len(r.SKU); l < 1 || l > entity.MaxSKULen {
		return fmt.Errorf("sku debe tener entre 1 y %d caracteres", entity.MaxSKULen)
	}
	if l := len(r.Name); l < 1 || l > entity.MaxNameLen {
		return fmt.Errorf("name debe tener entre 1 y %d caracteres", entity.MaxNameLen)
	}
	if len(r.Category) > entity.MaxCategoryLen {
		return fmt.Errorf("category supera %d caracteres", entity.MaxCategoryLen)
	}
	if len(r.Supplier) > entity.MaxSupplierLen {
		return fmt.Errorf("supplier supera %d caracteres", entity.MaxSupplierLen)
	}
	if r.Quantity < 0 {
		return fmt.Errorf("quantity no puede ser negativa")
	}
	if r.MinStock < 0 {
		return fmt.Errorf("min_stock no puede ser negativo")
	}
	if err := validateMoney("cost", r.Cost); err != nil {
		return err
	}
	return validateMoney("price", r.Price)
}

// UpdateProductRequest actualización parcial: solo los campos presentes en el
// body sobrescriben valores; un puntero nil significa "no tocar".
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	SKU      *string          `json:"sku"`
	Category *string          `json:"category"`
	Supplier *string          `json:"supplier"`
	Quantity *int             `json:"quantity"`
	MinStock *int             `json:"min_stock"`
	Cost     *decimal.Decimal `json:"cost"`
	Price    *decimal.Decimal `json:"price"`
}

// Validate valida únicamente los campos presentes.
func (r UpdateProductRequest) Validate() error {
	if r.SKU != nil {
		if l := len(*r.SKU); l < 1 || l > entity.MaxSKULen {
			return fmt.Errorf("sku debe tener entre 1 y %d caracteres", entity.MaxSKULen)
		}
	}
	if r.Name != nil {
		if l := len(*r.Name); l < 1 || l > entity.MaxNameLen {
			return fmt.Errorf("name debe tener entre 1 y %d caracteres", entity.MaxNameLen)
		}
	}
	if r.Category != nil && len(*r.Category) > entity.MaxCategoryLen {
		return fmt.Errorf("category supera %d caracteres", entity.MaxCategoryLen)
	}
	if r.Supplier != nil && len(*r.Supplier) > entity.MaxSupplierLen {
		return fmt.Errorf("supplier supera %d caracteres", entity.MaxSupplierLen)
	}
	if r.Quantity != nil && *r.Quantity < 0 {
		return fmt.Errorf("quantity no puede ser negativa")
	}
	if r.MinStock != nil && *r.MinStock < 0 {
		return fmt.Errorf("min_stock no puede ser negativo")
	}
	if r.Cost != nil {
		if err := validateMoney("cost", *r.Cost); err != nil {
			return err
		}
	}
	if r.Price != nil {
		if err := validateMoney("price", *r.Price); err != nil {
			return err
		}
	}
	return nil
}

// validateMoney exige decimales no negativos con a lo sumo 2 decimales significativos.
func validateMoney(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%s no puede ser negativo", field)
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return fmt.Errorf("%s admite máximo 2 decimales", field)
	}
	return nil
}

// ProductResponse salida de un producto. LowStock es derivado (quantity <= min_stock).
type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Category  string          `json:"category"`
	Supplier  string          `json:"supplier"`
	Quantity  int             `json:"quantity"`
	MinStock  int             `json:"min_stock"`
	LowStock  bool            `json:"low_stock"`
	Cost      decimal.Decimal `json:"cost"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

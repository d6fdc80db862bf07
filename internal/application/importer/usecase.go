// Package importer implementa la reconciliación masiva de productos vía CSV:
// clasifica cada fila contra el catálogo (create/update/skip/invalid) y, en modo
// apply, escribe los cambios fila a fila. Una fila que falla nunca aborta el
// lote; solo la validación de cabeceras corta la operación completa.
package importer

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/invorya/almacen-api/internal/application/dto"
	"github.com/invorya/almacen-api/internal/domain"
	"github.com/invorya/almacen-api/internal/domain/entity"
	"github.com/invorya/almacen-api/internal/domain/repository"
)

// UseCase motor de reconciliación CSV sobre el catálogo.
type UseCase struct {
	repo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ProductRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Import procesa el CSV en orden estricto. Con apply=false solo clasifica
// (preview); con apply=true cada fila create/update se escribe antes de evaluar
// la siguiente, así una fila posterior ve el producto recién creado por una
// anterior. Las líneas son 1-based contando la cabecera como línea 1.
func (uc *UseCase) Import(r io.Reader, mode string, apply bool) (*dto.ImportResult, error) {
	switch mode {
	case dto.ImportModeCreate, dto.ImportModeUpdate, dto.ImportModeUpsert:
	default:
		return nil, fmt.Errorf("%w: mode debe ser create, update o upsert", domain.ErrInvalidInput)
	}

	reader := newCSVReader(r)
	headers, index, err := readHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	result := &dto.ImportResult{
		Mode:    mode,
		Applied: apply,
		Headers: headers,
		Rows:    []dto.RowResult{},
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Fila ilegible a nivel CSV: cuenta como invalid y se sigue con la próxima.
			result.Rows = append(result.Rows, dto.RowResult{
				Line:   line,
				Action: dto.RowActionInvalid,
				Errors: []dto.RowError{{Message: fmt.Sprintf("fila ilegible: %v", err)}},
			})
			result.Summary.Invalid++
			continue
		}
		result.Rows = append(result.Rows, uc.processRow(line, record, index, mode, apply, &result.Summary))
	}

	return result, nil
}

// processRow clasifica una fila y, si corresponde, aplica la escritura.
func (uc *UseCase) processRow(
	line int,
	record []string,
	index map[string]int,
	mode string,
	apply bool,
	summary *dto.ImportSummary,
) dto.RowResult {
	res := dto.RowResult{Line: line}

	sku := cellValue(record, index, "sku")
	if sku == "" {
		res.Action = dto.RowActionInvalid
		res.Errors = append(res.Errors, dto.RowError{Field: "sku", Message: "sku vacío"})
		summary.Invalid++
		return res
	}
	res.SKU = sku

	req, err := coerceRow(record, index)
	if err != nil {
		res.Action = dto.RowActionInvalid
		res.Errors = append(res.Errors, dto.RowError{Message: err.Error()})
		summary.Invalid++
		return res
	}

	existing, err := uc.repo.GetBySKU(sku)
	if err != nil {
		res.Action = dto.RowActionInvalid
		res.Errors = append(res.Errors, dto.RowError{Message: fmt.Sprintf("consulta de sku: %v", err)})
		summary.Invalid++
		return res
	}

	switch mode {
	case dto.ImportModeCreate:
		if existing != nil {
			res.Action = dto.RowActionSkip
			summary.Skip++
			res.Errors = append(res.Errors, dto.RowError{Field: "sku", Message: "sku ya existe"})
		} else {
			res.Action = dto.RowActionCreate
		}
	case dto.ImportModeUpdate:
		if existing == nil {
			res.Action = dto.RowActionSkip
			summary.Skip++
			res.Errors = append(res.Errors, dto.RowError{Field: "sku", Message: "sku no encontrado"})
		} else {
			res.Action = dto.RowActionUpdate
		}
	case dto.ImportModeUpsert:
		if existing != nil {
			res.Action = dto.RowActionUpdate
		} else {
			res.Action = dto.RowActionCreate
		}
	}

	// Una fila skip con error de sku queda además como invalid; el doble conteo
	// skip+invalid es el comportamiento documentado de los modos create/update.
	if len(res.Errors) > 0 {
		res.Action = dto.RowActionInvalid
		summary.Invalid++
		return res
	}

	switch res.Action {
	case dto.RowActionCreate:
		summary.Create++
	case dto.RowActionUpdate:
		summary.Update++
	}
	if !apply {
		return res
	}

	var writeErr error
	switch res.Action {
	case dto.RowActionCreate:
		writeErr = uc.repo.Create(&entity.Product{
			SKU:       req.SKU,
			Name:      req.Name,
			Category:  req.Category,
			Supplier:  req.Supplier,
			Quantity:  req.Quantity,
			MinStock:  req.MinStock,
			Cost:      req.Cost,
			Price:     req.Price,
			CreatedAt: time.Now().UTC(),
		})
	case dto.RowActionUpdate:
		// La importación sobrescribe todos los campos coercionados; no hay
		// actualización parcial en este camino.
		existing.Name = req.Name
		existing.Category = req.Category
		existing.Supplier = req.Supplier
		existing.Quantity = req.Quantity
		existing.MinStock = req.MinStock
		existing.Cost = req.Cost
		existing.Price = req.Price
		writeErr = uc.repo.Update(existing)
	}
	if writeErr != nil {
		// Carrera con otro escritor u otra falla de escritura: la fila pasa a
		// invalid, se corrigen los contadores y el lote continúa.
		switch res.Action {
		case dto.RowActionCreate:
			summary.Create--
		case dto.RowActionUpdate:
			summary.Update--
		}
		summary.Invalid++
		if errors.Is(writeErr, domain.ErrDuplicate) {
			res.Errors = append(res.Errors, dto.RowError{Field: "sku", Message: "sku ya existe"})
		} else {
			res.Errors = append(res.Errors, dto.RowError{Message: fmt.Sprintf("escritura fallida: %v", writeErr)})
		}
		res.Action = dto.RowActionInvalid
	}
	return res
}

// Export escribe todos los productos del catálogo en CSV (orden por nombre,
// el mismo default del listado).
func (uc *UseCase) Export(w io.Writer) error {
	products, err := uc.repo.List(repository.ProductFilter{
		OrderBy:  repository.OrderByName,
		OrderDir: repository.OrderAsc,
	})
	if err != nil {
		return err
	}
	return WriteProductsCSV(w, products)
}

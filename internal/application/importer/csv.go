package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/invorya/almacen-api/internal/application/dto"
	"github.com/invorya/almacen-api/internal/domain/entity"
)

// RequiredHeaders cabeceras obligatorias del CSV de productos, en el orden en
// que las escribe la exportación. La importación exige que todas estén
// presentes (el orden no importa); columnas extra se ignoran.
var RequiredHeaders = []string{"sku", "name", "category", "supplier", "quantity", "cost", "price", "min_stock"}

// utf8BOM marca de orden de bytes que antepone la exportación para que Excel
// reconozca UTF-8.
const utf8BOM = "\xef\xbb\xbf"

// newCSVReader arma el lector CSV quitando el BOM UTF-8 si viene en el archivo.
func newCSVReader(r io.Reader) *csv.Reader {
	decoder := unicode.UTF8.NewDecoder()
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(decoder)))
	// Filas con menos celdas que cabeceras se rellenan con vacío al mapear.
	cr.FieldsPerRecord = -1
	return cr
}

// readHeader lee y valida la fila de cabeceras. Devuelve las cabeceras vistas
// y un índice columna->posición. Si falta alguna obligatoria, la operación
// completa falla sin procesar ninguna fila.
func readHeader(cr *csv.Reader) ([]string, map[string]int, error) {
	record, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("no se pudo leer la cabecera: %w", err)
	}
	headers := make([]string, 0, len(record))
	index := make(map[string]int, len(record))
	for i, h := range record {
		h = strings.TrimSpace(h)
		headers = append(headers, h)
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}
	var missing []string
	for _, required := range RequiredHeaders {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("faltan cabeceras obligatorias: %s", strings.Join(missing, ", "))
	}
	return headers, index, nil
}

// cellValue devuelve el valor de la columna ya recortado; vacío si la fila es corta.
func cellValue(record []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// coerceRow convierte una fila ya recortada en un request tipado aplicando las
// mismas restricciones de campos que el alta de producto del catálogo.
func coerceRow(record []string, index map[string]int) (dto.CreateProductRequest, error) {
	var req dto.CreateProductRequest
	req.SKU = cellValue(record, index, "sku")
	req.Name = cellValue(record, index, "name")
	req.Category = cellValue(record, index, "category")
	req.Supplier = cellValue(record, index, "supplier")

	quantity, err := strconv.Atoi(cellValue(record, index, "quantity"))
	if err != nil {
		return req, fmt.Errorf("quantity inválida: %q", cellValue(record, index, "quantity"))
	}
	req.Quantity = quantity

	minStock, err := strconv.Atoi(cellValue(record, index, "min_stock"))
	if err != nil {
		return req, fmt.Errorf("min_stock inválido: %q", cellValue(record, index, "min_stock"))
	}
	req.MinStock = minStock

	cost, err := decimal.NewFromString(cellValue(record, index, "cost"))
	if err != nil {
		return req, fmt.Errorf("cost inválido: %q", cellValue(record, index, "cost"))
	}
	req.Cost = cost

	price, err := decimal.NewFromString(cellValue(record, index, "price"))
	if err != nil {
		return req, fmt.Errorf("price inválido: %q", cellValue(record, index, "price"))
	}
	req.Price = price

	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// WriteProductsCSV serializa productos al formato de intercambio: BOM UTF-8,
// fila de cabeceras fija y decimales con 2 posiciones.
func WriteProductsCSV(w io.Writer, products []*entity.Product) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(RequiredHeaders); err != nil {
		return err
	}
	for _, p := range products {
		record := []string{
			p.SKU,
			p.Name,
			p.Category,
			p.Supplier,
			strconv.Itoa(p.Quantity),
			p.Cost.StringFixed(2),
			p.Price.StringFixed(2),
			strconv.Itoa(p.MinStock),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

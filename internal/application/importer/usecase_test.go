package importer_test

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/almacen-api/internal/application/dto"
	"github.com/invorya/almacen-api/internal/application/importer"
	"github.com/invorya/almacen-api/internal/domain"
	"github.com/invorya/almacen-api/internal/domain/entity"
	"github.com/invorya/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de productos (en memoria, indexado por SKU)
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	seq      int64
	products map[string]*entity.Product
	failSKUs map[string]error // fallas de escritura inyectadas por SKU
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[string]*entity.Product),
		failSKUs: make(map[string]error),
	}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	if err, ok := f.failSKUs[p.SKU]; ok {
		return err
	}
	if _, ok := f.products[p.SKU]; ok {
		return domain.ErrDuplicate
	}
	f.seq++
	p.ID = f.seq
	clone := *p
	f.products[p.SKU] = &clone
	return nil
}

func (f *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByIDForUpdate(id int64) (*entity.Product, error) {
	return f.GetByID(id)
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	p, ok := f.products[sku]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range f.products {
		clone := *p
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	if err, ok := f.failSKUs[p.SKU]; ok {
		return err
	}
	for sku, existing := range f.products {
		if existing.ID == p.ID {
			delete(f.products, sku)
			clone := *p
			f.products[p.SKU] = &clone
			return nil
		}
	}
	return nil
}

func (f *fakeProductRepo) UpdateQuantity(id int64, quantity int) error {
	for _, p := range f.products {
		if p.ID == id {
			p.Quantity = quantity
			return nil
		}
	}
	return nil
}

func (f *fakeProductRepo) Delete(id int64) (bool, error) {
	for sku, p := range f.products {
		if p.ID == id {
			delete(f.products, sku)
			return true, nil
		}
	}
	return false, nil
}

// seed inserta un producto directo en el fake.
func (f *fakeProductRepo) seed(sku, name string, quantity int) *entity.Product {
	f.seq++
	p := &entity.Product{
		ID: f.seq, SKU: sku, Name: name, Quantity: quantity,
		Cost: decimal.New(100, -2), Price: decimal.New(200, -2),
	}
	f.products[sku] = p
	return p
}

const csvHeader = "sku,name,category,supplier,quantity,cost,price,min_stock\n"

// ──────────────────────────────────────────────────────────────────────────────
// Validación de cabeceras y filas
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_ModoInvalido_RetornaError(t *testing.T) {
	uc := importer.NewUseCase(newFakeProductRepo())
	_, err := uc.Import(strings.NewReader(csvHeader), "merge", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_CabeceraIncompleta_AbortaTodo(t *testing.T) {
	uc := importer.NewUseCase(newFakeProductRepo())
	csv := "sku,name,quantity\nA-1,Tornillo,5\n"
	_, err := uc.Import(strings.NewReader(csv), dto.ImportModeCreate, false)
	require.Error(t, err, "cabeceras faltantes deben abortar la operación completa")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "faltan cabeceras obligatorias")
}

func TestImport_CabeceraConBOM_SeAcepta(t *testing.T) {
	uc := importer.NewUseCase(newFakeProductRepo())
	csv := "\xef\xbb\xbf" + csvHeader + "A-1,Tornillo,ferretería,ACME,5,1.50,3.00,2\n"
	out, err := uc.Import(strings.NewReader(csv), dto.ImportModeCreate, false)
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, dto.RowActionCreate, out.Rows[0].Action)
	assert.Equal(t, "sku", out.Headers[0], "el BOM no debe quedar pegado a la primera cabecera")
}

func TestImport_SkuVacio_FilaInvalida(t *testing.T) {
	uc := importer.NewUseCase(newFakeProductRepo())
	csv := csvHeader + ",Tornillo,ferretería,ACME,5,1.50,3.00,2\n"
	out, err := uc.Import(strings.NewReader(csv), dto.ImportModeCreate, false)
	require.NoError(t, err)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, dto.RowActionInvalid, out.Rows[0].Action)
	require.Len(t, out.Rows[0].Errors, 1)
	assert.Equal(t, "sku", out.Rows[0].Errors[0].Field)
	assert.Equal(t, 1, out.Summary.Invalid)
}

func TestImport_CoercionFallida_FilaInvalidaYContinua(t *testing.T) {
	uc := importer.NewUseCase(newFakeProductRepo())
	csv := csvHeader +
		"A-1,Tornillo,ferretería,ACME,cinco,1.50,3.00,2\n" +
		"A-2,Tuerca,ferretería,ACME,8,0.80,1.60,3\n"
	out, err := uc.Import(strings.NewReader(csv), dto.ImportModeCreate, false)
	require.NoError(t, err)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, dto.RowActionInvalid, out.Rows[0].Action, "quantity no numérica invalida la fila")
	assert.Equal(t, dto.RowActionCreate, out.Rows[1].Action, "una fila inválida no aborta el lote")
	assert.Equal(t, 1, out.Summary.Invalid)
	assert.Equal(t, 1, out.Summary.Create)
}

func TestImport_NumeracionDeLineas_CuentaCabeceraComoLinea1(t *testing.T) {
	uc := importer.NewUseCase(newFakeProductRepo())
	csv := csvHeader + "A-1,Tornillo,f,ACME,5,1.50,3.00,2\nA-2,Tuerca,f,ACME,8,0.80,1.60,3\n"
	out, err := uc.Import(strings.NewReader(csv), dto.ImportModeCreate, false)
	require.NoError(t, err)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, 2, out.Rows[0].Line)
	assert.Equal(t, 3, out.Rows[1].Line)
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo create: doble conteo skip+invalid sobre SKU existente
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_Create_SkuExistente_CuentaSkipEInvalid(t *testing.T) {
	repo := newFakeProductRepo()
	repo.seed("A-1", "Tornillo", 5)
	uc := importer.NewUseCase(repo)

	csv := csvHeader +
		"A-1,Tornillo v2,f,ACME,9,1.50,3.00,2\n" +
		"A-2,Tuerca,f,ACME,8,0.80,1.60,3\n"
	out, err := uc.Import(strings.NewReader(csv), dto.ImportModeCreate, false)
	require.NoError(t, err)

	require.Len(t, out.Rows, 2)
	assert.Equal(t, dto.RowActionInvalid, out.Rows[0].Action, "la fila termina clasificada como invalid")
	require.Len(t, out.Rows[0].Errors, 1)
	assert.Equal(t, "sku", out.Rows[0].Errors[0].Field)
	assert.Equal(t, "sku ya existe", out.Rows[0].Errors[0].Message)

	// El SKU duplicado cuenta en skip y también en invalid.
	assert.Equal(t, 1, out.Summary.Skip)
	assert.Equal(t, 1, out.Summary.Invalid)
	assert.Equal(t, 1, out.Summary.Create)
	assert.Equal(t, 0, out.Summary.Update)
}

func TestImport_Create_Preview_NoEscribe(t *testing.T) {
	repo := newFakeProductRepo()
	uc := importer.NewUseCase(repo)
	csv := csvHeader + "A-1,Tornillo,f,ACME,5,1.50,3.00,2\n"
	out, err := uc.Import(strings.NewReader(csv), dto.ImportModeCreate, false)
	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.Equal(t, 1, out.Summary.Create)
	assert.Empty(t, repo.products, "preview no debe escribir nada")
}

func TestImport_Create_Apply_EscribeYFilaPosteriorVeLaAnterior(t *testing.T) {
	repo := newFakeProductRepo()
	uc := importer.NewUseCase(repo)

	// El mismo SKU dos veces: la primera crea, la segunda ya lo encuentra.
	csv := csvHeader +
		"A-1,Tornillo,f,ACME,5,1.50,3.00,2\n" +
		"A-1,Tornillo bis,f,ACME,9,1.50,3.00,2\n"
	out, err := uc.Import(strings.NewReader(csv), dto.ImportModeCreate, true)
	require.NoError(t, err)

	assert.Equal(t, dto.RowActionCreate, out.Rows[0].Action)
	assert.Equal(t, dto.RowActionInvalid, out.Rows[1].Action,
		"la segunda fila debe ver el producto creado por la primera")
	assert.Equal(t, 1, out.Summary.Create)
	assert.Equal(t, 1, out.Summary.Skip)
	assert.Equal(t, 1, out.Summary.Invalid)

	p, err := repo.GetBySKU("A-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Tornillo", p.Name, "la segunda fila no debe sobrescribir")
}

func TestImport_Create_Apply_ConflictoDeEscritura_ReclasificaYContinua(t *testing.T) {
	repo := newFakeProductRepo()
	repo.failSKUs["A-1"] = domain.ErrDuplicate // carrera simulada con otro escritor
	uc := importer.NewUseCase(repo)

	csv := csvHeader +
		"A-1,Tornillo,f,ACME,5,1.50,3.00,2\n" +
		"A-2,Tuerca,f,ACME,8,0.80,1.60,3\n"
	out, err := uc.Import(strings.NewReader(csv), dto.ImportModeCreate, true)
	require.NoError(t, err)

	assert.Equal(t, dto.RowActionInvalid, out.Rows[0].Action)
	require.Len(t, out.Rows[0].Errors, 1)
	assert.Equal(t, "sku ya existe", out.Rows[0].Errors[0].Message)
	assert.Equal(t, dto.RowActionCreate, out.Rows[1].Action, "el lote continúa tras la falla")

	// El contador tentativo de create se corrige al fallar la escritura.
	assert.Equal(t, 1, out.Summary.Create)
	assert.Equal(t, 1, out.Summary.Invalid)
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo update
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_Update_SkuInexistente_CuentaSkipEInvalid(t *testing.T) {
	uc := importer.NewUseCase(newFakeProductRepo())
	csv := csvHeader + "A-1,Tornillo,f,ACME,5,1.50,3.00,2\n"
	out, err := uc.Import(strings.NewReader(csv), dto.ImportModeUpdate, false)
	require.NoError(t, err)

	assert.Equal(t, dto.RowActionInvalid, out.Rows[0].Action)
	assert.Equal(t, "sku no encontrado", out.Rows[0].Errors[0].Message)
	assert.Equal(t, 1, out.Summary.Skip)
	assert.Equal(t, 1, out.Summary.Invalid)
	assert.Equal(t, 0, out.Summary.Update)
}

func TestImport_Update_Apply_SobrescribeTodosLosCampos(t *testing.T) {
	repo := newFakeProductRepo()
	seeded := repo.seed("A-1", "Tornillo", 5)
	uc := importer.NewUseCase(repo)

	csv := csvHeader + "A-1,Tornillo galvanizado,ferretería,ACME,12,1.75,3.50,4\n"
	out, err := uc.Import(strings.NewReader(csv), dto.ImportModeUpdate, true)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Summary.Update)

	p, err := repo.GetBySKU("A-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, seeded.ID, p.ID, "actualizar no cambia el ID")
	assert.Equal(t, "Tornillo galvanizado", p.Name)
	assert.Equal(t, 12, p.Quantity)
	assert.Equal(t, 4, p.MinStock)
	assert.True(t, p.Cost.Equal(decimal.RequireFromString("1.75")))
	assert.True(t, p.Price.Equal(decimal.RequireFromString("3.50")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo upsert
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_Upsert_MezclaCreateYUpdate(t *testing.T) {
	repo := newFakeProductRepo()
	repo.seed("A-1", "Tornillo", 5)
	uc := importer.NewUseCase(repo)

	csv := csvHeader +
		"A-1,Tornillo v2,f,ACME,9,1.50,3.00,2\n" +
		"A-2,Tuerca,f,ACME,8,0.80,1.60,3\n"
	out, err := uc.Import(strings.NewReader(csv), dto.ImportModeUpsert, true)
	require.NoError(t, err)

	assert.Equal(t, dto.RowActionUpdate, out.Rows[0].Action)
	assert.Equal(t, dto.RowActionCreate, out.Rows[1].Action)
	assert.Equal(t, 1, out.Summary.Create)
	assert.Equal(t, 1, out.Summary.Update)
	assert.Equal(t, 0, out.Summary.Skip)
	assert.Equal(t, 0, out.Summary.Invalid)
}

func TestImport_Upsert_SegundaPasadaTodoUpdate(t *testing.T) {
	repo := newFakeProductRepo()
	uc := importer.NewUseCase(repo)
	csv := csvHeader +
		"A-1,Tornillo,f,ACME,5,1.50,3.00,2\n" +
		"A-2,Tuerca,f,ACME,8,0.80,1.60,3\n"

	first, err := uc.Import(strings.NewReader(csv), dto.ImportModeUpsert, true)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Summary.Create)

	second, err := uc.Import(strings.NewReader(csv), dto.ImportModeUpsert, true)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Summary.Create)
	assert.Equal(t, 2, second.Summary.Update)
	assert.Len(t, repo.products, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación CSV
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_FormatoBOMCabeceraYDecimales(t *testing.T) {
	repo := newFakeProductRepo()
	repo.seed("B-2", "Tuerca", 8)
	repo.seed("A-1", "Tornillo", 5)
	uc := importer.NewUseCase(repo)

	var buf bytes.Buffer
	require.NoError(t, uc.Export(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xef\xbb\xbf"), "el CSV exportado lleva BOM UTF-8")

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\xef\xbb\xbf")), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "sku,name,category,supplier,quantity,cost,price,min_stock", lines[0])
	// Orden por nombre ascendente y decimales con 2 posiciones.
	assert.Contains(t, lines[1], "A-1,Tornillo")
	assert.Contains(t, lines[1], "1.00,2.00")
	assert.Contains(t, lines[2], "B-2,Tuerca")
}

func TestExport_RoundTripConImport(t *testing.T) {
	repo := newFakeProductRepo()
	repo.seed("A-1", "Tornillo", 5)
	uc := importer.NewUseCase(repo)

	var buf bytes.Buffer
	require.NoError(t, uc.Export(&buf))

	// Lo exportado debe poder volver a entrar sin filas inválidas.
	other := newFakeProductRepo()
	out, err := importer.NewUseCase(other).Import(&buf, dto.ImportModeUpsert, true)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Summary.Invalid)
	assert.Equal(t, 1, out.Summary.Create)
}

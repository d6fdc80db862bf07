package dto

// Modos de reconciliación de la importación CSV.
const (
	ImportModeCreate = "create"
	ImportModeUpdate = "update"
	ImportModeUpsert = "upsert"
)

// Clasificaciones por fila de la importación.
const (
	RowActionCreate  = "create"
	RowActionUpdate  = "update"
	RowActionSkip    = "skip"
	RowActionInvalid = "invalid"
)

// RowError error a nivel de campo dentro de una fila importada.
// Field queda vacío cuando el error aplica a la fila completa (ej. coerción).
type RowError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// RowResult resultado por fila. Line es 1-based contando la cabecera como
// línea 1 (la primera fila de datos es la línea 2).
type RowResult struct {
	Line   int        `json:"line"`
	SKU    string     `json:"sku,omitempty"`
	Action string     `json:"action"`
	Errors []RowError `json:"errors,omitempty"`
}

// ImportSummary conteo por clasificación. Una fila skip con error de SKU
// cuenta a la vez en Skip y en Invalid (comportamiento documentado del
// modo create/update).
type ImportSummary struct {
	Create  int `json:"create"`
	Update  int `json:"update"`
	Skip    int `json:"skip"`
	Invalid int `json:"invalid"`
}

// ImportResult salida completa de la importación (preview o apply).
type ImportResult struct {
	Mode    string        `json:"mode"`
	Applied bool          `json:"applied"`
	Headers []string      `json:"headers"`
	Rows    []RowResult   `json:"rows"`
	Summary ImportSummary `json:"summary"`
}

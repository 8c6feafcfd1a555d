package search

import (
	"net/url"

	"inventario/internal/domain"
)

// sortColumns limita el ordenamiento a columnas conocidas.
var sortColumns = map[string]string{
	"fechaCreacion": "i.fecha_creacion",
	"nParte":        "i.n_parte",
	"serial":        "i.serial",
	"cliente":       "i.cliente",
	"status":        "i.status",
}

// Sort expresa el ORDER BY ya validado.
type Sort struct {
	Column    string
	Direction string // ASC / DESC
}

// ParseSort lee sortBy/sortOrder; por defecto fecha_creacion DESC.
func ParseSort(params url.Values) (Sort, error) {
	col := "i.fecha_creacion"
	if sortBy := params.Get("sortBy"); sortBy != "" {
		c, ok := sortColumns[sortBy]
		if !ok {
			return Sort{}, domain.ValidationError{Field: "sortBy", Msg: "campo de orden desconocido"}
		}
		col = c
	}

	dir := "DESC"
	switch params.Get("sortOrder") {
	case "", "desc":
		// DESC por defecto, igual que el listado original
	case "asc":
		dir = "ASC"
	default:
		return Sort{}, domain.ValidationError{Field: "sortOrder", Msg: "debe ser asc o desc"}
	}

	return Sort{Column: col, Direction: dir}, nil
}

// OrderBy devuelve la expresión lista para la consulta.
func (s Sort) OrderBy() string {
	return s.Column + " " + s.Direction
}

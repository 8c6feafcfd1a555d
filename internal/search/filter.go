// Package search construye, a partir de los query params crudos, el filtro
// y la paginación que consumen las consultas find/count del inventario.
package search

import (
	"net/url"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"inventario/internal/domain"
)

const (
	keyFechaDesde = "fechaDesde"
	keyFechaHasta = "fechaHasta"
)

// filterColumns enumera los campos filtrables y su columna SQL.
// Cualquier otro campo en el query se rechaza con error de validación.
var filterColumns = map[string]string{
	"nParte":        "i.n_parte",
	"descripcion":   "i.descripcion",
	"serial":        "i.serial",
	"tipo":          "i.tipo",
	"cliente":       "i.cliente",
	"oc":            "i.oc",
	"status":        "i.status",
	"facturado":     "i.facturado",
	"numeroFactura": "i.numero_factura",
}

// textFields admiten la forma <campo>[regex]; tipo/status/facturado no.
var textFields = map[string]bool{
	"nParte":        true,
	"descripcion":   true,
	"serial":        true,
	"cliente":       true,
	"oc":            true,
	"numeroFactura": true,
}

// orden canónico de campos para que el SQL generado sea estable
var fieldOrder = []string{
	"nParte", "descripcion", "serial", "tipo", "cliente",
	"oc", "status", "facturado", "numeroFactura",
}

// reservedKeys son parámetros de paginación/orden, nunca filtros.
var reservedKeys = map[string]bool{
	"page":      true,
	"limit":     true,
	"skip":      true,
	"sortBy":    true,
	"sortOrder": true,
}

// BuildFilter traduce los query params a una conjunción (AND) de cláusulas.
// Reglas, por clave:
//   - <campo>[regex] ⇒ REGEXP_LIKE con opciones de <campo>[options] ('i' si no hay)
//   - <campo>[options] solo acompaña a la forma [regex], nunca filtra por sí sola
//   - facturado: el literal "true" ⇒ true, cualquier otro valor ⇒ false
//   - fechaDesde/fechaHasta acotan fecha_creacion (ambos límites inclusivos)
//   - valores vacíos se descartan; claves desconocidas se rechazan
//
// Si un campo llega a la vez en forma exacta y [regex], gana la forma [regex].
// La conjunción vacía significa "sin restricciones".
func BuildFilter(params url.Values) (sq.And, error) {
	clauses := map[string]sq.Sqlizer{}

	for key, vals := range params {
		if reservedKeys[key] || key == keyFechaDesde || key == keyFechaHasta {
			continue
		}
		if strings.HasSuffix(key, "[options]") || strings.HasSuffix(key, "[regex]") {
			continue // segunda pasada
		}

		value := firstValue(vals)
		if value == "" {
			continue // campo sin valor: no restringe la búsqueda
		}

		col, ok := filterColumns[key]
		if !ok {
			return nil, domain.ValidationError{Field: key, Msg: "campo de filtro desconocido"}
		}

		if key == "facturado" {
			clauses[key] = sq.Eq{col: value == "true"}
			continue
		}
		clauses[key] = sq.Eq{col: value}
	}

	// forma [regex]: se procesa aparte y pisa la forma exacta del mismo campo
	for key, vals := range params {
		field, ok := strings.CutSuffix(key, "[regex]")
		if !ok {
			continue
		}
		pattern := firstValue(vals)
		if pattern == "" {
			continue
		}
		col, known := filterColumns[field]
		if !known {
			return nil, domain.ValidationError{Field: field, Msg: "campo de filtro desconocido"}
		}
		if !textFields[field] {
			return nil, domain.ValidationError{Field: field, Msg: "el campo no admite búsqueda por patrón"}
		}
		opts := matchType(params.Get(field + "[options]"))
		clauses[field] = sq.Expr("REGEXP_LIKE("+col+", ?, ?)", pattern, opts)
	}

	and := sq.And{}
	for _, field := range fieldOrder {
		if c, ok := clauses[field]; ok {
			and = append(and, c)
		}
	}

	rango, err := dateRange(params)
	if err != nil {
		return nil, err
	}
	and = append(and, rango...)

	return and, nil
}

// matchType convierte las opciones estilo regex ("i", "im", ...) al
// match_type de REGEXP_LIKE. Sin clave ⇒ insensible a mayúsculas;
// opciones explícitas sin caracteres válidos ⇒ sensible ('c').
func matchType(options string) string {
	if options == "" {
		return "i"
	}
	var b strings.Builder
	for _, r := range options {
		if strings.ContainsRune("cimnu", r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "c"
	}
	return b.String()
}

func dateRange(params url.Values) (sq.And, error) {
	out := sq.And{}

	if raw := strings.TrimSpace(params.Get(keyFechaDesde)); raw != "" {
		t, _, err := parseFecha(raw)
		if err != nil {
			return nil, domain.ValidationError{Field: keyFechaDesde, Msg: "fecha inválida", Err: err}
		}
		out = append(out, sq.GtOrEq{"i.fecha_creacion": t})
	}

	if raw := strings.TrimSpace(params.Get(keyFechaHasta)); raw != "" {
		t, dateOnly, err := parseFecha(raw)
		if err != nil {
			return nil, domain.ValidationError{Field: keyFechaHasta, Msg: "fecha inválida", Err: err}
		}
		if dateOnly {
			// límite superior inclusivo: todo el día indicado
			out = append(out, sq.Lt{"i.fecha_creacion": t.AddDate(0, 0, 1)})
		} else {
			out = append(out, sq.LtOrEq{"i.fecha_creacion": t})
		}
	}

	return out, nil
}

func parseFecha(raw string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse("2006-01-02", raw); err == nil {
		return t, true, nil
	}
	t, err = time.Parse(time.RFC3339, raw)
	return t, false, err
}

func firstValue(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return strings.TrimSpace(vals[0])
}

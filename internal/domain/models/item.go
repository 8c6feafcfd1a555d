package models

import (
	"strings"
	"time"

	"inventario/internal/domain"
)

// Valores permitidos de tipo y status (mismos del esquema original).
var (
	TiposPermitidos  = []string{"HW", "SW"}
	StatusPermitidos = []string{"Por entregar", "En progreso", "Enviado", "Entregado"}
)

const StatusPorDefecto = "Por entregar"

// Creador es la proyección pública del usuario que creó el item
// (equivalente al populate de nombre + email, sin hash de password).
type Creador struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre,omitempty"`
	Email  string `json:"email,omitempty"`
}

type InventoryItem struct {
	ID                 int64     `json:"id"`
	NParte             string    `json:"nParte"`
	Descripcion        string    `json:"descripcion"`
	Serial             string    `json:"serial"`
	Tipo               string    `json:"tipo"`
	Cliente            string    `json:"cliente"`
	OC                 string    `json:"oc"`
	Status             string    `json:"status"`
	Facturado          bool      `json:"facturado"`
	NumeroFactura      string    `json:"numeroFactura"`
	CreadoPor          Creador   `json:"creadoPor"`
	FechaCreacion      time.Time `json:"fechaCreacion"`
	UltimaModificacion time.Time `json:"ultimaModificacion"`
}

// Normalize aplica trim + uppercase según el esquema: nParte, serial, oc,
// numeroFactura y tipo en mayúsculas; descripcion y cliente solo trim.
func (it *InventoryItem) Normalize() {
	it.NParte = strings.ToUpper(strings.TrimSpace(it.NParte))
	it.Descripcion = strings.TrimSpace(it.Descripcion)
	it.Serial = strings.ToUpper(strings.TrimSpace(it.Serial))
	it.Tipo = strings.ToUpper(strings.TrimSpace(it.Tipo))
	it.Cliente = strings.TrimSpace(it.Cliente)
	it.OC = strings.ToUpper(strings.TrimSpace(it.OC))
	it.Status = strings.TrimSpace(it.Status)
	it.NumeroFactura = strings.ToUpper(strings.TrimSpace(it.NumeroFactura))
}

func TipoValido(tipo string) bool {
	for _, t := range TiposPermitidos {
		if tipo == t {
			return true
		}
	}
	return false
}

func StatusValido(status string) bool {
	for _, s := range StatusPermitidos {
		if status == s {
			return true
		}
	}
	return false
}

// ValidateNew valida un item ya normalizado antes del insert.
// El status vacío toma el valor por defecto.
func (it *InventoryItem) ValidateNew() error {
	required := []struct {
		campo, valor string
	}{
		{"nParte", it.NParte},
		{"descripcion", it.Descripcion},
		{"serial", it.Serial},
		{"tipo", it.Tipo},
		{"cliente", it.Cliente},
		{"oc", it.OC},
	}
	faltantes := []string{}
	for _, r := range required {
		if r.valor == "" {
			faltantes = append(faltantes, r.campo)
		}
	}
	if len(faltantes) > 0 {
		return domain.ValidationError{
			Msg:     "Faltan campos obligatorios: " + strings.Join(faltantes, ", "),
			Details: faltantes,
		}
	}

	if !TipoValido(it.Tipo) {
		return domain.ValidationError{
			Field:   "tipo",
			Msg:     "valor de tipo inválido",
			Details: TiposPermitidos,
		}
	}

	if it.Status == "" {
		it.Status = StatusPorDefecto
	}
	if !StatusValido(it.Status) {
		return domain.ValidationError{
			Field:   "status",
			Msg:     "Valor de status inválido",
			Details: StatusPermitidos,
		}
	}

	return it.ValidateFactura()
}

// ValidateFactura aplica el requisito condicional: numeroFactura es
// obligatorio solo cuando facturado es true.
func (it *InventoryItem) ValidateFactura() error {
	if it.Facturado && it.NumeroFactura == "" {
		return domain.ValidationError{
			Field: "numeroFactura",
			Msg:   "Número de factura es requerido cuando el item está facturado",
		}
	}
	return nil
}

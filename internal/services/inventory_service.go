package services

import (
	"net/url"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"

	"inventario/internal/domain"
	"inventario/internal/domain/models"
	"inventario/internal/repositories"
	"inventario/internal/search"
	"inventario/internal/utils"
)

// InventoryService orquesta filtro + paginación + repositorio para las
// operaciones sobre la colección de inventario.
type InventoryService struct {
	Items     repositories.InventoryRepository
	RequestID string
}

// Create fuerza el creador a la identidad del caller (nunca del payload),
// normaliza, valida y asigna ambos timestamps al momento del insert.
func (s InventoryService) Create(it models.InventoryItem, creatorID int64) (models.InventoryItem, error) {
	it.CreadoPor = models.Creador{ID: creatorID}
	it.Normalize()
	if err := it.ValidateNew(); err != nil {
		return models.InventoryItem{}, err
	}

	now := time.Now()
	it.FechaCreacion = now
	it.UltimaModificacion = now

	id, err := s.Items.Insert(it)
	if err != nil {
		return models.InventoryItem{}, err
	}

	utils.LogEvent(s.RequestID, "inventory", "create", "id="+strconv.FormatInt(id, 10))
	// relee para devolver el item con el creador poblado
	return s.Items.GetByID(id)
}

// List es el listado simple (modo página): tipo/status/facturado exactos y
// cliente por subcadena insensible a mayúsculas, orden fijo por fecha.
func (s InventoryService) List(params url.Values) ([]models.InventoryItem, search.PageMeta, error) {
	page, err := search.ParsePageParams(params)
	if err != nil {
		return nil, search.PageMeta{}, err
	}

	simple := url.Values{}
	for _, key := range []string{"tipo", "status", "facturado"} {
		if v := params.Get(key); v != "" {
			simple.Set(key, v)
		}
	}
	if v := params.Get("cliente"); v != "" {
		simple.Set("cliente[regex]", v)
	}

	filter, err := search.BuildFilter(simple)
	if err != nil {
		return nil, search.PageMeta{}, err
	}

	return s.findPage(filter, search.Sort{Column: "i.fecha_creacion", Direction: "DESC"}, page)
}

// Search expone la gramática completa de filtros en modo offset (skip/limit
// + hasMore). Count y find corren sobre el mismo filtro pero sin
// transacción: una escritura concurrente puede desfasar total y página.
func (s InventoryService) Search(params url.Values) ([]models.InventoryItem, search.OffsetMeta, error) {
	off, err := search.ParseOffsetParams(params)
	if err != nil {
		return nil, search.OffsetMeta{}, err
	}
	filter, sort, err := s.parseSearch(params)
	if err != nil {
		return nil, search.OffsetMeta{}, err
	}

	total, err := s.Items.Count(filter)
	if err != nil {
		return nil, search.OffsetMeta{}, err
	}
	items, err := s.Items.Search(filter, sort, off.Limit, off.Skip)
	if err != nil {
		return nil, search.OffsetMeta{}, err
	}

	return items, search.NewOffsetMeta(off, len(items), total), nil
}

func (s InventoryService) parseSearch(params url.Values) (sq.And, search.Sort, error) {
	filter, err := search.BuildFilter(params)
	if err != nil {
		return nil, search.Sort{}, err
	}
	sort, err := search.ParseSort(params)
	if err != nil {
		return nil, search.Sort{}, err
	}
	return filter, sort, nil
}

func (s InventoryService) Get(rawID string) (models.InventoryItem, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return models.InventoryItem{}, err
	}
	return s.Items.GetByID(id)
}

// ItemUpdate es el payload parcial del PUT: campo ausente = sin cambio.
// Creador e id son inmutables y no aparecen acá.
type ItemUpdate struct {
	NParte        *string `json:"nParte"`
	Descripcion   *string `json:"descripcion"`
	Serial        *string `json:"serial"`
	Tipo          *string `json:"tipo"`
	Cliente       *string `json:"cliente"`
	OC            *string `json:"oc"`
	Status        *string `json:"status"`
	Facturado     *bool   `json:"facturado"`
	NumeroFactura *string `json:"numeroFactura"`
}

// Update valida el status contra la enumeración antes de escribir y
// refresca ultima_modificacion en la misma escritura.
func (s InventoryService) Update(rawID string, upd ItemUpdate) (models.InventoryItem, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return models.InventoryItem{}, err
	}

	if upd.Status != nil && !models.StatusValido(*upd.Status) {
		return models.InventoryItem{}, domain.ValidationError{
			Field:   "status",
			Msg:     "Valor de status inválido",
			Details: "Los valores permitidos son: " + joinStatus(),
		}
	}

	existing, err := s.Items.GetByID(id)
	if err != nil {
		return models.InventoryItem{}, err
	}

	merged := applyUpdate(existing, upd)
	merged.Normalize()
	if merged.Tipo != "" && !models.TipoValido(merged.Tipo) {
		return models.InventoryItem{}, domain.ValidationError{
			Field:   "tipo",
			Msg:     "valor de tipo inválido",
			Details: models.TiposPermitidos,
		}
	}
	if err := merged.ValidateFactura(); err != nil {
		return models.InventoryItem{}, err
	}

	set := map[string]any{
		"n_parte":             merged.NParte,
		"descripcion":         merged.Descripcion,
		"serial":              merged.Serial,
		"tipo":                merged.Tipo,
		"cliente":             merged.Cliente,
		"oc":                  merged.OC,
		"status":              merged.Status,
		"facturado":           merged.Facturado,
		"numero_factura":      merged.NumeroFactura,
		"ultima_modificacion": time.Now(),
	}

	updated, err := s.Items.Update(id, set)
	if err != nil {
		return models.InventoryItem{}, err
	}

	utils.LogEvent(s.RequestID, "inventory", "update", "id="+rawID)
	return updated, nil
}

// Delete borra en duro y devuelve el id del item eliminado.
func (s InventoryService) Delete(rawID string) (int64, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return 0, err
	}
	if err := s.Items.Delete(id); err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "inventory", "delete", "id="+rawID)
	return id, nil
}

// ParseID distingue el id malformado (su propio tipo de error) del id
// bien formado que no matchea nada (not found, más adelante).
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.InvalidIDError{Raw: raw, Err: err}
	}
	return id, nil
}

func (s InventoryService) findPage(filter sq.And, sort search.Sort, page search.PageParams) ([]models.InventoryItem, search.PageMeta, error) {
	total, err := s.Items.Count(filter)
	if err != nil {
		return nil, search.PageMeta{}, err
	}
	items, err := s.Items.Search(filter, sort, page.Limit, page.Offset())
	if err != nil {
		return nil, search.PageMeta{}, err
	}
	return items, search.NewPageMeta(page, total), nil
}

func applyUpdate(it models.InventoryItem, upd ItemUpdate) models.InventoryItem {
	if upd.NParte != nil {
		it.NParte = *upd.NParte
	}
	if upd.Descripcion != nil {
		it.Descripcion = *upd.Descripcion
	}
	if upd.Serial != nil {
		it.Serial = *upd.Serial
	}
	if upd.Tipo != nil {
		it.Tipo = *upd.Tipo
	}
	if upd.Cliente != nil {
		it.Cliente = *upd.Cliente
	}
	if upd.OC != nil {
		it.OC = *upd.OC
	}
	if upd.Status != nil {
		it.Status = *upd.Status
	}
	if upd.Facturado != nil {
		it.Facturado = *upd.Facturado
	}
	if upd.NumeroFactura != nil {
		it.NumeroFactura = *upd.NumeroFactura
	}
	return it
}

func joinStatus() string {
	out := ""
	for i, s := range models.StatusPermitidos {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

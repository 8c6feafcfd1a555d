package services

import (
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario/internal/domain"
	"inventario/internal/domain/models"
	"inventario/internal/repositories"
)

var itemCols = []string{
	"id", "n_parte", "descripcion", "serial", "tipo", "cliente", "oc",
	"status", "facturado", "numero_factura", "creado_por", "nombre", "email",
	"fecha_creacion", "ultima_modificacion",
}

func itemRow(rows *sqlmock.Rows, id int64, status string) *sqlmock.Rows {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "NP-1", "Router de borde", "SN-1", "HW", "ACME", "OC-1",
		status, false, "", int64(3), "Ana", "a@b.com", now, now)
}

func newItemService(t *testing.T) (InventoryService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	svc := InventoryService{Items: repositories.InventoryRepository{DB: db}}
	return svc, mock, func() { db.Close() }
}

func TestCreateForcesCreator(t *testing.T) {
	svc, mock, done := newItemService(t)
	defer done()

	mock.ExpectExec(`INSERT INTO inventario`).
		WithArgs("NP-1", "Router de borde", "SN-1", "HW", "ACME", "OC-1",
			"Por entregar", false, "", int64(3), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(`SELECT i\.id, .+ FROM inventario i`).
		WithArgs(int64(7)).
		WillReturnRows(itemRow(sqlmock.NewRows(itemCols), 7, "Por entregar"))

	payload := models.InventoryItem{
		NParte:      "np-1",
		Descripcion: " Router de borde ",
		Serial:      "sn-1",
		Tipo:        "hw",
		Cliente:     "ACME",
		OC:          "oc-1",
		// el payload intenta colar otro creador; se ignora
		CreadoPor: models.Creador{ID: 999},
	}
	created, err := svc.Create(payload, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, int64(3), created.CreadoPor.ID)
	assert.Equal(t, "Por entregar", created.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsBadTipo(t *testing.T) {
	svc, _, done := newItemService(t)
	defer done()

	payload := models.InventoryItem{
		NParte: "np", Descripcion: "d", Serial: "s", Tipo: "FW", Cliente: "c", OC: "oc",
	}
	_, err := svc.Create(payload, 3)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCreateFacturadoRequiresNumeroFactura(t *testing.T) {
	svc, _, done := newItemService(t)
	defer done()

	payload := models.InventoryItem{
		NParte: "np", Descripcion: "d", Serial: "s", Tipo: "HW", Cliente: "c", OC: "oc",
		Facturado: true,
	}
	_, err := svc.Create(payload, 3)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "factura")
}

// Escenario de búsqueda: 3 de 5 items matchean, skip=0 limit=2 ⇒
// 2 items, hasMore=true, total=3.
func TestSearchOffsetMode(t *testing.T) {
	svc, mock, done := newItemService(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM inventario i WHERE \(REGEXP_LIKE\(i\.descripcion, \?, \?\) AND i\.tipo = \?\)`).
		WithArgs("router", "i", "HW").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	rows := sqlmock.NewRows(itemCols)
	itemRow(rows, 1, "Por entregar")
	itemRow(rows, 2, "Enviado")
	mock.ExpectQuery(`SELECT i\.id, .+ FROM inventario i .+ WHERE \(REGEXP_LIKE\(i\.descripcion, \?, \?\) AND i\.tipo = \?\) ORDER BY i\.fecha_creacion DESC LIMIT 2 OFFSET 0`).
		WithArgs("router", "i", "HW").
		WillReturnRows(rows)

	params := url.Values{}
	params.Set("tipo", "HW")
	params.Set("descripcion[regex]", "router")
	params.Set("skip", "0")
	params.Set("limit", "2")

	items, meta, err := svc.Search(params)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.True(t, meta.HasMore)
	assert.Equal(t, 3, meta.TotalItems)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRejectsBadSkip(t *testing.T) {
	svc, _, done := newItemService(t)
	defer done()

	params := url.Values{}
	params.Set("skip", "muchos")

	_, _, err := svc.Search(params)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestListPageMode(t *testing.T) {
	svc, mock, done := newItemService(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM inventario i WHERE \(i\.tipo = \?\)`).
		WithArgs("HW").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	rows := sqlmock.NewRows(itemCols)
	itemRow(rows, 3, "Por entregar")
	mock.ExpectQuery(`SELECT i\.id, .+ LIMIT 2 OFFSET 2`).
		WithArgs("HW").
		WillReturnRows(rows)

	params := url.Values{}
	params.Set("tipo", "HW")
	params.Set("page", "2")
	params.Set("limit", "2")

	items, meta, err := svc.List(params)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 5, meta.TotalItems)
}

// Pedir una página más allá de la última devuelve lista vacía, sin error.
func TestListPageBeyondLast(t *testing.T) {
	svc, mock, done := newItemService(t)
	defer done()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM inventario i`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT i\.id, .+ LIMIT 20 OFFSET 180`).
		WillReturnRows(sqlmock.NewRows(itemCols))

	params := url.Values{}
	params.Set("page", "10")

	items, meta, err := svc.List(params)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestUpdateRejectsBadStatus(t *testing.T) {
	svc, _, done := newItemService(t)
	defer done()

	status := "Invalido"
	_, err := svc.Update("5", ItemUpdate{Status: &status})
	require.Error(t, err)

	var vErr domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "status", vErr.Field)
	assert.Contains(t, vErr.Details.(string), "Por entregar")
}

func TestUpdateStatusSuccess(t *testing.T) {
	svc, mock, done := newItemService(t)
	defer done()

	mock.ExpectQuery(`SELECT i\.id, .+ FROM inventario i`).
		WithArgs(int64(5)).
		WillReturnRows(itemRow(sqlmock.NewRows(itemCols), 5, "Por entregar"))
	mock.ExpectExec(`UPDATE inventario SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT i\.id, .+ FROM inventario i`).
		WithArgs(int64(5)).
		WillReturnRows(itemRow(sqlmock.NewRows(itemCols), 5, "Enviado"))

	status := "Enviado"
	updated, err := svc.Update("5", ItemUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Enviado", updated.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotFound(t *testing.T) {
	svc, mock, done := newItemService(t)
	defer done()

	mock.ExpectQuery(`SELECT i\.id, .+ FROM inventario i`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(itemCols))

	status := "Enviado"
	_, err := svc.Update("404", ItemUpdate{Status: &status})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdateFacturadoRequiresNumero(t *testing.T) {
	svc, mock, done := newItemService(t)
	defer done()

	mock.ExpectQuery(`SELECT i\.id, .+ FROM inventario i`).
		WithArgs(int64(5)).
		WillReturnRows(itemRow(sqlmock.NewRows(itemCols), 5, "Por entregar"))

	facturado := true
	_, err := svc.Update("5", ItemUpdate{Facturado: &facturado})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestGetInvalidID(t *testing.T) {
	svc, _, done := newItemService(t)
	defer done()

	_, err := svc.Get("no-es-un-id")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidID(err))
}

func TestDeleteReturnsID(t *testing.T) {
	svc, mock, done := newItemService(t)
	defer done()

	mock.ExpectExec(`DELETE FROM inventario WHERE id = \?`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := svc.Delete("9")
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
}

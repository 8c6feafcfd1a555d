package repositories

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"

	"inventario/internal/domain"
	"inventario/internal/domain/models"
	"inventario/internal/search"
)

const mysqlErrFKViolation = 1452

// itemColumns incluye nombre y email del creador vía join; el hash de
// password nunca sale de la tabla usuarios.
var itemColumns = []string{
	"i.id", "i.n_parte", "i.descripcion", "i.serial", "i.tipo",
	"i.cliente", "i.oc", "i.status", "i.facturado", "i.numero_factura",
	"i.creado_por", "COALESCE(u.nombre,'')", "COALESCE(u.email,'')",
	"i.fecha_creacion", "i.ultima_modificacion",
}

// InventoryRepository encapsula el acceso a la tabla inventario.
type InventoryRepository struct {
	DB *sql.DB
}

func (r InventoryRepository) selectItems() sq.SelectBuilder {
	return sq.Select(itemColumns...).
		From("inventario i").
		LeftJoin("usuarios u ON u.id = i.creado_por")
}

// Search ejecuta el find filtrado con orden y paginación.
func (r InventoryRepository) Search(filter sq.And, sort search.Sort, limit, offset int) ([]models.InventoryItem, error) {
	q := r.selectItems().
		OrderBy(sort.OrderBy()).
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if len(filter) > 0 {
		q = q.Where(filter)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, domain.InternalError{Msg: "error construyendo la consulta", Err: err}
	}

	rows, err := r.DB.Query(sqlStr, args...)
	if err != nil {
		return nil, domain.InternalError{Msg: "error consultando inventario", Err: err}
	}
	defer rows.Close()

	items := make([]models.InventoryItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, domain.InternalError{Msg: "error leyendo inventario", Err: err}
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Msg: "error iterando inventario", Err: err}
	}
	return items, nil
}

// Count cuenta sobre el mismo filtro que Search. Sin transacción entre ambos:
// una escritura concurrente puede desfasar el total respecto de la página.
func (r InventoryRepository) Count(filter sq.And) (int, error) {
	q := sq.Select("COUNT(*)").From("inventario i")
	if len(filter) > 0 {
		q = q.Where(filter)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, domain.InternalError{Msg: "error construyendo la consulta", Err: err}
	}

	var total int
	if err := r.DB.QueryRow(sqlStr, args...).Scan(&total); err != nil {
		return 0, domain.InternalError{Msg: "error contando inventario", Err: err}
	}
	return total, nil
}

func (r InventoryRepository) GetByID(id int64) (models.InventoryItem, error) {
	sqlStr, args, err := r.selectItems().Where(sq.Eq{"i.id": id}).Limit(1).ToSql()
	if err != nil {
		return models.InventoryItem{}, domain.InternalError{Msg: "error construyendo la consulta", Err: err}
	}

	it, err := scanItem(r.DB.QueryRow(sqlStr, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.InventoryItem{}, domain.NotFoundError{Resource: "Item", Err: err}
		}
		return models.InventoryItem{}, domain.InternalError{Msg: "error consultando item", Err: err}
	}
	return it, nil
}

// Insert guarda el item y devuelve el id asignado.
// Serial duplicado ⇒ conflicto; creador inexistente ⇒ error de validación.
func (r InventoryRepository) Insert(it models.InventoryItem) (int64, error) {
	sqlStr, args, err := sq.Insert("inventario").
		Columns("n_parte", "descripcion", "serial", "tipo", "cliente", "oc",
			"status", "facturado", "numero_factura", "creado_por",
			"fecha_creacion", "ultima_modificacion").
		Values(it.NParte, it.Descripcion, it.Serial, it.Tipo, it.Cliente, it.OC,
			it.Status, it.Facturado, it.NumeroFactura, it.CreadoPor.ID,
			it.FechaCreacion, it.UltimaModificacion).
		ToSql()
	if err != nil {
		return 0, domain.InternalError{Msg: "error construyendo la consulta", Err: err}
	}

	res, err := r.DB.Exec(sqlStr, args...)
	if err != nil {
		if isDuplicateEntry(err) {
			return 0, domain.ConflictError{Resource: "serial", Msg: "El número de serie ya existe", Err: err}
		}
		if isFKViolation(err) {
			return 0, domain.ValidationError{Field: "creadoPor", Msg: "el usuario creador no existe", Err: err}
		}
		return 0, domain.InternalError{Msg: "error guardando item", Err: err}
	}

	id, _ := res.LastInsertId()
	return id, nil
}

// Update aplica el set parcial y devuelve el item actualizado.
func (r InventoryRepository) Update(id int64, set map[string]any) (models.InventoryItem, error) {
	sqlStr, args, err := sq.Update("inventario").SetMap(set).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.InventoryItem{}, domain.InternalError{Msg: "error construyendo la consulta", Err: err}
	}

	if _, err := r.DB.Exec(sqlStr, args...); err != nil {
		if isDuplicateEntry(err) {
			return models.InventoryItem{}, domain.ConflictError{Resource: "serial", Msg: "El número de serie ya existe", Err: err}
		}
		return models.InventoryItem{}, domain.InternalError{Msg: "error actualizando item", Err: err}
	}

	// rowsAffected 0 no distingue "no existe" de "sin cambios";
	// el GetByID posterior resuelve ambos casos.
	return r.GetByID(id)
}

// Delete borra en duro; 0 filas afectadas ⇒ no encontrado.
func (r InventoryRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM inventario WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Msg: "error eliminando item", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Msg: "error eliminando item", Err: err}
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "Item"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.InventoryItem, error) {
	var it models.InventoryItem
	err := row.Scan(
		&it.ID,
		&it.NParte,
		&it.Descripcion,
		&it.Serial,
		&it.Tipo,
		&it.Cliente,
		&it.OC,
		&it.Status,
		&it.Facturado,
		&it.NumeroFactura,
		&it.CreadoPor.ID,
		&it.CreadoPor.Nombre,
		&it.CreadoPor.Email,
		&it.FechaCreacion,
		&it.UltimaModificacion,
	)
	return it, err
}

func isFKViolation(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlErrFKViolation
}

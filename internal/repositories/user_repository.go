package repositories

import (
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"inventario/internal/domain"
	"inventario/internal/domain/models"
)

const mysqlErrDuplicateEntry = 1062

// UserRepository encapsula el acceso a la tabla usuarios.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) EmailExists(email string) (bool, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM usuarios WHERE email = ?`, email).Scan(&count)
	if err != nil {
		return false, domain.InternalError{Msg: "error consultando usuarios", Err: err}
	}
	return count > 0, nil
}

// Create inserta el usuario; la unicidad del email la garantiza el índice.
func (r UserRepository) Create(u models.User) (models.User, error) {
	now := time.Now()
	res, err := r.DB.Exec(`
		INSERT INTO usuarios (nombre, apellido, fecha_nacimiento, email, pais, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, u.Nombre, u.Apellido, u.FechaNacimiento, u.Email, u.Pais, u.PasswordHash, now, now)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.User{}, domain.ConflictError{Resource: "usuario", Msg: "El email ya está registrado", Err: err}
		}
		return models.User{}, domain.InternalError{Msg: "error guardando usuario", Err: err}
	}

	id, _ := res.LastInsertId()
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return u, nil
}

func (r UserRepository) FindByEmail(email string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRow(`
		SELECT id, nombre, apellido, fecha_nacimiento, email, pais, password_hash, created_at, updated_at
		FROM usuarios
		WHERE email = ?
		LIMIT 1
	`, email).Scan(
		&u.ID,
		&u.Nombre,
		&u.Apellido,
		&u.FechaNacimiento,
		&u.Email,
		&u.Pais,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "usuario", Err: err}
		}
		return models.User{}, domain.InternalError{Msg: "error consultando usuario", Err: err}
	}
	return u, nil
}

func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry
}

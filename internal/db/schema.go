// Package db agrupa utilidades de esquema compartidas por los repositorios.
package db

import (
	"database/sql"
	"fmt"
)

type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// HasTable consulta information_schema; con conexión rota devuelve false
// y deja que el caller decida.
func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

var schemaStatements = []struct {
	table string
	ddl   string
}{
	{"usuarios", `CREATE TABLE IF NOT EXISTS usuarios (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		nombre VARCHAR(100) NOT NULL,
		apellido VARCHAR(100) NOT NULL,
		fecha_nacimiento DATETIME NOT NULL,
		email VARCHAR(255) NOT NULL,
		pais VARCHAR(100) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		UNIQUE KEY uq_usuarios_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},

	{"inventario", `CREATE TABLE IF NOT EXISTS inventario (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		n_parte VARCHAR(100) NOT NULL,
		descripcion VARCHAR(500) NOT NULL,
		serial VARCHAR(100) NOT NULL,
		tipo VARCHAR(10) NOT NULL,
		cliente VARCHAR(200) NOT NULL,
		oc VARCHAR(100) NOT NULL,
		status VARCHAR(30) NOT NULL DEFAULT 'Por entregar',
		facturado TINYINT(1) NOT NULL DEFAULT 0,
		numero_factura VARCHAR(100) NOT NULL DEFAULT '',
		creado_por BIGINT NOT NULL,
		fecha_creacion DATETIME NOT NULL,
		ultima_modificacion DATETIME NOT NULL,
		UNIQUE KEY uq_inventario_serial (serial),
		KEY idx_inventario_n_parte (n_parte),
		KEY idx_inventario_cliente (cliente),
		KEY idx_inventario_oc (oc),
		KEY idx_inventario_status (status),
		KEY idx_inventario_facturado (facturado),
		KEY idx_inventario_fecha_creacion (fecha_creacion),
		CONSTRAINT fk_inventario_creado_por FOREIGN KEY (creado_por) REFERENCES usuarios (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
}

// EnsureSchema crea las tablas si faltan. No es un sistema de migraciones:
// solo garantiza que una base vacía quede usable al arrancar.
func EnsureSchema(db *sql.DB) error {
	for _, s := range schemaStatements {
		if HasTable(db, s.table) {
			continue
		}
		if _, err := db.Exec(s.ddl); err != nil {
			return fmt.Errorf("error creando la tabla %s: %w", s.table, err)
		}
	}
	return nil
}

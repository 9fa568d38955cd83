package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueConstraint reporta el nombre del constraint único violado (23505).
// El nombre distingue qué unicidad falló: una colisión del código secuencial
// se reintenta, una factura o email duplicado es error de negocio terminal.
func uniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName, true
	}
	return "", false
}

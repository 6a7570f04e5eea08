package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	pg "github.com/lib/pq"
)

func isUniqueViolation(err error) bool {
	var pgErr *pg.Error
	if errors.As(err, &pgErr) {
		return string(pgErr.Code) == pgerrcode.UniqueViolation
	}
	return false
}

func isIntegrityViolation(err error) bool {
	var pgErr *pg.Error
	if errors.As(err, &pgErr) {
		return pgerrcode.IsIntegrityConstraintViolation(string(pgErr.Code))
	}
	return false
}

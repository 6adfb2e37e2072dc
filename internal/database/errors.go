package database

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound indica que el registro no existe
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail indica que ya existe un cliente con el mismo email
	ErrDuplicateEmail = errors.New("email already registered")
)

// uniqueViolation es el código de PostgreSQL para violación de constraint UNIQUE
const uniqueViolation = pq.ErrorCode("23505")

// isUniqueViolation detecta una violación de unicidad reportada por el driver
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

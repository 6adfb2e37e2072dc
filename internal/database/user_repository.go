package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hypernova-labs/dashboard-service/internal/models"
	"github.com/sirupsen/logrus"
)

// UserRepository maneja las operaciones de base de datos para User
type UserRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewUserRepository crea una nueva instancia del repositorio
func NewUserRepository(db *DB, logger *logrus.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// GetByEmail obtiene un usuario por email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	qctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	var user models.User
	err := r.db.QueryRowContext(qctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}

	return &user, nil
}

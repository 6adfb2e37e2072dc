package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hypernova-labs/dashboard-service/internal/models"
	"github.com/sirupsen/logrus"
)

// CustomerRepository maneja las operaciones de base de datos para Customer
type CustomerRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewCustomerRepository crea una nueva instancia del repositorio
func NewCustomerRepository(db *DB, logger *logrus.Logger) *CustomerRepository {
	return &CustomerRepository{
		db:     db,
		logger: logger,
	}
}

// Insert crea un nuevo cliente con la imagen por defecto.
// Retorna ErrDuplicateEmail si el email ya está registrado; la unicidad
// la garantiza el índice de la base de datos, no una consulta previa.
func (r *CustomerRepository) Insert(ctx context.Context, input *models.CustomerInput) (*models.Customer, error) {
	customer := &models.Customer{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     input.Email,
		ImageURL:  models.DefaultCustomerImageURL,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	query := `
		INSERT INTO customers (
			id, name, email, image_url, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := r.db.ExecWithTimeout(ctx, query,
		customer.ID, customer.Name, customer.Email,
		customer.ImageURL, customer.CreatedAt, customer.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating customer: %w", err)
	}

	return customer, nil
}

// Update actualiza name y email de un cliente. La imagen no es editable.
func (r *CustomerRepository) Update(ctx context.Context, id uuid.UUID, input *models.CustomerInput) error {
	query := `
		UPDATE customers
		SET name = $1, email = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.db.ExecWithTimeout(ctx, query,
		input.Name, input.Email, time.Now(), id,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("error updating customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID obtiene un cliente por ID
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	query := `
		SELECT id, name, email, image_url, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	qctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	var customer models.Customer
	err := r.db.QueryRowContext(qctx, query, id).Scan(
		&customer.ID, &customer.Name, &customer.Email,
		&customer.ImageURL, &customer.CreatedAt, &customer.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying customer: %w", err)
	}

	return &customer, nil
}

// List obtiene todos los clientes ordenados por nombre
func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	query := `
		SELECT id, name, email, image_url, created_at, updated_at
		FROM customers
		ORDER BY name
	`

	qctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(qctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var customer models.Customer
		err := rows.Scan(
			&customer.ID, &customer.Name, &customer.Email,
			&customer.ImageURL, &customer.CreatedAt, &customer.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

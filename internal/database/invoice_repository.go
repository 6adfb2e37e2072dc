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

// InvoiceRepository maneja las operaciones de base de datos para Invoice
type InvoiceRepository struct {
	db     *DB
	logger *logrus.Logger
}

// NewInvoiceRepository crea una nueva instancia del repositorio
func NewInvoiceRepository(db *DB, logger *logrus.Logger) *InvoiceRepository {
	return &InvoiceRepository{
		db:     db,
		logger: logger,
	}
}

// Insert crea una nueva factura con fecha asignada por el servidor
func (r *InvoiceRepository) Insert(ctx context.Context, input *models.InvoiceInput, date string) (*models.Invoice, error) {
	customerID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id %q: %w", input.CustomerID, err)
	}

	invoice := &models.Invoice{
		ID:         uuid.New(),
		CustomerID: customerID,
		Amount:     input.AmountCents,
		Status:     input.Status,
		Date:       date,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	query := `
		INSERT INTO invoices (
			id, customer_id, amount, status, date, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err = r.db.ExecWithTimeout(ctx, query,
		invoice.ID, invoice.CustomerID, invoice.Amount,
		invoice.Status, invoice.Date, invoice.CreatedAt, invoice.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("error creating invoice: %w", err)
	}

	return invoice, nil
}

// Update actualiza customer_id, amount y status de una factura.
// La fecha nunca se modifica.
func (r *InvoiceRepository) Update(ctx context.Context, id uuid.UUID, input *models.InvoiceInput) error {
	customerID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		return fmt.Errorf("invalid customer id %q: %w", input.CustomerID, err)
	}

	query := `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.ExecWithTimeout(ctx, query,
		customerID, input.AmountCents, input.Status, time.Now(), id,
	)

	if err != nil {
		return fmt.Errorf("error updating invoice: %w", err)
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

// Delete elimina una factura. Un id inexistente no es un error.
func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM invoices WHERE id = $1`

	if _, err := r.db.ExecWithTimeout(ctx, query, id); err != nil {
		return fmt.Errorf("error deleting invoice: %w", err)
	}

	return nil
}

// GetByID obtiene una factura por ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	query := `
		SELECT id, customer_id, amount, status, date, created_at, updated_at
		FROM invoices
		WHERE id = $1
	`

	qctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	var invoice models.Invoice
	var date time.Time
	err := r.db.QueryRowContext(qctx, query, id).Scan(
		&invoice.ID, &invoice.CustomerID, &invoice.Amount,
		&invoice.Status, &date, &invoice.CreatedAt, &invoice.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying invoice: %w", err)
	}

	// La columna DATE llega como time.Time; la factura expone la fecha calendario
	invoice.Date = date.Format("2006-01-02")
	return &invoice, nil
}

// List obtiene las facturas con su cliente, más recientes primero
func (r *InvoiceRepository) List(ctx context.Context) ([]models.Invoice, error) {
	query := `
		SELECT i.id, i.customer_id, i.amount, i.status, i.date,
			   i.created_at, i.updated_at,
			   c.id, c.name, c.email, c.image_url
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		ORDER BY i.date DESC, i.created_at DESC
	`

	qctx, cancel := r.db.WithQueryTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(qctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying invoices: %w", err)
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var invoice models.Invoice
		var customer models.Customer
		var date time.Time
		err := rows.Scan(
			&invoice.ID, &invoice.CustomerID, &invoice.Amount,
			&invoice.Status, &date, &invoice.CreatedAt, &invoice.UpdatedAt,
			&customer.ID, &customer.Name, &customer.Email, &customer.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning invoice: %w", err)
		}
		invoice.Date = date.Format("2006-01-02")
		invoice.Customer = &customer
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}

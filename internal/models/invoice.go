package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceStatus representa el estado de cobro de una factura
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice representa una factura del dashboard
type Invoice struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CustomerID uuid.UUID `json:"customer_id" db:"customer_id"`

	// Monto almacenado en centavos enteros
	Amount int64         `json:"amount" db:"amount"`
	Status InvoiceStatus `json:"status" db:"status"`

	// Fecha asignada por el servidor al crear, inmutable después
	Date string `json:"date" db:"date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Relación (populada en consultas de listado)
	Customer *Customer `json:"customer,omitempty"`
}

// InvoiceInput representa los campos validados de un formulario de factura.
// id y date quedan fuera del esquema: los asigna el servidor.
type InvoiceInput struct {
	CustomerID  string
	AmountCents int64
	Status      InvoiceStatus
}

// InvoiceListResponse representa la respuesta del listado de facturas
type InvoiceListResponse struct {
	Items []Invoice `json:"items"`
	Total int       `json:"total"`
}

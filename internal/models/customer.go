package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCustomerImageURL es la imagen asignada al crear un cliente.
// No es editable por el usuario.
const DefaultCustomerImageURL = "/customers/default-avatar.png"

// Customer representa un cliente del dashboard
type Customer struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Email    string    `json:"email" db:"email"`
	ImageURL string    `json:"image_url" db:"image_url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CustomerInput representa los campos validados de un formulario de cliente
type CustomerInput struct {
	Name  string
	Email string
}

// CustomerListResponse representa la respuesta del listado de clientes
type CustomerListResponse struct {
	Items []Customer `json:"items"`
	Total int        `json:"total"`
}

package services

import (
	"context"
	"errors"
	"net/url"

	"github.com/google/uuid"
	"github.com/hypernova-labs/dashboard-service/internal/database"
	"github.com/hypernova-labs/dashboard-service/internal/models"
	"github.com/hypernova-labs/dashboard-service/internal/validation"
	"github.com/sirupsen/logrus"
)

// Mensajes de resultado de las mutaciones de cliente
const (
	msgMissingFieldsCreateCustomer = "Missing Fields. Failed to Create Customer."
	msgMissingFieldsUpdateCustomer = "Missing Fields. Failed to Update Customer."
	msgDBCreateCustomer            = "Database Error: Failed to Create Customer."
	msgDBUpdateCustomer            = "Database Error: Failed to Update Customer."
	msgDuplicateCustomerEmail      = "Customer with the same email already exists."
)

// CustomerStore define las operaciones de persistencia de clientes
type CustomerStore interface {
	Insert(ctx context.Context, input *models.CustomerInput) (*models.Customer, error)
	Update(ctx context.Context, id uuid.UUID, input *models.CustomerInput) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
}

// CustomerService maneja las mutaciones de clientes. Los clientes nunca se
// eliminan en este sistema.
type CustomerService struct {
	customers CustomerStore
	cache     ViewCache
	validator *validation.Validator
	logger    *logrus.Logger
}

// NewCustomerService crea una nueva instancia del servicio
func NewCustomerService(customers CustomerStore, cache ViewCache, logger *logrus.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		cache:     cache,
		validator: validation.New(),
		logger:    logger,
	}
}

// CreateCustomer valida el formulario e inserta el cliente con la imagen por
// defecto. El email duplicado lo reporta el constraint de la base de datos:
// no hay consulta previa de existencia.
func (s *CustomerService) CreateCustomer(ctx context.Context, prev models.State, form url.Values) models.MutationResult {
	input, fieldErrors := s.validator.ParseCustomer(form)
	if fieldErrors != nil {
		return models.FailWithErrors(fieldErrors, msgMissingFieldsCreateCustomer)
	}

	customer, err := s.customers.Insert(ctx, input)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return models.FailWithMessage(msgDuplicateCustomerEmail)
		}
		s.logger.WithError(err).Error("Error creating customer")
		return models.FailWithMessage(msgDBCreateCustomer)
	}

	s.logger.WithFields(logrus.Fields{
		"customer_id": customer.ID,
		"email":       customer.Email,
		"name":        customer.Name,
	}).Info("Customer created successfully")

	// La vista de facturas incrusta nombre y email del cliente
	s.cache.Invalidate(ctx, PathDashboardCustomers)
	s.cache.Invalidate(ctx, PathDashboardInvoices)
	return models.RedirectTo(PathDashboardCustomers)
}

// UpdateCustomer valida name y email y actualiza el cliente indicado.
// El id llega como parámetro de ruta y no se re-valida.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, prev models.State, form url.Values) models.MutationResult {
	input, fieldErrors := s.validator.ParseCustomer(form)
	if fieldErrors != nil {
		return models.FailWithErrors(fieldErrors, msgMissingFieldsUpdateCustomer)
	}

	customerID, err := uuid.Parse(id)
	if err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Invalid customer id")
		return models.FailWithMessage(msgDBUpdateCustomer)
	}

	if err := s.customers.Update(ctx, customerID, input); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return models.FailWithMessage(msgDuplicateCustomerEmail)
		}
		s.logger.WithError(err).WithField("customer_id", customerID).Error("Error updating customer")
		return models.FailWithMessage(msgDBUpdateCustomer)
	}

	s.logger.WithField("customer_id", customerID).Info("Customer updated successfully")

	s.cache.Invalidate(ctx, PathDashboardCustomers)
	s.cache.Invalidate(ctx, PathDashboardInvoices)
	return models.RedirectTo(PathDashboardCustomers)
}

// GetCustomer obtiene un cliente para el formulario de edición
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	return s.customers.GetByID(ctx, customerID)
}

// ListCustomers obtiene el listado de clientes
func (s *CustomerService) ListCustomers(ctx context.Context) (*models.CustomerListResponse, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}

	return &models.CustomerListResponse{
		Items: customers,
		Total: len(customers),
	}, nil
}

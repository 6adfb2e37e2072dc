package services

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/hypernova-labs/dashboard-service/internal/models"
	"github.com/hypernova-labs/dashboard-service/internal/validation"
	"github.com/sirupsen/logrus"
)

// Rutas lógicas del dashboard: destino del redirect y clave de invalidación
const (
	PathDashboardInvoices  = "/dashboard/invoices"
	PathDashboardCustomers = "/dashboard/customers"
)

// Mensajes de resultado de las mutaciones de factura
const (
	msgMissingFieldsCreateInvoice = "Missing Fields. Failed to Create Invoice."
	msgMissingFieldsUpdateInvoice = "Missing Fields. Failed to Update Invoice."
	msgDBCreateInvoice            = "Database Error: Failed to Create Invoice."
	msgDBUpdateInvoice            = "Database Error: Failed to Update Invoice."
	msgDBDeleteInvoice            = "Database Error: Failed to Delete Invoice."
	msgDeletedInvoice             = "Deleted Invoice."
)

// InvoiceStore define las operaciones de persistencia de facturas
type InvoiceStore interface {
	Insert(ctx context.Context, input *models.InvoiceInput, date string) (*models.Invoice, error)
	Update(ctx context.Context, id uuid.UUID, input *models.InvoiceInput) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context) ([]models.Invoice, error)
}

// CustomerReader define la lectura de clientes que necesita este servicio
type CustomerReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

// ViewCache define la invalidación de vistas cacheadas
type ViewCache interface {
	Invalidate(ctx context.Context, path string)
}

// InvoiceMailer define la notificación por email al crear una factura
type InvoiceMailer interface {
	SendInvoiceCreatedEmail(invoice *models.Invoice, customer *models.Customer) error
}

// InvoiceService maneja las mutaciones de facturas: validar, persistir con
// una sola sentencia SQL, invalidar la vista y redirigir
type InvoiceService struct {
	invoices  InvoiceStore
	customers CustomerReader
	cache     ViewCache
	mailer    InvoiceMailer
	validator *validation.Validator
	logger    *logrus.Logger
}

// NewInvoiceService crea una nueva instancia del servicio
func NewInvoiceService(invoices InvoiceStore, customers CustomerReader, cache ViewCache, mailer InvoiceMailer, logger *logrus.Logger) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		customers: customers,
		cache:     cache,
		mailer:    mailer,
		validator: validation.New(),
		logger:    logger,
	}
}

// CreateInvoice valida el formulario, inserta la factura con fecha del
// servidor y redirige al listado
func (s *InvoiceService) CreateInvoice(ctx context.Context, prev models.State, form url.Values) models.MutationResult {
	input, fieldErrors := s.validator.ParseInvoice(form)
	if fieldErrors != nil {
		return models.FailWithErrors(fieldErrors, msgMissingFieldsCreateInvoice)
	}

	// Fecha asignada por el servidor, inmutable después
	date := time.Now().Format("2006-01-02")

	invoice, err := s.invoices.Insert(ctx, input, date)
	if err != nil {
		s.logger.WithError(err).Error("Error creating invoice")
		return models.FailWithMessage(msgDBCreateInvoice)
	}

	s.logger.WithFields(logrus.Fields{
		"invoice_id":  invoice.ID,
		"customer_id": invoice.CustomerID,
		"amount":      invoice.Amount,
		"status":      invoice.Status,
	}).Info("Invoice created successfully")

	s.notifyCustomer(ctx, invoice)

	s.cache.Invalidate(ctx, PathDashboardInvoices)
	return models.RedirectTo(PathDashboardInvoices)
}

// UpdateInvoice valida el formulario y actualiza customer_id, amount y
// status de la factura indicada
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, prev models.State, form url.Values) models.MutationResult {
	input, fieldErrors := s.validator.ParseInvoice(form)
	if fieldErrors != nil {
		return models.FailWithErrors(fieldErrors, msgMissingFieldsUpdateInvoice)
	}

	invoiceID, err := uuid.Parse(id)
	if err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Invalid invoice id")
		return models.FailWithMessage(msgDBUpdateInvoice)
	}

	if err := s.invoices.Update(ctx, invoiceID, input); err != nil {
		s.logger.WithError(err).WithField("invoice_id", invoiceID).Error("Error updating invoice")
		return models.FailWithMessage(msgDBUpdateInvoice)
	}

	s.logger.WithField("invoice_id", invoiceID).Info("Invoice updated successfully")

	s.cache.Invalidate(ctx, PathDashboardInvoices)
	return models.RedirectTo(PathDashboardInvoices)
}

// DeleteInvoice elimina una factura sin validación previa y retorna el
// mensaje directamente: el caller permanece en la vista actual.
// Un id inexistente sigue reportando éxito.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) models.State {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Invalid invoice id")
		return models.State{Message: msgDBDeleteInvoice}
	}

	if err := s.invoices.Delete(ctx, invoiceID); err != nil {
		s.logger.WithError(err).WithField("invoice_id", invoiceID).Error("Error deleting invoice")
		return models.State{Message: msgDBDeleteInvoice}
	}

	s.logger.WithField("invoice_id", invoiceID).Info("Invoice deleted")

	s.cache.Invalidate(ctx, PathDashboardInvoices)
	return models.State{Message: msgDeletedInvoice}
}

// GetInvoice obtiene una factura para el formulario de edición
func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*models.Invoice, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}

	return s.invoices.GetByID(ctx, invoiceID)
}

// ListInvoices obtiene el listado de facturas con su cliente
func (s *InvoiceService) ListInvoices(ctx context.Context) (*models.InvoiceListResponse, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, err
	}

	return &models.InvoiceListResponse{
		Items: invoices,
		Total: len(invoices),
	}, nil
}

// notifyCustomer envía la notificación de factura creada si el mailer está
// configurado. El fallo del envío se registra y no afecta la mutación.
func (s *InvoiceService) notifyCustomer(ctx context.Context, invoice *models.Invoice) {
	if s.mailer == nil {
		return
	}

	customer, err := s.customers.GetByID(ctx, invoice.CustomerID)
	if err != nil {
		s.logger.WithError(err).WithField("customer_id", invoice.CustomerID).Warn("Could not load customer for invoice email")
		return
	}

	if err := s.mailer.SendInvoiceCreatedEmail(invoice, customer); err != nil {
		s.logger.WithError(err).WithField("invoice_id", invoice.ID).Warn("Could not send invoice email")
	}
}

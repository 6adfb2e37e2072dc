package services

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/hypernova-labs/dashboard-service/internal/database"
	"github.com/hypernova-labs/dashboard-service/internal/models"
)

type insertedInvoice struct {
	Input models.InvoiceInput
	Date  string
}

type updatedInvoice struct {
	ID    uuid.UUID
	Input models.InvoiceInput
}

type mockInvoiceStore struct {
	Inserted   []insertedInvoice
	Updated    []updatedInvoice
	DeletedIDs []uuid.UUID
	Invoices   []models.Invoice

	InsertErr error
	UpdateErr error
	DeleteErr error
	GetErr    error
	ListErr   error
}

func (m *mockInvoiceStore) Insert(ctx context.Context, input *models.InvoiceInput, date string) (*models.Invoice, error) {
	if m.InsertErr != nil {
		return nil, m.InsertErr
	}
	m.Inserted = append(m.Inserted, insertedInvoice{Input: *input, Date: date})
	customerID, _ := uuid.Parse(input.CustomerID)
	return &models.Invoice{
		ID:         uuid.New(),
		CustomerID: customerID,
		Amount:     input.AmountCents,
		Status:     input.Status,
		Date:       date,
	}, nil
}

func (m *mockInvoiceStore) Update(ctx context.Context, id uuid.UUID, input *models.InvoiceInput) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Updated = append(m.Updated, updatedInvoice{ID: id, Input: *input})
	return nil
}

func (m *mockInvoiceStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.DeletedIDs = append(m.DeletedIDs, id)
	return nil
}

func (m *mockInvoiceStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for i := range m.Invoices {
		if m.Invoices[i].ID == id {
			return &m.Invoices[i], nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *mockInvoiceStore) List(ctx context.Context) ([]models.Invoice, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Invoices, nil
}

type updatedCustomer struct {
	ID    uuid.UUID
	Input models.CustomerInput
}

type mockCustomerStore struct {
	Inserted  []models.CustomerInput
	Updated   []updatedCustomer
	Customers []models.Customer

	InsertErr error
	UpdateErr error
	GetErr    error
	ListErr   error
}

func (m *mockCustomerStore) Insert(ctx context.Context, input *models.CustomerInput) (*models.Customer, error) {
	if m.InsertErr != nil {
		return nil, m.InsertErr
	}
	m.Inserted = append(m.Inserted, *input)
	return &models.Customer{
		ID:       uuid.New(),
		Name:     input.Name,
		Email:    input.Email,
		ImageURL: models.DefaultCustomerImageURL,
	}, nil
}

func (m *mockCustomerStore) Update(ctx context.Context, id uuid.UUID, input *models.CustomerInput) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.Updated = append(m.Updated, updatedCustomer{ID: id, Input: *input})
	return nil
}

func (m *mockCustomerStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for i := range m.Customers {
		if m.Customers[i].ID == id {
			return &m.Customers[i], nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *mockCustomerStore) List(ctx context.Context) ([]models.Customer, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Customers, nil
}

type mockViewCache struct {
	InvalidatedPaths []string
}

func (m *mockViewCache) Invalidate(ctx context.Context, path string) {
	m.InvalidatedPaths = append(m.InvalidatedPaths, path)
}

type sentEmail struct {
	Invoice  *models.Invoice
	Customer *models.Customer
}

type mockMailer struct {
	Sent    []sentEmail
	SendErr error
}

func (m *mockMailer) SendInvoiceCreatedEmail(invoice *models.Invoice, customer *models.Customer) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Sent = append(m.Sent, sentEmail{Invoice: invoice, Customer: customer})
	return nil
}

type mockProvider struct {
	Token string
	Err   error

	Strategy string
	Form     url.Values
}

func (m *mockProvider) SignIn(ctx context.Context, strategy string, form url.Values) (string, error) {
	m.Strategy = strategy
	m.Form = form
	if m.Err != nil {
		return "", m.Err
	}
	return m.Token, nil
}

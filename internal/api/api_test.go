package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hypernova-labs/dashboard-service/internal/config"
	"github.com/hypernova-labs/dashboard-service/internal/database"
	"github.com/hypernova-labs/dashboard-service/internal/models"
	"github.com/hypernova-labs/dashboard-service/internal/services"
	"github.com/sirupsen/logrus"
)

type stubInvoiceStore struct {
	Invoices []models.Invoice
	GetErr   error
}

func (s *stubInvoiceStore) Insert(ctx context.Context, input *models.InvoiceInput, date string) (*models.Invoice, error) {
	return nil, errors.New("not implemented")
}

func (s *stubInvoiceStore) Update(ctx context.Context, id uuid.UUID, input *models.InvoiceInput) error {
	return errors.New("not implemented")
}

func (s *stubInvoiceStore) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.New("not implemented")
}

func (s *stubInvoiceStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	for i := range s.Invoices {
		if s.Invoices[i].ID == id {
			return &s.Invoices[i], nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *stubInvoiceStore) List(ctx context.Context) ([]models.Invoice, error) {
	return s.Invoices, nil
}

type stubCustomerReader struct{}

func (s *stubCustomerReader) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return nil, database.ErrNotFound
}

type stubCache struct{}

func (s *stubCache) Invalidate(ctx context.Context, path string) {}

func newTestRouter(store *stubInvoiceStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	invoiceService := services.NewInvoiceService(store, &stubCustomerReader{}, &stubCache{}, nil, logger)
	apiHandler := NewAPI(invoiceService, nil, nil, nil, config.SessionConfig{}, logger)

	r := gin.New()
	r.GET("/dashboard/invoices/:id", apiHandler.GetInvoice)
	return r
}

func TestAPI_GetInvoice(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		invoice := models.Invoice{ID: uuid.New(), Amount: 4250, Status: models.InvoiceStatusPending, Date: "2026-08-31"}
		router := newTestRouter(&stubInvoiceStore{Invoices: []models.Invoice{invoice}})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices/"+invoice.ID.String(), nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("malformed id is a bad request", func(t *testing.T) {
		router := newTestRouter(&stubInvoiceStore{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing invoice is not found", func(t *testing.T) {
		router := newTestRouter(&stubInvoiceStore{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices/"+uuid.NewString(), nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("store failure is a server error", func(t *testing.T) {
		router := newTestRouter(&stubInvoiceStore{GetErr: errors.New("connection refused")})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices/"+uuid.NewString(), nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

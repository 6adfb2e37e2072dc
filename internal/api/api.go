package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hypernova-labs/dashboard-service/internal/auth"
	"github.com/hypernova-labs/dashboard-service/internal/config"
	"github.com/hypernova-labs/dashboard-service/internal/database"
	"github.com/hypernova-labs/dashboard-service/internal/models"
	"github.com/hypernova-labs/dashboard-service/internal/services"
	"github.com/sirupsen/logrus"
)

// API maneja todos los endpoints del dashboard
type API struct {
	invoiceService  *services.InvoiceService
	customerService *services.CustomerService
	authService     *services.AuthService
	viewCache       *database.ViewCache
	session         config.SessionConfig
	logger          *logrus.Logger
}

// NewAPI crea una nueva instancia de la API
func NewAPI(
	invoiceService *services.InvoiceService,
	customerService *services.CustomerService,
	authService *services.AuthService,
	viewCache *database.ViewCache,
	session config.SessionConfig,
	logger *logrus.Logger,
) *API {
	return &API{
		invoiceService:  invoiceService,
		customerService: customerService,
		authService:     authService,
		viewCache:       viewCache,
		session:         session,
		logger:          logger,
	}
}

// Login autentica las credenciales del formulario. En éxito establece la
// cookie de sesión y redirige al dashboard; credenciales inválidas retornan
// el mensaje para el formulario.
func (api *API) Login(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, models.State{Message: "Invalid form data"})
		return
	}

	token, message, err := api.authService.Authenticate(c.Request.Context(), "", c.Request.PostForm)
	if err != nil {
		// Error no relacionado con autenticación: lo maneja el boundary
		api.logger.WithError(err).Error("Unexpected error during sign-in")
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	if message != "" {
		c.JSON(http.StatusUnauthorized, models.State{Message: message})
		return
	}

	c.SetCookie(api.session.CookieName, token, int(api.session.Expiry.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, services.PathDashboardInvoices)
}

// Logout elimina la cookie de sesión
func (api *API) Logout(c *gin.Context) {
	c.SetCookie(api.session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

// SessionAuthMiddleware retorna middleware que valida la cookie de sesión
func (api *API) SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(api.session.CookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.State{Message: "Unauthorized"})
			return
		}

		claims, err := auth.ValidateSessionToken(token, api.session.Secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.State{Message: "Unauthorized"})
			return
		}

		// Usuario disponible para los handlers
		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}

// GetInvoices retorna el listado de facturas, sirviendo la vista cacheada
// cuando está vigente
func (api *API) GetInvoices(c *gin.Context) {
	if payload, ok := api.viewCache.Get(c.Request.Context(), services.PathDashboardInvoices); ok {
		c.Data(http.StatusOK, "application/json", []byte(payload))
		return
	}

	response, err := api.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		api.logger.WithError(err).Error("Error listing invoices")
		c.JSON(http.StatusInternalServerError, models.State{Message: "Error retrieving invoices"})
		return
	}

	api.cacheAndSend(c, services.PathDashboardInvoices, response)
}

// GetInvoice retorna una factura para el formulario de edición
func (api *API) GetInvoice(c *gin.Context) {
	id := c.Param("id")
	if err := uuid.Validate(id); err != nil {
		c.JSON(http.StatusBadRequest, models.State{Message: "Invalid invoice id"})
		return
	}

	invoice, err := api.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.State{Message: "Invoice not found"})
			return
		}
		api.logger.WithError(err).Error("Error getting invoice")
		c.JSON(http.StatusInternalServerError, models.State{Message: "Error retrieving invoice"})
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// CreateInvoice procesa el formulario de creación de factura
func (api *API) CreateInvoice(c *gin.Context) {
	form, ok := api.parseForm(c)
	if !ok {
		return
	}

	result := api.invoiceService.CreateInvoice(c.Request.Context(), models.State{}, form)
	api.respondMutation(c, result)
}

// UpdateInvoice procesa el formulario de edición de factura
func (api *API) UpdateInvoice(c *gin.Context) {
	form, ok := api.parseForm(c)
	if !ok {
		return
	}

	result := api.invoiceService.UpdateInvoice(c.Request.Context(), c.Param("id"), models.State{}, form)
	api.respondMutation(c, result)
}

// DeleteInvoice elimina una factura. No redirige: el caller permanece en la
// vista actual y recibe el mensaje.
func (api *API) DeleteInvoice(c *gin.Context) {
	state := api.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, state)
}

// GetCustomers retorna el listado de clientes, sirviendo la vista cacheada
// cuando está vigente
func (api *API) GetCustomers(c *gin.Context) {
	if payload, ok := api.viewCache.Get(c.Request.Context(), services.PathDashboardCustomers); ok {
		c.Data(http.StatusOK, "application/json", []byte(payload))
		return
	}

	response, err := api.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		api.logger.WithError(err).Error("Error listing customers")
		c.JSON(http.StatusInternalServerError, models.State{Message: "Error retrieving customers"})
		return
	}

	api.cacheAndSend(c, services.PathDashboardCustomers, response)
}

// GetCustomer retorna un cliente para el formulario de edición
func (api *API) GetCustomer(c *gin.Context) {
	id := c.Param("id")
	if err := uuid.Validate(id); err != nil {
		c.JSON(http.StatusBadRequest, models.State{Message: "Invalid customer id"})
		return
	}

	customer, err := api.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.State{Message: "Customer not found"})
			return
		}
		api.logger.WithError(err).Error("Error getting customer")
		c.JSON(http.StatusInternalServerError, models.State{Message: "Error retrieving customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// CreateCustomer procesa el formulario de creación de cliente
func (api *API) CreateCustomer(c *gin.Context) {
	form, ok := api.parseForm(c)
	if !ok {
		return
	}

	result := api.customerService.CreateCustomer(c.Request.Context(), models.State{}, form)
	api.respondMutation(c, result)
}

// UpdateCustomer procesa el formulario de edición de cliente
func (api *API) UpdateCustomer(c *gin.Context) {
	form, ok := api.parseForm(c)
	if !ok {
		return
	}

	result := api.customerService.UpdateCustomer(c.Request.Context(), c.Param("id"), models.State{}, form)
	api.respondMutation(c, result)
}

// parseForm parsea el cuerpo del formulario y retorna los campos crudos
func (api *API) parseForm(c *gin.Context) (url.Values, bool) {
	if err := c.Request.ParseForm(); err != nil {
		api.logger.WithError(err).Error("Error parsing form data")
		c.JSON(http.StatusBadRequest, models.State{Message: "Invalid form data"})
		return nil, false
	}
	return c.Request.PostForm, true
}

// respondMutation traduce el resultado de una mutación a la respuesta HTTP:
// redirect en éxito, estado con errores en fallo
func (api *API) respondMutation(c *gin.Context, result models.MutationResult) {
	if result.Redirected() {
		c.Redirect(http.StatusSeeOther, result.Location)
		return
	}

	c.JSON(http.StatusUnprocessableEntity, result.State)
}

// cacheAndSend serializa la respuesta, la guarda bajo la ruta de la vista y
// la envía
func (api *API) cacheAndSend(c *gin.Context, path string, response interface{}) {
	payload, err := json.Marshal(response)
	if err != nil {
		api.logger.WithError(err).Error("Error encoding response")
		c.JSON(http.StatusInternalServerError, models.State{Message: "Error encoding response"})
		return
	}

	api.viewCache.Put(c.Request.Context(), path, string(payload))
	c.Data(http.StatusOK, "application/json", payload)
}

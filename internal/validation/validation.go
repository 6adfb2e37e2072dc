package validation

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hypernova-labs/dashboard-service/internal/models"
	"github.com/shopspring/decimal"
)

// Mensajes de validación que la capa de presentación muestra junto al campo
const (
	MsgSelectCustomer = "please select a customer"
	MsgAmountTooLow   = "Please enter an amount greater than $0."
	MsgSelectStatus   = "Please select a status"
	MsgNameMissing    = "Please enter a name"
	MsgNameEmpty      = "Name cannot be empty"
	MsgEmailMissing   = "Please enter an email address"
	MsgEmailInvalid   = "Please enter a valid email address"
)

// invoiceForm es el esquema canónico de factura. id y date no se leen del
// formulario: los asigna el servidor.
type invoiceForm struct {
	CustomerID string          `form:"customerId" validate:"required"`
	Amount     decimal.Decimal `form:"amount" validate:"required,gt=0"`
	Status     string          `form:"status" validate:"required,oneof=pending paid"`
}

// customerForm es el esquema canónico de cliente
type customerForm struct {
	Name  string `form:"name" validate:"required,min=1"`
	Email string `form:"email" validate:"required,email"`
}

// Validator valida y coacciona los formularios de factura y cliente.
// La validación es total: se revisan todos los campos y se acumulan todas
// las violaciones, agrupadas por nombre de campo.
type Validator struct {
	validate *validator.Validate
}

// New crea una nueva instancia del validador
func New() *Validator {
	v := validator.New()

	// Reportar errores con el nombre del campo del formulario
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Validar montos decimales como float para las reglas numéricas
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return &Validator{validate: v}
}

// ParseInvoice valida un formulario de factura y retorna el input tipado con
// el monto convertido a centavos enteros, o los errores por campo
func (v *Validator) ParseInvoice(form url.Values) (*models.InvoiceInput, models.FieldErrors) {
	raw := invoiceForm{
		CustomerID: strings.TrimSpace(form.Get("customerId")),
		Status:     strings.TrimSpace(form.Get("status")),
	}

	// Coaccionar el monto; un valor no numérico queda en cero y cae en gt=0
	if s := strings.TrimSpace(form.Get("amount")); s != "" {
		if d, err := decimal.NewFromString(s); err == nil {
			raw.Amount = d
		}
	}

	if fieldErrors := v.collect(raw, form, invoiceMessage); fieldErrors != nil {
		return nil, fieldErrors
	}

	cents := raw.Amount.Mul(decimal.NewFromInt(100)).IntPart()
	if cents <= 0 {
		// Montos positivos menores a un centavo no son facturables
		fieldErrors := models.FieldErrors{}
		fieldErrors.Add("amount", MsgAmountTooLow)
		return nil, fieldErrors
	}

	return &models.InvoiceInput{
		CustomerID:  raw.CustomerID,
		AmountCents: cents,
		Status:      models.InvoiceStatus(raw.Status),
	}, nil
}

// ParseCustomer valida un formulario de cliente y retorna el input tipado
// o los errores por campo
func (v *Validator) ParseCustomer(form url.Values) (*models.CustomerInput, models.FieldErrors) {
	raw := customerForm{
		Name:  strings.TrimSpace(form.Get("name")),
		Email: strings.TrimSpace(form.Get("email")),
	}

	if fieldErrors := v.collect(raw, form, customerMessage); fieldErrors != nil {
		return nil, fieldErrors
	}

	return &models.CustomerInput{
		Name:  raw.Name,
		Email: raw.Email,
	}, nil
}

// collect ejecuta la validación del esquema y agrupa los mensajes por campo
func (v *Validator) collect(schema interface{}, form url.Values, message func(field, tag string, present bool) string) models.FieldErrors {
	err := v.validate.Struct(schema)
	if err == nil {
		return nil
	}

	fieldErrors := models.FieldErrors{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fieldErrors.Add(fe.Field(), message(fe.Field(), fe.Tag(), form.Has(fe.Field())))
		}
	}

	return fieldErrors
}

// invoiceMessage resuelve el mensaje para un campo de factura.
// Ausente e inválido comparten mensaje en este esquema.
func invoiceMessage(field, tag string, present bool) string {
	switch field {
	case "customerId":
		return MsgSelectCustomer
	case "amount":
		return MsgAmountTooLow
	case "status":
		return MsgSelectStatus
	}
	return "Invalid value"
}

// customerMessage resuelve el mensaje para un campo de cliente,
// distinguiendo campo ausente de campo presente pero inválido
func customerMessage(field, tag string, present bool) string {
	switch field {
	case "name":
		if !present {
			return MsgNameMissing
		}
		return MsgNameEmpty
	case "email":
		if !present {
			return MsgEmailMissing
		}
		return MsgEmailInvalid
	}
	return "Invalid value"
}

package auth

import "fmt"

// ErrorType representa la variante de error reportada por el proveedor de
// identidad. Es un conjunto cerrado: cualquier otro fallo se propaga como
// error normal al boundary del framework.
type ErrorType string

const (
	// ErrorTypeCredentialsSignin indica credenciales inválidas
	ErrorTypeCredentialsSignin ErrorType = "CredentialsSignin"

	// ErrorTypeCallbackRoute indica un fallo del proveedor durante el sign-in
	ErrorTypeCallbackRoute ErrorType = "CallbackRouteError"
)

// Error representa un error de autenticación del proveedor
type Error struct {
	Type ErrorType
	Err  error
}

// Error implementa la interfaz error
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth error (%s): %v", e.Type, e.Err)
	}
	return fmt.Sprintf("auth error (%s)", e.Type)
}

// Unwrap expone el error subyacente
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError crea un nuevo error de autenticación
func NewError(errType ErrorType, err error) *Error {
	return &Error{Type: errType, Err: err}
}

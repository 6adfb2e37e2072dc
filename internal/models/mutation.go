package models

// FieldErrors agrupa los mensajes de validación por nombre de campo,
// en el orden en que se detectaron
type FieldErrors map[string][]string

// Add agrega un mensaje de error para un campo
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// State representa el estado de render que consume la capa de presentación
// tras una mutación fallida (o tras un delete, que no redirige)
type State struct {
	Errors  FieldErrors `json:"errors,omitempty"`
	Message string      `json:"message,omitempty"`
}

// MutationResult representa el resultado de una mutación como unión etiquetada:
// o bien un redirect a una ruta lógica, o bien un State con errores/mensaje.
// El caller debe manejar ambas variantes explícitamente.
type MutationResult struct {
	Location string
	State    State
}

// Redirected retorna true si la mutación terminó en redirect
func (r MutationResult) Redirected() bool {
	return r.Location != ""
}

// RedirectTo construye el resultado de éxito con la ruta de navegación
func RedirectTo(location string) MutationResult {
	return MutationResult{Location: location}
}

// FailWithErrors construye el resultado de fallo de validación
func FailWithErrors(errors FieldErrors, message string) MutationResult {
	return MutationResult{State: State{Errors: errors, Message: message}}
}

// FailWithMessage construye el resultado de fallo con mensaje general
func FailWithMessage(message string) MutationResult {
	return MutationResult{State: State{Message: message}}
}

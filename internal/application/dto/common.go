package dto

// MessageResponse respuesta de operaciones que solo devuelven un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP: un único mensaje legible.
type ErrorResponse struct {
	Error string `json:"error"`
}

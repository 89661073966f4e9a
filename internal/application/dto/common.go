package dto

import "time"

// Envelope es la respuesta uniforme de todos los endpoints:
// success/data en el camino feliz, error + hints de recuperación en fallas.
type Envelope struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorBody  `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// ErrorBody cuerpo de error dentro del envelope.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Metadata metadatos de la respuesta. NextStep y Recommendation guían al
// cliente tras un error (ej. reintentar, corregir datos).
type Metadata struct {
	Timestamp      time.Time `json:"timestamp"`
	NextStep       string    `json:"nextStep,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
}

// OK construye un envelope exitoso.
func OK(data interface{}) Envelope {
	return Envelope{
		Success:  true,
		Data:     data,
		Metadata: Metadata{Timestamp: time.Now().UTC()},
	}
}

// Fail construye un envelope de error.
func Fail(message, code, nextStep, recommendation string) Envelope {
	return Envelope{
		Success: false,
		Error:   &ErrorBody{Message: message, Code: code},
		Metadata: Metadata{
			Timestamp:      time.Now().UTC(),
			NextStep:       nextStep,
			Recommendation: recommendation,
		},
	}
}

// Pagination metadatos de página en listados.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit,omitempty"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

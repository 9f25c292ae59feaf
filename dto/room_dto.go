package dto

import "rooms-api/domain"

// CreateRoomRequest representa el request para publicar una habitación
// Esto es lo que el frontend envía desde el formulario de publicación
type CreateRoomRequest struct {
	Title             string   `json:"title"`
	Rent              float64  `json:"rent"`
	Deposit           float64  `json:"deposit"`
	Location          string   `json:"location"`
	Address           string   `json:"address"`
	FlatNumber        string   `json:"flatNumber"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	AccommodationType string   `json:"accommodationType"`
	HostelGender      string   `json:"hostelGender"`
	RoomType          string   `json:"roomType"`
	AvailabilityDate  string   `json:"availabilityDate"`
	Description       string   `json:"description"`
	Amenities         []string `json:"amenities"`
	Images            []string `json:"images"`
	ContactNumber     string   `json:"contactNumber"`
	PostedBy          string   `json:"postedBy"`
}

// UpdateRoomRequest representa el request para actualizar una publicación
// Todos los campos son opcionales: lo que no viene, no se toca
// Los campos de moderación NO se pueden tocar por acá
type UpdateRoomRequest struct {
	Title            *string  `json:"title,omitempty"`
	Rent             *float64 `json:"rent,omitempty"`
	Deposit          *float64 `json:"deposit,omitempty"`
	Location         *string  `json:"location,omitempty"`
	Address          *string  `json:"address,omitempty"`
	FlatNumber       *string  `json:"flatNumber,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	RoomType         *string  `json:"roomType,omitempty"`
	AvailabilityDate *string  `json:"availabilityDate,omitempty"`
	Availability     *bool    `json:"availability,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Amenities        []string `json:"amenities,omitempty"`
	Images           []string `json:"images,omitempty"`
	ContactNumber    *string  `json:"contactNumber,omitempty"`
}

// FieldError representa un error de validación sobre un campo puntual
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse es la respuesta cuando falla la validación
// Devuelve la lista completa de errores, no solo el primero
type ValidationErrorResponse struct {
	Success bool         `json:"success"`
	Errors  []FieldError `json:"errors"`
}

// ErrorResponse representa una respuesta de error genérica
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Pagination es el bloque de paginación de los listados
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// SuccessResponse representa una respuesta exitosa
type SuccessResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ModerationCounts son los contadores del dashboard del agente
type ModerationCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// AgentRoomsResponse es la respuesta del listado de moderación
// Incluye todas las publicaciones (en cualquier estado) más los contadores
type AgentRoomsResponse struct {
	Success bool             `json:"success"`
	Data    []domain.Room    `json:"data"`
	Counts  ModerationCounts `json:"counts"`
}

package dto

import "rooms-api/domain"

// SearchRequest representa los criterios de búsqueda de publicaciones
// Location matchea por substring contra la ubicación; Term además contra la dirección
type SearchRequest struct {
	Location          string  `json:"location" form:"location"`
	Term              string  `json:"term" form:"term"`
	MaxRent           float64 `json:"max_rent" form:"max_rent"`
	RoomType          string  `json:"room_type" form:"room_type"`
	AccommodationType string  `json:"accommodation_type" form:"accommodation_type"`
	HostelGender      string  `json:"hostel_gender" form:"hostel_gender"`
	Page              int     `json:"page" form:"page"`
	PageSize          int     `json:"page_size" form:"page_size"`
}

// SearchResponse representa la respuesta de una búsqueda de publicaciones
type SearchResponse struct {
	Success      bool          `json:"success"`
	Results      []domain.Room `json:"results"`
	TotalResults int           `json:"total_results"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
	TotalPages   int           `json:"total_pages"`
}

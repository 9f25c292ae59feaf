package services

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"strings"
	"time"

	"rooms-api/domain"
	"rooms-api/dto"
	"rooms-api/repositories"
)

// SearchService define la interfaz del motor de búsqueda de publicaciones
type SearchService interface {
	Search(ctx context.Context, request dto.SearchRequest) (*dto.SearchResponse, error)
}

// searchService implementa SearchService
// Lee la secuencia de publicaciones aprobadas y aplica los predicados
// de matching en orden de inserción; el resultado se cachea
type searchService struct {
	roomRepo  repositories.RoomRepository
	cacheRepo repositories.CacheRepository
}

// NewSearchService crea una nueva instancia de SearchService
func NewSearchService(roomRepo repositories.RoomRepository, cacheRepo repositories.CacheRepository) SearchService {
	return &searchService{
		roomRepo:  roomRepo,
		cacheRepo: cacheRepo,
	}
}

// generateCacheKey genera una clave de caché basada en los parámetros del request
func (s *searchService) generateCacheKey(request dto.SearchRequest) string {
	keyParts := []string{
		fmt.Sprintf("location:%s", strings.ToLower(request.Location)),
		fmt.Sprintf("term:%s", strings.ToLower(request.Term)),
		fmt.Sprintf("max_rent:%.2f", request.MaxRent),
		fmt.Sprintf("room_type:%s", normalizeRoomType(request.RoomType)),
		fmt.Sprintf("accommodation_type:%s", request.AccommodationType),
		fmt.Sprintf("hostel_gender:%s", request.HostelGender),
		fmt.Sprintf("page:%d", request.Page),
		fmt.Sprintf("page_size:%d", request.PageSize),
	}

	keyString := strings.Join(keyParts, "|")
	hash := md5.Sum([]byte(keyString))
	return fmt.Sprintf("search:%x", hash)
}

// Search implementa la búsqueda con caché
func (s *searchService) Search(ctx context.Context, request dto.SearchRequest) (*dto.SearchResponse, error) {
	// Validar y aplicar valores por defecto
	if err := s.validateSearchRequest(&request); err != nil {
		return nil, err
	}

	// Generar clave de caché (después de aplicar valores por defecto)
	cacheKey := s.generateCacheKey(request)

	// 1. Consultar caché primero
	rooms, total, found := s.cacheRepo.Get(cacheKey)
	if found {
		log.Printf("Search: Cache HIT for key=%s", cacheKey)
		return buildSearchResponse(rooms, total, request), nil
	}

	log.Printf("Search: Cache MISS for key=%s, filtering approved rooms", cacheKey)

	// 2. Si no hay hit, leer la secuencia de aprobadas y filtrar
	// Solo las publicaciones aprobadas son elegibles para búsquedas públicas:
	// pending y rejected quedan afuera sin importar el resto de los criterios
	approved, err := s.roomRepo.GetApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching approved rooms: %w", err)
	}

	matched := []domain.Room{}
	for _, room := range approved {
		if matchesCriteria(&room, request) {
			matched = append(matched, room)
		}
	}

	log.Printf("Search: %d of %d approved rooms matched", len(matched), len(approved))

	// 3. Paginar el resultado (el orden de inserción se preserva)
	totalMatched := len(matched)
	start := (request.Page - 1) * request.PageSize
	if start > totalMatched {
		start = totalMatched
	}
	end := start + request.PageSize
	if end > totalMatched {
		end = totalMatched
	}
	pageRooms := matched[start:end]

	// 4. Guardar la página en caché
	s.cacheRepo.Set(cacheKey, pageRooms, totalMatched, 10*time.Minute)

	return buildSearchResponse(pageRooms, totalMatched, request), nil
}

// buildSearchResponse arma la respuesta con el bloque de paginación
func buildSearchResponse(rooms []domain.Room, total int, request dto.SearchRequest) *dto.SearchResponse {
	totalPages := (total + request.PageSize - 1) / request.PageSize // Redondeo hacia arriba

	return &dto.SearchResponse{
		Success:      true,
		Results:      rooms,
		TotalResults: total,
		Page:         request.Page,
		PageSize:     request.PageSize,
		TotalPages:   totalPages,
	}
}

// validateSearchRequest valida los criterios y aplica valores por defecto
func (s *searchService) validateSearchRequest(request *dto.SearchRequest) error {
	// Aplicar valores por defecto
	if request.Page < 1 {
		request.Page = 1
	}
	if request.PageSize < 1 {
		request.PageSize = 10
	}

	var errs []dto.FieldError

	if request.MaxRent < 0 {
		errs = append(errs, dto.FieldError{Field: "max_rent", Message: "max_rent cannot be negative"})
	}

	if request.PageSize > 100 {
		errs = append(errs, dto.FieldError{Field: "page_size", Message: "page_size must be <= 100"})
	}

	if request.AccommodationType != "" && !domain.ValidAccommodationType(domain.AccommodationType(request.AccommodationType)) {
		errs = append(errs, dto.FieldError{Field: "accommodation_type", Message: "accommodation_type must be Room, Hostel or PG"})
	}

	// Buscar hostels SIN elegir género es error de validación, no un comodín
	if domain.AccommodationType(request.AccommodationType) == domain.AccommodationHostel {
		if !domain.ValidHostelGender(domain.HostelGender(request.HostelGender)) {
			errs = append(errs, dto.FieldError{Field: "hostel_gender", Message: "hostel_gender (Boys or Girls) is required when searching hostels"})
		}
	}

	// La búsqueda general necesita al menos un término que discrimine:
	// ubicación o término libre (los formularios por categoría ya traen el tipo)
	if request.AccommodationType == "" &&
		strings.TrimSpace(request.Location) == "" &&
		strings.TrimSpace(request.Term) == "" {
		errs = append(errs, dto.FieldError{Field: "location", Message: "Enter at least a location or search term"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// matchesCriteria aplica todos los predicados de matching sobre una publicación
// Una publicación entra al resultado solo si satisface TODOS los criterios presentes
func matchesCriteria(room *domain.Room, request dto.SearchRequest) bool {
	return matchesLocation(room, request.Location) &&
		matchesTerm(room, request.Term) &&
		matchesMaxRent(room, request.MaxRent) &&
		matchesRoomType(room, request.RoomType) &&
		matchesAccommodation(room, request.AccommodationType, request.HostelGender)
}

// matchesLocation matchea por substring, case-insensitive, contra la ubicación
func matchesLocation(room *domain.Room, location string) bool {
	location = strings.TrimSpace(location)
	if location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(room.Location), strings.ToLower(location))
}

// matchesTerm matchea el término libre contra ubicación O dirección
// (es lo que usa la búsqueda del mapa)
func matchesTerm(room *domain.Room, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(room.Location), lower) ||
		strings.Contains(strings.ToLower(room.Address), lower)
}

// matchesMaxRent compara el alquiler contra el tope
// MaxRent en cero significa "sin filtro", no "gratis"
func matchesMaxRent(room *domain.Room, maxRent float64) bool {
	if maxRent <= 0 {
		return true
	}
	return room.Rent <= maxRent
}

// matchesRoomType compara el tipo de habitación normalizado
// "1 BHK" del formulario matchea "1bhk" guardado
func matchesRoomType(room *domain.Room, roomType string) bool {
	normalized := normalizeRoomType(roomType)
	if normalized == "" {
		return true
	}
	return normalizeRoomType(room.RoomType) == normalized
}

// matchesAccommodation compara tipo de alojamiento y género del hostel (igualdad exacta)
func matchesAccommodation(room *domain.Room, accommodationType, hostelGender string) bool {
	if accommodationType == "" {
		return true
	}
	if room.AccommodationType != domain.AccommodationType(accommodationType) {
		return false
	}
	if domain.AccommodationType(accommodationType) == domain.AccommodationHostel {
		return room.HostelGender == domain.HostelGender(hostelGender)
	}
	return true
}

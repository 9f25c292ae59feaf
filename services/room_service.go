package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"rooms-api/domain"
	"rooms-api/dto"
	"rooms-api/repositories"
	"rooms-api/utils"
)

// EventPublisher publica eventos de publicaciones hacia RabbitMQ
// El consumidor los usa para invalidar el caché de búsquedas
type EventPublisher interface {
	Publish(action, roomID string) error
}

// ListRoomsParams son los parámetros del listado público paginado
type ListRoomsParams struct {
	Page         int
	Limit        int
	MinPrice     *float64
	MaxPrice     *float64
	Availability *bool
}

// RoomService define la interfaz del servicio de publicaciones
type RoomService interface {
	CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*domain.Room, error)
	GetRooms(ctx context.Context, params ListRoomsParams) ([]domain.Room, *dto.Pagination, error)
	GetRoomsByLocation(ctx context.Context, location string, page, limit int) ([]domain.Room, *dto.Pagination, error)
	GetRoomByID(ctx context.Context, id string) (*domain.Room, error)
	GetNearby(ctx context.Context, latitude, longitude *float64, radiusKm float64) ([]domain.Room, error)
	UpdateRoom(ctx context.Context, id string, req dto.UpdateRoomRequest) (*domain.Room, error)
}

// roomService es la implementación real del servicio
type roomService struct {
	repo      repositories.RoomRepository
	publisher EventPublisher
}

// NewRoomService crea una nueva instancia del servicio
func NewRoomService(repo repositories.RoomRepository, publisher EventPublisher) RoomService {
	return &roomService{repo: repo, publisher: publisher}
}

// CreateRoom valida y guarda una nueva publicación
// Toda publicación nueva arranca en estado pending hasta que un agente la revise
func (s *roomService) CreateRoom(ctx context.Context, req dto.CreateRoomRequest) (*domain.Room, error) {
	// 1. Validar todos los campos juntos (se devuelve la lista completa)
	if errs := validateCreateRoom(req); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	// 2. Aplicar valores por defecto
	accommodationType := domain.AccommodationType(req.AccommodationType)
	if req.AccommodationType == "" {
		accommodationType = domain.AccommodationRoom
	}

	postedBy := strings.TrimSpace(req.PostedBy)
	if postedBy == "" {
		postedBy = "Anonymous"
	}

	room := &domain.Room{
		Title:             strings.TrimSpace(req.Title),
		Rent:              req.Rent,
		Deposit:           req.Deposit,
		Location:          strings.TrimSpace(req.Location),
		Address:           strings.TrimSpace(req.Address),
		FlatNumber:        strings.TrimSpace(req.FlatNumber),
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		AccommodationType: accommodationType,
		RoomType:          normalizeRoomType(req.RoomType),
		AvailabilityDate:  req.AvailabilityDate,
		Availability:      true,
		Description:       strings.TrimSpace(req.Description),
		Amenities:         req.Amenities,
		Images:            req.Images,
		ContactNumber:     req.ContactNumber,
		PostedBy:          postedBy,
		Status:            domain.StatusPending, // Siempre pending: el cliente no elige su estado
	}

	if accommodationType == domain.AccommodationHostel {
		room.HostelGender = domain.HostelGender(req.HostelGender)
	}

	if room.Amenities == nil {
		room.Amenities = []string{}
	}
	if room.Images == nil {
		room.Images = []string{}
	}

	// 3. Derivar el punto GeoJSON si vinieron coordenadas
	if req.Latitude != nil && req.Longitude != nil {
		room.Geo = &domain.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{*req.Longitude, *req.Latitude},
		}
	}

	// 4. Guardar en la base de datos
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}

	log.Printf("Room created: id=%s, location=%s, postedBy=%s", room.ID.Hex(), room.Location, room.PostedBy)

	// 5. Avisar por la cola (invalida el caché de búsquedas)
	s.publish("create", room.ID.Hex())

	return room, nil
}

// GetRooms devuelve el listado público paginado (solo aprobadas)
func (s *roomService) GetRooms(ctx context.Context, params ListRoomsParams) ([]domain.Room, *dto.Pagination, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 10
	}

	filter := repositories.RoomFilter{
		MinPrice:     params.MinPrice,
		MaxPrice:     params.MaxPrice,
		Availability: params.Availability,
		ApprovedOnly: true,
	}

	rooms, total, err := s.repo.GetPaginated(ctx, filter, params.Page, params.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching rooms: %w", err)
	}

	return rooms, buildPagination(params.Page, params.Limit, total), nil
}

// GetRoomsByLocation busca por ubicación, paginado (solo aprobadas)
func (s *roomService) GetRoomsByLocation(ctx context.Context, location string, page, limit int) ([]domain.Room, *dto.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	rooms, total, err := s.repo.GetByLocation(ctx, location, true, page, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching rooms by location: %w", err)
	}

	return rooms, buildPagination(page, limit, total), nil
}

// GetRoomByID busca una publicación puntual
func (s *roomService) GetRoomByID(ctx context.Context, id string) (*domain.Room, error) {
	return s.repo.GetByID(ctx, id)
}

// GetNearby busca publicaciones aprobadas dentro de un radio
// Latitud y longitud son OBLIGATORIAS: si falta alguna es error de validación,
// nunca se asume coordenada cero
func (s *roomService) GetNearby(ctx context.Context, latitude, longitude *float64, radiusKm float64) ([]domain.Room, error) {
	var errs []dto.FieldError
	if latitude == nil {
		errs = append(errs, dto.FieldError{Field: "latitude", Message: "Latitude is required"})
	}
	if longitude == nil {
		errs = append(errs, dto.FieldError{Field: "longitude", Message: "Longitude is required"})
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	if !utils.IsValidCoordinates(*latitude, *longitude) {
		return nil, NewValidationError(dto.FieldError{
			Field:   "coordinates",
			Message: "Coordinates out of range",
		})
	}

	if radiusKm <= 0 {
		radiusKm = 10 // Radio por defecto
	}

	rooms, err := s.repo.GetNearby(ctx, *latitude, *longitude, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("error searching nearby rooms: %w", err)
	}

	// Anotar cada resultado con la distancia real (Haversine) al punto de consulta
	for i := range rooms {
		if rooms[i].Latitude != nil && rooms[i].Longitude != nil {
			rooms[i].DistanceKm = utils.Haversine(*latitude, *longitude, *rooms[i].Latitude, *rooms[i].Longitude)
		}
	}

	log.Printf("Nearby search: lat=%.4f, lon=%.4f, radius=%.1fkm, results=%d", *latitude, *longitude, radiusKm, len(rooms))

	return rooms, nil
}

// UpdateRoom actualiza los campos editables de una publicación
// Los campos de moderación (status, approvedBy, etc.) no se tocan por acá
func (s *roomService) UpdateRoom(ctx context.Context, id string, req dto.UpdateRoomRequest) (*domain.Room, error) {
	// 1. Verificar que la publicación existe
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. Aplicar solo los campos que vinieron
	if req.Title != nil {
		room.Title = strings.TrimSpace(*req.Title)
	}
	if req.Rent != nil {
		room.Rent = *req.Rent
	}
	if req.Deposit != nil {
		room.Deposit = *req.Deposit
	}
	if req.Location != nil {
		room.Location = strings.TrimSpace(*req.Location)
	}
	if req.Address != nil {
		room.Address = strings.TrimSpace(*req.Address)
	}
	if req.FlatNumber != nil {
		room.FlatNumber = strings.TrimSpace(*req.FlatNumber)
	}
	if req.Latitude != nil {
		room.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		room.Longitude = req.Longitude
	}
	if req.RoomType != nil {
		room.RoomType = normalizeRoomType(*req.RoomType)
	}
	if req.AvailabilityDate != nil {
		room.AvailabilityDate = *req.AvailabilityDate
	}
	if req.Availability != nil {
		room.Availability = *req.Availability
	}
	if req.Description != nil {
		room.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amenities != nil {
		room.Amenities = req.Amenities
	}
	if req.Images != nil {
		room.Images = req.Images
	}
	if req.ContactNumber != nil {
		room.ContactNumber = *req.ContactNumber
	}

	// 3. Validar el resultado final
	if errs := validateRoom(room); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	// 4. Re-derivar el punto GeoJSON
	if room.Latitude != nil && room.Longitude != nil {
		room.Geo = &domain.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{*room.Longitude, *room.Latitude},
		}
	}

	// 5. Guardar
	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}

	log.Printf("Room updated: id=%s", room.ID.Hex())

	s.publish("update", room.ID.Hex())

	return room, nil
}

// publish avisa por la cola; si RabbitMQ no está disponible, solo se loguea
// (la publicación ya quedó guardada, el caché expira igual por TTL)
func (s *roomService) publish(action, roomID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(action, roomID); err != nil {
		log.Printf("Error publishing %s event for room %s: %v", action, roomID, err)
	}
}

// buildPagination arma el bloque de paginación {page, limit, total, pages}
func buildPagination(page, limit int, total int64) *dto.Pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return &dto.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// validateCreateRoom valida el request de creación completo
func validateCreateRoom(req dto.CreateRoomRequest) []dto.FieldError {
	var errs []dto.FieldError

	title := strings.TrimSpace(req.Title)
	if title == "" {
		errs = append(errs, dto.FieldError{Field: "title", Message: "Title is required"})
	} else if len(title) > 100 {
		errs = append(errs, dto.FieldError{Field: "title", Message: "Title must be less than 100 characters"})
	}

	if req.Rent < 0 {
		errs = append(errs, dto.FieldError{Field: "rent", Message: "Rent must be a positive number"})
	}
	if req.Deposit < 0 {
		errs = append(errs, dto.FieldError{Field: "deposit", Message: "Deposit must be a positive number"})
	}

	if strings.TrimSpace(req.Location) == "" {
		errs = append(errs, dto.FieldError{Field: "location", Message: "Location is required"})
	}

	errs = append(errs, validateCoordinatePair(req.Latitude, req.Longitude)...)

	if !utils.IsValidPhoneNumber(req.ContactNumber) {
		errs = append(errs, dto.FieldError{Field: "contactNumber", Message: "Contact number must be at least 10 digits"})
	}

	if len(req.Description) > 1000 {
		errs = append(errs, dto.FieldError{Field: "description", Message: "Description must be less than 1000 characters"})
	}

	// Tipo de alojamiento y género del hostel van juntos:
	// hostelGender es obligatorio si y solo si el tipo es Hostel
	if req.AccommodationType != "" && !domain.ValidAccommodationType(domain.AccommodationType(req.AccommodationType)) {
		errs = append(errs, dto.FieldError{Field: "accommodationType", Message: "Accommodation type must be Room, Hostel or PG"})
	}
	if domain.AccommodationType(req.AccommodationType) == domain.AccommodationHostel {
		if !domain.ValidHostelGender(domain.HostelGender(req.HostelGender)) {
			errs = append(errs, dto.FieldError{Field: "hostelGender", Message: "Hostel gender must be Boys or Girls"})
		}
	} else if req.HostelGender != "" {
		errs = append(errs, dto.FieldError{Field: "hostelGender", Message: "Hostel gender only applies to hostels"})
	}

	if req.RoomType != "" && !domain.ValidRoomType(normalizeRoomType(req.RoomType)) {
		errs = append(errs, dto.FieldError{Field: "roomType", Message: "Room type must be single, double, 1bhk, 2bhk or 3bhk"})
	}

	return errs
}

// validateRoom valida una publicación ya armada (se usa en update)
func validateRoom(room *domain.Room) []dto.FieldError {
	var errs []dto.FieldError

	if room.Title == "" {
		errs = append(errs, dto.FieldError{Field: "title", Message: "Title is required"})
	} else if len(room.Title) > 100 {
		errs = append(errs, dto.FieldError{Field: "title", Message: "Title must be less than 100 characters"})
	}

	if room.Rent < 0 {
		errs = append(errs, dto.FieldError{Field: "rent", Message: "Rent must be a positive number"})
	}
	if room.Deposit < 0 {
		errs = append(errs, dto.FieldError{Field: "deposit", Message: "Deposit must be a positive number"})
	}

	if room.Location == "" {
		errs = append(errs, dto.FieldError{Field: "location", Message: "Location is required"})
	}

	errs = append(errs, validateCoordinatePair(room.Latitude, room.Longitude)...)

	if !utils.IsValidPhoneNumber(room.ContactNumber) {
		errs = append(errs, dto.FieldError{Field: "contactNumber", Message: "Contact number must be at least 10 digits"})
	}

	if len(room.Description) > 1000 {
		errs = append(errs, dto.FieldError{Field: "description", Message: "Description must be less than 1000 characters"})
	}

	if room.RoomType != "" && !domain.ValidRoomType(room.RoomType) {
		errs = append(errs, dto.FieldError{Field: "roomType", Message: "Room type must be single, double, 1bhk, 2bhk or 3bhk"})
	}

	return errs
}

// validateCoordinatePair valida que las coordenadas vengan de a dos y en rango
func validateCoordinatePair(latitude, longitude *float64) []dto.FieldError {
	var errs []dto.FieldError

	// O vienen las dos o no viene ninguna
	if (latitude == nil) != (longitude == nil) {
		errs = append(errs, dto.FieldError{Field: "coordinates", Message: "Latitude and longitude must be provided together"})
		return errs
	}

	if latitude != nil && !utils.IsValidCoordinates(*latitude, *longitude) {
		if *latitude < -90 || *latitude > 90 {
			errs = append(errs, dto.FieldError{Field: "latitude", Message: "Latitude must be between -90 and 90"})
		}
		if *longitude < -180 || *longitude > 180 {
			errs = append(errs, dto.FieldError{Field: "longitude", Message: "Longitude must be between -180 and 180"})
		}
	}

	return errs
}

// normalizeRoomType normaliza el tipo de habitación para comparar
// "1 BHK" y "1bhk" son lo mismo
func normalizeRoomType(roomType string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(roomType), " ", ""))
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"rooms-api/dto"
	"rooms-api/repositories"
	"rooms-api/services"

	"github.com/gin-gonic/gin"
)

// RoomController maneja los endpoints HTTP de publicaciones
type RoomController struct {
	service services.RoomService
}

// NewRoomController crea una nueva instancia del controlador
func NewRoomController(service services.RoomService) *RoomController {
	return &RoomController{service: service}
}

// CreateRoom maneja POST /api/rooms
// Publica una habitación nueva; siempre entra en estado pending
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	// 1. Leer el JSON del body
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	// 2. El que publica es el usuario logueado, no lo que diga el body
	if name, exists := c.Get("name"); exists {
		if nameStr, ok := name.(string); ok && nameStr != "" {
			req.PostedBy = nameStr
		}
	}

	// 3. Llamar al servicio para crear la publicación
	room, err := ctrl.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		// Los errores de validación van como lista de campos
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
				Success: false,
				Errors:  vErr.Errors,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Success: false,
			Message: "Error adding room",
			Error:   err.Error(),
		})
		return
	}

	// 4. Devolver respuesta exitosa con la publicación creada
	c.JSON(http.StatusCreated, dto.SuccessResponse{
		Success: true,
		Message: "Room added successfully",
		Data:    room,
	})
}

// GetRooms maneja GET /api/rooms
// Listado público paginado con filtros de precio y disponibilidad
// Solo devuelve publicaciones aprobadas
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	params := services.ListRoomsParams{
		Page:  parseIntDefault(c.Query("page"), 1),
		Limit: parseIntDefault(c.Query("limit"), 10),
	}

	// Filtros opcionales: un valor no numérico se trata como "sin filtro"
	if v := c.Query("minPrice"); v != "" {
		if minPrice, err := strconv.ParseFloat(v, 64); err == nil {
			params.MinPrice = &minPrice
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if maxPrice, err := strconv.ParseFloat(v, 64); err == nil {
			params.MaxPrice = &maxPrice
		}
	}
	if v := c.Query("availability"); v != "" {
		availability := v == "true"
		params.Availability = &availability
	}

	rooms, pagination, err := ctrl.service.GetRooms(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Success: false,
			Message: "Error fetching rooms",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success:    true,
		Data:       rooms,
		Pagination: pagination,
	})
}

// GetRoomsByLocation maneja GET /api/rooms/location/:location
// Búsqueda por ubicación case-insensitive, paginada
func (ctrl *RoomController) GetRoomsByLocation(c *gin.Context) {
	location := c.Param("location")
	page := parseIntDefault(c.Query("page"), 1)
	limit := parseIntDefault(c.Query("limit"), 10)

	rooms, pagination, err := ctrl.service.GetRoomsByLocation(c.Request.Context(), location, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Success: false,
			Message: "Error fetching rooms by location",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success:    true,
		Data:       rooms,
		Pagination: pagination,
	})
}

// GetNearby maneja GET /api/rooms/search/nearby
// Requiere latitude y longitude; radiusInKm es opcional (default 10)
func (ctrl *RoomController) GetNearby(c *gin.Context) {
	var latitude, longitude *float64

	if v := c.Query("latitude"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Success: false,
				Message: "Latitude must be a valid number",
			})
			return
		}
		latitude = &lat
	}
	if v := c.Query("longitude"); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Success: false,
				Message: "Longitude must be a valid number",
			})
			return
		}
		longitude = &lon
	}

	radiusKm := 10.0
	if v := c.Query("radiusInKm"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			radiusKm = r
		}
	}

	rooms, err := ctrl.service.GetNearby(c.Request.Context(), latitude, longitude, radiusKm)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
				Success: false,
				Errors:  vErr.Errors,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Success: false,
			Message: "Error fetching nearby rooms",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Data:    rooms,
	})
}

// GetRoomByID maneja GET /api/rooms/:id
func (ctrl *RoomController) GetRoomByID(c *gin.Context) {
	room, err := ctrl.service.GetRoomByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Success: false,
				Message: "Room not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Success: false,
			Message: "Error fetching room",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Data:    room,
	})
}

// UpdateRoom maneja PUT /api/rooms/:id
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	room, err := ctrl.service.UpdateRoom(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		var vErr *services.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
				Success: false,
				Errors:  vErr.Errors,
			})
		case errors.Is(err, repositories.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Success: false,
				Message: "Room not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Success: false,
				Message: "Error updating room",
				Error:   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Room updated successfully",
		Data:    room,
	})
}

// parseIntDefault convierte un string a entero con valor por defecto
func parseIntDefault(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return defaultValue
	}
	return n
}

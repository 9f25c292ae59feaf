package controllers

import (
	"errors"
	"log"
	"net/http"

	"rooms-api/dto"
	"rooms-api/services"

	"github.com/gin-gonic/gin"
)

// SearchController maneja las peticiones HTTP de búsqueda
type SearchController struct {
	service services.SearchService
}

// NewSearchController crea una nueva instancia de SearchController
func NewSearchController(service services.SearchService) *SearchController {
	return &SearchController{service: service}
}

// Search maneja GET /api/rooms/search
// Los criterios van por query string; ver dto.SearchRequest
func (ctrl *SearchController) Search(c *gin.Context) {
	// 1. Parsear los query parameters a SearchRequest
	var request dto.SearchRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Invalid search parameters",
			Error:   err.Error(),
		})
		return
	}

	// 2. Llamar al servicio (valida criterios, consulta caché, filtra)
	response, err := ctrl.service.Search(c.Request.Context(), request)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
				Success: false,
				Errors:  vErr.Errors,
			})
			return
		}

		log.Printf("Error searching rooms: %v", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Success: false,
			Message: "Error searching rooms",
			Error:   err.Error(),
		})
		return
	}

	// 3. Escribir respuesta exitosa
	c.JSON(http.StatusOK, response)
}
